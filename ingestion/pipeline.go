package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scholaris/ai"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/sdg"
	"github.com/poiesic/scholaris/storage"
)

// Pipeline orchestrates the ingestion and enrichment of researcher and
// publication records. It manages concurrent processing of embeddings and
// sustainability goal tagging.
type Pipeline struct {
	researcherRepository  storage.ResearcherRepository
	publicationRepository storage.PublicationRepository
	embeddingPool         *ants.Pool
	taggingPool           *ants.Pool
	researcherProc        processor
	publicationProc       processor
	taggingProc           processor
	tagThreshold          float64
	logger                *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		if p.taggingPool != nil {
			p.taggingPool.Release()
		}

		// Create new pools
		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		taggingPool, err := ants.NewPool(size)
		if err != nil {
			embeddingPool.Release()
			return err
		}

		p.embeddingPool = embeddingPool
		p.taggingPool = taggingPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithTagThreshold sets the keyword overlap threshold used when auto-tagging
// publications with sustainability goals.
// Default is sdg.DefaultThreshold.
func WithTagThreshold(threshold float64) Option {
	return func(p *Pipeline) error {
		if threshold <= 0 || threshold > 1 {
			return ErrInvalidTagThreshold
		}
		p.tagThreshold = threshold
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	researcherRepository storage.ResearcherRepository,
	publicationRepository storage.PublicationRepository,
	provider *ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if researcherRepository == nil {
		return nil, ErrResearcherRepositoryRequired
	}
	if publicationRepository == nil {
		return nil, ErrPublicationRepositoryRequired
	}
	if provider == nil {
		return nil, ErrEmbeddingProviderRequired
	}

	// Default logger
	logger := slog.Default()

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	taggingPool, err := ants.NewPool(poolSize)
	if err != nil {
		embeddingPool.Release()
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		researcherRepository:  researcherRepository,
		publicationRepository: publicationRepository,
		embeddingPool:         embeddingPool,
		taggingPool:           taggingPool,
		tagThreshold:          sdg.DefaultThreshold,
		logger:                logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processors after options are applied (so they get final config)
	researcherProc, err := newResearcherEmbeddingProcessor(researcherRepository, provider, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	publicationProc, err := newPublicationEmbeddingProcessor(publicationRepository, provider, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	taggingProc, err := newTaggingProcessor(publicationRepository, p.tagThreshold, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.researcherProc = researcherProc
	p.publicationProc = publicationProc
	p.taggingProc = taggingProc

	return p, nil
}

// IngestResearchers validates and persists researchers, then schedules their
// interest embeddings asynchronously. The returned records carry assigned IDs.
// Errors during async processing are logged but do not fail the ingestion.
func (p *Pipeline) IngestResearchers(ctx context.Context, researchers ...*core.Researcher) ([]*core.Researcher, error) {
	for _, researcher := range researchers {
		if err := core.ValidateResearcher(researcher); err != nil {
			return nil, err
		}
	}

	// Add to storage
	added, err := p.researcherRepository.AddResearchers(ctx, researchers...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	// Extract IDs
	ids := make([]core.ID, len(added))
	for i, record := range added {
		ids[i] = record.Id
	}

	// Submit for async processing
	p.embeddingPool.Submit(func() {
		if err := p.researcherProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error embedding researcher interests", "err", err)
		}
	})

	return added, nil
}

// IngestPublications validates and persists publications, then schedules
// abstract embeddings and goal auto-tagging asynchronously. The returned
// records carry assigned IDs. Publications ingested with goals already set
// are never auto-tagged.
// Errors during async processing are logged but do not fail the ingestion.
func (p *Pipeline) IngestPublications(ctx context.Context, publications ...*core.Publication) ([]*core.Publication, error) {
	for _, publication := range publications {
		if err := core.ValidatePublication(publication); err != nil {
			return nil, err
		}
	}

	// Add to storage
	added, err := p.publicationRepository.AddPublications(ctx, publications...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	// Extract IDs
	ids := make([]core.ID, len(added))
	for i, record := range added {
		ids[i] = record.Id
	}

	// Submit for async processing. Tagging is chained behind the embedding
	// update so the two writes never land in overlapping transactions on
	// the same record.
	p.embeddingPool.Submit(func() {
		if err := p.publicationProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error embedding publication abstracts", "err", err)
		}

		p.taggingPool.Submit(func() {
			if err := p.taggingProc.process(context.Background(), ids...); err != nil {
				p.logger.Error("error tagging publications", "err", err)
			}
		})
	})

	return added, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
	if p.taggingPool != nil {
		p.taggingPool.Release()
	}
}
