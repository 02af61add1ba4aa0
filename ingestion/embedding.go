package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/scholaris/ai"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
)

// researcherEmbeddingProcessor generates interest vectors for researchers.
type researcherEmbeddingProcessor struct {
	researcherRepository storage.ResearcherRepository
	provider             *ai.Provider
	logger               *slog.Logger
}

var _ processor = (*researcherEmbeddingProcessor)(nil)

// newResearcherEmbeddingProcessor creates a new researcher embedding processor.
func newResearcherEmbeddingProcessor(researcherRepository storage.ResearcherRepository, provider *ai.Provider, logger *slog.Logger) (processor, error) {
	if researcherRepository == nil {
		return nil, fmt.Errorf("researcher repository required")
	}
	if provider == nil {
		return nil, fmt.Errorf("embedding provider required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &researcherEmbeddingProcessor{
		researcherRepository: researcherRepository,
		provider:             provider,
		logger:               logger.With("processor", "researcher-embeddings"),
	}, nil
}

// process embeds the interest text of the specified researchers.
// Researchers with blank interests end up with no vector.
func (ep *researcherEmbeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing researchers for embeddings", "records", len(ids))

	researchers, err := ep.researcherRepository.GetResearchers(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving researchers", "err", err)
		return err
	}

	if len(researchers) == 0 {
		return nil
	}

	texts := make([]string, len(researchers))
	for i, researcher := range researchers {
		texts[i] = researcher.InterestsText()
	}

	ep.logger.Debug("generating interest embeddings", "records", len(texts))
	vectors := ep.provider.EmbedBatch(ctx, texts)
	for i := range researchers {
		researchers[i].InterestVector = vectors[i]
	}

	_, err = ep.researcherRepository.UpdateResearchers(ctx, researchers...)
	return err
}

// publicationEmbeddingProcessor generates abstract vectors for publications.
type publicationEmbeddingProcessor struct {
	publicationRepository storage.PublicationRepository
	provider              *ai.Provider
	logger                *slog.Logger
}

var _ processor = (*publicationEmbeddingProcessor)(nil)

// newPublicationEmbeddingProcessor creates a new publication embedding processor.
func newPublicationEmbeddingProcessor(publicationRepository storage.PublicationRepository, provider *ai.Provider, logger *slog.Logger) (processor, error) {
	if publicationRepository == nil {
		return nil, fmt.Errorf("publication repository required")
	}
	if provider == nil {
		return nil, fmt.Errorf("embedding provider required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &publicationEmbeddingProcessor{
		publicationRepository: publicationRepository,
		provider:              provider,
		logger:                logger.With("processor", "publication-embeddings"),
	}, nil
}

// process embeds the abstracts of the specified publications.
// Publications with blank abstracts end up with no vector.
func (ep *publicationEmbeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing publications for embeddings", "records", len(ids))

	publications, err := ep.publicationRepository.GetPublications(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving publications", "err", err)
		return err
	}

	if len(publications) == 0 {
		return nil
	}

	texts := make([]string, len(publications))
	for i, publication := range publications {
		texts[i] = publication.Abstract
	}

	ep.logger.Debug("generating abstract embeddings", "records", len(texts))
	vectors := ep.provider.EmbedBatch(ctx, texts)
	for i := range publications {
		publications[i].AbstractVector = vectors[i]
	}

	_, err = ep.publicationRepository.UpdatePublications(ctx, publications...)
	return err
}
