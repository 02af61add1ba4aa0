package match

import (
	"context"
	"log/slog"

	"github.com/poiesic/scholaris/ai"
	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/storage"
)

// Default result counts per operation.
const (
	DefaultSupervisorMatches          = 5
	DefaultAlignedResearchers         = 10
	DefaultPublicationRecommendations = 5
)

// ResearcherMatch pairs a researcher with a similarity score.
type ResearcherMatch struct {
	Researcher *core.Researcher
	Score      float32
}

// PublicationMatch pairs a publication with a similarity score.
type PublicationMatch struct {
	Publication *core.Publication
	Score       float32
}

// Matcher implements the matching use cases over stored vectors.
type Matcher struct {
	researcherRepository  storage.ResearcherRepository
	publicationRepository storage.PublicationRepository
	provider              *ai.Provider
	logger                *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// QueryOption adjusts a single matching call.
type QueryOption func(*queryOptions)

type queryOptions struct {
	department string
	topK       int
}

// WithDepartment restricts researcher candidates to one department.
// Ignored by publication-side operations.
func WithDepartment(department string) QueryOption {
	return func(o *queryOptions) {
		o.department = department
	}
}

// WithTopK overrides the operation's default result count.
func WithTopK(topK int) QueryOption {
	return func(o *queryOptions) {
		o.topK = topK
	}
}

func applyQueryOptions(defaultTopK int, opts []QueryOption) queryOptions {
	options := queryOptions{topK: defaultTopK}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// NewMatcher creates a matcher over the given repositories and embedding
// provider.
func NewMatcher(
	researcherRepository storage.ResearcherRepository,
	publicationRepository storage.PublicationRepository,
	provider *ai.Provider,
	opts ...Option,
) (*Matcher, error) {
	if researcherRepository == nil {
		return nil, ErrResearcherRepositoryRequired
	}
	if publicationRepository == nil {
		return nil, ErrPublicationRepositoryRequired
	}
	if provider == nil {
		return nil, ErrEmbeddingProviderRequired
	}

	m := &Matcher{
		researcherRepository:  researcherRepository,
		publicationRepository: publicationRepository,
		provider:              provider,
		logger:                slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MatchSupervisors ranks researchers by how close their interest vectors sit
// to the thesis abstract. Default top 5; WithDepartment narrows the candidate
// pool. An abstract that cannot be embedded yields an empty result with a
// warning, never an error.
func (m *Matcher) MatchSupervisors(ctx context.Context, thesisAbstract string, opts ...QueryOption) ([]*ResearcherMatch, error) {
	options := applyQueryOptions(DefaultSupervisorMatches, opts)

	query := m.provider.Embed(ctx, thesisAbstract)
	if query == nil {
		m.logger.Warn("no embedding for thesis abstract, returning no supervisor matches")
		return []*ResearcherMatch{}, nil
	}

	return m.rankResearchers(ctx, query, options)
}

// AlignedResearchers ranks researchers by alignment with a grant description.
// Default top 10. Same degradation contract as MatchSupervisors.
func (m *Matcher) AlignedResearchers(ctx context.Context, grantDescription string, opts ...QueryOption) ([]*ResearcherMatch, error) {
	options := applyQueryOptions(DefaultAlignedResearchers, opts)

	query := m.provider.Embed(ctx, grantDescription)
	if query == nil {
		m.logger.Warn("no embedding for grant description, returning no aligned researchers")
		return []*ResearcherMatch{}, nil
	}

	return m.rankResearchers(ctx, query, options)
}

// RecommendPublications ranks publications against the researcher's stored
// interest vector. No fresh embedding happens here; a researcher without a
// vector gets an empty result with a warning. Default top 5.
func (m *Matcher) RecommendPublications(ctx context.Context, researcherId core.ID, opts ...QueryOption) ([]*PublicationMatch, error) {
	options := applyQueryOptions(DefaultPublicationRecommendations, opts)

	researcher, err := m.researcherRepository.GetResearcher(ctx, researcherId)
	if err != nil {
		return nil, err
	}
	if len(researcher.InterestVector) == 0 {
		m.logger.Warn("researcher has no interest vector, returning no recommendations",
			"researcherId", researcherId)
		return []*PublicationMatch{}, nil
	}

	publications, err := m.publicationRepository.ListPublications(ctx)
	if err != nil {
		return nil, err
	}

	byId := make(map[core.ID]*core.Publication, len(publications))
	candidates := make([]Candidate, 0, len(publications))
	for _, publication := range publications {
		if len(publication.AbstractVector) == 0 {
			continue
		}
		byId[publication.Id] = publication
		candidates = append(candidates, Candidate{Id: publication.Id, Vector: publication.AbstractVector})
	}

	matches, err := Rank(researcher.InterestVector, candidates, nil, options.topK)
	if err != nil {
		return nil, err
	}

	results := make([]*PublicationMatch, len(matches))
	for i, match := range matches {
		results[i] = &PublicationMatch{Publication: byId[match.Id], Score: match.Score}
	}
	return results, nil
}

// GrantAlignmentScore scores one researcher against one grant description.
// The score lands in [0, 1]; a missing vector on either side scores 0 with a
// warning.
func (m *Matcher) GrantAlignmentScore(ctx context.Context, researcherId core.ID, grantDescription string) (float32, error) {
	researcher, err := m.researcherRepository.GetResearcher(ctx, researcherId)
	if err != nil {
		return 0, err
	}
	if len(researcher.InterestVector) == 0 {
		m.logger.Warn("researcher has no interest vector, alignment score is zero",
			"researcherId", researcherId)
		return 0, nil
	}

	query := m.provider.Embed(ctx, grantDescription)
	if query == nil {
		m.logger.Warn("no embedding for grant description, alignment score is zero")
		return 0, nil
	}

	distance, err := CosineDistance(query, researcher.InterestVector)
	if err != nil {
		return 0, err
	}
	return scoreFromDistance(distance), nil
}

// rankResearchers ranks a researcher candidate pool against a query vector.
// The department restriction, when present, narrows the pool at the index
// instead of filtering after the fact.
func (m *Matcher) rankResearchers(ctx context.Context, query []float32, options queryOptions) ([]*ResearcherMatch, error) {
	var (
		researchers []*core.Researcher
		err         error
	)
	if options.department != "" {
		researchers, err = m.researcherRepository.GetResearchersByDepartment(ctx, options.department)
	} else {
		researchers, err = m.researcherRepository.ListResearchers(ctx)
	}
	if err != nil {
		return nil, err
	}

	byId := make(map[core.ID]*core.Researcher, len(researchers))
	candidates := make([]Candidate, 0, len(researchers))
	for _, researcher := range researchers {
		if len(researcher.InterestVector) == 0 {
			continue
		}
		byId[researcher.Id] = researcher
		candidates = append(candidates, Candidate{Id: researcher.Id, Vector: researcher.InterestVector})
	}

	matches, err := Rank(query, candidates, nil, options.topK)
	if err != nil {
		return nil, err
	}

	results := make([]*ResearcherMatch, len(matches))
	for i, match := range matches {
		results[i] = &ResearcherMatch{Researcher: byId[match.Id], Score: match.Score}
	}
	return results, nil
}
