package analytics

import (
	"context"
	"log/slog"

	"github.com/poiesic/scholaris/storage"
)

// Service computes aggregate reports over stored researchers, publications,
// and theses.
type Service struct {
	researcherRepository  storage.ResearcherRepository
	publicationRepository storage.PublicationRepository
	thesisRepository      storage.ThesisRepository
	logger                *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates an analytics service over the given repositories.
func NewService(
	researcherRepository storage.ResearcherRepository,
	publicationRepository storage.PublicationRepository,
	thesisRepository storage.ThesisRepository,
	opts ...Option,
) (*Service, error) {
	if researcherRepository == nil {
		return nil, ErrResearcherRepositoryRequired
	}
	if publicationRepository == nil {
		return nil, ErrPublicationRepositoryRequired
	}
	if thesisRepository == nil {
		return nil, ErrThesisRepositoryRequired
	}

	s := &Service{
		researcherRepository:  researcherRepository,
		publicationRepository: publicationRepository,
		thesisRepository:      thesisRepository,
		logger:                slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Summary holds corpus-wide entity totals.
type Summary struct {
	Researchers  int
	Publications int
	Theses       int
	Departments  int // distinct non-empty departments
}

// Summary counts the stored entities.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	researchers, err := s.researcherRepository.ListResearchers(ctx)
	if err != nil {
		return nil, err
	}
	publications, err := s.publicationRepository.ListPublications(ctx)
	if err != nil {
		return nil, err
	}
	theses, err := s.thesisRepository.ListTheses(ctx)
	if err != nil {
		return nil, err
	}

	departments := make(map[string]bool)
	for _, researcher := range researchers {
		if researcher.Department != "" {
			departments[researcher.Department] = true
		}
	}

	return &Summary{
		Researchers:  len(researchers),
		Publications: len(publications),
		Theses:       len(theses),
		Departments:  len(departments),
	}, nil
}
