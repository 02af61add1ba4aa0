package storage

import (
	"context"

	"github.com/poiesic/scholaris/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil and isWrite is true, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error, isWrite bool) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ResearcherRepository provides operations for managing researcher profiles.
type ResearcherRepository interface {
	Repository
	// AddResearchers adds one or more researchers to storage.
	// Generates new IDs from sequence and sets timestamps.
	// Returns the researchers with generated IDs and timestamps populated.
	AddResearchers(ctx context.Context, researchers ...*core.Researcher) ([]*core.Researcher, error)

	// UpdateResearchers updates existing researchers.
	// Updates the UpdatedAt timestamp automatically and re-indexes the
	// department on change. Returns ErrNotFound if any researcher doesn't exist.
	UpdateResearchers(ctx context.Context, researchers ...*core.Researcher) ([]*core.Researcher, error)

	// DeleteResearchers removes researchers by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any researcher doesn't exist.
	DeleteResearchers(ctx context.Context, ids ...core.ID) error

	// GetResearcher retrieves a single researcher by ID.
	// Returns ErrNotFound if the researcher doesn't exist.
	GetResearcher(ctx context.Context, id core.ID) (*core.Researcher, error)

	// GetResearchers retrieves multiple researchers by their IDs.
	// Returns only the researchers that exist (no error for missing ones).
	GetResearchers(ctx context.Context, ids ...core.ID) ([]*core.Researcher, error)

	// ListResearchers retrieves all researchers.
	ListResearchers(ctx context.Context) ([]*core.Researcher, error)

	// GetResearchersByDepartment retrieves researchers in one department.
	GetResearchersByDepartment(ctx context.Context, department string) ([]*core.Researcher, error)

	// ListResearchersMissingVector retrieves researchers without a stored
	// interest vector. Used by backfill to find work.
	ListResearchersMissingVector(ctx context.Context) ([]*core.Researcher, error)
}

// PublicationRepository provides operations for managing publication records.
type PublicationRepository interface {
	Repository
	// AddPublications adds one or more publications to storage.
	// Generates new IDs from sequence and sets timestamps.
	// A publication whose DOI is already registered fails with ErrDuplicateKey.
	AddPublications(ctx context.Context, publications ...*core.Publication) ([]*core.Publication, error)

	// UpdatePublications updates existing publications.
	// Updates the UpdatedAt timestamp automatically and re-indexes goals and
	// DOI on change. Returns ErrNotFound if any publication doesn't exist.
	UpdatePublications(ctx context.Context, publications ...*core.Publication) ([]*core.Publication, error)

	// DeletePublications removes publications by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any publication doesn't exist.
	DeletePublications(ctx context.Context, ids ...core.ID) error

	// GetPublication retrieves a single publication by ID.
	// Returns ErrNotFound if the publication doesn't exist.
	GetPublication(ctx context.Context, id core.ID) (*core.Publication, error)

	// GetPublications retrieves multiple publications by their IDs.
	// Returns only the publications that exist (no error for missing ones).
	GetPublications(ctx context.Context, ids ...core.ID) ([]*core.Publication, error)

	// ListPublications retrieves all publications.
	ListPublications(ctx context.Context) ([]*core.Publication, error)

	// GetPublicationsByGoal retrieves IDs of publications tagged with a
	// sustainable development goal code. Returns only IDs, not full records.
	GetPublicationsByGoal(ctx context.Context, code string) ([]core.ID, error)

	// GetPublicationByDOI finds a publication by its DOI.
	// Returns ErrNotFound if no publication carries the DOI.
	GetPublicationByDOI(ctx context.Context, doi string) (*core.Publication, error)

	// ListPublicationsMissingVector retrieves publications without a stored
	// abstract vector. Used by backfill to find work.
	ListPublicationsMissingVector(ctx context.Context) ([]*core.Publication, error)
}

// ThesisRepository provides operations for managing thesis records.
type ThesisRepository interface {
	Repository
	// AddTheses adds one or more theses to storage.
	// Generates new IDs from sequence and sets timestamps.
	AddTheses(ctx context.Context, theses ...*core.Thesis) ([]*core.Thesis, error)

	// UpdateTheses updates existing theses.
	// Updates the UpdatedAt timestamp automatically and re-indexes the
	// supervisor on change. Returns ErrNotFound if any thesis doesn't exist.
	UpdateTheses(ctx context.Context, theses ...*core.Thesis) ([]*core.Thesis, error)

	// DeleteTheses removes theses by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any thesis doesn't exist.
	DeleteTheses(ctx context.Context, ids ...core.ID) error

	// GetThesis retrieves a single thesis by ID.
	// Returns ErrNotFound if the thesis doesn't exist.
	GetThesis(ctx context.Context, id core.ID) (*core.Thesis, error)

	// GetTheses retrieves multiple theses by their IDs.
	// Returns only the theses that exist (no error for missing ones).
	GetTheses(ctx context.Context, ids ...core.ID) ([]*core.Thesis, error)

	// ListTheses retrieves all theses.
	ListTheses(ctx context.Context) ([]*core.Thesis, error)

	// GetThesesBySupervisor retrieves the theses supervised by a researcher.
	GetThesesBySupervisor(ctx context.Context, supervisorId core.ID) ([]*core.Thesis, error)
}
