package ingestion

import "errors"

var (
	// ErrResearcherRepositoryRequired is returned when a researcher repository is not provided.
	ErrResearcherRepositoryRequired = errors.New("researcher repository required")

	// ErrPublicationRepositoryRequired is returned when a publication repository is not provided.
	ErrPublicationRepositoryRequired = errors.New("publication repository required")

	// ErrEmbeddingProviderRequired is returned when an embedding provider is not provided.
	ErrEmbeddingProviderRequired = errors.New("embedding provider required")

	// ErrInvalidTagThreshold is returned when the auto-tagging threshold is outside (0, 1].
	ErrInvalidTagThreshold = errors.New("tag threshold must be in (0, 1]")
)
