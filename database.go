// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scholaris

import (
	"io"
	"log/slog"

	"github.com/poiesic/scholaris/ai"
	"github.com/poiesic/scholaris/ai/openai"
	"github.com/poiesic/scholaris/analytics"
	"github.com/poiesic/scholaris/backfill"
	"github.com/poiesic/scholaris/ingestion"
	"github.com/poiesic/scholaris/match"
	"github.com/poiesic/scholaris/storage"
	"github.com/poiesic/scholaris/storage/badger"
)

type Database struct {
	backend         *badger.Backend
	researcherRepo  storage.ResearcherRepository
	publicationRepo storage.PublicationRepository
	thesisRepo      storage.ThesisRepository
	provider        *ai.Provider
	logger          *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	embeddingConfig *ai.Config
}

// WithEmbeddingConfig sets the embedding backend configuration.
// Default is ai.DefaultConfig().
func WithEmbeddingConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.embeddingConfig = config
	}
}

// NewDatabase opens the database at filePath and wires repositories and the
// embedding provider together. The provider constructs its backend on first
// use, so opening succeeds with no embedding service running.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		embeddingConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create researcher repository
	researcherRepo, err := badger.NewResearcherRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create publication repository
	publicationRepo, err := badger.NewPublicationRepository(backend)
	if err != nil {
		researcherRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create thesis repository
	thesisRepo, err := badger.NewThesisRepository(backend)
	if err != nil {
		publicationRepo.Close()
		researcherRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := ai.NewProvider(options.embeddingConfig,
		ai.WithBackendFactory(openai.NewEmbedder))

	return &Database{
		backend:         backend,
		researcherRepo:  researcherRepo,
		publicationRepo: publicationRepo,
		thesisRepo:      thesisRepo,
		provider:        provider,
		logger:          slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close repositories
	if err := db.thesisRepo.Close(); err != nil {
		db.logger.Error("error closing thesis repository", "err", err)
		return err
	}
	if err := db.publicationRepo.Close(); err != nil {
		db.logger.Error("error closing publication repository", "err", err)
		return err
	}
	if err := db.researcherRepo.Close(); err != nil {
		db.logger.Error("error closing researcher repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ResearcherRepository() storage.ResearcherRepository {
	return db.researcherRepo
}

func (db *Database) PublicationRepository() storage.PublicationRepository {
	return db.publicationRepo
}

func (db *Database) ThesisRepository() storage.ThesisRepository {
	return db.thesisRepo
}

func (db *Database) Provider() *ai.Provider {
	return db.provider
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.researcherRepo, db.publicationRepo, db.provider, opts...)
}

func (db *Database) NewMatcher(opts ...match.Option) (*match.Matcher, error) {
	return match.NewMatcher(db.researcherRepo, db.publicationRepo, db.provider, opts...)
}

func (db *Database) NewBackfiller(config *backfill.Config, progress io.Writer) *backfill.Backfiller {
	return backfill.NewBackfiller(db.researcherRepo, db.publicationRepo, db.provider, config, progress)
}

func (db *Database) NewAnalytics(opts ...analytics.Option) (*analytics.Service, error) {
	return analytics.NewService(db.researcherRepo, db.publicationRepo, db.thesisRepo, opts...)
}
