package scholaris

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/scholaris/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.ResearcherRepository())
		assert.NotNil(t, db.PublicationRepository())
		assert.NotNil(t, db.ThesisRepository())
		assert.NotNil(t, db.Provider())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("custom embedding config", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		config := ai.NewConfig(ai.WithDimension(768))
		db, err := NewDatabase(tmpDir, WithEmbeddingConfig(config))
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.Equal(t, 768, db.Provider().Dimension())
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)

	// Close the database
	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	tmpDir := t.TempDir()
	db, err := NewDatabase(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create matcher", func(t *testing.T) {
		matcher, err := db.NewMatcher()
		require.NoError(t, err)
		require.NotNil(t, matcher)
	})

	t.Run("can create backfiller", func(t *testing.T) {
		backfiller := db.NewBackfiller(nil, nil)
		assert.NotNil(t, backfiller)
	})

	t.Run("can create analytics", func(t *testing.T) {
		service, err := db.NewAnalytics()
		require.NoError(t, err)
		require.NotNil(t, service)
	})
}
