package badger

import (
	"context"
	"testing"

	"github.com/poiesic/scholaris/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_InvalidPath(t *testing.T) {
	// Try to open a file path (not directory)
	tmpFile := t.TempDir() + "/file.txt"
	// Create a file at the path
	backend, err := OpenBackend(tmpFile, false)
	if err == nil {
		backend.Close()
	}
	// We expect this to either error or succeed (depending on mkdir behavior)
	// The key is that it should handle the case gracefully
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)

	assert.False(t, backend.IsClosed())

	err = backend.Close()
	require.NoError(t, err)

	assert.True(t, backend.IsClosed())
}

func TestWithTransaction(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	t.Run("successful read transaction", func(t *testing.T) {
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			// Transaction logic here
			return nil
		}, false)
		require.NoError(t, err)
	})

	t.Run("successful write transaction", func(t *testing.T) {
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			return nil
		}, true)
		require.NoError(t, err)
	})

	t.Run("failed transaction", func(t *testing.T) {
		testErr := assert.AnError
		err := backend.WithTransaction(ctx, func(ctx context.Context) error {
			return testErr
		}, true)
		assert.Equal(t, testErr, err)
	})
}

func TestWithTransaction_SpansRepositories(t *testing.T) {
	researcherRepo, publicationRepo, thesisRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		thesisRepo.Close()
		publicationRepo.Close()
		researcherRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// A researcher and their publication written under one transaction
	err = researcherRepo.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := researcherRepo.AddResearchers(ctx, &core.Researcher{Name: "Dr. Vasquez"}); err != nil {
			return err
		}
		_, err := publicationRepo.AddPublications(ctx, &core.Publication{Title: "Coastal erosion modeling"})
		return err
	}, true)
	require.NoError(t, err)

	researchers, err := researcherRepo.ListResearchers(ctx)
	require.NoError(t, err)
	assert.Len(t, researchers, 1)

	publications, err := publicationRepo.ListPublications(ctx)
	require.NoError(t, err)
	assert.Len(t, publications, 1)
}

func TestGetSequence(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	seq, err := backend.GetSequence("test_sequence")
	require.NoError(t, err)
	require.NotNil(t, seq)
	defer seq.Release()

	// Get sequential IDs
	id1, err := seq.Next()
	require.NoError(t, err)

	id2, err := seq.Next()
	require.NoError(t, err)

	// IDs should be sequential
	assert.Greater(t, id2, id1)
}
