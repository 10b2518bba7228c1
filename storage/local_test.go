package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"movievault/movie"
	"movievault/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("poster bytes"), 0o644))
	return path
}

func TestLocal_Save(t *testing.T) {
	t.Run("moves staged file into the posters sub-folder", func(t *testing.T) {
		uploadDir := t.TempDir()
		s := storage.NewLocal(uploadDir)
		tempPath := stageTempFile(t, "poster-abc.jpg")

		ref, err := s.Save(context.Background(), movie.Upload{
			TempPath: tempPath,
			Filename: "poster-abc.jpg",
		})

		require.NoError(t, err)
		assert.Equal(t, "posters/poster-abc.jpg", ref)
		assert.Contains(t, ref, "posters")

		moved, err := os.ReadFile(filepath.Join(uploadDir, "posters", "poster-abc.jpg"))
		require.NoError(t, err)
		assert.Equal(t, []byte("poster bytes"), moved)

		_, err = os.Stat(tempPath)
		assert.True(t, os.IsNotExist(err), "staging file should be gone after the move")
	})

	t.Run("fails when the staged file is missing", func(t *testing.T) {
		s := storage.NewLocal(t.TempDir())

		_, err := s.Save(context.Background(), movie.Upload{
			TempPath: filepath.Join(t.TempDir(), "nope.jpg"),
			Filename: "nope.jpg",
		})

		assert.Error(t, err)
	})
}
