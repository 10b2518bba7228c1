// Package storage provides poster storage strategies: local disk and
// Cloudinary. Both consume a staged upload and return a stable reference.
package storage

import (
	"context"
	"os"
	"path/filepath"

	"movievault/errs"
	"movievault/movie"
)

// posterFolder is the fixed sub-folder posters live in, both on local disk
// and in the hosted media account.
const posterFolder = "posters"

// Local moves staged uploads into a persistent uploads directory and
// returns a path relative to that directory.
type Local struct {
	uploadDir string
}

func NewLocal(uploadDir string) *Local {
	return &Local{uploadDir: uploadDir}
}

func (s *Local) Save(_ context.Context, u movie.Upload) (string, error) {
	dir := filepath.Join(s.uploadDir, posterFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		removeTempFile(u.TempPath)
		return "", errs.Errorf(errs.EINTERNAL, "storage: create posters dir: %v", err)
	}

	dst := filepath.Join(dir, u.Filename)
	if err := os.Rename(u.TempPath, dst); err != nil {
		removeTempFile(u.TempPath)
		return "", errs.Errorf(errs.EINTERNAL, "storage: move poster: %v", err)
	}

	return filepath.ToSlash(filepath.Join(posterFolder, u.Filename)), nil
}

// removeTempFile is best-effort: the staging file must not outlive the
// request, but a failed cleanup should not mask the original error.
func removeTempFile(path string) {
	_ = os.Remove(path)
}
