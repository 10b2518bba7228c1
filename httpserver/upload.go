package httpserver

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"movievault/errs"
	"movievault/movie"

	"github.com/labstack/echo/v4"
)

// stagePosterUpload copies an optional multipart "poster" file into the
// staging directory. Returns nil when the request carries no file. The
// staged file's generated name becomes the poster's stored filename, so
// concurrent uploads of identically named files cannot collide.
func (s *Server) stagePosterUpload(c echo.Context) (*movie.Upload, error) {
	file, err := c.FormFile("poster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errs.Errorf(errs.EINVALID, "invalid poster upload")
	}

	src, err := file.Open()
	if err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "open poster upload: %v", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.TempDir, 0o755); err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "create staging dir: %v", err)
	}

	tmp, err := os.CreateTemp(s.TempDir, "poster-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "stage poster upload: %v", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, errs.Errorf(errs.EINTERNAL, "stage poster upload: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, errs.Errorf(errs.EINTERNAL, "stage poster upload: %v", err)
	}

	return &movie.Upload{
		TempPath: tmp.Name(),
		Filename: filepath.Base(tmp.Name()),
	}, nil
}
