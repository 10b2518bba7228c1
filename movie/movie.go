package movie

import (
	"strings"
	"time"

	"movievault/errs"
)

// Movie types. Type always holds one of these; an empty value is defaulted
// to TypeFilm before the record reaches a store.
const (
	TypeFilm        = "film"
	TypeSeries      = "series"
	TypeDocumentary = "documentary"
)

const (
	minReleaseYear = 1000
	maxReleaseYear = 9999
)

var typeList = []string{TypeFilm, TypeSeries, TypeDocumentary}

var (
	ErrMovieNotFound      = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrMovieConflict      = errs.Errorf(errs.ECONFLICT, "movie id already in use")
	ErrInvalidMovieID     = errs.Errorf(errs.EINVALID, "movie: invalid id")
	ErrInvalidTitle       = errs.Errorf(errs.EINVALID, "movie: invalid title")
	ErrInvalidDirector    = errs.Errorf(errs.EINVALID, "movie: invalid director")
	ErrInvalidType        = errs.Errorf(errs.EINVALID, "movie: invalid type")
	ErrInvalidReleaseYear = errs.Errorf(errs.EINVALID, "movie: invalid release year")
	ErrOwnerRequired      = errs.Errorf(errs.EINVALID, "movie: owner is required")
)

// Movie is a single film, series or documentary record owned by one user.
// ReleaseYear is optional; zero means the year is not set.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	Type        string    `json:"type"`
	ReleaseYear int       `json:"releaseYear,omitempty"`
	Poster      string    `json:"poster"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}
	if strings.TrimSpace(m.Director) == "" {
		return ErrInvalidDirector
	}
	if !ValidType(m.Type) {
		return ErrInvalidType
	}
	if err := validateReleaseYear(m.ReleaseYear); err != nil {
		return err
	}
	if m.UserID == "" {
		return ErrOwnerRequired
	}
	return nil
}

// ValidType reports whether t is a member of the movie type enumeration.
func ValidType(t string) bool {
	for _, known := range typeList {
		if t == known {
			return true
		}
	}
	return false
}

// validateReleaseYear enforces the four-digit year constraint. Zero is
// allowed and means "not set".
func validateReleaseYear(year int) error {
	if year == 0 {
		return nil
	}
	if year < minReleaseYear || year > maxReleaseYear {
		return ErrInvalidReleaseYear
	}
	return nil
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	Director    *string
	Type        *string
	ReleaseYear *int
	Poster      *string
}

func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrInvalidTitle
	}
	if p.Director != nil && strings.TrimSpace(*p.Director) == "" {
		return ErrInvalidDirector
	}
	if p.Type != nil && !ValidType(*p.Type) {
		return ErrInvalidType
	}
	if p.ReleaseYear != nil {
		if err := validateReleaseYear(*p.ReleaseYear); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the patch carries no changes at all.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Director == nil && p.Type == nil &&
		p.ReleaseYear == nil && p.Poster == nil
}
