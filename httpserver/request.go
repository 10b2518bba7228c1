package httpserver

import (
	"movievault/movie"
)

// AddMovieRequest arrives as multipart form data so a poster file can ride
// along; the same shape also binds from JSON.
type AddMovieRequest struct {
	Title       string `json:"title" form:"title" validate:"required,notblank,max=255"`
	Director    string `json:"director" form:"director" validate:"required,notblank,max=255"`
	Type        string `json:"type" form:"type" validate:"omitempty,movietype"`
	ReleaseYear int    `json:"releaseYear" form:"releaseYear" validate:"omitempty,min=1000,max=9999"`
}

func (r AddMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:       r.Title,
		Director:    r.Director,
		Type:        r.Type,
		ReleaseYear: r.ReleaseYear,
	}
}

// UpsertMovieRequest is a full replacement: required fields match creation.
type UpsertMovieRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Director    string `json:"director" validate:"required,notblank,max=255"`
	Type        string `json:"type" validate:"omitempty,movietype"`
	ReleaseYear int    `json:"releaseYear" validate:"omitempty,min=1000,max=9999"`
	Poster      string `json:"poster" validate:"omitempty,max=2048"`
}

func (r UpsertMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:       r.Title,
		Director:    r.Director,
		Type:        r.Type,
		ReleaseYear: r.ReleaseYear,
		Poster:      r.Poster,
	}
}

// PatchMovieRequest carries only the fields present in the body; absent
// fields stay nil and are not touched.
type PatchMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	Director    *string `json:"director" validate:"omitempty,notblank,max=255"`
	Type        *string `json:"type" validate:"omitempty,movietype"`
	ReleaseYear *int    `json:"releaseYear" validate:"omitempty,min=1000,max=9999"`
	Poster      *string `json:"poster" validate:"omitempty,max=2048"`
}

func (r PatchMovieRequest) ToPatch() movie.Patch {
	return movie.Patch{
		Title:       r.Title,
		Director:    r.Director,
		Type:        r.Type,
		ReleaseYear: r.ReleaseYear,
		Poster:      r.Poster,
	}
}
