package httpserver

import (
	"net/http"

	"movievault/errs"
	"movievault/movie"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.POST("/movies", s.handleAddMovie)
	g.GET("/movies/:id", s.handleGetMovie)
	g.PUT("/movies/:id", s.handleUpsertMovie)
	g.PATCH("/movies/:id", s.handlePatchMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description List the caller's movies with filtering, sorting and pagination
// @Tags movies
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param perPage query int false "Page size (1-100), default 10"
// @Param sortBy query string false "Sort field (title, director, type, releaseYear, createdAt, updatedAt)"
// @Param sortOrder query string false "asc or desc"
// @Param minReleaseYear query int false "Lower release year bound"
// @Param maxReleaseYear query int false "Upper release year bound"
// @Param type query string false "Movie type"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	query := c.QueryParams()
	filter := movie.ParseFilter(query)
	page := movie.NormalizePage(
		query.Get("page"),
		query.Get("perPage"),
		query.Get("sortBy"),
		query.Get("sortOrder"),
	)

	movies, total, err := s.MovieService.GetMovies(c.Request().Context(), userID, filter, page)
	if err != nil {
		return err
	}

	return writePagedList(c, http.StatusOK, movies, page.Page, page.PerPage, total)
}

// handleAddMovie godoc
// @Summary Create Movie
// @Description Create a movie, optionally with a multipart poster upload
// @Tags movies
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param director formData string true "Director"
// @Param type formData string false "Type (film, series, documentary), default film"
// @Param releaseYear formData int false "Four digit release year"
// @Param poster formData file false "Poster image"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleAddMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	upload, err := s.stagePosterUpload(c)
	if err != nil {
		return err
	}

	created, err := s.MovieService.AddMovie(c.Request().Context(), userID, req.ToMovie(), upload)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, created)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Fetch one of the caller's movies by id
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleUpsertMovie godoc
// @Summary Upsert Movie
// @Description Fully replace the movie at id, creating it when absent
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body UpsertMovieRequest true "Full movie record"
// @Success 200 {object} APIResponse
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies/{id} [put]
func (s *Server) handleUpsertMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req UpsertMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, created, err := s.MovieService.UpsertMovie(c.Request().Context(), userID, id, req.ToMovie())
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return writeSuccess(c, status, m)
}

// handlePatchMovie godoc
// @Summary Patch Movie
// @Description Partially update an existing movie; never creates
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Param movie body PatchMovieRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [patch]
func (s *Server) handlePatchMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req PatchMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.PatchMovie(c.Request().Context(), userID, id, req.ToPatch())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Physically delete one of the caller's movies
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if _, err := s.MovieService.DeleteMovie(c.Request().Context(), userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// movieID validates the path id before anything touches a store.
func movieID(c echo.Context) (string, error) {
	raw := c.Param("id")
	if _, err := uuid.Parse(raw); err != nil {
		return "", movie.ErrInvalidMovieID
	}
	return raw, nil
}
