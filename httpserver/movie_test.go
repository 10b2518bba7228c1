package httpserver_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"movievault/httpserver"
	"movievault/movie"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetMovies(ctx context.Context, userID string, f movie.Filter, p movie.Page) ([]movie.Movie, int64, error) {
	args := m.Called(ctx, userID, f, p)
	return args.Get(0).([]movie.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieService) AddMovie(ctx context.Context, userID string, mv movie.Movie, upload *movie.Upload) (movie.Movie, error) {
	args := m.Called(ctx, userID, mv, upload)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, userID, id string) (movie.Movie, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) UpsertMovie(ctx context.Context, userID, id string, mv movie.Movie) (movie.Movie, bool, error) {
	args := m.Called(ctx, userID, id, mv)
	return args.Get(0).(movie.Movie), args.Bool(1), args.Error(2)
}

func (m *MockMovieService) PatchMovie(ctx context.Context, userID, id string, p movie.Patch) (movie.Movie, error) {
	args := m.Called(ctx, userID, id, p)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, userID, id string) (movie.Movie, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func newMovieServer(t *testing.T) (*httpserver.Server, *MockMovieService, string) {
	t.Helper()
	server := httpserver.Default(testConfig())
	server.TempDir = t.TempDir()
	svc := new(MockMovieService)
	server.MovieService = svc
	return server, svc, signTestToken(t, testUserID)
}

func doJSON(server *httpserver.Server, method, target, token, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, request)
	return recorder
}

func TestListMovies(t *testing.T) {
	t.Run("returns paged list scoped to the token's user", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		movies := []movie.Movie{{ID: uuid.NewString(), Title: "Interstellar", ReleaseYear: 2014}}
		min := 2010

		svc.On("GetMovies", mock.Anything, testUserID,
			movie.Filter{MinReleaseYear: &min},
			movie.Page{Page: 1, PerPage: 10, SortBy: "createdAt", SortOrder: "asc"},
		).Return(movies, int64(1), nil).Once()

		recorder := doJSON(server, http.MethodGet, "/api/movies?minReleaseYear=2010", token, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "200", resp.Code)
		assert.Equal(t, "OK", resp.Message)
		var result struct {
			Data    []movie.Movie `json:"data"`
			Page    int           `json:"page"`
			PerPage int           `json:"perPage"`
			Total   int64         `json:"total"`
		}
		decodeAPIResult(t, resp.Result, &result)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, "Interstellar", result.Data[0].Title)
		assert.Equal(t, int64(1), result.Total)
		svc.AssertExpectations(t)
	})

	t.Run("malformed year bounds are dropped, not rejected", func(t *testing.T) {
		server, svc, token := newMovieServer(t)

		svc.On("GetMovies", mock.Anything, testUserID,
			movie.Filter{}, mock.Anything,
		).Return([]movie.Movie{}, int64(0), nil).Once()

		recorder := doJSON(server, http.MethodGet, "/api/movies?minReleaseYear=abc&maxReleaseYear=", token, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		server, svc, _ := newMovieServer(t)

		recorder := doJSON(server, http.MethodGet, "/api/movies", "", "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		svc.AssertNotCalled(t, "GetMovies")
	})
}

func TestAddMovie(t *testing.T) {
	t.Run("returns 201 with the created record", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		created := movie.Movie{
			ID: uuid.NewString(), Title: "Interstellar", Director: "Christopher Nolan",
			Type: movie.TypeFilm, ReleaseYear: 2014, UserID: testUserID,
		}

		svc.On("AddMovie", mock.Anything, testUserID, movie.Movie{
			Title: "Interstellar", Director: "Christopher Nolan", ReleaseYear: 2014,
		}, (*movie.Upload)(nil)).Return(created, nil).Once()

		body := `{"title":"Interstellar","director":"Christopher Nolan","releaseYear":2014}`
		recorder := doJSON(server, http.MethodPost, "/api/movies", token, body)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "201", resp.Code)
		var got movie.Movie
		decodeAPIResult(t, resp.Result, &got)
		assert.Equal(t, testUserID, got.UserID)
		assert.Equal(t, movie.TypeFilm, got.Type)
		assert.Equal(t, "", got.Poster)
		svc.AssertExpectations(t)
	})

	t.Run("stages a multipart poster before calling the service", func(t *testing.T) {
		server, svc, token := newMovieServer(t)

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("title", "Dune"))
		require.NoError(t, writer.WriteField("director", "Denis Villeneuve"))
		part, err := writer.CreateFormFile("poster", "dune.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("poster bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		svc.On("AddMovie", mock.Anything, testUserID,
			movie.Movie{Title: "Dune", Director: "Denis Villeneuve"},
			mock.MatchedBy(func(u *movie.Upload) bool {
				return u != nil && u.TempPath != "" && u.Filename != ""
			}),
		).Return(movie.Movie{Title: "Dune"}, nil).Once()

		request := httptest.NewRequest(http.MethodPost, "/api/movies", &body)
		request.Header.Set("Content-Type", writer.FormDataContentType())
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("returns 400 when required fields are missing", func(t *testing.T) {
		server, svc, token := newMovieServer(t)

		recorder := doJSON(server, http.MethodPost, "/api/movies", token, `{"title":"No Director"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "AddMovie")
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		server, svc, token := newMovieServer(t)

		recorder := doJSON(server, http.MethodPost, "/api/movies", token, `{"title": invalid`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "AddMovie")
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("returns the record", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		svc.On("GetMovie", mock.Anything, testUserID, id).
			Return(movie.Movie{ID: id, Title: "Interstellar"}, nil).Once()

		recorder := doJSON(server, http.MethodGet, "/api/movies/"+id, token, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		svc.On("GetMovie", mock.Anything, testUserID, id).
			Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		recorder := doJSON(server, http.MethodGet, "/api/movies/"+id, token, "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100404", resp.Code)
	})

	t.Run("rejects a malformed id before the service runs", func(t *testing.T) {
		server, svc, token := newMovieServer(t)

		recorder := doJSON(server, http.MethodGet, "/api/movies/not-a-uuid", token, "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "GetMovie")
	})
}

func TestUpsertMovie(t *testing.T) {
	body := `{"title":"Dune","director":"Denis Villeneuve","releaseYear":2021}`
	want := movie.Movie{Title: "Dune", Director: "Denis Villeneuve", ReleaseYear: 2021}

	t.Run("returns 201 when the record was created", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		svc.On("UpsertMovie", mock.Anything, testUserID, id, want).
			Return(movie.Movie{ID: id, Title: "Dune"}, true, nil).Once()

		recorder := doJSON(server, http.MethodPut, "/api/movies/"+id, token, body)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("returns 200 when the record was replaced", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		svc.On("UpsertMovie", mock.Anything, testUserID, id, want).
			Return(movie.Movie{ID: id, Title: "Dune"}, false, nil).Once()

		recorder := doJSON(server, http.MethodPut, "/api/movies/"+id, token, body)

		assert.Equal(t, http.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})
}

func TestPatchMovie(t *testing.T) {
	t.Run("passes only supplied fields", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()
		title := "Interstellar (Remastered)"

		svc.On("PatchMovie", mock.Anything, testUserID, id,
			movie.Patch{Title: &title},
		).Return(movie.Movie{ID: id, Title: title}, nil).Once()

		recorder := doJSON(server, http.MethodPatch, "/api/movies/"+id, token,
			fmt.Sprintf(`{"title":%q}`, title))

		assert.Equal(t, http.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("maps patch on a missing record to 404", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		svc.On("PatchMovie", mock.Anything, testUserID, id, movie.Patch{}).
			Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		recorder := doJSON(server, http.MethodPatch, "/api/movies/"+id, token, `{}`)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("rejects an invalid type", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		recorder := doJSON(server, http.MethodPatch, "/api/movies/"+id, token, `{"type":"musical"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "PatchMovie")
	})
}

func TestDeleteMovie(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		svc.On("DeleteMovie", mock.Anything, testUserID, id).
			Return(movie.Movie{ID: id}, nil).Once()

		recorder := doJSON(server, http.MethodDelete, "/api/movies/"+id, token, "")

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.Bytes())
		svc.AssertExpectations(t)
	})

	t.Run("foreign or missing record yields 404", func(t *testing.T) {
		server, svc, token := newMovieServer(t)
		id := uuid.NewString()

		svc.On("DeleteMovie", mock.Anything, testUserID, id).
			Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		recorder := doJSON(server, http.MethodDelete, "/api/movies/"+id, token, "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListMoviesQueryEncoding(t *testing.T) {
	// guards against accidental double-decoding of filter params
	server, svc, token := newMovieServer(t)

	svc.On("GetMovies", mock.Anything, testUserID, movie.Filter{Type: "documentary"}, mock.Anything).
		Return([]movie.Movie{}, int64(0), nil).Once()

	target := "/api/movies?" + url.Values{"type": {"documentary"}}.Encode()
	recorder := doJSON(server, http.MethodGet, target, token, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	svc.AssertExpectations(t)
}
