package movie

import (
	"context"

	"movievault/errs"
)

// Upload is a staged poster file waiting for permanent storage. TempPath
// points at the staging copy on local disk; Filename is the name the file
// should keep in permanent storage.
type Upload struct {
	TempPath string
	Filename string
}

type Service interface {
	GetMovies(ctx context.Context, userID string, f Filter, p Page) ([]Movie, int64, error)
	AddMovie(ctx context.Context, userID string, m Movie, upload *Upload) (Movie, error)
	GetMovie(ctx context.Context, userID, id string) (Movie, error)
	UpsertMovie(ctx context.Context, userID, id string, m Movie) (Movie, bool, error)
	PatchMovie(ctx context.Context, userID, id string, p Patch) (Movie, error)
	DeleteMovie(ctx context.Context, userID, id string) (Movie, error)
}

// Repository is implemented once per backing engine. ForOwner binds the
// owning user up front so no call site can forget to scope a query.
type Repository interface {
	ForOwner(userID string) OwnedRepository
}

// OwnedRepository is a movie collection already scoped to one owner. An id
// that exists but belongs to another owner behaves exactly like a missing id.
type OwnedRepository interface {
	List(ctx context.Context, f Filter, p Page) ([]Movie, int64, error)
	GetByID(ctx context.Context, id string) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	Upsert(ctx context.Context, id string, m Movie) (Movie, bool, error)
	Patch(ctx context.Context, id string, p Patch) (Movie, error)
	Delete(ctx context.Context, id string) (Movie, error)
}

// PosterStorage turns a staged upload into a stable reference: a relative
// path for local storage, an absolute URL for hosted storage.
type PosterStorage interface {
	Save(ctx context.Context, u Upload) (string, error)
}

type Usecase struct {
	r       Repository
	posters PosterStorage
}

func NewUsecase(r Repository, posters PosterStorage) *Usecase {
	return &Usecase{
		r:       r,
		posters: posters,
	}
}

func (uc *Usecase) GetMovies(ctx context.Context, userID string, f Filter, p Page) ([]Movie, int64, error) {
	return uc.r.ForOwner(userID).List(ctx, f, p)
}

func (uc *Usecase) AddMovie(ctx context.Context, userID string, m Movie, upload *Upload) (Movie, error) {
	if upload != nil {
		if uc.posters == nil {
			return Movie{}, errs.Errorf(errs.ENOTIMPLEMENTED, "poster storage not configured")
		}
		poster, err := uc.posters.Save(ctx, *upload)
		if err != nil {
			return Movie{}, err
		}
		m.Poster = poster
	}

	m.UserID = userID
	applyDefaults(&m)
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}

	return uc.r.ForOwner(userID).Create(ctx, m)
}

func (uc *Usecase) GetMovie(ctx context.Context, userID, id string) (Movie, error) {
	return uc.r.ForOwner(userID).GetByID(ctx, id)
}

// UpsertMovie fully replaces the record at id, creating it when absent. The
// returned flag reports whether this call created the record.
func (uc *Usecase) UpsertMovie(ctx context.Context, userID, id string, m Movie) (Movie, bool, error) {
	m.UserID = userID
	applyDefaults(&m)
	if err := m.Validate(); err != nil {
		return Movie{}, false, err
	}

	return uc.r.ForOwner(userID).Upsert(ctx, id, m)
}

// PatchMovie applies a partial update. Unlike UpsertMovie it never creates:
// a missing id is reported as not found.
func (uc *Usecase) PatchMovie(ctx context.Context, userID, id string, p Patch) (Movie, error) {
	if err := p.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.ForOwner(userID).Patch(ctx, id, p)
}

func (uc *Usecase) DeleteMovie(ctx context.Context, userID, id string) (Movie, error) {
	return uc.r.ForOwner(userID).Delete(ctx, id)
}

func applyDefaults(m *Movie) {
	if m.Type == "" {
		m.Type = TypeFilm
	}
}
