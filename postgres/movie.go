package postgres

import (
	"context"
	"errors"
	"time"

	"movievault/movie"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MovieModel represents the database model for movies.
// A release_year of 0 means the year is not set.
type MovieModel struct {
	ID          string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string `gorm:"not null"`
	Director    string `gorm:"not null"`
	Type        string `gorm:"not null;default:film"`
	ReleaseYear int    `gorm:"column:release_year;not null;default:0"`
	Poster      string `gorm:"not null;default:''"`
	UserID      string `gorm:"column:user_id;not null;index"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// sortColumns maps the domain sort allow-list onto table columns. Anything
// missing here cannot be sorted on, whatever the client sends.
var sortColumns = map[string]string{
	"title":       "title",
	"director":    "director",
	"type":        "type",
	"releaseYear": "release_year",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// MovieRepository implements movie.Repository on PostgreSQL.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// ForOwner returns a view of the collection scoped to one owner. Every query
// issued through the returned repository carries the user_id predicate.
func (r *MovieRepository) ForOwner(userID string) movie.OwnedRepository {
	return &ownedMovieRepository{db: r.db, userID: userID}
}

type ownedMovieRepository struct {
	db     *gorm.DB
	userID string
}

func (r *ownedMovieRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&MovieModel{}).Where("user_id = ?", r.userID)
}

func (r *ownedMovieRepository) List(ctx context.Context, f movie.Filter, p movie.Page) ([]movie.Movie, int64, error) {
	query := r.scoped(ctx)
	if f.MinReleaseYear != nil {
		query = query.Where("release_year >= ?", *f.MinReleaseYear)
	}
	if f.MaxReleaseYear != nil {
		query = query.Where("release_year <= ?", *f.MaxReleaseYear)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[p.SortBy]
	if !ok {
		column = sortColumns[movie.DefaultSortBy]
	}
	direction := "ASC"
	if p.SortOrder == movie.SortDesc {
		direction = "DESC"
	}

	var models []MovieModel
	err := query.
		Order(column + " " + direction).
		Offset(p.Offset()).
		Limit(p.PerPage).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, total, nil
}

func (r *ownedMovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	var model MovieModel

	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, r.userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}

	return toDomainMovie(model), nil
}

func (r *ownedMovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	model.UserID = r.userID
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// Upsert fully replaces the record at id, creating it when absent. The bool
// reports whether this call created the record.
func (r *ownedMovieRepository) Upsert(ctx context.Context, id string, m movie.Movie) (movie.Movie, bool, error) {
	var result MovieModel
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing MovieModel
		err := tx.Where("id = ? AND user_id = ?", id, r.userID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result = toModelMovie(m)
			result.ID = id
			result.UserID = r.userID
			created = true
			if err := tx.Create(&result).Error; err != nil {
				// The id exists under another owner. Reporting conflict keeps
				// the foreign record invisible without faking success.
				if isDuplicateKeyError(err) {
					return movie.ErrMovieConflict
				}
				return err
			}
			return nil
		}
		if err != nil {
			return err
		}

		err = tx.Model(&MovieModel{}).
			Where("id = ? AND user_id = ?", id, r.userID).
			Updates(map[string]interface{}{
				"title":        m.Title,
				"director":     m.Director,
				"type":         m.Type,
				"release_year": m.ReleaseYear,
				"poster":       m.Poster,
				"updated_at":   time.Now().UTC(),
			}).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, r.userID).First(&result).Error
	})
	if err != nil {
		return movie.Movie{}, false, err
	}

	return toDomainMovie(result), created, nil
}

// Patch applies only the fields the patch carries. A missing or foreign id
// is reported as not found; a patch never creates.
func (r *ownedMovieRepository) Patch(ctx context.Context, id string, p movie.Patch) (movie.Movie, error) {
	changes := map[string]interface{}{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Director != nil {
		changes["director"] = *p.Director
	}
	if p.Type != nil {
		changes["type"] = *p.Type
	}
	if p.ReleaseYear != nil {
		changes["release_year"] = *p.ReleaseYear
	}
	if p.Poster != nil {
		changes["poster"] = *p.Poster
	}

	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}
	changes["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&MovieModel{}).
		Where("id = ? AND user_id = ?", id, r.userID).
		Updates(changes)
	if result.Error != nil {
		return movie.Movie{}, result.Error
	}
	if result.RowsAffected == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes the record and returns it for confirmation.
func (r *ownedMovieRepository) Delete(ctx context.Context, id string) (movie.Movie, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return movie.Movie{}, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, r.userID).
		Delete(&MovieModel{})
	if result.Error != nil {
		return movie.Movie{}, result.Error
	}
	if result.RowsAffected == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	return existing, nil
}

func isDuplicateKeyError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		Director:    model.Director,
		Type:        model.Type,
		ReleaseYear: model.ReleaseYear,
		Poster:      model.Poster,
		UserID:      model.UserID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		Type:        m.Type,
		ReleaseYear: m.ReleaseYear,
		Poster:      m.Poster,
		UserID:      m.UserID,
	}
}
