package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"movievault/movie"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MovieRepository implements movie.Repository on a DynamoDB table keyed by
// (user_id, id). Owner scoping rides on the partition key, so a foreign id
// is unreachable by construction.
type MovieRepository struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

type movieItem struct {
	UserID      string    `dynamodbav:"user_id"`
	ID          string    `dynamodbav:"id"`
	Title       string    `dynamodbav:"title"`
	Director    string    `dynamodbav:"director"`
	Type        string    `dynamodbav:"type"`
	ReleaseYear int       `dynamodbav:"release_year"`
	Poster      string    `dynamodbav:"poster"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"`
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (r *MovieRepository) ForOwner(userID string) movie.OwnedRepository {
	return &ownedMovieRepository{repo: r, userID: userID}
}

type ownedMovieRepository struct {
	repo   *MovieRepository
	userID string
}

func (r *ownedMovieRepository) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: r.userID},
		"id":      &types.AttributeValueMemberS{Value: id},
	}
}

// List queries the owner's partition and applies filtering, sorting and
// pagination in memory. Per-owner collections are small; the partition query
// already bounds the scan.
func (r *ownedMovieRepository) List(ctx context.Context, f movie.Filter, p movie.Page) ([]movie.Movie, int64, error) {
	if err := validateTable(r.repo.table); err != nil {
		return nil, 0, err
	}

	var items []movieItem
	paginator := dynamodb.NewQueryPaginator(r.repo.client, &dynamodb.QueryInput{
		TableName:              &r.repo.table,
		KeyConditionExpression: awsString("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: r.userID},
		},
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("dynamodb: query movies: %w", err)
		}
		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, 0, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		items = append(items, page...)
	}

	filtered := items[:0]
	for _, item := range items {
		if f.MinReleaseYear != nil && item.ReleaseYear < *f.MinReleaseYear {
			continue
		}
		if f.MaxReleaseYear != nil && item.ReleaseYear > *f.MaxReleaseYear {
			continue
		}
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		filtered = append(filtered, item)
	}

	sortItems(filtered, p.SortBy, p.SortOrder)

	total := int64(len(filtered))
	start := p.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + p.PerPage
	if end > len(filtered) {
		end = len(filtered)
	}

	movies := make([]movie.Movie, 0, end-start)
	for _, item := range filtered[start:end] {
		movies = append(movies, toDomainMovie(item))
	}
	return movies, total, nil
}

func (r *ownedMovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	if err := validateTable(r.repo.table); err != nil {
		return movie.Movie{}, err
	}

	out, err := r.repo.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.repo.table,
		Key:       r.key(id),
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return toDomainMovie(item), nil
}

func (r *ownedMovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := validateTable(r.repo.table); err != nil {
		return movie.Movie{}, err
	}

	now := r.repo.now()
	item := toItem(m)
	item.ID = uuid.NewString()
	item.UserID = r.userID
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := r.putItem(ctx, item); err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(item), nil
}

func (r *ownedMovieRepository) Upsert(ctx context.Context, id string, m movie.Movie) (movie.Movie, bool, error) {
	if err := validateTable(r.repo.table); err != nil {
		return movie.Movie{}, false, err
	}

	now := r.repo.now()
	item := toItem(m)
	item.ID = id
	item.UserID = r.userID
	item.UpdatedAt = now

	existing, err := r.GetByID(ctx, id)
	created := false
	switch {
	case err == nil:
		item.CreatedAt = existing.CreatedAt
	case err == movie.ErrMovieNotFound:
		item.CreatedAt = now
		created = true
	default:
		return movie.Movie{}, false, err
	}

	if err := r.putItem(ctx, item); err != nil {
		return movie.Movie{}, false, err
	}
	return toDomainMovie(item), created, nil
}

func (r *ownedMovieRepository) Patch(ctx context.Context, id string, p movie.Patch) (movie.Movie, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return movie.Movie{}, err
	}

	if p.Title != nil {
		existing.Title = *p.Title
	}
	if p.Director != nil {
		existing.Director = *p.Director
	}
	if p.Type != nil {
		existing.Type = *p.Type
	}
	if p.ReleaseYear != nil {
		existing.ReleaseYear = *p.ReleaseYear
	}
	if p.Poster != nil {
		existing.Poster = *p.Poster
	}

	item := toItem(existing)
	item.UpdatedAt = r.repo.now()

	if err := r.putItem(ctx, item); err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(item), nil
}

func (r *ownedMovieRepository) Delete(ctx context.Context, id string) (movie.Movie, error) {
	if err := validateTable(r.repo.table); err != nil {
		return movie.Movie{}, err
	}

	out, err := r.repo.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    &r.repo.table,
		Key:          r.key(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: delete movie: %w", err)
	}
	if len(out.Attributes) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return toDomainMovie(item), nil
}

func (r *ownedMovieRepository) putItem(ctx context.Context, item movieItem) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynamodb: marshal movie: %w", err)
	}
	_, err = r.repo.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.repo.table,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put movie: %w", err)
	}
	return nil
}

func sortItems(items []movieItem, sortBy, sortOrder string) {
	less := func(a, b movieItem) bool {
		switch sortBy {
		case "title":
			return a.Title < b.Title
		case "director":
			return a.Director < b.Director
		case "type":
			return a.Type < b.Type
		case "releaseYear":
			return a.ReleaseYear < b.ReleaseYear
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if sortOrder == movie.SortDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func awsString(s string) *string {
	trimmed := strings.TrimSpace(s)
	return &trimmed
}

func toDomainMovie(item movieItem) movie.Movie {
	return movie.Movie{
		ID:          item.ID,
		Title:       item.Title,
		Director:    item.Director,
		Type:        item.Type,
		ReleaseYear: item.ReleaseYear,
		Poster:      item.Poster,
		UserID:      item.UserID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItem(m movie.Movie) movieItem {
	return movieItem{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		Type:        m.Type,
		ReleaseYear: m.ReleaseYear,
		Poster:      m.Poster,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
