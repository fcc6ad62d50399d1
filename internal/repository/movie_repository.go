package repository

import (
	"context"
	"errors"
	"strings"

	"movie-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieFilter selects a page of movies. Limit <= 0 means no limit.
type MovieFilter struct {
	Keyword string
	Limit   int
	Offset  int
}

type MovieRepository interface {
	// Reads with genre and actor projections
	FindAll(ctx context.Context, filter MovieFilter) ([]models.Movie, error)
	Count(ctx context.Context, keyword string) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.Movie, error)

	// Row operations
	Get(ctx context.Context, id uint) (*models.Movie, error)
	Create(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uint) error
}

// updatableColumns are the scalar columns Update writes.
var updatableColumns = []string{"title", "rating", "awards", "release_date", "length", "genre_id", "poster_path"}

type movieRepository struct {
	base
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// titleContains matches keyword literally; % and _ in it are not wildcards.
func titleContains(keyword string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if keyword == "" {
			return db
		}
		return db.Where(`movies.title LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(keyword)+"%")
	}
}

// withAssociations drops audit timestamps and loads genre {id, name} and
// actors {id, first_name, last_name}.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Omit("created_at", "updated_at").
		Preload("Genre", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Actors", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name").Order("id")
		})
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Scopes(titleContains(filter.Keyword), withAssociations).
		Order("movies.id ASC")

	// Apply pagination
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	movies := []models.Movie{}
	if err := query.Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// Count ignores pagination and applies the same keyword filter as FindAll.
func (r *movieRepository) Count(ctx context.Context, keyword string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Scopes(titleContains(keyword)).
		Count(&total).Error
	return total, err
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).Scopes(withAssociations).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

// Get loads the bare movie row.
func (r *movieRepository) Get(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Omit(clause.Associations).Create(movie).Error
}

// Update writes the scalar columns of movie, zero values included.
func (r *movieRepository) Update(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).
		Model(movie).
		Select(updatableColumns).
		Updates(movie).Error
}

func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Movie{}, id).Error
}
