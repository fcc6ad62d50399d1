package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/models"
)

var ErrInvalidActorLink = errors.New("invalid actor link")

type ActorRepository interface {
	ClearFavoriteMovie(ctx context.Context, movieID uint) (int64, error)
}

type actorRepository struct {
	base
}

// ClearFavoriteMovie nulls favorite_movie_id on every actor pointing at movieID.
func (r *actorRepository) ClearFavoriteMovie(ctx context.Context, movieID uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Model(&models.Actor{}).
		Where("favorite_movie_id = ?", movieID).
		Update("favorite_movie_id", nil)
	return result.RowsAffected, result.Error
}

type ActorMovieRepository interface {
	CreateLinks(ctx context.Context, movieID uint, actorIDs []uint) error
	DeleteByMovie(ctx context.Context, movieID uint) (int64, error)
	FindByMovie(ctx context.Context, movieID uint) ([]models.ActorMovie, error)
}

type actorMovieRepository struct {
	base
}

// CreateLinks inserts one actor_movie row per actor. Every row is validated
// first and a single invalid row rejects the whole batch.
func (r *actorMovieRepository) CreateLinks(ctx context.Context, movieID uint, actorIDs []uint) error {
	if len(actorIDs) == 0 {
		return nil
	}

	links := make([]models.ActorMovie, 0, len(actorIDs))
	for i, actorID := range actorIDs {
		link := models.ActorMovie{MovieID: movieID, ActorID: actorID}
		if err := validateLink(link); err != nil {
			return fmt.Errorf("actor_movie[%d]: %w", i, err)
		}
		links = append(links, link)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(&links).Error
}

func validateLink(link models.ActorMovie) error {
	if link.MovieID == 0 {
		return fmt.Errorf("%w: movie_id is required", ErrInvalidActorLink)
	}
	if link.ActorID == 0 {
		return fmt.Errorf("%w: actor_id is required", ErrInvalidActorLink)
	}
	return nil
}

func (r *actorMovieRepository) DeleteByMovie(ctx context.Context, movieID uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&models.ActorMovie{})
	return result.RowsAffected, result.Error
}

func (r *actorMovieRepository) FindByMovie(ctx context.Context, movieID uint) ([]models.ActorMovie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var links []models.ActorMovie
	err := r.db.WithContext(ctx).Where("movie_id = ?", movieID).Order("actor_id").Find(&links).Error
	return links, err
}
