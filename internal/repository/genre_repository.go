package repository

import (
	"context"

	"movie-catalog/internal/models"
)

type GenreRepository interface {
	FindAll(ctx context.Context) ([]models.Genre, error)
}

type genreRepository struct {
	base
}

// FindAll returns every genre ordered by name.
func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	genres := []models.Genre{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}
