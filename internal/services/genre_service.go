package services

import (
	"context"
	"time"

	"movie-catalog/internal/metrics"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

type GenreService interface {
	ListGenres(ctx context.Context) (*models.GenreList, error)
}

type genreService struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewGenreService(store repository.Store, logger *logrus.Logger) GenreService {
	return &genreService{
		store:  store,
		logger: logger,
	}
}

// ListGenres returns every genre sorted by name.
func (s *genreService) ListGenres(ctx context.Context) (_ *models.GenreList, err error) {
	defer func(start time.Time) { metrics.Observe("genres", "list_genres", start, err) }(time.Now())

	genres, err := s.store.Genres().FindAll(ctx)
	if err != nil {
		return nil, fail(s.logger, "list_genres", fallbackServiceError, err, nil)
	}

	return &models.GenreList{Genres: genres}, nil
}
