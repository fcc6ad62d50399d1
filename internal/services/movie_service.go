package services

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

type MovieService interface {
	ListMovies(ctx context.Context, limit, offset int, keyword string) (*models.MovieList, error)
	GetMovieByID(ctx context.Context, id string) (*models.Movie, error)
	CreateMovie(ctx context.Context, input models.MovieInput, actorIDs []uint) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id string, patch models.MoviePatch) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// PosterStorage removes poster objects that belong to the catalog bucket.
type PosterStorage interface {
	Owns(path string) bool
	DeleteFile(ctx context.Context, objectPath string) error
}

type movieService struct {
	store   repository.Store
	posters PosterStorage
	logger  *logrus.Logger
}

func NewMovieService(store repository.Store, logger *logrus.Logger) MovieService {
	return &movieService{
		store:  store,
		logger: logger,
	}
}

func (s *movieService) SetPosterStorage(posters PosterStorage) {
	s.posters = posters
}

// ListMovies returns one page of movies and the number of movies matching
// keyword across all pages. A limit <= 0 returns every match.
func (s *movieService) ListMovies(ctx context.Context, limit, offset int, keyword string) (_ *models.MovieList, err error) {
	defer func(start time.Time) { metrics.Observe("movies", "list_movies", start, err) }(time.Now())

	if offset < 0 {
		offset = 0
	}
	filter := repository.MovieFilter{
		Keyword: keyword,
		Limit:   limit,
		Offset:  offset,
	}
	fields := logrus.Fields{"limit": limit, "offset": offset, "keyword": keyword}

	movies, err := s.store.Movies().FindAll(ctx, filter)
	if err != nil {
		return nil, fail(s.logger, "list_movies", fallbackServiceError, err, fields)
	}

	count, err := s.store.Movies().Count(ctx, keyword)
	if err != nil {
		return nil, fail(s.logger, "list_movies", fallbackServiceError, err, fields)
	}

	s.logger.WithFields(fields).WithField("count", count).Debug("Movies listed")

	return &models.MovieList{
		Movies: movies,
		Count:  count,
	}, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id string) (_ *models.Movie, err error) {
	defer func(start time.Time) { metrics.Observe("movies", "get_movie", start, err) }(time.Now())

	movieID, ok := parseMovieID(id)
	if !ok {
		err := apperror.InvalidInput(http.StatusBadRequest, msgMissingID)
		return nil, fail(s.logger, "get_movie", fallbackServiceError, err, logrus.Fields{"id": id})
	}

	movie, err := s.findMovie(ctx, s.store, movieID)
	if err != nil {
		return nil, fail(s.logger, "get_movie", fallbackServiceError, err, logrus.Fields{"id": movieID})
	}
	return movie, nil
}

// CreateMovie inserts the movie and its actor links in one transaction and
// returns it with the same projection as GetMovieByID.
func (s *movieService) CreateMovie(ctx context.Context, input models.MovieInput, actorIDs []uint) (_ *models.Movie, err error) {
	defer func(start time.Time) { metrics.Observe("movies", "create_movie", start, err) }(time.Now())

	movie := &models.Movie{
		Title:       input.Title,
		Rating:      input.Rating,
		Awards:      input.Awards,
		ReleaseDate: input.ReleaseDate,
		Length:      input.Length,
		GenreID:     input.GenreID,
		PosterPath:  input.PosterPath,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Movies().Create(ctx, movie); err != nil {
			return err
		}
		return tx.ActorMovies().CreateLinks(ctx, movie.ID, actorIDs)
	})
	if err != nil {
		return nil, fail(s.logger, "create_movie", fallbackServiceError, err, logrus.Fields{"title": input.Title, "actors": actorIDs})
	}

	s.logger.WithFields(logrus.Fields{"id": movie.ID, "actors": len(actorIDs)}).Info("Movie created")

	created, err := s.findMovie(ctx, s.store, movie.ID)
	if err != nil {
		return nil, fail(s.logger, "create_movie", fallbackServiceError, err, logrus.Fields{"id": movie.ID})
	}
	return created, nil
}

// UpdateMovie overwrites the scalar fields that carry a non-empty value and,
// when actors is non-empty, replaces the whole actor set.
func (s *movieService) UpdateMovie(ctx context.Context, id string, patch models.MoviePatch) (_ *models.Movie, err error) {
	defer func(start time.Time) { metrics.Observe("movies", "update_movie", start, err) }(time.Now())

	fields := logrus.Fields{"id": id}

	movieID, ok := parseMovieID(id)
	if !ok {
		err := apperror.NotFound(http.StatusBadRequest, msgUpdateNotFound)
		return nil, fail(s.logger, "update_movie", fallbackMutateError, err, fields)
	}

	var oldPoster, newPoster string
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		movie, err := tx.Movies().Get(ctx, movieID)
		if err != nil {
			return err
		}
		if movie == nil {
			return apperror.NotFound(http.StatusBadRequest, msgUpdateNotFound)
		}

		oldPoster = movie.PosterPath
		applyPatch(movie, patch)
		newPoster = movie.PosterPath

		if err := tx.Movies().Update(ctx, movie); err != nil {
			return err
		}

		if len(patch.Actors) > 0 {
			if _, err := tx.ActorMovies().DeleteByMovie(ctx, movieID); err != nil {
				return err
			}
			if err := tx.ActorMovies().CreateLinks(ctx, movieID, patch.Actors); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fail(s.logger, "update_movie", fallbackMutateError, err, fields)
	}

	if oldPoster != newPoster {
		s.removePoster(ctx, oldPoster)
	}

	s.logger.WithFields(logrus.Fields{"id": movieID, "actors": len(patch.Actors)}).Info("Movie updated")

	movie, err := s.findMovie(ctx, s.store, movieID)
	if err != nil {
		return nil, fail(s.logger, "update_movie", fallbackMutateError, err, fields)
	}
	return movie, nil
}

// DeleteMovie removes the movie's actor links, clears favorite_movie_id on
// actors pointing at it and deletes the movie, all in one transaction.
func (s *movieService) DeleteMovie(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { metrics.Observe("movies", "delete_movie", start, err) }(time.Now())

	fields := logrus.Fields{"id": id}

	movieID, err := parseDeleteID(id)
	if err != nil {
		return fail(s.logger, "delete_movie", fallbackMutateError, err, fields)
	}

	var poster string
	var links, favorites int64
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		movie, err := tx.Movies().Get(ctx, movieID)
		if err != nil {
			return err
		}
		if movie == nil {
			return apperror.NotFound(http.StatusNotFound, msgDeleteNotFound)
		}
		poster = movie.PosterPath

		if links, err = tx.ActorMovies().DeleteByMovie(ctx, movieID); err != nil {
			return err
		}
		if favorites, err = tx.Actors().ClearFavoriteMovie(ctx, movieID); err != nil {
			return err
		}
		return tx.Movies().Delete(ctx, movieID)
	})
	if err != nil {
		return fail(s.logger, "delete_movie", fallbackMutateError, err, fields)
	}

	s.removePoster(ctx, poster)

	s.logger.WithFields(logrus.Fields{
		"id":                movieID,
		"links_removed":     links,
		"favorites_cleared": favorites,
	}).Info("Movie deleted")

	return nil
}

func (s *movieService) findMovie(ctx context.Context, store repository.Store, id uint) (*models.Movie, error) {
	movie, err := store.Movies().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, apperror.NotFound(http.StatusBadRequest, msgMovieNotFound)
	}
	return movie, nil
}

// removePoster deletes a poster object we own. Failures are only logged.
func (s *movieService) removePoster(ctx context.Context, path string) {
	if path == "" || s.posters == nil || !s.posters.Owns(path) {
		return
	}
	if err := s.posters.DeleteFile(ctx, path); err != nil {
		s.logger.WithError(err).WithField("poster", path).Warn("Failed to delete poster from MinIO")
	}
}

// applyPatch copies every patch field that is present and non-zero. A
// present zero value (rating 0, empty title) keeps the stored value.
func applyPatch(movie *models.Movie, patch models.MoviePatch) {
	if patch.Title != nil {
		if title := strings.TrimSpace(*patch.Title); title != "" {
			movie.Title = title
		}
	}
	if patch.Awards != nil && *patch.Awards != 0 {
		movie.Awards = *patch.Awards
	}
	if patch.Rating != nil && *patch.Rating != 0 {
		movie.Rating = *patch.Rating
	}
	if patch.Length != nil && *patch.Length != 0 {
		movie.Length = *patch.Length
	}
	if patch.ReleaseDate != nil && *patch.ReleaseDate != "" {
		movie.ReleaseDate = *patch.ReleaseDate
	}
	if patch.GenreID != nil && *patch.GenreID != 0 {
		genreID := *patch.GenreID
		movie.GenreID = &genreID
	}
	if patch.PosterPath != nil && *patch.PosterPath != "" {
		movie.PosterPath = *patch.PosterPath
	}
}

// parseMovieID accepts a positive integer id.
func parseMovieID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDeleteID rejects ids that are not numbers at all with "Id corrupto".
// Numbers that cannot name a row (zero, negative, fractional) are reported
// as a missing movie.
func parseDeleteID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperror.NotFound(http.StatusNotFound, msgDeleteNotFound)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) {
		return 0, apperror.InvalidInput(http.StatusNotFound, msgCorruptID)
	}

	id, ok := parseMovieID(raw)
	if !ok {
		return 0, apperror.NotFound(http.StatusNotFound, msgDeleteNotFound)
	}
	return id, nil
}
