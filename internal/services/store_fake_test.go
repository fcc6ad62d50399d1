package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
)

// memState is the whole fake database. Transactions work on a deep copy.
type memState struct {
	nextMovieID uint
	movies      map[uint]models.Movie
	genres      map[uint]models.Genre
	actors      map[uint]models.Actor
	links       map[models.ActorMovie]struct{}
}

func newMemState() *memState {
	return &memState{
		nextMovieID: 1,
		movies:      map[uint]models.Movie{},
		genres:      map[uint]models.Genre{},
		actors:      map[uint]models.Actor{},
		links:       map[models.ActorMovie]struct{}{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	c.nextMovieID = s.nextMovieID
	for k, v := range s.movies {
		c.movies[k] = v
	}
	for k, v := range s.genres {
		c.genres[k] = v
	}
	for k, v := range s.actors {
		if v.FavoriteMovieID != nil {
			fav := *v.FavoriteMovieID
			v.FavoriteMovieID = &fav
		}
		c.actors[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	return c
}

type fakeStore struct {
	state    *memState
	failures map[string]error
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		state:    newMemState(),
		failures: map[string]error{},
	}
}

func (s *fakeStore) failOn(op string, err error) {
	s.failures[op] = err
}

func (s *fakeStore) check(op string) error {
	return s.failures[op]
}

func (s *fakeStore) Movies() repository.MovieRepository           { return &fakeMovieRepo{s} }
func (s *fakeStore) Genres() repository.GenreRepository           { return &fakeGenreRepo{s} }
func (s *fakeStore) Actors() repository.ActorRepository           { return &fakeActorRepo{s} }
func (s *fakeStore) ActorMovies() repository.ActorMovieRepository { return &fakeActorMovieRepo{s} }

func (s *fakeStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := s.check("transaction"); err != nil {
		return err
	}
	tx := &fakeStore{state: s.state.clone(), failures: s.failures}
	if err := fn(tx); err != nil {
		return err
	}
	*s.state = *tx.state
	return nil
}

// seeding helpers

func (s *fakeStore) addGenre(id uint, name string) {
	s.state.genres[id] = models.Genre{ID: id, Name: name}
}

func (s *fakeStore) addActor(id uint, first, last string) {
	s.state.actors[id] = models.Actor{ID: id, FirstName: first, LastName: last}
}

func (s *fakeStore) setFavorite(actorID, movieID uint) {
	a := s.state.actors[actorID]
	a.FavoriteMovieID = &movieID
	s.state.actors[actorID] = a
}

func (s *fakeStore) addMovie(m models.Movie, actorIDs ...uint) uint {
	m.ID = s.state.nextMovieID
	s.state.nextMovieID++
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	s.state.movies[m.ID] = m
	for _, a := range actorIDs {
		s.state.links[models.ActorMovie{MovieID: m.ID, ActorID: a}] = struct{}{}
	}
	return m.ID
}

func (s *fakeStore) linkedActors(movieID uint) []uint {
	ids := []uint{}
	for l := range s.state.links {
		if l.MovieID == movieID {
			ids = append(ids, l.ActorID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// project mirrors the repository projection: genre {id, name}, actors
// {id, first_name, last_name}, no timestamps.
func (s *fakeStore) project(m models.Movie) models.Movie {
	m.CreatedAt = time.Time{}
	m.UpdatedAt = time.Time{}
	m.Genre = nil
	if m.GenreID != nil {
		if g, ok := s.state.genres[*m.GenreID]; ok {
			m.Genre = &models.Genre{ID: g.ID, Name: g.Name}
		}
	}
	m.Actors = []models.Actor{}
	for _, id := range s.linkedActors(m.ID) {
		a := s.state.actors[id]
		m.Actors = append(m.Actors, models.Actor{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName})
	}
	return m
}

type fakeMovieRepo struct{ s *fakeStore }

func (r *fakeMovieRepo) matching(keyword string) []models.Movie {
	movies := []models.Movie{}
	for _, m := range r.s.state.movies {
		if keyword == "" || strings.Contains(m.Title, keyword) {
			movies = append(movies, m)
		}
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies
}

func (r *fakeMovieRepo) FindAll(ctx context.Context, filter repository.MovieFilter) ([]models.Movie, error) {
	if err := r.s.check("movies.FindAll"); err != nil {
		return nil, err
	}
	movies := r.matching(filter.Keyword)
	if filter.Offset >= len(movies) {
		return []models.Movie{}, nil
	}
	movies = movies[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(movies) {
		movies = movies[:filter.Limit]
	}
	page := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		page = append(page, r.s.project(m))
	}
	return page, nil
}

func (r *fakeMovieRepo) Count(ctx context.Context, keyword string) (int64, error) {
	if err := r.s.check("movies.Count"); err != nil {
		return 0, err
	}
	return int64(len(r.matching(keyword))), nil
}

func (r *fakeMovieRepo) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	if err := r.s.check("movies.FindByID"); err != nil {
		return nil, err
	}
	m, ok := r.s.state.movies[id]
	if !ok {
		return nil, nil
	}
	projected := r.s.project(m)
	return &projected, nil
}

func (r *fakeMovieRepo) Get(ctx context.Context, id uint) (*models.Movie, error) {
	if err := r.s.check("movies.Get"); err != nil {
		return nil, err
	}
	m, ok := r.s.state.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *fakeMovieRepo) Create(ctx context.Context, movie *models.Movie) error {
	if err := r.s.check("movies.Create"); err != nil {
		return err
	}
	movie.ID = r.s.addMovie(*movie)
	return nil
}

func (r *fakeMovieRepo) Update(ctx context.Context, movie *models.Movie) error {
	if err := r.s.check("movies.Update"); err != nil {
		return err
	}
	stored, ok := r.s.state.movies[movie.ID]
	if !ok {
		return nil
	}
	stored.Title = movie.Title
	stored.Rating = movie.Rating
	stored.Awards = movie.Awards
	stored.ReleaseDate = movie.ReleaseDate
	stored.Length = movie.Length
	stored.GenreID = movie.GenreID
	stored.PosterPath = movie.PosterPath
	stored.UpdatedAt = time.Now()
	r.s.state.movies[movie.ID] = stored
	return nil
}

func (r *fakeMovieRepo) Delete(ctx context.Context, id uint) error {
	if err := r.s.check("movies.Delete"); err != nil {
		return err
	}
	delete(r.s.state.movies, id)
	return nil
}

type fakeGenreRepo struct{ s *fakeStore }

func (r *fakeGenreRepo) FindAll(ctx context.Context) ([]models.Genre, error) {
	if err := r.s.check("genres.FindAll"); err != nil {
		return nil, err
	}
	genres := []models.Genre{}
	for _, g := range r.s.state.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

type fakeActorRepo struct{ s *fakeStore }

func (r *fakeActorRepo) ClearFavoriteMovie(ctx context.Context, movieID uint) (int64, error) {
	if err := r.s.check("actors.ClearFavoriteMovie"); err != nil {
		return 0, err
	}
	var n int64
	for id, a := range r.s.state.actors {
		if a.FavoriteMovieID != nil && *a.FavoriteMovieID == movieID {
			a.FavoriteMovieID = nil
			r.s.state.actors[id] = a
			n++
		}
	}
	return n, nil
}

type fakeActorMovieRepo struct{ s *fakeStore }

func (r *fakeActorMovieRepo) CreateLinks(ctx context.Context, movieID uint, actorIDs []uint) error {
	if err := r.s.check("actor_movies.CreateLinks"); err != nil {
		return err
	}
	for i, actorID := range actorIDs {
		if movieID == 0 || actorID == 0 {
			return fmt.Errorf("actor_movie[%d]: %w", i, repository.ErrInvalidActorLink)
		}
		if _, ok := r.s.state.links[models.ActorMovie{MovieID: movieID, ActorID: actorID}]; ok {
			return errors.New("duplicate key value violates unique constraint \"actor_movie_pkey\"")
		}
	}
	for _, actorID := range actorIDs {
		r.s.state.links[models.ActorMovie{MovieID: movieID, ActorID: actorID}] = struct{}{}
	}
	return nil
}

func (r *fakeActorMovieRepo) DeleteByMovie(ctx context.Context, movieID uint) (int64, error) {
	if err := r.s.check("actor_movies.DeleteByMovie"); err != nil {
		return 0, err
	}
	var n int64
	for l := range r.s.state.links {
		if l.MovieID == movieID {
			delete(r.s.state.links, l)
			n++
		}
	}
	return n, nil
}

func (r *fakeActorMovieRepo) FindByMovie(ctx context.Context, movieID uint) ([]models.ActorMovie, error) {
	links := []models.ActorMovie{}
	for _, id := range r.s.linkedActors(movieID) {
		links = append(links, models.ActorMovie{MovieID: movieID, ActorID: id})
	}
	return links, nil
}
