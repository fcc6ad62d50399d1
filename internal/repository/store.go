package repository

import (
	"context"
	"time"

	"movie-catalog/internal/database"

	"gorm.io/gorm"
)

// Store groups the catalog repositories. Repositories obtained from the tx
// argument of Transaction run on that transaction.
type Store interface {
	Movies() MovieRepository
	Genres() GenreRepository
	Actors() ActorRepository
	ActorMovies() ActorMovieRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewStore(db *database.Database) Store {
	return NewGormStore(db.DB, db.QueryTimeout())
}

func NewGormStore(db *gorm.DB, timeout time.Duration) Store {
	return &store{
		db:      db,
		timeout: timeout,
	}
}

func (s *store) Movies() MovieRepository {
	return &movieRepository{base{db: s.db, timeout: s.timeout}}
}

func (s *store) Genres() GenreRepository {
	return &genreRepository{base{db: s.db, timeout: s.timeout}}
}

func (s *store) Actors() ActorRepository {
	return &actorRepository{base{db: s.db, timeout: s.timeout}}
}

func (s *store) ActorMovies() ActorMovieRepository {
	return &actorMovieRepository{base{db: s.db, timeout: s.timeout}}
}

// Transaction commits when fn returns nil and rolls back on error or panic.
func (s *store) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx, s.timeout))
	})
}

type base struct {
	db      *gorm.DB
	timeout time.Duration
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}
