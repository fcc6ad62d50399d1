package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	store  Store
	db     *gorm.DB
	drama  models.Genre
	action models.Genre
	movies map[string]*models.Movie
	actors map[string]*models.Actor
}

func setupTestStore(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	f := &fixture{
		store:  NewGormStore(db, 5*time.Second),
		db:     db,
		drama:  models.Genre{Name: "Drama"},
		action: models.Genre{Name: "Accion"},
		movies: map[string]*models.Movie{},
		actors: map[string]*models.Actor{},
	}
	require.NoError(t, db.Create(&f.drama).Error)
	require.NoError(t, db.Create(&f.action).Error)

	for _, a := range []struct{ key, first, last string }{
		{"tom", "Tom", "Hanks"},
		{"tim", "Tim", "Allen"},
		{"keanu", "Keanu", "Reeves"},
	} {
		actor := &models.Actor{FirstName: a.first, LastName: a.last}
		require.NoError(t, db.Create(actor).Error)
		f.actors[a.key] = actor
	}

	for _, m := range []struct {
		key     string
		title   string
		genreID uint
		actors  []string
	}{
		{"toy1", "Toy Story", f.drama.ID, []string{"tom", "tim"}},
		{"toy2", "Toy Story 2", f.drama.ID, []string{"tom"}},
		{"matrix", "The Matrix", f.action.ID, []string{"keanu"}},
		{"avatar", "Avatar", f.action.ID, nil},
	} {
		genreID := m.genreID
		movie := &models.Movie{Title: m.title, Rating: 7.5, Awards: 1, Length: 100, ReleaseDate: "1999-01-01", GenreID: &genreID}
		require.NoError(t, db.Omit("Actors", "Genre").Create(movie).Error)
		for _, key := range m.actors {
			require.NoError(t, db.Create(&models.ActorMovie{MovieID: movie.ID, ActorID: f.actors[key].ID}).Error)
		}
		f.movies[m.key] = movie
	}

	return f
}

func actorIDs(actors []models.Actor) []uint {
	ids := make([]uint, 0, len(actors))
	for _, a := range actors {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestGenreRepository_FindAllOrdersByName(t *testing.T) {
	f := setupTestStore(t)

	genres, err := f.store.Genres().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Accion", genres[0].Name)
	assert.Equal(t, "Drama", genres[1].Name)
}

func TestMovieRepository_FindAll(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		filter     MovieFilter
		wantTitles []string
	}{
		{
			name:       "no filter returns every movie by id",
			filter:     MovieFilter{},
			wantTitles: []string{"Toy Story", "Toy Story 2", "The Matrix", "Avatar"},
		},
		{
			name:       "keyword filters by title substring",
			filter:     MovieFilter{Keyword: "Story"},
			wantTitles: []string{"Toy Story", "Toy Story 2"},
		},
		{
			name:       "limit and offset page the filtered set",
			filter:     MovieFilter{Keyword: "Story", Limit: 1, Offset: 1},
			wantTitles: []string{"Toy Story 2"},
		},
		{
			name:       "offset past the end is empty",
			filter:     MovieFilter{Limit: 10, Offset: 10},
			wantTitles: []string{},
		},
		{
			name:       "keyword without match",
			filter:     MovieFilter{Keyword: "Godfather"},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := f.store.Movies().FindAll(ctx, tt.filter)
			require.NoError(t, err)

			titles := []string{}
			for _, m := range movies {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestMovieRepository_KeywordIsLiteral(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"100% Wolf", "Up_Town", `C:\Movies`} {
		require.NoError(t, f.db.Omit("Actors", "Genre").Create(&models.Movie{Title: title}).Error)
	}

	tests := []struct {
		name       string
		keyword    string
		wantTitles []string
	}{
		{name: "percent", keyword: "%", wantTitles: []string{"100% Wolf"}},
		{name: "percent inside word", keyword: "0% W", wantTitles: []string{"100% Wolf"}},
		{name: "underscore", keyword: "_", wantTitles: []string{"Up_Town"}},
		{name: "underscore does not match any char", keyword: "Toy_Story", wantTitles: []string{}},
		{name: "backslash", keyword: `\`, wantTitles: []string{`C:\Movies`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := f.store.Movies().FindAll(ctx, MovieFilter{Keyword: tt.keyword})
			require.NoError(t, err)

			titles := []string{}
			for _, m := range movies {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)

			count, err := f.store.Movies().Count(ctx, tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.wantTitles)), count)
		})
	}
}

func TestMovieRepository_CountIgnoresPagination(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()

	total, err := f.store.Movies().Count(ctx, "Story")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	total, err = f.store.Movies().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestMovieRepository_FindByIDProjection(t *testing.T) {
	f := setupTestStore(t)
	favorite := f.movies["toy1"].ID
	require.NoError(t, f.db.Model(f.actors["tom"]).Update("favorite_movie_id", favorite).Error)

	movie, err := f.store.Movies().FindByID(context.Background(), f.movies["toy1"].ID)
	require.NoError(t, err)
	require.NotNil(t, movie)

	assert.Equal(t, "Toy Story", movie.Title)
	assert.True(t, movie.CreatedAt.IsZero())
	require.NotNil(t, movie.Genre)
	assert.Equal(t, f.drama.ID, movie.Genre.ID)
	assert.Equal(t, "Drama", movie.Genre.Name)

	require.Len(t, movie.Actors, 2)
	assert.ElementsMatch(t, []uint{f.actors["tom"].ID, f.actors["tim"].ID}, actorIDs(movie.Actors))
	for _, a := range movie.Actors {
		assert.NotEmpty(t, a.FirstName)
		assert.NotEmpty(t, a.LastName)
		assert.Nil(t, a.FavoriteMovieID)
	}
}

func TestMovieRepository_FindByIDMissing(t *testing.T) {
	f := setupTestStore(t)

	movie, err := f.store.Movies().FindByID(context.Background(), 9999)
	assert.NoError(t, err)
	assert.Nil(t, movie)

	movie, err = f.store.Movies().Get(context.Background(), 9999)
	assert.NoError(t, err)
	assert.Nil(t, movie)
}

func TestMovieRepository_UpdateWritesScalars(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()

	movie, err := f.store.Movies().Get(ctx, f.movies["avatar"].ID)
	require.NoError(t, err)
	require.NotNil(t, movie)
	createdAt := movie.CreatedAt

	movie.Title = "Avatar: Extended"
	movie.Rating = 0
	movie.GenreID = &f.drama.ID
	require.NoError(t, f.store.Movies().Update(ctx, movie))

	reloaded, err := f.store.Movies().Get(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Avatar: Extended", reloaded.Title)
	assert.Equal(t, float64(0), reloaded.Rating)
	require.NotNil(t, reloaded.GenreID)
	assert.Equal(t, f.drama.ID, *reloaded.GenreID)
	assert.WithinDuration(t, createdAt, reloaded.CreatedAt, time.Second)
}

func TestActorMovieRepository_CreateLinksRejectsWholeBatch(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	movieID := f.movies["avatar"].ID

	err := f.store.ActorMovies().CreateLinks(ctx, movieID, []uint{f.actors["tom"].ID, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidActorLink)

	links, err := f.store.ActorMovies().FindByMovie(ctx, movieID)
	require.NoError(t, err)
	assert.Empty(t, links)

	require.NoError(t, f.store.ActorMovies().CreateLinks(ctx, movieID, []uint{f.actors["tom"].ID, f.actors["keanu"].ID}))
	links, err = f.store.ActorMovies().FindByMovie(ctx, movieID)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestCascadeOperations(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	movieID := f.movies["toy1"].ID
	require.NoError(t, f.db.Model(f.actors["tim"]).Update("favorite_movie_id", movieID).Error)

	removed, err := f.store.ActorMovies().DeleteByMovie(ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	cleared, err := f.store.Actors().ClearFavoriteMovie(ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	require.NoError(t, f.store.Movies().Delete(ctx, movieID))

	movie, err := f.store.Movies().Get(ctx, movieID)
	require.NoError(t, err)
	assert.Nil(t, movie)

	var tim models.Actor
	require.NoError(t, f.db.First(&tim, f.actors["tim"].ID).Error)
	assert.Nil(t, tim.FavoriteMovieID)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	var createdID uint
	err := f.store.Transaction(ctx, func(tx Store) error {
		movie := &models.Movie{Title: "Ghost"}
		if err := tx.Movies().Create(ctx, movie); err != nil {
			return err
		}
		createdID = movie.ID
		if err := tx.ActorMovies().CreateLinks(ctx, movie.ID, []uint{f.actors["tom"].ID}); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	require.NotZero(t, createdID)

	movie, err := f.store.Movies().Get(ctx, createdID)
	require.NoError(t, err)
	assert.Nil(t, movie)

	links, err := f.store.ActorMovies().FindByMovie(ctx, createdID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestStore_TransactionCommits(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()

	var created *models.Movie
	err := f.store.Transaction(ctx, func(tx Store) error {
		created = &models.Movie{Title: "Heat", GenreID: &f.action.ID}
		if err := tx.Movies().Create(ctx, created); err != nil {
			return err
		}
		return tx.ActorMovies().CreateLinks(ctx, created.ID, []uint{f.actors["keanu"].ID})
	})
	require.NoError(t, err)

	movie, err := f.store.Movies().FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.Equal(t, []uint{f.actors["keanu"].ID}, actorIDs(movie.Actors))
}
