package models

import (
	"time"
)

type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	Title       string    `gorm:"not null;index" json:"title" example:"Avatar"`
	Rating      float64   `gorm:"type:decimal(3,1)" json:"rating" example:"7.9"`
	Awards      int       `json:"awards" example:"3"`
	ReleaseDate string    `gorm:"index" json:"release_date" example:"2010-10-04"`
	Length      int       `json:"length" example:"120"`
	GenreID     *uint     `gorm:"index" json:"genre_id" example:"5"`
	PosterPath  string    `json:"poster_path,omitempty" example:"https://storage.example.com/posters/avatar_1a2b3c4d.jpg"`
	Genre       *Genre    `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	Actors      []Actor   `gorm:"many2many:actor_movie;" json:"actors"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieInput carries the scalar fields of a new movie.
type MovieInput struct {
	Title       string  `json:"title" example:"Avatar"`
	Rating      float64 `json:"rating" example:"7.9"`
	Awards      int     `json:"awards" example:"3"`
	ReleaseDate string  `json:"release_date" example:"2010-10-04"`
	Length      int     `json:"length" example:"120"`
	GenreID     *uint   `json:"genre_id" example:"5"`
	PosterPath  string  `json:"poster_path" example:""`
}

// MoviePatch is a partial update. A nil field was not sent by the caller.
type MoviePatch struct {
	Title       *string  `json:"title"`
	Rating      *float64 `json:"rating"`
	Awards      *int     `json:"awards"`
	ReleaseDate *string  `json:"release_date"`
	Length      *int     `json:"length"`
	GenreID     *uint    `json:"genre_id"`
	PosterPath  *string  `json:"poster_path"`
	Actors      []uint   `json:"actors"`
}

type MovieList struct {
	Movies []Movie `json:"movies"`
	Count  int64   `json:"count" example:"42"`
}
