package models

import "time"

type Actor struct {
	ID              uint      `gorm:"primaryKey" json:"id" example:"12"`
	FirstName       string    `gorm:"not null" json:"first_name" example:"Sigourney"`
	LastName        string    `gorm:"not null" json:"last_name" example:"Weaver"`
	FavoriteMovieID *uint     `gorm:"index" json:"favorite_movie_id,omitempty"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

func (Actor) TableName() string {
	return "actors"
}

// ActorMovie is the join row behind Movie.Actors. The pair is the whole identity.
type ActorMovie struct {
	MovieID uint `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	ActorID uint `gorm:"primaryKey;autoIncrement:false" json:"actor_id"`
}

func (ActorMovie) TableName() string {
	return "actor_movie"
}
