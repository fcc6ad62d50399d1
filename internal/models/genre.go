package models

type Genre struct {
	ID     uint    `gorm:"primaryKey" json:"id" example:"5"`
	Name   string  `gorm:"not null;index" json:"name" example:"Drama"`
	Movies []Movie `gorm:"foreignKey:GenreID" json:"movies,omitempty"`
}

func (Genre) TableName() string {
	return "genres"
}

type GenreList struct {
	Genres []Genre `json:"genres"`
}
