package handlers

import "movie-catalog/internal/models"

// MovieRequest is the body of POST /movies.
type MovieRequest struct {
	models.MovieInput
	Actors []uint `json:"actors" example:"1,2"`
}

// MovieUpdateRequest is the body of PUT /movies/{id}. Omitted or zero fields
// keep their stored value; a non-empty actors list replaces the cast.
type MovieUpdateRequest struct {
	Title       *string  `json:"title" example:"Avatar"`
	Rating      *float64 `json:"rating" example:"8.1"`
	Awards      *int     `json:"awards" example:"4"`
	ReleaseDate *string  `json:"release_date" example:"2010-10-04"`
	Length      *int     `json:"length" example:"162"`
	GenreID     *uint    `json:"genre_id" example:"5"`
	PosterPath  *string  `json:"poster_path" example:""`
	Actors      []uint   `json:"actors" example:"1,2"`
}

func (r MovieUpdateRequest) toPatch() models.MoviePatch {
	return models.MoviePatch{
		Title:       r.Title,
		Rating:      r.Rating,
		Awards:      r.Awards,
		ReleaseDate: r.ReleaseDate,
		Length:      r.Length,
		GenreID:     r.GenreID,
		PosterPath:  r.PosterPath,
		Actors:      r.Actors,
	}
}

// PresignResponse is returned by GET /upload/presign.
type PresignResponse struct {
	PresignedURL string `json:"presigned_url"`
	PublicURL    string `json:"public_url"`
}
