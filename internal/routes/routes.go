package routes

import (
	"movie-catalog/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

// Setup registers the catalog API. uploadHandler may be nil when poster
// storage is disabled.
func Setup(app *fiber.App, genreHandler *handlers.GenreHandler, movieHandler *handlers.MovieHandler, uploadHandler *handlers.UploadHandler) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	genres := v1.Group("/genres")
	{
		genres.Get("/", genreHandler.ListGenres)
	}

	// Movie routes - CRUD operations
	movies := v1.Group("/movies")
	{
		movies.Get("/", movieHandler.ListMovies)
		movies.Get("/:id", movieHandler.GetMovieByID)
		movies.Post("/", movieHandler.CreateMovie)
		movies.Put("/:id", movieHandler.UpdateMovie)
		movies.Delete("/:id", movieHandler.DeleteMovie)
	}

	if uploadHandler != nil {
		upload := v1.Group("/upload")
		{
			upload.Get("/presign", uploadHandler.GetPresignedURL)
		}
	}
}
