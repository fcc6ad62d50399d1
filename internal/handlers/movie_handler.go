package handlers

import (
	"strconv"

	"movie-catalog/internal/config"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service    services.MovieService
	pagination config.PaginationConfig
	logger     *logrus.Logger
}

func NewMovieHandler(service services.MovieService, pagination config.PaginationConfig, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service:    service,
		pagination: pagination,
		logger:     logger,
	}
}

// ListMovies godoc
// @Summary List movies
// @Description Get a page of movies, optionally filtered by a title substring
// @Tags movies
// @Accept json
// @Produce json
// @Param limit query int false "Items per page" default(10)
// @Param offset query int false "Rows to skip" default(0)
// @Param keyword query string false "Title substring"
// @Success 200 {object} utils.StandardResponse{data=models.MovieList,meta=utils.PaginationMeta} "List of movies"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) ListMovies(c *fiber.Ctx) error {
	limit, offset := h.pageParams(c)
	keyword := c.Query("keyword", "")

	movies, err := h.service.ListMovies(c.Context(), limit, offset, keyword)
	if err != nil {
		return utils.AppErrorResponse(c, err, "ERROR en servicio")
	}

	meta := utils.CreatePaginationMeta(limit, offset, movies.Count)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies, meta)
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a single movie with its genre and actors
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse{data=models.Movie} "Movie details"
// @Failure 400 {object} utils.StandardResponse "Invalid or unknown movie ID"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	movie, err := h.service.GetMovieByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "ERROR en servicio")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully", movie)
}

// CreateMovie godoc
// @Summary Create a new movie
// @Description Create a movie and link it to the given actors
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie request object"
// @Success 201 {object} utils.StandardResponse{data=models.Movie} "Movie created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *fiber.Ctx) error {
	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("Invalid movie body")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	movie, err := h.service.CreateMovie(c.Context(), req.MovieInput, req.Actors)
	if err != nil {
		return utils.AppErrorResponse(c, err, "ERROR en servicio")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie created successfully", movie)
}

// UpdateMovie godoc
// @Summary Update a movie
// @Description Overwrite the non-empty fields of a movie and optionally replace its actors
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieUpdateRequest true "Fields to change"
// @Success 200 {object} utils.StandardResponse{data=models.Movie} "Movie updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request or unknown movie ID"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	var req MovieUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("Invalid movie body")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	movie, err := h.service.UpdateMovie(c.Context(), c.Params("id"), req.toPatch())
	if err != nil {
		return utils.AppErrorResponse(c, err, "upss, error")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie updated successfully", movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Delete a movie, its actor links and actor favorites pointing at it
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Corrupt or unknown movie ID"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	if err := h.service.DeleteMovie(c.Context(), c.Params("id")); err != nil {
		return utils.AppErrorResponse(c, err, "upss, error")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie deleted successfully", nil)
}

// pageParams reads limit and offset, falling back to the configured default
// limit and capping it at the configured maximum.
func (h *MovieHandler) pageParams(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = h.pagination.DefaultLimit
	}
	if h.pagination.MaxLimit > 0 && limit > h.pagination.MaxLimit {
		limit = h.pagination.MaxLimit
	}

	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
