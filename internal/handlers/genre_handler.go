package handlers

import (
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GenreHandler struct {
	service services.GenreService
	logger  *logrus.Logger
}

func NewGenreHandler(service services.GenreService, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		logger:  logger,
	}
}

// ListGenres godoc
// @Summary List genres
// @Description Get every genre ordered by name
// @Tags genres
// @Accept json
// @Produce json
// @Success 200 {object} utils.StandardResponse{data=models.GenreList} "List of genres"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /genres [get]
func (h *GenreHandler) ListGenres(c *fiber.Ctx) error {
	genres, err := h.service.ListGenres(c.Context())
	if err != nil {
		return utils.AppErrorResponse(c, err, "ERROR en servicio")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Genres retrieved successfully", genres)
}
