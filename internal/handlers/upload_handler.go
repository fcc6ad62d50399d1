package handlers

import (
	"context"
	"strings"

	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PosterUploader hands out presigned upload URLs for poster images.
type PosterUploader interface {
	GeneratePresignedURL(ctx context.Context, filename, contentType string) (string, string, error)
}

type UploadHandler struct {
	uploader PosterUploader
	logger   *logrus.Logger
}

func NewUploadHandler(uploader PosterUploader, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for a poster upload
// @Description Generate a presigned PUT URL for uploading a poster image to MinIO
// @Tags upload
// @Accept json
// @Produce json
// @Param filename query string true "Filename"
// @Param contentType query string false "Content Type" default(image/jpeg)
// @Success 200 {object} utils.StandardResponse{data=PresignResponse}
// @Failure 400 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	contentType := c.Query("contentType", "image/jpeg")
	if !strings.HasPrefix(contentType, "image/") {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "contentType must be an image type")
	}

	presignedURL, publicURL, err := h.uploader.GeneratePresignedURL(c.Context(), filename, contentType)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate presigned URL")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", PresignResponse{
		PresignedURL: presignedURL,
		PublicURL:    publicURL,
	})
}
