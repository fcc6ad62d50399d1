package utils

import (
	"errors"

	"movie-catalog/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// StandardResponse represents the standard API response format
type StandardResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// PaginationMeta describes one limit/offset page of a listing.
type PaginationMeta struct {
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// SuccessWithMetaResponse sends a success response with pagination meta
func SuccessWithMetaResponse(c *fiber.Ctx, code int, message string, data interface{}, meta interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// AppErrorResponse writes err using the status and message it carries.
// Errors that are not *apperror.Error are reported as 500 with fallback.
func AppErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Normalize(err, fallback)
	}
	return ErrorResponse(c, appErr.Status, appErr.Message)
}

// CreatePaginationMeta creates pagination metadata. A limit <= 0 means the
// page holds every remaining row.
func CreatePaginationMeta(limit, offset int, total int64) PaginationMeta {
	hasNext := false
	if limit > 0 {
		hasNext = int64(offset+limit) < total
	}

	return PaginationMeta{
		Limit:   limit,
		Offset:  offset,
		Total:   total,
		HasNext: hasNext,
	}
}
