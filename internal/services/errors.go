package services

import (
	"net/http"

	"movie-catalog/internal/apperror"

	"github.com/sirupsen/logrus"
)

const (
	fallbackServiceError = "ERROR en servicio"
	fallbackMutateError  = "upss, error"

	msgMissingID      = "ID inexistente"
	msgMovieNotFound  = "No hay una pelicula con ese ID"
	msgUpdateNotFound = "No hay una película con ese ID"
	msgCorruptID      = "Id corrupto"
	msgDeleteNotFound = "No hay una peliculas con ese Id"
)

// fail normalizes err, logs it and returns it. The result is never nil.
func fail(logger *logrus.Logger, operation, fallback string, err error, fields logrus.Fields) error {
	appErr := apperror.Normalize(err, fallback)

	entry := logger.WithError(err).WithFields(fields).WithFields(logrus.Fields{
		"operation": operation,
		"kind":      appErr.Kind,
		"status":    appErr.Status,
	})
	if appErr.Status >= http.StatusInternalServerError {
		entry.Error(appErr.Message)
	} else {
		entry.Warn(appErr.Message)
	}
	return appErr
}
