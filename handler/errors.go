package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/tds-renamer/dto"
)

func mapErrorToHTTPStatus(err error) (int, string) {
	switch {
	case dto.IsKind(err, dto.ErrMissingColumns):
		return http.StatusUnprocessableEntity, "MISSING_COLUMNS"
	case dto.IsKind(err, dto.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"
	case dto.IsKind(err, dto.ErrEmptyBatch), dto.IsKind(err, dto.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, "CANCELLED"
	default:
		return http.StatusInternalServerError, "RENAME_FAILED"
	}
}

// sendError sends a structured error response
func sendError(c *gin.Context, logger *slog.Logger, message string, err error) {
	statusCode, code := mapErrorToHTTPStatus(err)

	attrs := []any{"request_id", requestIDFrom(c), "status", statusCode, "error", err}
	if statusCode >= http.StatusInternalServerError {
		logger.Error(message, attrs...)
	} else {
		logger.Warn(message, attrs...)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: err.Error(),
		Code:    statusCode,
	})
}
