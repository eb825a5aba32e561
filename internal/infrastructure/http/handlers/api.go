// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alchemorsel/menugen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/menugen/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool                 `json:"success"`
	Data    interface{}          `json:"data,omitempty"`
	Error   *errors.ErrorDetails `json:"error,omitempty"`
	Message string               `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func writeSuccess(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}, message string) {
	writeJSON(w, logger, status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// writeError renders err as an error envelope with the status of its code.
// Anything that is not an *errors.AppError becomes INTERNAL_ERROR.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "An unexpected error occurred")
	requestID := middleware.GetRequestID(r.Context())

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("code", string(appErr.Code)),
		zap.String("details", appErr.Details),
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.NamedError("cause", appErr.Cause))
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error(appErr.Message, fields...)
	} else {
		logger.Debug(appErr.Message, fields...)
	}

	details := errors.ToErrorResponse(appErr, requestID).Error
	writeJSON(w, logger, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   &details,
	})
}
