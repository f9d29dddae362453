package adaptor

import (
	"errors"
	"net/http"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses. Sentinels carry the
// status; anything unrecognized is a 500 with a generic message so internal
// detail never leaks.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrMovieNotFound),
		errors.Is(err, entity.ErrShowtimeNotFound),
		errors.Is(err, entity.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrInsufficientSeats),
		errors.Is(err, entity.ErrDuplicateUsername),
		errors.Is(err, entity.ErrDuplicateEmail):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrInvalidCredentials):
		log.Warn(operation+" failed - bad credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, entity.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, entity.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
