package adaptor

import (
	"context"
	"errors"
	"net/http"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var persistErr *entity.PersistenceError

	switch {
	case errors.Is(err, entity.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrNotBookingOwner):
		log.Warn(operation+" failed - not the owner", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, entity.ErrInvalidStatus):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrNoRestaurants),
		errors.Is(err, entity.ErrInvalidChoice),
		errors.Is(err, entity.ErrUnexpectedEvent):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &persistErr), errors.Is(err, context.DeadlineExceeded):
		log.Error(operation+" failed - store unavailable", zap.Error(err))
		utils.ResponseUnavailable(w, "Service temporarily unavailable", nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
