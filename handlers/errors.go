package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"oh-crepe-api/middleware"
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError converts a service error into the error envelope. Anything
// unclassified is logged and reported as a 500 with fallback as the message.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	var (
		notFound    *services.NotFoundError
		invalid     *services.InvalidInputError
		missing     *services.MissingItemsError
		unavailable *services.UnavailableItemsError
	)

	switch {
	case errors.As(err, &invalid):
		resp.ValidationFailed(c, []resp.FieldError{{Field: invalid.Field, Message: invalid.Message}})
	case errors.As(err, &missing):
		details := make([]resp.FieldError, len(missing.IDs))
		for i, id := range missing.IDs {
			details[i] = resp.FieldError{Field: "items", Message: fmt.Sprintf("Menu item %d does not exist", id)}
		}
		resp.Error(c, http.StatusBadRequest, "Invalid menu items", "One or more menu items do not exist", details)
	case errors.As(err, &unavailable):
		details := make([]resp.FieldError, len(unavailable.Names))
		for i, name := range unavailable.Names {
			details[i] = resp.FieldError{Field: "items", Message: name + " is currently unavailable"}
		}
		resp.ErrorWith(c, http.StatusBadRequest, "Items unavailable", unavailable.Error(), details,
			gin.H{"unavailableItems": unavailable.Names})
	case errors.As(err, &notFound):
		resp.Error(c, http.StatusNotFound, notFound.Resource+" not found", notFound.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, "Invalid credentials", "Email or password is incorrect")
	case errors.Is(err, services.ErrEmailTaken):
		resp.Conflict(c, "User already exists", "An account with this email already exists")
	case errors.Is(err, services.ErrUserHasOrders):
		resp.Conflict(c, "User has orders", "This user has placed orders and cannot be deleted")
	case errors.Is(err, services.ErrSelfRoleChange):
		resp.BadRequest(c, "Cannot modify own role", "You cannot change your own role")
	case errors.Is(err, services.ErrSelfDelete):
		resp.BadRequest(c, "Cannot delete own account", "You cannot delete your own account")
	case errors.Is(err, services.ErrNoFields):
		resp.BadRequest(c, "No valid fields to update", "At least one valid field must be provided for update")
	default:
		log.Error(fallback,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		_ = c.Error(err)
		resp.ServerError(c, fallback)
	}
}
