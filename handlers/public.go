package handlers

import (
	"context"
	"net/http"

	"oh-crepe-api/models"
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/statemachine"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "Oh Crêpe! Ordering API"
	serviceVersion = "1.0.0"
)

type PublicHandler struct {
	ping func(ctx context.Context) error
}

// NewPublicHandler takes the database ping used by the health check.
func NewPublicHandler(ping func(ctx context.Context) error) *PublicHandler {
	return &PublicHandler{ping: ping}
}

// Health reports whether the service and its database are reachable.
func (h *PublicHandler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	database := "up"
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			status, code, database = "degraded", http.StatusServiceUnavailable, "down"
		}
	}
	c.JSON(code, gin.H{
		"status":   status,
		"service":  serviceName,
		"version":  serviceVersion,
		"database": database,
	})
}

func (h *PublicHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the " + serviceName,
		"docs":    "/api/orders/state-machine",
		"health":  "/health",
		"roles":   []models.UserRole{models.RoleCustomer, models.RoleStaff, models.RoleAdmin},
	})
}

// StateMachine returns the order lifecycle for informational purposes
func (h *PublicHandler) StateMachine(c *gin.Context) {
	resp.OK(c, "Order state machine", statemachine.Info())
}

func (h *PublicHandler) NotFound(c *gin.Context) {
	resp.NotFound(c, "Route "+c.Request.Method+" "+c.Request.URL.Path+" does not exist")
}
