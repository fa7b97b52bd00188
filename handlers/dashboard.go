package handlers

import (
	"oh-crepe-api/pkg/resp"
	"oh-crepe-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	analytics *services.AnalyticsService
	log       *zap.Logger
}

func NewDashboardHandler(analytics *services.AnalyticsService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, log: log}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := h.analytics.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to build dashboard")
		return
	}
	resp.OK(c, "Dashboard retrieved successfully", d)
}
