package handlers

import (
	"hams-server/internal/dashboard"
	"hams-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the per-role summary.
type DashboardHandler struct {
	Builder *dashboard.Builder
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(b *dashboard.Builder) *DashboardHandler {
	return &DashboardHandler{Builder: b}
}

// GetDashboard returns the dashboard matching the actor's role.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	d, err := h.Builder.For(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, "Dashboard fetched successfully", d)
}
