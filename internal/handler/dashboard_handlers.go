package handler

import (
	"net/http"
	"time"

	"github.com/taskit-app/taskit/internal/handler/dto"
	"github.com/taskit-app/taskit/internal/middleware"
)

// handleDashboard returns the caller's dashboard overview.
// @Summary Dashboard overview
// @Description Task statistics, recent tasks and recent notifications for the authenticated user, in one response.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	overview, err := h.dashboardService.GetOverview(ctx, user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToDashboardResponse(overview, time.Now()))
}
