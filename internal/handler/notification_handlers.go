package handler

import (
	"net/http"
	"strconv"

	"github.com/taskit-app/taskit/internal/handler/dto"
	"github.com/taskit-app/taskit/internal/middleware"
)

const recentNotificationsLimit = 5

// handleListNotifications returns every notification for the caller, newest first.
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} dto.NotificationResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	notifications, err := h.notificationService.ListAll(ctx, user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToNotificationResponses(notifications))
}

// handleRecentNotifications returns the latest few notifications for the caller.
// @Summary Recent notifications
// @Description Returns the most recent notifications, for the dashboard bell. Defaults to five.
// @Tags notifications
// @Produce json
// @Param limit query int false "Maximum number of notifications"
// @Success 200 {array} dto.NotificationResponse
// @Security BearerAuth
// @Router /notifications/recent [get]
func (h *Handler) handleRecentNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	limit := recentNotificationsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
			return
		}
		limit = n
	}

	notifications, err := h.notificationService.Recent(ctx, user.ID, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToNotificationResponses(notifications))
}

// handleUnreadCount returns the caller's unread notification count.
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	count, err := h.notificationService.UnreadCount(ctx, user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// handleMarkRead marks one of the caller's notifications as read.
// @Summary Mark a notification read
// @Description Marks the notification read. Repeating the call is a no-op.
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	notificationID, ok := extractID(w, r)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(ctx, notificationID, user.ID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleMarkAllRead marks every unread notification of the caller as read.
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.MarkAllReadResponse
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *Handler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	marked, err := h.notificationService.MarkAllRead(ctx, user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.MarkAllReadResponse{Marked: marked})
}
