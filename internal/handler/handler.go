package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/taskit-app/taskit/docs" // Import generated docs
	"github.com/taskit-app/taskit/internal/config"
	"github.com/taskit-app/taskit/internal/handler/dto"
	"github.com/taskit-app/taskit/internal/middleware"
	"github.com/taskit-app/taskit/internal/repository"
	"github.com/taskit-app/taskit/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool                *pgxpool.Pool
	taskService         *service.TaskService
	notificationService *service.NotificationService
	dashboardService    *service.DashboardService
	authMiddleware      *middleware.AuthMiddleware
	validate            *validator.Validate
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, cfg *config.Config) *Handler {
	taskRepo := repository.NewTaskRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	notificationService := service.NewNotificationService(notificationRepo)
	taskService := service.NewTaskService(
		taskRepo,
		notificationService,
		service.NewValidator(userRepo),
		cfg.Tasks,
		nil,
	)
	dashboardService := service.NewDashboardService(taskRepo, notificationRepo, nil)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, userRepo)

	// Report validation failures under the JSON field names clients sent.
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		pool:                pool,
		taskService:         taskService,
		notificationService: notificationService,
		dashboardService:    dashboardService,
		authMiddleware:      authMiddleware,
		validate:            validate,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API v1 routes with authentication
	auth := h.authMiddleware.Authenticate

	mux.Handle("GET /api/v1/tasks", auth(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("POST /api/v1/tasks", auth(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("GET /api/v1/tasks/{id}", auth(http.HandlerFunc(h.handleGetTask)))
	mux.Handle("PUT /api/v1/tasks/{id}", auth(http.HandlerFunc(h.handleUpdateTask)))
	mux.Handle("DELETE /api/v1/tasks/{id}", auth(http.HandlerFunc(h.handleDeleteTask)))

	mux.Handle("GET /api/v1/dashboard", auth(http.HandlerFunc(h.handleDashboard)))

	mux.Handle("GET /api/v1/notifications", auth(http.HandlerFunc(h.handleListNotifications)))
	mux.Handle("GET /api/v1/notifications/recent", auth(http.HandlerFunc(h.handleRecentNotifications)))
	mux.Handle("GET /api/v1/notifications/unread-count", auth(http.HandlerFunc(h.handleUnreadCount)))
	mux.Handle("POST /api/v1/notifications/{id}/read", auth(http.HandlerFunc(h.handleMarkRead)))
	mux.Handle("POST /api/v1/notifications/read-all", auth(http.HandlerFunc(h.handleMarkAllRead)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Ping(r.Context()); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes the result.
func respondDomainError(w http.ResponseWriter, err error) {
	status, body := dto.MapDomainError(err)
	respondJSON(w, status, body)
}

// extractID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id must be a valid UUID")
		return "", false
	}

	return id, true
}

// checkRequest runs struct tag validation on a decoded request body and
// responds with field-level detail on failure. Returns false when the
// request was rejected.
func (h *Handler) checkRequest(w http.ResponseWriter, req interface{}) bool {
	err := h.validate.Struct(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return false
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	respondJSON(w, http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(fields))
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "cannot exceed " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "invalid value"
	}
}
