package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/handler/dto"
	"github.com/taskit-app/taskit/internal/middleware"
	"github.com/taskit-app/taskit/internal/service"
)

// decodeTaskRequest parses and validates a task request body.
// Returns (params, true) on success; the error response is already written otherwise.
func (h *Handler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (service.TaskParams, bool) {
	var req dto.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return service.TaskParams{}, false
	}

	if !h.checkRequest(w, &req) {
		return service.TaskParams{}, false
	}

	return service.TaskParams{
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.TaskPriority(req.Priority),
		DueDate:        req.DueDate,
		Category:       req.Category,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		AssignedToID:   req.AssignedToID,
	}, true
}

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a new task owned by the authenticated user. Assigning the task notifies the assignee.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.TaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	params, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Create(ctx, user.ID, params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task, time.Now()))
}

// handleGetTask retrieves a single task.
// @Summary Get task details
// @Description Get a task by id. Soft-deleted tasks are returned only with includeDeleted=true.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Param includeDeleted query bool false "Also return a soft-deleted task"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"

	task, err := h.taskService.Get(ctx, taskID, includeDeleted)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, time.Now()))
}

// handleUpdateTask applies a full update to a task.
// @Summary Update a task
// @Description Updates a task. Creator and creation time are preserved. Status and assignment changes notify the affected users.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.TaskRequest true "Task update request"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	params, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Update(ctx, taskID, params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task, time.Now()))
}

// handleDeleteTask soft-deletes a task.
// @Summary Delete a task
// @Description Marks a task deleted. Idempotent; the row is kept for audit.
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.SoftDelete(ctx, taskID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListTasks lists the caller's tasks.
// @Summary List tasks
// @Description Lists tasks assigned to or created by the authenticated user, with search, sort and pagination.
// @Tags tasks
// @Produce json
// @Param sortOrder query string false "Sort: title_desc, duedate, duedate_desc, status, status_desc, priority, priority_desc (default: title ascending)"
// @Param searchString query string false "Substring match over title, description and category"
// @Param pageNumber query int false "Page number, 1-indexed"
// @Param includeDeleted query bool false "Also return soft-deleted tasks"
// @Success 200 {object} dto.TaskPageResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()

	listQuery := dto.ListTasksQuery{
		SortOrder:      query.Get("sortOrder"),
		SearchString:   query.Get("searchString"),
		PageNumber:     1,
		IncludeDeleted: query.Get("includeDeleted") == "true",
	}
	if raw := query.Get("pageNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "pageNumber must be a positive integer")
			return
		}
		listQuery.PageNumber = n
	}

	page, err := h.taskService.List(ctx, user.ID, service.ListTasksParams{
		Search:         listQuery.SearchString,
		Sort:           domain.ParseTaskSort(listQuery.SortOrder),
		Page:           listQuery.PageNumber,
		IncludeDeleted: listQuery.IncludeDeleted,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskPageResponse(page, time.Now()))
}
