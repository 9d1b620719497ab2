package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tascly-backend/logging"
	"tascly-backend/middleware"
	"tascly-backend/models"
	"tascly-backend/services"
)

// TaskHandler exposes the task endpoints, including the bulk commit of
// AI-generated drafts.
type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// writeTaskError maps the shared lookup and permission failures; anything
// else falls through to a 500 with the given message.
func writeTaskError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		writeError(w, http.StatusNotFound, "Task not found", "")
	case errors.Is(err, services.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "Project not found", "")
	case errors.Is(err, services.ErrNotAllowed):
		writeError(w, http.StatusForbidden, "You do not have permission to perform this action", "")
	default:
		writeError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

type bulkCreateRequest struct {
	Tasks     []models.DraftTask `json:"tasks"`
	ProjectID string             `json:"projectId"`
}

// BulkCreateTasks handles POST /api/tasks/bulk: the approved draft batch
// becomes persisted tasks in one all-or-nothing commit. The creator comes
// from the JWT identity, never from the body, and must own or manage the
// project.
func (h *TaskHandler) BulkCreateTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	var req bulkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format", err.Error())
		return
	}

	created, err := h.tasks.CommitDrafts(r.Context(), req.Tasks, projectID, userID)
	if err != nil {
		var commitErr *services.BulkCommitError
		switch {
		case errors.Is(err, services.ErrEmptyDraftBatch):
			writeError(w, http.StatusBadRequest, "No tasks provided", "")
		case errors.Is(err, services.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "Project not found", "")
		case errors.Is(err, services.ErrNotAllowed):
			writeError(w, http.StatusForbidden, "Only the project owner or a manager can create tasks", "")
		case errors.As(err, &commitErr):
			writeError(w, http.StatusInternalServerError, "Failed to create tasks. Please try again.", err.Error())
		default:
			logging.Logger.Errorf("Event ID: BULK_CREATE_FAILED, Description: Bulk task creation failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create tasks. Please try again.", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetMyTasks handles GET /api/tasks: tasks the caller created or is assigned
// to, newest first.
func (h *TaskHandler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	tasks, err := h.tasks.GetMyTasks(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve tasks", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// GetTasksByProjectID handles GET /api/tasks/project/{projectId}. The caller
// must be the project owner or on the roster.
func (h *TaskHandler) GetTasksByProjectID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(mux.Vars(r)["projectId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format", err.Error())
		return
	}

	tasks, err := h.tasks.GetTasksByProject(r.Context(), projectID, userID)
	if err != nil {
		writeTaskError(w, err, "Failed to retrieve tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// GetDailyTasks handles GET /api/tasks/daily/{date}.
func (h *TaskHandler) GetDailyTasks(w http.ResponseWriter, r *http.Request) {
	h.plannerTasks(w, r, h.tasks.GetDailyTasks)
}

// GetWeeklyTasks handles GET /api/tasks/weekly/{date}.
func (h *TaskHandler) GetWeeklyTasks(w http.ResponseWriter, r *http.Request) {
	h.plannerTasks(w, r, h.tasks.GetWeeklyTasks)
}

func (h *TaskHandler) plannerTasks(w http.ResponseWriter, r *http.Request, query func(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]models.Task, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	date, err := time.Parse("2006-01-02", mux.Vars(r)["date"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", err.Error())
		return
	}

	tasks, err := query(r.Context(), userID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve tasks", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

type scheduleUpdateRequest struct {
	ScheduledStart *time.Time `json:"scheduledStart"`
	ScheduledEnd   *time.Time `json:"scheduledEnd"`
}

// UpdateTaskSchedule handles PATCH /api/tasks/{id}/schedule. The caller must
// be the project owner, a manager, or the assignee.
func (h *TaskHandler) UpdateTaskSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID format", err.Error())
		return
	}

	var req scheduleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	task, err := h.tasks.UpdateTaskSchedule(r.Context(), taskID, userID, req.ScheduledStart, req.ScheduledEnd)
	if err != nil {
		writeTaskError(w, err, "Failed to update task schedule")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

type statusUpdateRequest struct {
	Status models.TaskStatus `json:"status"`
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status. The caller must be
// the project owner, a manager, or the assignee.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID format", err.Error())
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if !req.Status.IsValid() {
		writeError(w, http.StatusBadRequest, "Invalid task status", string(req.Status))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(r.Context(), taskID, userID, req.Status)
	if err != nil {
		writeTaskError(w, err, "Failed to update task status")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}. Only the project owner or a
// manager may delete.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID format", err.Error())
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), taskID, userID); err != nil {
		writeTaskError(w, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
