package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/logging"
	"tascly-backend/models"
	"tascly-backend/services"
)

// AiHandler exposes the AI task-generation endpoint.
type AiHandler struct {
	aiTasks *services.AiTaskService
}

func NewAiHandler(aiTasks *services.AiTaskService) *AiHandler {
	return &AiHandler{aiTasks: aiTasks}
}

type generateTasksRequest struct {
	Prompt    string `json:"prompt"`
	ProjectID string `json:"projectId"`
	Mode      string `json:"mode"`
}

type generateTasksResponse struct {
	Tasks []models.DraftTask `json:"tasks"`
}

// GenerateTasks handles POST /api/ai/generate-tasks. Input validation runs
// before anything touches the provider.
func (h *AiHandler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	var req generateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format", err.Error())
		return
	}

	drafts, err := h.aiTasks.GenerateTasksFromPrompt(r.Context(), req.Prompt, projectID, req.Mode)
	if err != nil {
		h.writeGenerateError(w, err)
		return
	}

	if drafts == nil {
		drafts = []models.DraftTask{}
	}
	writeJSON(w, http.StatusOK, generateTasksResponse{Tasks: drafts})
}

func (h *AiHandler) writeGenerateError(w http.ResponseWriter, err error) {
	var providerErr *services.ProviderError
	var malformedErr *services.MalformedResponseError

	switch {
	case errors.Is(err, services.ErrEmptyPrompt):
		writeError(w, http.StatusBadRequest, "Prompt cannot be empty", "")
	case errors.Is(err, services.ErrAPIKeyMissing):
		writeError(w, http.StatusInternalServerError, "AI task generation is not configured", err.Error())
	case errors.As(err, &providerErr), errors.As(err, &malformedErr):
		writeError(w, http.StatusBadGateway, "Failed to generate tasks. Please try again.", err.Error())
	default:
		logging.Logger.Errorf("Event ID: AI_GENERATE_FAILED, Description: Task generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate tasks. Please try again.", err.Error())
	}
}
