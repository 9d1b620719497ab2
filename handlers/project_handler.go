package handlers

import (
	"encoding/json"
	"net/http"

	"tascly-backend/middleware"
	"tascly-backend/services"
)

// ProjectHandler exposes the project endpoints.
type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// GetMyProjects handles GET /api/projects.
func (h *ProjectHandler) GetMyProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	projects, err := h.projects.GetUserProjects(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve projects", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProject handles POST /api/projects. Ownership comes from the JWT
// identity, not the body.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Project name is required", "")
		return
	}

	project, err := h.projects.CreateProject(r.Context(), req.Name, req.Description, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create project", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, project)
}
