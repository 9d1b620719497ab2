package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/middleware"
	"tascly-backend/models"
	"tascly-backend/services"
)

// TeamMemberHandler exposes the roster endpoints.
type TeamMemberHandler struct {
	teamMembers *services.TeamMemberService
}

func NewTeamMemberHandler(teamMembers *services.TeamMemberService) *TeamMemberHandler {
	return &TeamMemberHandler{teamMembers: teamMembers}
}

// GetByProject handles GET /api/team-members/project/{projectId}.
func (h *TeamMemberHandler) GetByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(mux.Vars(r)["projectId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format", err.Error())
		return
	}

	members, err := h.teamMembers.GetTeamMembers(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve team members", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, members)
}

type addTeamMemberRequest struct {
	Email     string `json:"email"`
	ProjectID string `json:"projectId"`
	Role      string `json:"role"`
}

// AddTeamMember handles POST /api/team-members. The user must already have a
// registered account; the requester must own or manage the project.
func (h *TeamMemberHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	var req addTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required", "")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project ID format", err.Error())
		return
	}

	member, err := h.teamMembers.AddTeamMember(r.Context(), projectID, req.Email, models.ParseTeamRole(req.Role), requesterID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			writeError(w, http.StatusNotFound, "Project not found", "")
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found. They must register first.", "")
		case errors.Is(err, services.ErrAlreadyMember):
			writeError(w, http.StatusConflict, "User is already a member of this project", "")
		case errors.Is(err, services.ErrNotAllowed):
			writeError(w, http.StatusForbidden, "Only managers can add team members", "")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to add team member", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, member)
}
