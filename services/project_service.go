package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/logging"
	"tascly-backend/models"
)

// ProjectStore is the project persistence surface.
type ProjectStore interface {
	ProjectReader
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Project, error)
	GetByIDs(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Project, error)
	Insert(ctx context.Context, project *models.Project) error
}

type ProjectService struct {
	projects    ProjectStore
	teamMembers TeamMemberDirectory
	now         func() time.Time
}

func NewProjectService(projects ProjectStore, teamMembers TeamMemberDirectory) *ProjectService {
	return &ProjectService{
		projects:    projects,
		teamMembers: teamMembers,
		now:         time.Now,
	}
}

// GetUserProjects returns every project the user owns or belongs to, with the
// user's role in each. Owners count as managers.
func (s *ProjectService) GetUserProjects(ctx context.Context, userID primitive.ObjectID) ([]models.ProjectWithRole, error) {
	owned, err := s.projects.GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading owned projects: %w", err)
	}

	memberships, err := s.teamMembers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading memberships: %w", err)
	}

	roleByProject := make(map[primitive.ObjectID]models.TeamRole, len(memberships))
	memberProjectIDs := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		if _, seen := roleByProject[m.ProjectID]; !seen {
			roleByProject[m.ProjectID] = m.Role
			memberProjectIDs = append(memberProjectIDs, m.ProjectID)
		}
	}

	result := make([]models.ProjectWithRole, 0, len(owned)+len(memberProjectIDs))
	ownedSet := make(map[primitive.ObjectID]bool, len(owned))
	for _, p := range owned {
		ownedSet[p.ID] = true
		result = append(result, models.ProjectWithRole{Project: p, UserRole: models.RoleManager})
	}

	if len(memberProjectIDs) > 0 {
		memberProjects, err := s.projects.GetByIDs(ctx, memberProjectIDs)
		if err != nil {
			return nil, fmt.Errorf("loading member projects: %w", err)
		}
		for _, p := range memberProjects {
			if ownedSet[p.ID] {
				continue
			}
			result = append(result, models.ProjectWithRole{Project: p, UserRole: roleByProject[p.ID]})
		}
	}

	return result, nil
}

// CreateProject creates a project owned by the caller. The owner id comes
// from the authenticated identity, never from the request body.
func (s *ProjectService) CreateProject(ctx context.Context, name, description string, ownerID primitive.ObjectID) (*models.ProjectWithRole, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by user %s", project.ID.Hex(), ownerID.Hex())
	return &models.ProjectWithRole{Project: *project, UserRole: models.RoleManager}, nil
}
