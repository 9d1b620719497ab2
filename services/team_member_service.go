package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/logging"
	"tascly-backend/models"
)

// TeamMemberStore is the full membership persistence surface.
type TeamMemberStore interface {
	TeamMemberDirectory
	GetByProjectAndEmail(ctx context.Context, projectID primitive.ObjectID, email string) (*models.TeamMember, error)
	Add(ctx context.Context, member *models.TeamMember) error
}

// UserReader looks up registered accounts. Accounts are owned by the auth
// service; this service never creates them.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectReader is the project lookup the membership checks need.
type ProjectReader interface {
	GetByID(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error)
}

type TeamMemberService struct {
	members  TeamMemberStore
	users    UserReader
	projects ProjectReader
	now      func() time.Time
}

func NewTeamMemberService(members TeamMemberStore, users UserReader, projects ProjectReader) *TeamMemberService {
	return &TeamMemberService{
		members:  members,
		users:    users,
		projects: projects,
		now:      time.Now,
	}
}

// GetTeamMembers returns the project roster. An empty roster is a valid
// result, not an error.
func (s *TeamMemberService) GetTeamMembers(ctx context.Context, projectID primitive.ObjectID) ([]models.TeamMember, error) {
	return s.members.GetByProjectID(ctx, projectID)
}

// AddTeamMember adds a registered user to a project by email. The requester
// must be the project owner or a manager on the roster. Default permissions
// follow from the role.
func (s *TeamMemberService) AddTeamMember(ctx context.Context, projectID primitive.ObjectID, email string, role models.TeamRole, requesterID primitive.ObjectID) (*models.TeamMember, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("looking up project %s: %w", projectID.Hex(), err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if project.OwnerID != requesterID {
		requester, err := s.members.GetByProjectAndUserID(ctx, projectID, requesterID)
		if err != nil {
			return nil, fmt.Errorf("checking requester membership: %w", err)
		}
		if requester == nil || requester.Role != models.RoleManager {
			return nil, ErrNotAllowed
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.members.GetByProjectAndEmail(ctx, projectID, email)
	if err != nil {
		return nil, fmt.Errorf("checking existing membership: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	member := &models.TeamMember{
		ID:        primitive.NewObjectID(),
		Name:      user.Username,
		Email:     user.Email,
		Role:      role,
		ProjectID: projectID,
		UserID:    user.ID,
		JoinedAt:  s.now().UTC(),

		CanAccessBusinessMode: role == models.RoleManager,
		CanManageTeam:         role == models.RoleManager,
		CanDeleteTasks:        role == models.RoleManager,
		CanEditTasks:          true,
		CanViewBoard:          true,
		CanAssignTasks:        role == models.RoleManager || role == models.RoleProductOwner,
	}

	if err := s.members.Add(ctx, member); err != nil {
		return nil, fmt.Errorf("adding team member: %w", err)
	}

	logging.Logger.Infof("Event ID: TEAM_MEMBER_ADDED, Description: Added %s to project %s as %s", member.Email, projectID.Hex(), member.Role)
	return member, nil
}
