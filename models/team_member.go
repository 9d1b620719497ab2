package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamRole string

const (
	RoleManager      TeamRole = "Manager"
	RoleDeveloper    TeamRole = "Developer"
	RoleDesigner     TeamRole = "Designer"
	RoleQA           TeamRole = "QA"
	RoleProductOwner TeamRole = "ProductOwner"
	RoleStakeholder  TeamRole = "Stakeholder"
)

// ParseTeamRole maps a free-form role string to a known role,
// case-insensitively. Unrecognized roles become Developer.
func ParseTeamRole(s string) TeamRole {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manager":
		return RoleManager
	case "designer":
		return RoleDesigner
	case "qa":
		return RoleQA
	case "productowner", "product owner":
		return RoleProductOwner
	case "stakeholder":
		return RoleStakeholder
	default:
		return RoleDeveloper
	}
}

// TeamMember is a user's membership in one project. The AI feature reads the
// roster for prompt context and assignee resolution but never writes it.
type TeamMember struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Role      TeamRole           `json:"role" bson:"role"`
	Skills    string             `json:"skills,omitempty" bson:"skills,omitempty"`
	ProjectID primitive.ObjectID `json:"projectId" bson:"projectId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	JoinedAt  time.Time          `json:"joinedAt" bson:"joinedAt"`

	CanAccessBusinessMode bool `json:"canAccessBusinessMode" bson:"canAccessBusinessMode"`
	CanManageTeam         bool `json:"canManageTeam" bson:"canManageTeam"`
	CanDeleteTasks        bool `json:"canDeleteTasks" bson:"canDeleteTasks"`
	CanEditTasks          bool `json:"canEditTasks" bson:"canEditTasks"`
	CanViewBoard          bool `json:"canViewBoard" bson:"canViewBoard"`
	CanAssignTasks        bool `json:"canAssignTasks" bson:"canAssignTasks"`
}
