package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tascly-backend/models"
)

// TeamMemberRepository persists project memberships.
type TeamMemberRepository struct {
	members *mongo.Collection
}

func NewTeamMemberRepository(members *mongo.Collection) *TeamMemberRepository {
	return &TeamMemberRepository{members: members}
}

// GetByProjectID returns the full roster for a project. A project without
// members yields an empty slice.
func (r *TeamMemberRepository) GetByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]models.TeamMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve team members: %w", err)
	}
	defer cursor.Close(ctx)

	members := []models.TeamMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", err)
	}
	return members, nil
}

// GetByUserID returns every membership a user holds across projects.
func (r *TeamMemberRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.TeamMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve memberships: %w", err)
	}
	defer cursor.Close(ctx)

	members := []models.TeamMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode memberships: %w", err)
	}
	return members, nil
}

// GetByProjectAndEmail returns the membership matching an email within a
// project, or nil when there is none.
func (r *TeamMemberRepository) GetByProjectAndEmail(ctx context.Context, projectID primitive.ObjectID, email string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.members.FindOne(ctx, bson.M{"projectId": projectID, "email": email}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up team member: %w", err)
	}
	return &member, nil
}

// GetByProjectAndUserID returns a user's membership in a project, or nil when
// there is none.
func (r *TeamMemberRepository) GetByProjectAndUserID(ctx context.Context, projectID, userID primitive.ObjectID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.members.FindOne(ctx, bson.M{"projectId": projectID, "userId": userID}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up team member: %w", err)
	}
	return &member, nil
}

// Add inserts a new membership.
func (r *TeamMemberRepository) Add(ctx context.Context, member *models.TeamMember) error {
	result, err := r.members.InsertOne(ctx, member)
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	member.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}
