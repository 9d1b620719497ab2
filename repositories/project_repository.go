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

// ProjectRepository persists projects.
type ProjectRepository struct {
	projects *mongo.Collection
}

func NewProjectRepository(projects *mongo.Collection) *ProjectRepository {
	return &ProjectRepository{projects: projects}
}

// GetByID returns a project, or nil when the id does not exist.
func (r *ProjectRepository) GetByID(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.projects.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}
	return &project, nil
}

// GetByOwner returns the projects a user owns.
func (r *ProjectRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Project, error) {
	cursor, err := r.projects.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// GetByIDs returns the projects matching the given ids.
func (r *ProjectRepository) GetByIDs(ctx context.Context, projectIDs []primitive.ObjectID) ([]models.Project, error) {
	if len(projectIDs) == 0 {
		return []models.Project{}, nil
	}

	cursor, err := r.projects.Find(ctx, bson.M{"_id": bson.M{"$in": projectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// Insert stores a new project.
func (r *ProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	result, err := r.projects.InsertOne(ctx, project)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}
