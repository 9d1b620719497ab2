package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tascly-backend/models"
)

// UserRepository reads registered accounts. Registration and credentials are
// handled by the auth service; this repository is lookup-only.
type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(users *mongo.Collection) *UserRepository {
	return &UserRepository{users: users}
}

// GetByEmail returns the account with the given email, or nil when none
// exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
