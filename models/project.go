package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	OwnerID     primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// ProjectWithRole is the listing shape returned to the caller: the project
// plus the requesting user's role in it.
type ProjectWithRole struct {
	Project  `bson:",inline"`
	UserRole TeamRole `json:"userRole" bson:"-"`
}

// User accounts are owned by the auth service; this service only reads them
// when adding team members by email.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Email    string             `json:"email" bson:"email"`
}
