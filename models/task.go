package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusBacklog    TaskStatus = "Backlog"
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "InProgress"
	StatusDone       TaskStatus = "Done"
)

// IsValid reports whether the status is one of the known board columns.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

type TaskType string

const (
	TypeBug         TaskType = "Bug"
	TypeFeature     TaskType = "Feature"
	TypeImprovement TaskType = "Improvement"
)

// ParseTaskPriority maps a free-form priority string to one of the known
// values, case-insensitively. Anything unrecognized becomes Medium. This is
// the single place where priority leniency is applied; callers must not add
// their own fallbacks.
func ParseTaskPriority(s string) TaskPriority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	default:
		return PriorityMedium
	}
}

// ParseTaskType maps a free-form type string to one of the known values,
// case-insensitively. Anything unrecognized becomes Feature.
func ParseTaskType(s string) TaskType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bug":
		return TypeBug
	case "improvement":
		return TypeImprovement
	case "feature":
		return TypeFeature
	default:
		return TypeFeature
	}
}

// Task is the persisted task record. Tasks created from draft batches always
// start in the Backlog column.
type Task struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	ProjectID      primitive.ObjectID  `json:"projectId" bson:"projectId"`
	Title          string              `json:"title" bson:"title"`
	Description    string              `json:"description,omitempty" bson:"description,omitempty"`
	Priority       TaskPriority        `json:"priority" bson:"priority"`
	Type           TaskType            `json:"type" bson:"type"`
	Status         TaskStatus          `json:"status" bson:"status"`
	EstimatedHours float64             `json:"estimatedHours,omitempty" bson:"estimatedHours,omitempty"`
	ScheduledStart *time.Time          `json:"scheduledStart,omitempty" bson:"scheduledStart,omitempty"`
	ScheduledEnd   *time.Time          `json:"scheduledEnd,omitempty" bson:"scheduledEnd,omitempty"`
	DueDate        *time.Time          `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	AssignedTo     *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	CreatedBy      primitive.ObjectID  `json:"createdBy" bson:"createdBy"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
}
