package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tascly-backend/models"
)

// TaskRepository persists tasks in MongoDB. The client handle is kept for
// session transactions.
type TaskRepository struct {
	client *mongo.Client
	tasks  *mongo.Collection
}

func NewTaskRepository(client *mongo.Client, tasks *mongo.Collection) *TaskRepository {
	return &TaskRepository{
		client: client,
		tasks:  tasks,
	}
}

// InsertMany writes the whole batch inside one session transaction. If any
// insert fails the transaction aborts, so no partial batch is ever visible.
func (r *TaskRepository) InsertMany(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks to insert")
	}

	docs := make([]interface{}, len(tasks))
	for i := range tasks {
		docs[i] = tasks[i]
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := r.tasks.InsertMany(sc, docs, options.InsertMany().SetOrdered(true))
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("batch insert of %d tasks: %w", len(tasks), err)
	}
	return nil
}

// GetByID returns a single task. mongo.ErrNoDocuments is returned when the
// id does not exist.
func (r *TaskRepository) GetByID(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := r.tasks.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByProjectID returns a project's tasks, newest first.
func (r *TaskRepository) GetByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.tasks.Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// GetByUser returns every task the user created or that is assigned to one
// of their memberships, newest first.
func (r *TaskRepository) GetByUser(ctx context.Context, userID primitive.ObjectID, memberIDs []primitive.ObjectID) ([]models.Task, error) {
	scope := []bson.M{{"createdBy": userID}}
	if len(memberIDs) > 0 {
		scope = append(scope, bson.M{"assignedTo": bson.M{"$in": memberIDs}})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.tasks.Find(ctx, bson.M{"$or": scope}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// GetPlannerWindow returns the planner view for a user: tasks they created or
// that are assigned to one of their memberships, scheduled or due inside
// [from, to), plus any task that is still open. Ordering is applied by the
// service, which coalesces scheduled start and due date.
func (r *TaskRepository) GetPlannerWindow(ctx context.Context, userID primitive.ObjectID, memberIDs []primitive.ObjectID, from, to time.Time) ([]models.Task, error) {
	identity := []bson.M{{"createdBy": userID}}
	if len(memberIDs) > 0 {
		identity = append(identity, bson.M{"assignedTo": bson.M{"$in": memberIDs}})
	}

	filter := bson.M{
		"$and": []bson.M{
			{"$or": identity},
			{"$or": []bson.M{
				{"scheduledStart": bson.M{"$gte": from, "$lt": to}},
				{"dueDate": bson.M{"$gte": from, "$lt": to}},
				{"status": bson.M{"$ne": models.StatusDone}},
			}},
		},
	}

	cursor, err := r.tasks.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve planner tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode planner tasks: %w", err)
	}
	return tasks, nil
}

// UpdateSchedule sets or clears a task's scheduled window and returns the
// updated document.
func (r *TaskRepository) UpdateSchedule(ctx context.Context, taskID primitive.ObjectID, start, end *time.Time) (*models.Task, error) {
	set := bson.M{}
	unset := bson.M{}
	if start != nil {
		set["scheduledStart"] = *start
	} else {
		unset["scheduledStart"] = ""
	}
	if end != nil {
		set["scheduledEnd"] = *end
	} else {
		unset["scheduledEnd"] = ""
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	return r.findOneAndUpdate(ctx, taskID, update)
}

// UpdateStatus moves a task between board columns and returns the updated
// document.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	return r.findOneAndUpdate(ctx, taskID, bson.M{"$set": bson.M{"status": status}})
}

func (r *TaskRepository) findOneAndUpdate(ctx context.Context, taskID primitive.ObjectID, update bson.M) (*models.Task, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.Task
	err := r.tasks.FindOneAndUpdate(ctx, bson.M{"_id": taskID}, update, opts).Decode(&task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task. mongo.ErrNoDocuments is returned when the id does
// not exist.
func (r *TaskRepository) Delete(ctx context.Context, taskID primitive.ObjectID) error {
	result, err := r.tasks.DeleteOne(ctx, bson.M{"_id": taskID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
