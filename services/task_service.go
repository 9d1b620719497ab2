package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/logging"
	"tascly-backend/models"
)

// TaskStore is the persistence surface the task service needs. InsertMany
// must be atomic: on error nothing from the batch may remain persisted.
type TaskStore interface {
	InsertMany(ctx context.Context, tasks []models.Task) error
	GetByID(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error)
	GetByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID, memberIDs []primitive.ObjectID) ([]models.Task, error)
	GetPlannerWindow(ctx context.Context, userID primitive.ObjectID, memberIDs []primitive.ObjectID, from, to time.Time) ([]models.Task, error)
	UpdateSchedule(ctx context.Context, taskID primitive.ObjectID, start, end *time.Time) (*models.Task, error)
	UpdateStatus(ctx context.Context, taskID primitive.ObjectID, status models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, taskID primitive.ObjectID) error
}

// TeamMemberDirectory extends the roster read with the membership lookups the
// planner queries and permission checks need.
type TeamMemberDirectory interface {
	TeamMemberReader
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.TeamMember, error)
	GetByProjectAndUserID(ctx context.Context, projectID, userID primitive.ObjectID) (*models.TeamMember, error)
}

type TaskService struct {
	tasks       TaskStore
	teamMembers TeamMemberDirectory
	projects    ProjectReader
	now         func() time.Time
}

func NewTaskService(tasks TaskStore, teamMembers TeamMemberDirectory, projects ProjectReader) *TaskService {
	return &TaskService{
		tasks:       tasks,
		teamMembers: teamMembers,
		projects:    projects,
		now:         time.Now,
	}
}

// requireOwnerOrManager admits the project owner and roster managers.
func (s *TaskService) requireOwnerOrManager(ctx context.Context, projectID, userID primitive.ObjectID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("looking up project %s: %w", projectID.Hex(), err)
	}
	if project == nil {
		return ErrProjectNotFound
	}
	if project.OwnerID == userID {
		return nil
	}

	member, err := s.teamMembers.GetByProjectAndUserID(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if member == nil || member.Role != models.RoleManager {
		return ErrNotAllowed
	}
	return nil
}

// requireMember admits the project owner and anyone on the roster.
func (s *TaskService) requireMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("looking up project %s: %w", projectID.Hex(), err)
	}
	if project == nil {
		return ErrProjectNotFound
	}
	if project.OwnerID == userID {
		return nil
	}

	member, err := s.teamMembers.GetByProjectAndUserID(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if member == nil {
		return ErrNotAllowed
	}
	return nil
}

// requireTaskEditor admits the project owner, roster managers, and the
// member the task is assigned to.
func (s *TaskService) requireTaskEditor(ctx context.Context, task *models.Task, userID primitive.ObjectID) error {
	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return fmt.Errorf("looking up project %s: %w", task.ProjectID.Hex(), err)
	}
	if project == nil {
		return ErrProjectNotFound
	}
	if project.OwnerID == userID {
		return nil
	}

	member, err := s.teamMembers.GetByProjectAndUserID(ctx, task.ProjectID, userID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if member == nil {
		return ErrNotAllowed
	}
	if member.Role == models.RoleManager {
		return nil
	}
	if task.AssignedTo != nil && *task.AssignedTo == member.ID {
		return nil
	}
	return ErrNotAllowed
}

// CommitDrafts turns approved drafts into persisted tasks in one atomic
// batch. Only the project owner or a manager may commit. The roster is loaded
// once and indexed up front, so assignee resolution is constant time per
// draft. The returned slice preserves the input order; callers correlate
// results positionally.
//
// The batch either persists completely or not at all. A failed commit leaves
// the drafts untouched on the caller's side, so a retry is possible.
func (s *TaskService) CommitDrafts(ctx context.Context, drafts []models.DraftTask, projectID, creatorID primitive.ObjectID) ([]models.Task, error) {
	if len(drafts) == 0 {
		return nil, ErrEmptyDraftBatch
	}

	if err := s.requireOwnerOrManager(ctx, projectID, creatorID); err != nil {
		return nil, err
	}

	members, err := s.teamMembers.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, &BulkCommitError{Err: fmt.Errorf("loading roster for project %s: %w", projectID.Hex(), err)}
	}
	roster := NewRosterIndex(members)

	createdAt := s.now().UTC()
	tasks := make([]models.Task, 0, len(drafts))
	for _, draft := range drafts {
		task := models.Task{
			ID:          primitive.NewObjectID(),
			ProjectID:   projectID,
			Title:       draft.Title,
			Description: draft.Description,
			// Drafts decoded from JSON are already coerced; drafts built any
			// other way go through the same leniency table here.
			Priority:       models.ParseTaskPriority(string(draft.Priority)),
			Type:           models.ParseTaskType(string(draft.Type)),
			Status:         models.StatusBacklog,
			EstimatedHours: float64(draft.EstimatedHours),
			CreatedBy:      creatorID,
			CreatedAt:      createdAt,
		}

		if memberID, ok := roster.Resolve(draft.SuggestedAssignee); ok {
			task.AssignedTo = &memberID
		}

		if draft.ScheduledStart != nil {
			start := draft.ScheduledStart.Time
			task.ScheduledStart = &start
			// End time is derived only when a start exists; an absent start
			// never produces a default end.
			end := start.Add(time.Duration(float64(draft.EstimatedHours) * float64(time.Hour)))
			task.ScheduledEnd = &end
		}
		if draft.DueDate != nil {
			due := draft.DueDate.Time
			task.DueDate = &due
		}

		tasks = append(tasks, task)
	}

	if err := s.tasks.InsertMany(ctx, tasks); err != nil {
		logging.Logger.Errorf("Event ID: BULK_COMMIT_FAILED, Description: Bulk insert of %d tasks for project %s rolled back: %v", len(tasks), projectID.Hex(), err)
		return nil, &BulkCommitError{Err: err}
	}

	logging.Logger.Infof("Event ID: BULK_COMMIT_OK, Description: Committed %d tasks for project %s", len(tasks), projectID.Hex())
	return tasks, nil
}

// GetTasksByProject returns a project's tasks, newest first. The caller must
// be the owner or on the roster.
func (s *TaskService) GetTasksByProject(ctx context.Context, projectID, userID primitive.ObjectID) ([]models.Task, error) {
	if err := s.requireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.tasks.GetByProjectID(ctx, projectID)
}

// GetMyTasks returns every task the user created or that is assigned to one
// of their memberships, newest first.
func (s *TaskService) GetMyTasks(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	memberIDs, err := s.membershipIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.tasks.GetByUser(ctx, userID, memberIDs)
}

// GetDailyTasks returns the user's planner view for one day: tasks scheduled
// or due within the day, plus any still-open tasks.
func (s *TaskService) GetDailyTasks(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]models.Task, error) {
	start := date.Truncate(24 * time.Hour)
	return s.plannerWindow(ctx, userID, start, start.AddDate(0, 0, 1))
}

// GetWeeklyTasks returns the planner view for the 7 days starting at date.
func (s *TaskService) GetWeeklyTasks(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]models.Task, error) {
	start := date.Truncate(24 * time.Hour)
	return s.plannerWindow(ctx, userID, start, start.AddDate(0, 0, 7))
}

func (s *TaskService) plannerWindow(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]models.Task, error) {
	memberIDs, err := s.membershipIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.GetPlannerWindow(ctx, userID, memberIDs, from, to)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return plannerSortTime(tasks[i]).Before(plannerSortTime(tasks[j]))
	})
	return tasks, nil
}

func (s *TaskService) membershipIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	members, err := s.teamMembers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading memberships for user %s: %w", userID.Hex(), err)
	}
	memberIDs := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}
	return memberIDs, nil
}

var farFuture = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// plannerSortTime orders planner results by scheduled start, falling back to
// due date. Tasks with neither sort last.
func plannerSortTime(t models.Task) time.Time {
	if t.ScheduledStart != nil {
		return *t.ScheduledStart
	}
	if t.DueDate != nil {
		return *t.DueDate
	}
	return farFuture
}

// UpdateTaskSchedule sets or clears a task's scheduled window. The caller
// must be the owner, a manager, or the assignee.
func (s *TaskService) UpdateTaskSchedule(ctx context.Context, taskID, userID primitive.ObjectID, start, end *time.Time) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTaskEditor(ctx, task, userID); err != nil {
		return nil, err
	}
	return s.tasks.UpdateSchedule(ctx, taskID, start, end)
}

// UpdateTaskStatus moves a task between board columns. The caller must be the
// owner, a manager, or the assignee.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID, userID primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid task status: %q", status)
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireTaskEditor(ctx, task, userID); err != nil {
		return nil, err
	}
	return s.tasks.UpdateStatus(ctx, taskID, status)
}

// DeleteTask removes a task. Only the project owner or a manager may delete.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID primitive.ObjectID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.requireOwnerOrManager(ctx, task.ProjectID, userID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}
