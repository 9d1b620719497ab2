package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/logging"
	"tascly-backend/models"
)

// TeamMemberReader is the roster read the AI pipeline needs. A project with
// no members yields an empty slice, not an error.
type TeamMemberReader interface {
	GetByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]models.TeamMember, error)
}

// CompletionGenerator abstracts the AI provider call.
type CompletionGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AiTaskService turns a natural-language prompt into draft tasks: roster
// lookup, system prompt, provider call, parse. It never writes anything; the
// caller reviews the drafts and commits them separately.
type AiTaskService struct {
	teamMembers TeamMemberReader
	client      CompletionGenerator
	now         func() time.Time
}

func NewAiTaskService(teamMembers TeamMemberReader, client CompletionGenerator) *AiTaskService {
	return &AiTaskService{
		teamMembers: teamMembers,
		client:      client,
		now:         time.Now,
	}
}

// GenerateTasksFromPrompt runs the generation pipeline for one request.
// Validation happens before any provider I/O: an empty prompt never reaches
// the network.
func (s *AiTaskService) GenerateTasksFromPrompt(ctx context.Context, prompt string, projectID primitive.ObjectID, mode string) ([]models.DraftTask, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	members, err := s.teamMembers.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetching team members for project %s: %w", projectID.Hex(), err)
	}

	systemPrompt := BuildSystemPrompt(members, mode, s.now())

	rawContent, err := s.client.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	drafts, err := ParseDraftTasks(rawContent)
	if err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			// The raw content is the only clue to what the model did; the
			// request never carries the key, so this is safe to log.
			logging.Logger.Errorf("Event ID: AI_RESPONSE_PARSE_FAILED, Description: Could not parse model output: %v, Raw content: %s", err, rawContent)
		}
		return nil, err
	}

	logging.Logger.Infof("Event ID: AI_TASKS_GENERATED, Description: Generated %d draft tasks for project %s", len(drafts), projectID.Hex())
	return drafts, nil
}
