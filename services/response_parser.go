package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"tascly-backend/models"
)

// draftEnvelope is the JSON object the model is instructed to emit. Tasks is
// a pointer so a missing "tasks" field can be told apart from an empty one.
type draftEnvelope struct {
	Tasks *[]models.DraftTask `json:"tasks"`
}

// ParseDraftTasks deserializes the raw model content into draft tasks.
//
// Field names match case-insensitively, numeric fields accept quoted numbers,
// and unparseable priority/type values fall back to their defaults inside the
// DraftTask decoder. Only structural problems are errors: invalid JSON or a
// missing "tasks" field yields a MalformedResponseError so the caller can
// tell "nothing usable" from "zero tasks on purpose".
func ParseDraftTasks(rawContent string) ([]models.DraftTask, error) {
	if rawContent == "" {
		return nil, &MalformedResponseError{Err: errors.New("empty response content")}
	}

	var envelope draftEnvelope
	if err := json.Unmarshal([]byte(rawContent), &envelope); err != nil {
		return nil, &MalformedResponseError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if envelope.Tasks == nil {
		return nil, &MalformedResponseError{Err: errors.New(`response has no "tasks" field`)}
	}

	return *envelope.Tasks, nil
}
