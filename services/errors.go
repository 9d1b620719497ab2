package services

import (
	"errors"
	"fmt"
)

// Validation failures caused by caller input. Handlers map these to 400-range
// responses.
var (
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrEmptyDraftBatch = errors.New("no draft tasks provided")
)

// Lookup and permission failures shared by the project-scoped services.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found; they must register first")
	ErrAlreadyMember   = errors.New("user is already a member of this project")
	ErrNotAllowed      = errors.New("caller does not have permission for this action")
)

// ErrAPIKeyMissing means the AI provider key is not configured. The feature
// is unavailable until the key is supplied; nothing is retried.
var ErrAPIKeyMissing = errors.New("AI API key is not configured")

// ProviderError means the external AI call failed: transport error, non-2xx
// status, or a response with no completion choices.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("AI provider request failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError means the provider answered, but the content was not
// the expected JSON envelope. A zero-task envelope is not malformed.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("AI response could not be parsed: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// BulkCommitError means the atomic batch insert failed and was rolled back.
// No partial batch is ever persisted.
type BulkCommitError struct {
	Err error
}

func (e *BulkCommitError) Error() string {
	return fmt.Sprintf("bulk task commit failed: %v", e.Err)
}

func (e *BulkCommitError) Unwrap() error { return e.Err }
