package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tascly-backend/models"
)

func TestParseDraftTasks_Success(t *testing.T) {
	raw := `{
		"tasks": [
			{"tempId": 1, "title": "Set up CI", "description": "Pipeline", "priority": "High", "estimatedHours": 3, "suggestedAssignee": "Mary Chen", "type": "Improvement", "scheduledStart": null, "dueDate": null},
			{"tempId": 2, "title": "Fix login bug", "priority": "Medium", "estimatedHours": 1.5, "suggestedAssignee": null, "type": "Bug"}
		]
	}`

	drafts, err := ParseDraftTasks(raw)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "Set up CI", drafts[0].Title)
	assert.Equal(t, models.PriorityHigh, drafts[0].Priority)
	assert.Equal(t, models.TypeImprovement, drafts[0].Type)
	assert.Equal(t, "Mary Chen", drafts[0].SuggestedAssignee)
	assert.Equal(t, "Fix login bug", drafts[1].Title)
	assert.Equal(t, models.TypeBug, drafts[1].Type)
	assert.Empty(t, drafts[1].SuggestedAssignee)
}

func TestParseDraftTasks_ZeroTasksIsValid(t *testing.T) {
	drafts, err := ParseDraftTasks(`{"tasks": []}`)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestParseDraftTasks_InvalidJSON(t *testing.T) {
	_, err := ParseDraftTasks(`not json at all`)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParseDraftTasks_MissingTasksField(t *testing.T) {
	_, err := ParseDraftTasks(`{"items": []}`)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParseDraftTasks_EmptyContent(t *testing.T) {
	_, err := ParseDraftTasks("")
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParseDraftTasks_CaseInsensitiveEnvelope(t *testing.T) {
	drafts, err := ParseDraftTasks(`{"Tasks": [{"TempId": 1, "Title": "Mixed"}]}`)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Mixed", drafts[0].Title)
}

func TestParseDraftTasks_BadEnumNeverFails(t *testing.T) {
	drafts, err := ParseDraftTasks(`{"tasks": [{"tempId": 1, "title": "T", "priority": "urgent", "type": "misc"}]}`)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, models.PriorityMedium, drafts[0].Priority)
	assert.Equal(t, models.TypeFeature, drafts[0].Type)
}

// A "Monday at 2pm" request anchored on Sunday 2026-02-08 is expected to come
// back anchored to Monday 2026-02-09T14:00:00; the parser must carry that
// instant through unchanged.
func TestParseDraftTasks_PreservesAnchoredDate(t *testing.T) {
	raw := `{"tasks": [{"tempId": 1, "title": "Send the budget reminder", "priority": "Medium", "type": "Feature", "estimatedHours": 0.5, "scheduledStart": "2026-02-09T14:00:00"}]}`

	drafts, err := ParseDraftTasks(raw)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.NotNil(t, drafts[0].ScheduledStart)
	assert.Equal(t, time.Date(2026, 2, 9, 14, 0, 0, 0, time.UTC), drafts[0].ScheduledStart.Time)
}
