package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTaskPriority(t *testing.T) {
	tests := []struct {
		input string
		want  TaskPriority
	}{
		{"High", PriorityHigh},
		{"high", PriorityHigh},
		{"HIGH", PriorityHigh},
		{" low ", PriorityLow},
		{"Medium", PriorityMedium},
		{"urgent", PriorityMedium},
		{"", PriorityMedium},
		{"P1", PriorityMedium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTaskPriority(tt.input), "input %q", tt.input)
	}
}

func TestParseTaskType(t *testing.T) {
	tests := []struct {
		input string
		want  TaskType
	}{
		{"Bug", TypeBug},
		{"bug", TypeBug},
		{"IMPROVEMENT", TypeImprovement},
		{"Feature", TypeFeature},
		{"chore", TypeFeature},
		{"", TypeFeature},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTaskType(tt.input), "input %q", tt.input)
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	assert.True(t, StatusBacklog.IsValid())
	assert.True(t, StatusTodo.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusDone.IsValid())
	assert.False(t, TaskStatus("Archived").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}
