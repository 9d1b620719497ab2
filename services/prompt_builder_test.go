package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/models"
)

func testRoster() []models.TeamMember {
	return []models.TeamMember{
		{ID: primitive.NewObjectID(), Name: "Mary Chen", Email: "mary.chen@x.com", Role: models.RoleDeveloper, Skills: "Go, MongoDB"},
		{ID: primitive.NewObjectID(), Name: "Luka Petrov", Email: "luka@x.com", Role: models.RoleQA},
	}
}

func TestBuildSystemPrompt_EmbedsTimeAnchor(t *testing.T) {
	anchor := time.Date(2026, 2, 8, 10, 30, 0, 0, time.UTC) // a Sunday
	prompt := BuildSystemPrompt(testRoster(), "Project", anchor)

	assert.Contains(t, prompt, "CURRENT TIME: Sunday, 08 February 2026 10:30")
	assert.Contains(t, prompt, "NEXT occurrence")
	assert.Contains(t, prompt, "ISO 8601")
}

func TestBuildSystemPrompt_ListsExactNames(t *testing.T) {
	prompt := BuildSystemPrompt(testRoster(), "Project", time.Now())

	assert.Contains(t, prompt, `Name: "Mary Chen"`)
	assert.Contains(t, prompt, `Name: "Luka Petrov"`)
	assert.Contains(t, prompt, "USE THE EXACT NAME LISTED")
	assert.Contains(t, prompt, "mary.chen@x.com")
	assert.Contains(t, prompt, "Skills: Go, MongoDB")
	assert.Contains(t, prompt, "Skills: None")
}

func TestBuildSystemPrompt_ModeFraming(t *testing.T) {
	business := BuildSystemPrompt(testRoster(), "Business", time.Now())
	assert.Contains(t, business, "hospitality or office business")

	// Case-insensitive mode comparison.
	businessLower := BuildSystemPrompt(testRoster(), "business", time.Now())
	assert.Contains(t, businessLower, "hospitality or office business")

	project := BuildSystemPrompt(testRoster(), "Project", time.Now())
	assert.Contains(t, project, "software or technical project")

	// Anything that is not Business falls back to project framing.
	other := BuildSystemPrompt(testRoster(), "Whatever", time.Now())
	assert.Contains(t, other, "software or technical project")
}

func TestBuildSystemPrompt_SpecifiesJSONContract(t *testing.T) {
	prompt := BuildSystemPrompt(testRoster(), "Project", time.Now())

	for _, field := range []string{`"tasks"`, `"tempId"`, `"title"`, `"priority"`, `"estimatedHours"`, `"suggestedAssignee"`, `"type"`, `"scheduledStart"`, `"dueDate"`} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, `"Feature" | "Bug" | "Improvement"`)
	assert.Contains(t, prompt, `"High" | "Medium" | "Low"`)
	assert.Contains(t, prompt, "valid JSON only")
}

func TestBuildSystemPrompt_EmptyRoster(t *testing.T) {
	prompt := BuildSystemPrompt(nil, "Project", time.Now())

	assert.Contains(t, prompt, "no team members yet")
	assert.Contains(t, prompt, "leave suggestedAssignee null")
}

func TestBuildSystemPrompt_Pure(t *testing.T) {
	anchor := time.Date(2026, 2, 8, 10, 30, 0, 0, time.UTC)
	roster := testRoster()

	first := BuildSystemPrompt(roster, "Business", anchor)
	second := BuildSystemPrompt(roster, "Business", anchor)
	assert.True(t, strings.EqualFold(first, second))
	assert.Equal(t, first, second)
}
