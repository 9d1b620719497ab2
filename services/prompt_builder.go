package services

import (
	"fmt"
	"strings"
	"time"

	"tascly-backend/models"
)

const (
	businessModeContext = "You are helping manage a hospitality or office business. Tasks should focus on operations, customer service, events, and business processes."
	projectModeContext  = "You are helping manage a software or technical project. Tasks should focus on features, bugs, and improvements."
)

// BuildSystemPrompt renders the system message for the task-generation call.
// It is a pure function of its inputs: the current time is passed in, never
// read from a global clock, so tests can pin the date anchor.
//
// The roster listing and the "use the exact name" instruction are the
// contract the assignee resolver depends on.
func BuildSystemPrompt(teamMembers []models.TeamMember, mode string, currentTime time.Time) string {
	modeContext := projectModeContext
	if strings.EqualFold(strings.TrimSpace(mode), "Business") {
		modeContext = businessModeContext
	}

	anchor := currentTime.Format("Monday, 02 January 2006 15:04")

	var teamInfo strings.Builder
	for _, m := range teamMembers {
		skills := m.Skills
		if skills == "" {
			skills = "None"
		}
		fmt.Fprintf(&teamInfo, "- Name: %q (Role: %s, Email: %s, Skills: %s)\n", m.Name, m.Role, m.Email, skills)
	}
	roster := strings.TrimRight(teamInfo.String(), "\n")
	if roster == "" {
		roster = "(no team members yet; leave suggestedAssignee null)"
	}

	return fmt.Sprintf(`You are an AI task breakdown assistant. %s

CURRENT TIME: %s

Your goal is to break down the user request into concrete, actionable tasks.

AVAILABLE TEAM (USE THE EXACT NAME LISTED):
%s

TEMPORAL AWARENESS:
- Use the CURRENT TIME: %s as your anchor for all relative dates.
- If the user says "Monday", "Tuesday", etc., calculate the NEXT occurrence of that day on or after the CURRENT TIME.
- Example: if today is Sunday Feb 8, "Monday" must be Feb 9.
- If a specific time is mentioned (e.g., "2:00 p.m."), populate 'scheduledStart'.
- If a deadline is mentioned (e.g., "by 5:00 p.m."), populate 'dueDate'.
- Format all dates as ISO 8601 (e.g., "2026-02-09T14:00:00").

REQUIRED JSON OUTPUT FORMAT:
{
  "tasks": [
    {
      "tempId": 1,
      "title": "Actionable Title",
      "description": "Detailed description",
      "priority": "High" | "Medium" | "Low",
      "estimatedHours": number,
      "suggestedAssignee": "Exact Name from Available Team" or null,
      "type": "Feature" | "Bug" | "Improvement",
      "scheduledStart": "ISO8601 Date String" or null,
      "dueDate": "ISO8601 Date String" or null
    }
  ]
}

IMPORTANT:
1. The 'type' field must be EXACTLY one of: "Feature", "Bug", or "Improvement".
2. The 'suggestedAssignee' MUST EXACTLY match one of the Names provided in the AVAILABLE TEAM list.
3. Populate 'scheduledStart' if a specific start time is mentioned. Populate 'dueDate' if a deadline is mentioned.
4. If no time is mentioned, leave those fields null.

Strictly return valid JSON only, with no prose before or after it.`, modeContext, anchor, roster, anchor)
}
