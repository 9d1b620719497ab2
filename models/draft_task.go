package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Hours is a fractional hour count. The model does not always emit strictly
// typed numbers, so a quoted numeric string unmarshals too.
type Hours float64

func (h *Hours) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*h = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid hours value %s: %v", string(data), err)
	}
	*h = Hours(v)
	return nil
}

// TempID is the transient correlation id the UI uses to track a draft. It is
// never persisted. Accepts numbers and numeric strings.
type TempID int64

func (t *TempID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*t = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid tempId value %s: %v", string(data), err)
	}
	*t = TempID(int64(v))
	return nil
}

// timestampLayouts lists the formats the model is known to emit. The prompt
// asks for ISO 8601, but zone suffixes come and go.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is an optional point in time parsed leniently from model output.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid timestamp %s: %v", string(data), err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp format: %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}

// DraftTask is an unpersisted task proposal produced by the AI generation
// step. Drafts stay editable on the client until the batch is committed or
// abandoned; they never carry a database identity.
type DraftTask struct {
	TempID            TempID       `json:"tempId"`
	Title             string       `json:"title"`
	Description       string       `json:"description,omitempty"`
	Priority          TaskPriority `json:"priority"`
	Type              TaskType     `json:"type"`
	EstimatedHours    Hours        `json:"estimatedHours"`
	SuggestedAssignee string       `json:"suggestedAssignee,omitempty"`
	ScheduledStart    *Timestamp   `json:"scheduledStart,omitempty"`
	DueDate           *Timestamp   `json:"dueDate,omitempty"`
}

// UnmarshalJSON applies the enum leniency policy while decoding: priority and
// type arrive as free-form strings and are coerced through ParseTaskPriority
// and ParseTaskType rather than rejected.
func (d *DraftTask) UnmarshalJSON(data []byte) error {
	type draftAlias struct {
		TempID            TempID     `json:"tempId"`
		Title             string     `json:"title"`
		Description       string     `json:"description"`
		Priority          string     `json:"priority"`
		Type              string     `json:"type"`
		EstimatedHours    Hours      `json:"estimatedHours"`
		SuggestedAssignee string     `json:"suggestedAssignee"`
		ScheduledStart    *Timestamp `json:"scheduledStart"`
		DueDate           *Timestamp `json:"dueDate"`
	}
	var raw draftAlias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.TempID = raw.TempID
	d.Title = raw.Title
	d.Description = raw.Description
	d.Priority = ParseTaskPriority(raw.Priority)
	d.Type = ParseTaskType(raw.Type)
	d.EstimatedHours = raw.EstimatedHours
	d.SuggestedAssignee = raw.SuggestedAssignee
	if raw.ScheduledStart != nil && !raw.ScheduledStart.IsZero() {
		d.ScheduledStart = raw.ScheduledStart
	}
	if raw.DueDate != nil && !raw.DueDate.IsZero() {
		d.DueDate = raw.DueDate
	}
	return nil
}
