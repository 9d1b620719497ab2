package services

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/models"
)

// RosterIndex resolves a suggested-assignee string against a project roster.
// Two lookup maps are built once per roster snapshot, so resolution is O(1)
// per draft instead of a roster scan. When two members normalize to the same
// key, the first one in roster order wins; that tie-break is deliberate and
// stable, not an error.
type RosterIndex struct {
	byName       map[string]primitive.ObjectID
	byEmailLocal map[string]primitive.ObjectID
}

// NewRosterIndex preprocesses the roster into name and email-local-part
// indices. Keys are lowercased; the email local part is everything before the
// first '@'.
func NewRosterIndex(members []models.TeamMember) *RosterIndex {
	idx := &RosterIndex{
		byName:       make(map[string]primitive.ObjectID, len(members)),
		byEmailLocal: make(map[string]primitive.ObjectID, len(members)),
	}

	for _, m := range members {
		name := strings.ToLower(strings.TrimSpace(m.Name))
		if name != "" {
			if _, exists := idx.byName[name]; !exists {
				idx.byName[name] = m.ID
			}
		}

		local := strings.ToLower(strings.TrimSpace(m.Email))
		if at := strings.Index(local, "@"); at >= 0 {
			local = local[:at]
		}
		if local != "" {
			if _, exists := idx.byEmailLocal[local]; !exists {
				idx.byEmailLocal[local] = m.ID
			}
		}
	}

	return idx
}

// Resolve matches a free-text suggested assignee to a member id: name index
// first, then email local part. A blank suggestion or a miss in both indices
// is not a failure, the task is simply left unassigned.
func (idx *RosterIndex) Resolve(suggestedAssignee string) (primitive.ObjectID, bool) {
	key := strings.ToLower(strings.TrimSpace(suggestedAssignee))
	if key == "" {
		return primitive.NilObjectID, false
	}

	if id, ok := idx.byName[key]; ok {
		return id, true
	}
	if id, ok := idx.byEmailLocal[key]; ok {
		return id, true
	}
	return primitive.NilObjectID, false
}
