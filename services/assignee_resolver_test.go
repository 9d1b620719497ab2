package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tascly-backend/models"
)

func TestRosterIndex_ResolveByName(t *testing.T) {
	mary := models.TeamMember{ID: primitive.NewObjectID(), Name: "Mary Chen", Email: "mary.chen@x.com"}
	idx := NewRosterIndex([]models.TeamMember{mary})

	id, ok := idx.Resolve("Mary Chen")
	require.True(t, ok)
	assert.Equal(t, mary.ID, id)
}

func TestRosterIndex_ResolveCaseInsensitive(t *testing.T) {
	mary := models.TeamMember{ID: primitive.NewObjectID(), Name: "Mary Chen", Email: "mary.chen@x.com"}
	idx := NewRosterIndex([]models.TeamMember{mary})

	id, ok := idx.Resolve("mary chen")
	require.True(t, ok)
	assert.Equal(t, mary.ID, id)
}

func TestRosterIndex_ResolveByEmailLocalPart(t *testing.T) {
	mary := models.TeamMember{ID: primitive.NewObjectID(), Name: "Mary Chen", Email: "Mary.Chen@x.com"}
	idx := NewRosterIndex([]models.TeamMember{mary})

	id, ok := idx.Resolve("mary.chen")
	require.True(t, ok)
	assert.Equal(t, mary.ID, id)
}

func TestRosterIndex_NameIndexWinsOverEmail(t *testing.T) {
	// One member's name collides with another member's email local part; the
	// name index is consulted first.
	alex := models.TeamMember{ID: primitive.NewObjectID(), Name: "sam", Email: "alex@x.com"}
	sam := models.TeamMember{ID: primitive.NewObjectID(), Name: "Samuel Ortiz", Email: "sam@x.com"}
	idx := NewRosterIndex([]models.TeamMember{alex, sam})

	id, ok := idx.Resolve("sam")
	require.True(t, ok)
	assert.Equal(t, alex.ID, id)
}

func TestRosterIndex_NoMatchIsNotAnError(t *testing.T) {
	idx := NewRosterIndex(testRoster())

	_, ok := idx.Resolve("Nobody Here")
	assert.False(t, ok)
}

func TestRosterIndex_BlankSuggestion(t *testing.T) {
	idx := NewRosterIndex(testRoster())

	_, ok := idx.Resolve("")
	assert.False(t, ok)

	_, ok = idx.Resolve("   ")
	assert.False(t, ok)
}

func TestRosterIndex_DuplicateKeysFirstWins(t *testing.T) {
	first := models.TeamMember{ID: primitive.NewObjectID(), Name: "Mary Chen", Email: "mary@x.com"}
	second := models.TeamMember{ID: primitive.NewObjectID(), Name: "mary chen", Email: "mary@y.com"}
	idx := NewRosterIndex([]models.TeamMember{first, second})

	id, ok := idx.Resolve("MARY CHEN")
	require.True(t, ok)
	assert.Equal(t, first.ID, id)

	id, ok = idx.Resolve("mary")
	require.True(t, ok)
	assert.Equal(t, first.ID, id)
}

func TestRosterIndex_EmptyRoster(t *testing.T) {
	idx := NewRosterIndex(nil)

	_, ok := idx.Resolve("Mary Chen")
	assert.False(t, ok)
}
