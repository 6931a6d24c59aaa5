package resource_test

import (
	"testing"

	"worklog/internal/domain/jira"
	"worklog/internal/domain/worklog"
	"worklog/internal/query"
	"worklog/internal/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry() *worklog.TimeEntry {
	return &worklog.TimeEntry{
		ID:               1,
		Description:      "review",
		TimeSpentSeconds: 1800,
		Issue: &jira.Issue{
			ID:       2,
			Key:      "WL-1",
			Assignee: &jira.User{ID: 3, DisplayName: "Ada"},
		},
	}
}

func TestShapeSelectsFieldsAndKeepsID(t *testing.T) {
	out := resource.Shape(entry(), query.Fields{Names: []string{"description"}}, 1)
	assert.Equal(t, map[string]any{"id": int64(1), "description": "review"}, out)
}

func TestShapeEmbedsUpToDepth(t *testing.T) {
	out := resource.Shape(entry(), query.Fields{Names: []string{"description"}}, 2)
	issue, ok := out["issue"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "WL-1", issue["key"])
	assert.NotContains(t, issue, "user")

	out = resource.Shape(entry(), query.Fields{All: true}, 3)
	issue = out["issue"].(map[string]any)
	user, ok := issue["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", user["display_name"])
}

func TestShapeSkipsUnloadedRelations(t *testing.T) {
	out := resource.Shape(&worklog.TimeEntry{ID: 9}, query.Fields{All: true}, 5)
	assert.NotContains(t, out, "issue")
	assert.NotContains(t, out, "user")
}

func TestShapeAll(t *testing.T) {
	out := resource.ShapeAll([]*worklog.TimeEntry{entry(), entry()}, query.Fields{All: true}, 1)
	assert.Len(t, out, 2)
}
