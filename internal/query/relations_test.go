package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelations(t *testing.T) {
	rel, err := ParseRelations("issue,issue.user", []string{"issue", "user"})
	require.NoError(t, err)
	assert.Equal(t, 3, rel.Depth)
	assert.Equal(t, []string{"issue", "user"}, rel.Names)
	assert.Equal(t, []string{"issue", "issue.user"}, rel.Paths)
	assert.Contains(t, rel.Names, "user")
	assert.NotContains(t, rel.Names, "project")
}

func TestParseRelationsEmpty(t *testing.T) {
	rel, err := ParseRelations("  ", []string{"issue"})
	require.NoError(t, err)
	assert.Equal(t, 1, rel.Depth)
	assert.True(t, rel.Empty())
	assert.Empty(t, rel.Tree())
}

func TestParseRelationsDepthFollowsDeepestPath(t *testing.T) {
	rel, err := ParseRelations("user,issue.project.user", []string{"issue", "user", "project"})
	require.NoError(t, err)
	assert.Equal(t, 4, rel.Depth)
}

func TestRelationsTree(t *testing.T) {
	rel, err := ParseRelations("issue.user,issue.project,user", []string{"issue", "user", "project"})
	require.NoError(t, err)
	assert.Equal(t, Tree{
		"issue": Tree{"user": Tree{}, "project": Tree{}},
		"user":  Tree{},
	}, rel.Tree())
}

func TestParseRelationsRejects(t *testing.T) {
	for _, raw := range []string{"secrets", "issue.secrets", "issue..user", "issue."} {
		_, err := ParseRelations(raw, []string{"issue", "user"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, raw)
		assert.Equal(t, "relations", ve.Field)
	}
}
