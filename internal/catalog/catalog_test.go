package catalog

import (
	"net/url"
	"testing"

	"worklog/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryResourceIsConsistent(t *testing.T) {
	for name, res := range New() {
		assert.Equal(t, name, res.Name)
		for _, f := range res.Sortable {
			assert.Contains(t, res.Filterable, f, "%s: sortable %s must be a column", name, f)
		}
		for _, f := range res.DefaultFields {
			assert.Contains(t, res.Fields, f, "%s: default field %s", name, f)
		}
		for _, s := range res.DefaultSort {
			assert.Contains(t, res.Sortable, s.Field, "%s: default sort %s", name, s.Field)
		}
		assert.NotContains(t, res.Fields, "password_hash")
		assert.NotContains(t, res.Filterable, "tenant_id")
	}
}

func TestTimeEntriesQuery(t *testing.T) {
	values, err := url.ParseQuery("filter[started_at][between]=2024-01-01,2024-02-01&relations=issue,issue.user&sort=-started_at")
	require.NoError(t, err)
	req, err := query.Parse(values, New().Get(TimeEntries), 100)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Relations.Depth)
}

func TestGetPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { New().Get("payments") })
}
