package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timeEntries = &Resource{
	Name:          "time-entries",
	Filterable:    entryFields,
	Sortable:      []string{"id", "started_at", "time_spent_seconds"},
	Relations:     []string{"issue", "user", "project"},
	Fields:        []string{"id", "description", "started_at", "time_spent_seconds"},
	DefaultFields: []string{"id", "started_at"},
	DefaultSort:   []SortSpec{{Field: "started_at", Direction: Desc}},
}

func TestParseFullRequest(t *testing.T) {
	values, err := url.ParseQuery("filter[issue_id][in]=1,2&sort=-time_spent_seconds,id&fields=id,description" +
		"&relations=issue,issue.user&page[number]=2&page[size]=10")
	require.NoError(t, err)

	req, err := Parse(values, timeEntries, 50)
	require.NoError(t, err)
	assert.Len(t, req.Filters, 1)
	assert.Equal(t, []SortSpec{{"time_spent_seconds", Desc}, {"id", Asc}}, req.Sort)
	assert.Equal(t, []string{"id", "description"}, req.Fields.Names)
	assert.Equal(t, 3, req.Relations.Depth)
	assert.Equal(t, Page{Number: 2, Size: 10}, req.Page)
}

func TestParseAppliesDefaults(t *testing.T) {
	req, err := Parse(url.Values{}, timeEntries, 0)
	require.NoError(t, err)
	assert.Empty(t, req.Filters)
	assert.Equal(t, timeEntries.DefaultSort, req.Sort)
	assert.Equal(t, []string{"id", "started_at"}, req.Fields.Names)
	assert.Equal(t, 1, req.Relations.Depth)
	assert.Equal(t, Page{Number: 1, Size: 30}, req.Page)
}

func TestParseCollectsOneErrorPerCategory(t *testing.T) {
	values := url.Values{
		"filter[secret]": {"x"},
		"filter[other]":  {"y"},
		"sort":           {"nope"},
		"relations":      {"tenant"},
		"fields":         {"password"},
		"page[size]":     {"1000"},
	}
	_, err := Parse(values, timeEntries, 100)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 5)

	m := errs.Map()
	assert.Contains(t, m, "other")
	assert.NotContains(t, m, "secret")
	assert.Contains(t, m, "sort")
	assert.Contains(t, m, "relations")
	assert.Contains(t, m, "fields")
	assert.Contains(t, m, "page[size]")
}

func TestParseIsIdempotent(t *testing.T) {
	values, err := url.ParseQuery("filter[description][lk]=fix&filter[issue_id]=4&sort=-id&relations=user,issue.project")
	require.NoError(t, err)

	first, err := Parse(values, timeEntries, 100)
	require.NoError(t, err)
	second, err := Parse(values, timeEntries, 100)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseShape(t *testing.T) {
	fields, rel, err := ParseShape(url.Values{"fields": {"*"}, "relations": {"issue"}}, timeEntries)
	require.NoError(t, err)
	assert.True(t, fields.All)
	assert.Equal(t, 2, rel.Depth)

	_, _, err = ParseShape(url.Values{"relations": {"tenant"}}, timeEntries)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 1)
}
