package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryFields = map[string]Kind{
	"description":        KindString,
	"time_spent_seconds": KindInt,
	"started_at":         KindTime,
	"issue_id":           KindInt,
}

func TestOperatorTable(t *testing.T) {
	want := map[string]string{
		"eq": "=", "ne": "!=", "gte": ">=", "gt": ">", "lte": "<=", "lt": "<",
		"in": "IN", "nin": "NOT IN", "lk": "LIKE", "between": "BETWEEN",
	}
	for token, sql := range want {
		op, ok := ParseOperator(token)
		require.True(t, ok, token)
		assert.Equal(t, sql, op.SQL(), token)
	}
	assert.Len(t, Operators(), len(want))

	for _, bad := range []string{"equals", "neq", "~", "ilike"} {
		_, ok := ParseOperator(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseOperatorDefaultsAndAlias(t *testing.T) {
	op, ok := ParseOperator("")
	require.True(t, ok)
	assert.Equal(t, OpEq, op)

	op, ok = ParseOperator("LIKE")
	require.True(t, ok)
	assert.Equal(t, OpLike, op)
}

func TestParseFiltersAcceptsEveryAllowedField(t *testing.T) {
	values := url.Values{
		"filter[description][lk]":         {"deploy"},
		"filter[time_spent_seconds][gte]": {"3600"},
		"filter[started_at][between]":     {"2024-01-01,2024-01-31"},
		"filter[issue_id][in]":            {"1,2", "3"},
	}
	preds, err := ParseFilters(values, entryFields)
	require.NoError(t, err)
	require.Len(t, preds, 4)

	byField := make(map[string]Predicate)
	for _, p := range preds {
		byField[p.Field] = p
	}
	assert.Equal(t, OpLike, byField["description"].Operator)
	assert.Equal(t, OpGte, byField["time_spent_seconds"].Operator)
	assert.Equal(t, []string{"1", "2", "3"}, byField["issue_id"].Values)

	args, err := byField["started_at"].Args()
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, time.January, args[0].(time.Time).Month())

	args, err = byField["time_spent_seconds"].Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3600)}, args)
}

func TestParseFiltersDefaultsToEq(t *testing.T) {
	preds, err := ParseFilters(url.Values{"filter[issue_id]": {"7"}}, entryFields)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, OpEq, preds[0].Operator)
	assert.Equal(t, "7", preds[0].Value())
}

func TestParseFiltersIgnoresOtherParameters(t *testing.T) {
	preds, err := ParseFilters(url.Values{"sort": {"-id"}, "page[size]": {"5"}}, entryFields)
	require.NoError(t, err)
	assert.Empty(t, preds)
}

func TestParseFiltersRejects(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		field  string
	}{
		{"field not allowed", url.Values{"filter[password_hash]": {"x"}}, "password_hash"},
		{"unknown operator", url.Values{"filter[issue_id][approx]": {"1"}}, "issue_id"},
		{"between needs two values", url.Values{"filter[issue_id][between]": {"1"}}, "issue_id"},
		{"in needs a value", url.Values{"filter[issue_id][in]": {""}}, "issue_id"},
		{"value not an integer", url.Values{"filter[issue_id][gt]": {"abc"}}, "issue_id"},
		{"like on a number", url.Values{"filter[issue_id][lk]": {"1"}}, "issue_id"},
		{"malformed key", url.Values{"filter[issue_id": {"1"}}, "filter[issue_id"},
		{"nested brackets", url.Values{"filter[issue_id][gt][x]": {"1"}}, "filter[issue_id][gt][x]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilters(tt.values, entryFields)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseFiltersFailsOnFirstSortedKey(t *testing.T) {
	values := url.Values{
		"filter[zzz]": {"1"},
		"filter[aaa]": {"1"},
	}
	_, err := ParseFilters(values, entryFields)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "aaa", ve.Field)
}
