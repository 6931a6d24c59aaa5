package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	specs, err := ParseSort("name,-created_at", []string{"name", "created_at"})
	require.NoError(t, err)
	assert.Equal(t, []SortSpec{
		{Field: "name", Direction: Asc},
		{Field: "created_at", Direction: Desc},
	}, specs)
}

func TestParseSortPlusPrefixAndDuplicates(t *testing.T) {
	specs, err := ParseSort(" +name , ,-name,id", []string{"name", "id"})
	require.NoError(t, err)
	assert.Equal(t, []SortSpec{
		{Field: "name", Direction: Asc},
		{Field: "id", Direction: Asc},
	}, specs)
}

func TestParseSortEmpty(t *testing.T) {
	specs, err := ParseSort("", []string{"name"})
	require.NoError(t, err)
	assert.Nil(t, specs)
}

func TestParseSortRejectsUnknownField(t *testing.T) {
	_, err := ParseSort("name,-secret", []string{"name"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "sort", ve.Field)
	assert.Contains(t, ve.Message, "secret")
}

func TestDirectionSQL(t *testing.T) {
	assert.Equal(t, "ASC", Asc.SQL())
	assert.Equal(t, "DESC", Desc.SQL())
}
