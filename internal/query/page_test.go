package query

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageDefaults(t *testing.T) {
	page, err := ParsePage(PageParams{}, 0)
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 1, Size: 30}, page)
	assert.Equal(t, 0, page.Offset())
}

func TestParsePageExplicit(t *testing.T) {
	page, err := ParsePage(PageParams{Number: "3", Size: "20"}, 100)
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 3, Size: 20}, page)
	assert.Equal(t, 40, page.Offset())
}

func TestParsePageDefaultSizeRespectsSmallMax(t *testing.T) {
	page, err := ParsePage(PageParams{}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, page.Size)
}

func TestParsePageRejects(t *testing.T) {
	tests := []struct {
		raw   PageParams
		field string
	}{
		{PageParams{Number: "0"}, "page[number]"},
		{PageParams{Number: "-1"}, "page[number]"},
		{PageParams{Number: "two"}, "page[number]"},
		{PageParams{Size: "0"}, "page[size]"},
		{PageParams{Size: "101"}, "page[size]"},
		{PageParams{Number: "1000000000000000000", Size: "30"}, "page[number]"},
		{PageParams{Number: "9223372036854775807", Size: "2"}, "page[number]"},
	}
	for _, tt := range tests {
		_, err := ParsePage(tt.raw, 100)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, tt.field, ve.Field)
	}
}

func TestParsePageLargestNumberKeepsOffsetPositive(t *testing.T) {
	n := math.MaxInt/30 + 1
	p, err := ParsePage(PageParams{Number: strconv.Itoa(n), Size: "30"}, 100)
	require.NoError(t, err)
	assert.Positive(t, p.Offset())

	_, err = ParsePage(PageParams{Number: strconv.Itoa(n + 1), Size: "30"}, 100)
	assert.Error(t, err)
}

func TestPageLastPage(t *testing.T) {
	p := Page{Number: 1, Size: 30}
	assert.Equal(t, 1, p.LastPage(0))
	assert.Equal(t, 1, p.LastPage(30))
	assert.Equal(t, 2, p.LastPage(31))
}
