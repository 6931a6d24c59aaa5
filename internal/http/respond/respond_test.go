package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"worklog/internal/domain"
	"worklog/internal/query"
	"worklog/internal/store/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		field  string
	}{
		{"query errors", query.ValidationErrors{{Field: "filter[foo]", Message: "unknown field"}}, 422, "filter[foo]"},
		{"domain error", domain.Invalid("email", "email is invalid"), 422, "email"},
		{"not found", fmt.Errorf("load: %w", repositories.ErrNotFound), 404, ""},
		{"conflict", repositories.ErrConflict, 409, ""},
		{"bad reference", repositories.ErrInvalidReference, 422, ""},
		{"unknown", fmt.Errorf("boom"), 500, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.Equal(t, tt.status, env.Status)
			if tt.field != "" {
				assert.Contains(t, env.Errors, tt.field)
			}
		})
	}
}

func TestListCarriesMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, []int{1, 2}, NewMeta(query.Page{Number: 2, Size: 2}, 5))

	env := decode(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.CurrentPage)
	assert.Equal(t, 3, env.Meta.LastPage)
	assert.Equal(t, int64(5), env.Meta.Total)
	assert.Equal(t, "OK", env.Message)
}
