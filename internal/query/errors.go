package query

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected query parameter.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors collects at most one ValidationError per parameter category.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Error())
	}
	return strings.Join(parts, "; ")
}

// Map groups messages by field, the shape the HTTP layer renders.
func (e ValidationErrors) Map() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, v := range e {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}
