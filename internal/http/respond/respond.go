// Package respond writes the JSON response envelope shared by every
// endpoint and maps service errors onto HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"worklog/internal/domain"
	"worklog/internal/query"
	"worklog/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data    any                 `json:"data"`
	Status  int                 `json:"status"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Meta    *Meta               `json:"meta,omitempty"`
}

// Meta describes the page returned by a list endpoint.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewMeta builds list metadata from a page and the unpaged row count.
func NewMeta(p query.Page, total int64) *Meta {
	return &Meta{
		CurrentPage: p.Number,
		PerPage:     p.Size,
		Total:       total,
		LastPage:    p.LastPage(total),
	}
}

// JSON writes env with the given status.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	env.Status = status
	if env.Message == "" {
		env.Message = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// OK writes data with status 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Data: data})
}

// Created writes data with status 201.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Envelope{Data: data})
}

// List writes a page of data with its metadata.
func List(w http.ResponseWriter, data any, meta *Meta) {
	JSON(w, http.StatusOK, Envelope{Data: data, Meta: meta})
}

// Fail writes an error envelope with a plain message.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Message: msg})
}

// Invalid writes a 422 with per-field messages.
func Invalid(w http.ResponseWriter, msg string, fields map[string][]string) {
	JSON(w, http.StatusUnprocessableEntity, Envelope{Message: msg, Errors: fields})
}

// Error maps err onto a status. Unknown errors are logged and hidden
// behind a 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		qerrs query.ValidationErrors
		qerr  *query.ValidationError
		derr  *domain.ValidationError
	)
	switch {
	case errors.As(err, &qerrs):
		Invalid(w, "invalid query parameters", qerrs.Map())
	case errors.As(err, &qerr):
		Invalid(w, "invalid query parameters", map[string][]string{qerr.Field: {qerr.Message}})
	case errors.As(err, &derr):
		Invalid(w, "validation failed", map[string][]string{derr.Field: {derr.Message}})
	case errors.Is(err, repositories.ErrNotFound):
		Fail(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, repositories.ErrConflict):
		Fail(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, repositories.ErrInvalidReference):
		Invalid(w, "referenced record does not exist", nil)
	default:
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		Fail(w, http.StatusInternalServerError, "internal error")
	}
}
