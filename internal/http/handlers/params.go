package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	middlewarex "worklog/internal/http/middleware"
	"worklog/internal/http/respond"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// tenant returns the caller's tenant or writes a 401.
func tenant(w http.ResponseWriter, r *http.Request) (int64, bool) {
	tenantID, ok := middlewarex.TenantID(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "tenant not found")
	}
	return tenantID, ok
}

// pathID parses the {id} route parameter or writes a 404.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Fail(w, http.StatusNotFound, "resource not found")
		return 0, false
	}
	return id, true
}

// decode reads a JSON body into dst, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		respond.Invalid(w, msg, map[string][]string{"body": {err.Error()}})
		return false
	}
	return true
}
