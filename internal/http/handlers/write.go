package handlers

import (
	"context"
	"net/http"

	"worklog/internal/http/respond"
	"worklog/internal/query"
	"worklog/internal/resource"
)

var allFields = query.Fields{All: true}

// Create handles POST /{resource}.
func Create[Req any, T resource.Model](fn func(ctx context.Context, tenantID int64, req Req) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenant(w, r)
		if !ok {
			return
		}
		var req Req
		if !decode(w, r, &req) {
			return
		}

		item, err := fn(r.Context(), tenantID, req)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.Created(w, resource.Shape(item, allFields, 1))
	}
}

// Update handles PUT and PATCH /{resource}/{id}. Both apply only the fields
// present in the body.
func Update[Req any, T resource.Model](fn func(ctx context.Context, tenantID, id int64, req Req) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenant(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req Req
		if !decode(w, r, &req) {
			return
		}

		item, err := fn(r.Context(), tenantID, id, req)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.OK(w, resource.Shape(item, allFields, 1))
	}
}
