package handlers

import (
	"net/http"

	"worklog/internal/http/respond"
	"worklog/internal/metrics"
	"worklog/internal/query"
	"worklog/internal/resource"
	"worklog/internal/services/data"
)

// List handles GET /{resource}: filters, sorting, relations, field
// selection and paging all come from the query string.
func List[T resource.Model](svc *data.Service[T], res *query.Resource, maxPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenant(w, r)
		if !ok {
			return
		}

		req, err := query.Parse(r.URL.Query(), res, maxPageSize)
		if err != nil {
			metrics.RecordQueryRejection(svc.Name())
			respond.Error(w, r, err)
			return
		}

		page, err := svc.List(r.Context(), tenantID, req)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.List(w,
			resource.ShapeAll(page.Items, req.Fields, req.Relations.Depth),
			respond.NewMeta(page.Page, page.Total))
	}
}

// Get handles GET /{resource}/{id}. fields and relations are honoured.
func Get[T resource.Model](svc *data.Service[T], res *query.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenant(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		show(w, r, svc, res, tenantID, id)
	}
}

// Delete handles DELETE /{resource}/{id}.
func Delete[T any](svc *data.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := tenant(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), tenantID, id); err != nil {
			respond.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func show[T resource.Model](w http.ResponseWriter, r *http.Request, svc *data.Service[T], res *query.Resource, tenantID, id int64) {
	fields, rel, err := query.ParseShape(r.URL.Query(), res)
	if err != nil {
		metrics.RecordQueryRejection(svc.Name())
		respond.Error(w, r, err)
		return
	}

	item, err := svc.Get(r.Context(), tenantID, id, rel)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, resource.Shape(item, fields, rel.Depth))
}
