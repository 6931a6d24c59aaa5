package handlers

import (
	"net/http"

	"worklog/internal/domain/user"
	middlewarex "worklog/internal/http/middleware"
	"worklog/internal/query"
	"worklog/internal/services/data"
)

// Me returns the authenticated user. fields and relations work as on
// GET /users/{id}.
func Me(svc *data.Service[*user.User], res *query.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := middlewarex.PrincipalFrom(r.Context())
		tenantID, ok := tenant(w, r)
		if !ok {
			return
		}
		show(w, r, svc, res, tenantID, p.UserID)
	}
}
