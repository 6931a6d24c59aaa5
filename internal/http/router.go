package httpx

import (
	"net/http"

	"worklog/internal/catalog"
	"worklog/internal/config"
	"worklog/internal/domain/jira"
	"worklog/internal/domain/user"
	"worklog/internal/domain/worklog"
	"worklog/internal/http/handlers"
	middlewarex "worklog/internal/http/middleware"
	"worklog/internal/metrics"
	"worklog/internal/services/data"
	jirasvc "worklog/internal/services/jira"
	usersvc "worklog/internal/services/user"
	worklogsvc "worklog/internal/services/worklog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// DataServices holds the generic read/delete services per resource.
type DataServices struct {
	Users        *data.Service[*user.User]
	JiraUsers    *data.Service[*jira.User]
	JiraProjects *data.Service[*jira.Project]
	JiraTeams    *data.Service[*jira.Team]
	JiraIssues   *data.Service[*jira.Issue]
	TimeEntries  *data.Service[*worklog.TimeEntry]
}

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config         config.Cfg
	Catalog        catalog.Catalog
	DB             handlers.Pinger
	RateCounter    middlewarex.Counter
	Data           DataServices
	UserService    *usersvc.Service
	JiraService    *jirasvc.Service
	WorklogService *worklogsvc.Service
}

// NewRouter builds the HTTP API.
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middlewarex.RequestLogger)
	r.Use(metrics.Instrument)
	r.Use(chimw.Recoverer)

	r.Get("/health", handlers.Health(deps.DB))
	r.Handle("/metrics", metrics.Handler())

	maxPage := deps.Config.Query.MaxPageSize
	cat := deps.Catalog
	d := deps.Data

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.JWTAuth(deps.Config.Sec.JWTSecret, deps.Config.Sec.JWTIssuer))
		if deps.RateCounter != nil {
			r.Use(middlewarex.RateLimit(deps.RateCounter, deps.Config.Sec.RateLimitPerMin))
		}

		r.Get("/me", handlers.Me(d.Users, cat.Get(catalog.Users)))

		r.Route("/"+catalog.Users, func(r chi.Router) {
			r.Get("/", handlers.List(d.Users, cat.Get(catalog.Users), maxPage))
			r.Get("/{id}", handlers.Get(d.Users, cat.Get(catalog.Users)))
			r.Group(func(r chi.Router) {
				r.Use(middlewarex.RequireAdmin)
				r.Post("/", handlers.Create(deps.UserService.Create))
				r.Put("/{id}", handlers.Update(deps.UserService.Update))
				r.Patch("/{id}", handlers.Update(deps.UserService.Update))
				r.Delete("/{id}", handlers.Delete(d.Users))
			})
		})

		r.Route("/"+catalog.JiraUsers, func(r chi.Router) {
			r.Get("/", handlers.List(d.JiraUsers, cat.Get(catalog.JiraUsers), maxPage))
			r.Get("/{id}", handlers.Get(d.JiraUsers, cat.Get(catalog.JiraUsers)))
			r.Post("/", handlers.Create(deps.JiraService.CreateUser))
			r.Put("/{id}", handlers.Update(deps.JiraService.UpdateUser))
			r.Patch("/{id}", handlers.Update(deps.JiraService.UpdateUser))
			r.Delete("/{id}", handlers.Delete(d.JiraUsers))
		})

		r.Route("/"+catalog.JiraProjects, func(r chi.Router) {
			r.Get("/", handlers.List(d.JiraProjects, cat.Get(catalog.JiraProjects), maxPage))
			r.Get("/{id}", handlers.Get(d.JiraProjects, cat.Get(catalog.JiraProjects)))
			r.Post("/", handlers.Create(deps.JiraService.CreateProject))
			r.Put("/{id}", handlers.Update(deps.JiraService.UpdateProject))
			r.Patch("/{id}", handlers.Update(deps.JiraService.UpdateProject))
			r.Delete("/{id}", handlers.Delete(d.JiraProjects))
		})

		r.Route("/"+catalog.JiraTeams, func(r chi.Router) {
			r.Get("/", handlers.List(d.JiraTeams, cat.Get(catalog.JiraTeams), maxPage))
			r.Get("/{id}", handlers.Get(d.JiraTeams, cat.Get(catalog.JiraTeams)))
			r.Post("/", handlers.Create(deps.JiraService.CreateTeam))
			r.Put("/{id}", handlers.Update(deps.JiraService.UpdateTeam))
			r.Patch("/{id}", handlers.Update(deps.JiraService.UpdateTeam))
			r.Delete("/{id}", handlers.Delete(d.JiraTeams))
		})

		r.Route("/"+catalog.JiraIssues, func(r chi.Router) {
			r.Get("/", handlers.List(d.JiraIssues, cat.Get(catalog.JiraIssues), maxPage))
			r.Get("/{id}", handlers.Get(d.JiraIssues, cat.Get(catalog.JiraIssues)))
			r.Post("/", handlers.Create(deps.JiraService.CreateIssue))
			r.Put("/{id}", handlers.Update(deps.JiraService.UpdateIssue))
			r.Patch("/{id}", handlers.Update(deps.JiraService.UpdateIssue))
			r.Delete("/{id}", handlers.Delete(d.JiraIssues))
		})

		r.Route("/"+catalog.TimeEntries, func(r chi.Router) {
			r.Get("/", handlers.List(d.TimeEntries, cat.Get(catalog.TimeEntries), maxPage))
			r.Get("/{id}", handlers.Get(d.TimeEntries, cat.Get(catalog.TimeEntries)))
			r.Post("/", handlers.Create(deps.WorklogService.Create))
			r.Put("/{id}", handlers.Update(deps.WorklogService.Update))
			r.Patch("/{id}", handlers.Update(deps.WorklogService.Update))
			r.Delete("/{id}", handlers.Delete(d.TimeEntries))
		})
	})

	return r
}
