// Package catalog enumerates the listable resources and what each one allows
// for filtering, sorting, relations and field selection.
package catalog

import "worklog/internal/query"

const (
	Users        = "users"
	JiraIssues   = "jira-issues"
	JiraProjects = "jira-projects"
	JiraTeams    = "jira-teams"
	JiraUsers    = "jira-users"
	TimeEntries  = "time-entries"
)

// Catalog maps resource names to their query configuration.
type Catalog map[string]*query.Resource

// Get returns the configuration for name and panics when it is missing, which
// is a wiring bug.
func (c Catalog) Get(name string) *query.Resource {
	res, ok := c[name]
	if !ok {
		panic("catalog: unknown resource " + name)
	}
	return res
}

var stamps = map[string]query.Kind{
	"id":         query.KindInt,
	"created_at": query.KindTime,
	"updated_at": query.KindTime,
}

func withStamps(fields map[string]query.Kind) map[string]query.Kind {
	for k, v := range stamps {
		fields[k] = v
	}
	return fields
}

func keys(m map[string]query.Kind) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

var newestFirst = []query.SortSpec{{Field: "id", Direction: query.Desc}}

// New builds the catalog.
func New() Catalog {
	users := withStamps(map[string]query.Kind{
		"jira_user_id": query.KindInt,
		"name":         query.KindString,
		"email":        query.KindString,
		"role":         query.KindString,
	})
	jiraUsers := withStamps(map[string]query.Kind{
		"account_id":   query.KindString,
		"display_name": query.KindString,
		"email":        query.KindString,
		"active":       query.KindBool,
	})
	projects := withStamps(map[string]query.Kind{
		"jira_id": query.KindInt,
		"key":     query.KindString,
		"name":    query.KindString,
		"lead_id": query.KindInt,
	})
	teams := withStamps(map[string]query.Kind{
		"tempo_id": query.KindInt,
		"name":     query.KindString,
		"lead_id":  query.KindInt,
	})
	issues := withStamps(map[string]query.Kind{
		"jira_id":     query.KindInt,
		"key":         query.KindString,
		"summary":     query.KindString,
		"status":      query.KindString,
		"project_id":  query.KindInt,
		"team_id":     query.KindInt,
		"assignee_id": query.KindInt,
	})
	entries := withStamps(map[string]query.Kind{
		"tempo_worklog_id":   query.KindInt,
		"issue_id":           query.KindInt,
		"author_id":          query.KindInt,
		"description":        query.KindString,
		"started_at":         query.KindTime,
		"time_spent_seconds": query.KindInt,
		"billable_seconds":   query.KindInt,
	})

	return Catalog{
		Users: {
			Name:          Users,
			Filterable:    users,
			Sortable:      []string{"id", "name", "email", "role", "created_at"},
			Relations:     []string{"jira_user"},
			Fields:        keys(users),
			DefaultFields: []string{"id", "name", "email", "role"},
			DefaultSort:   []query.SortSpec{{Field: "name", Direction: query.Asc}},
		},
		JiraUsers: {
			Name:        JiraUsers,
			Filterable:  jiraUsers,
			Sortable:    []string{"id", "display_name", "email", "created_at"},
			Fields:      keys(jiraUsers),
			DefaultSort: []query.SortSpec{{Field: "display_name", Direction: query.Asc}},
		},
		JiraProjects: {
			Name:        JiraProjects,
			Filterable:  projects,
			Sortable:    []string{"id", "key", "name", "created_at"},
			Relations:   []string{"user"},
			Fields:      keys(projects),
			DefaultSort: []query.SortSpec{{Field: "key", Direction: query.Asc}},
		},
		JiraTeams: {
			Name:        JiraTeams,
			Filterable:  teams,
			Sortable:    []string{"id", "name", "created_at"},
			Relations:   []string{"user"},
			Fields:      keys(teams),
			DefaultSort: []query.SortSpec{{Field: "name", Direction: query.Asc}},
		},
		JiraIssues: {
			Name:          JiraIssues,
			Filterable:    issues,
			Sortable:      []string{"id", "key", "status", "created_at", "updated_at"},
			Relations:     []string{"project", "team", "user"},
			Fields:        keys(issues),
			DefaultFields: []string{"id", "key", "summary", "status"},
			DefaultSort:   newestFirst,
		},
		TimeEntries: {
			Name:          TimeEntries,
			Filterable:    entries,
			Sortable:      []string{"id", "started_at", "time_spent_seconds", "billable_seconds", "created_at"},
			Relations:     []string{"issue", "user", "project", "team"},
			Fields:        append(keys(entries), "hours"),
			DefaultFields: []string{"id", "issue_id", "author_id", "started_at", "time_spent_seconds", "description"},
			DefaultSort:   []query.SortSpec{{Field: "started_at", Direction: query.Desc}},
		},
	}
}
