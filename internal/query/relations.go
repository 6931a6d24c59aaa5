package query

import (
	"sort"
	"strings"
)

// Relations is the set of relations to eager-load.
//
// Names holds every segment of every requested path and is what resources
// check before embedding a relation. Paths keeps the full dotted paths for the
// store. Depth counts the root resource as level one, so "issue.user" needs
// depth 3.
type Relations struct {
	Names []string
	Paths []string
	Depth int
}

// Empty reports whether no relation was requested.
func (r Relations) Empty() bool {
	return len(r.Paths) == 0
}

// Tree is a relation path set folded into a nested map.
type Tree map[string]Tree

// Tree folds Paths into a nested map: "issue,issue.user" becomes {issue: {user: {}}}.
func (r Relations) Tree() Tree {
	root := Tree{}
	for _, p := range r.Paths {
		node := root
		for _, seg := range strings.Split(p, ".") {
			next, ok := node[seg]
			if !ok {
				next = Tree{}
				node[seg] = next
			}
			node = next
		}
	}
	return root
}

// ParseRelations parses "issue,issue.user". Every segment must be allowed.
func ParseRelations(raw string, allowed []string) (Relations, error) {
	rel := Relations{Depth: 1}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return rel, nil
	}
	names := make(map[string]bool)
	paths := make(map[string]bool)
	for _, path := range strings.Split(raw, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		segs := strings.Split(path, ".")
		for _, seg := range segs {
			if seg == "" {
				return Relations{}, invalid("relations", "malformed relation path %q", path)
			}
			if !contains(allowed, seg) {
				return Relations{}, invalid("relations", "relation %q is not allowed", seg)
			}
			names[seg] = true
		}
		if !paths[path] {
			paths[path] = true
			rel.Paths = append(rel.Paths, path)
		}
		if d := len(segs) + 1; d > rel.Depth {
			rel.Depth = d
		}
	}
	for n := range names {
		rel.Names = append(rel.Names, n)
	}
	sort.Strings(rel.Names)
	return rel, nil
}
