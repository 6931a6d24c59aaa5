package query

import "strings"

// Fields is the set of attributes to serialize. All means every attribute.
type Fields struct {
	All   bool
	Names []string
}

// Includes reports whether name should be serialized.
func (f Fields) Includes(name string) bool {
	return f.All || contains(f.Names, name)
}

// ParseFields parses "a,b" or "*". An empty value selects defaults, or
// everything when defaults is empty.
func ParseFields(raw string, allowed, defaults []string) (Fields, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if len(defaults) == 0 {
			return Fields{All: true}, nil
		}
		return Fields{Names: append([]string(nil), defaults...)}, nil
	}
	var f Fields
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			continue
		case name == "*":
			return Fields{All: true}, nil
		case !contains(allowed, name):
			return Fields{}, invalid("fields", "field %q is not available", name)
		case !contains(f.Names, name):
			f.Names = append(f.Names, name)
		}
	}
	if len(f.Names) == 0 {
		return Fields{All: true}, nil
	}
	return f, nil
}
