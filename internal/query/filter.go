package query

import (
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

const filterPrefix = "filter["

// Predicate is a single filter condition.
type Predicate struct {
	Field    string
	Operator Operator
	Kind     Kind
	Values   []string
}

// Value returns the first value, the only one for single-valued operators.
func (p Predicate) Value() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}

// Args returns the values coerced to the field kind.
func (p Predicate) Args() ([]any, error) {
	args := make([]any, 0, len(p.Values))
	for _, v := range p.Values {
		a, err := coerce(p.Kind, v)
		if err != nil {
			return nil, invalid(p.Field, "%q is not a valid %s", v, p.Kind)
		}
		args = append(args, a)
	}
	return args, nil
}

func coerce(kind Kind, v string) (any, error) {
	switch kind {
	case KindInt:
		return cast.ToInt64E(strings.TrimSpace(v))
	case KindFloat:
		return cast.ToFloat64E(strings.TrimSpace(v))
	case KindBool:
		return cast.ToBoolE(strings.TrimSpace(v))
	case KindTime:
		return cast.ToTimeE(strings.TrimSpace(v))
	default:
		return v, nil
	}
}

// ParseFilters extracts filter[field] and filter[field][op] parameters from
// values. Keys are visited in sorted order and the first rejected key stops the
// scan.
func ParseFilters(values url.Values, allowed map[string]Kind) ([]Predicate, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.HasPrefix(k, filterPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	preds := make([]Predicate, 0, len(keys))
	for _, key := range keys {
		field, token, ok := splitFilterKey(key)
		if !ok {
			return nil, invalid(key, "malformed filter parameter")
		}
		kind, ok := allowed[field]
		if !ok {
			return nil, invalid(field, "filtering by %s is not allowed", field)
		}
		op, ok := ParseOperator(token)
		if !ok {
			return nil, invalid(field, "unknown filter operator %q", token)
		}

		p := Predicate{Field: field, Operator: op, Kind: kind, Values: filterValues(op, values[key])}
		if err := checkArity(p); err != nil {
			return nil, err
		}
		if op == OpLike && kind != KindString {
			return nil, invalid(field, "lk can only be used on text fields")
		}
		if _, err := p.Args(); err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// splitFilterKey splits "filter[a][b]" into ("a", "b") and "filter[a]" into ("a", "").
func splitFilterKey(key string) (field, op string, ok bool) {
	rest := strings.TrimPrefix(key, filterPrefix)
	end := strings.IndexByte(rest, ']')
	if end <= 0 {
		return "", "", false
	}
	field, rest = rest[:end], rest[end+1:]
	if rest == "" {
		return field, "", true
	}
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") || len(rest) < 3 {
		return "", "", false
	}
	op = rest[1 : len(rest)-1]
	if strings.ContainsAny(op, "[]") {
		return "", "", false
	}
	return field, op, true
}

func filterValues(op Operator, raw []string) []string {
	if !op.Multi() {
		if len(raw) == 0 {
			return []string{""}
		}
		return []string{raw[len(raw)-1]}
	}
	var out []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func checkArity(p Predicate) error {
	switch p.Operator {
	case OpIn, OpNin:
		if len(p.Values) == 0 {
			return invalid(p.Field, "%s requires at least one value", p.Operator)
		}
	case OpBetween:
		if len(p.Values) != 2 {
			return invalid(p.Field, "between requires exactly two values")
		}
	}
	return nil
}
