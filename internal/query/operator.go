package query

import "strings"

// Operator is a filter comparison token as it appears in filter[field][op].
type Operator string

const (
	OpEq      Operator = "eq"
	OpNe      Operator = "ne"
	OpGte     Operator = "gte"
	OpGt      Operator = "gt"
	OpLte     Operator = "lte"
	OpLt      Operator = "lt"
	OpIn      Operator = "in"
	OpNin     Operator = "nin"
	OpLike    Operator = "lk"
	OpBetween Operator = "between"
)

var operatorSQL = map[Operator]string{
	OpEq:      "=",
	OpNe:      "!=",
	OpGte:     ">=",
	OpGt:      ">",
	OpLte:     "<=",
	OpLt:      "<",
	OpIn:      "IN",
	OpNin:     "NOT IN",
	OpLike:    "LIKE",
	OpBetween: "BETWEEN",
}

// ParseOperator maps a raw token to an Operator. An empty token means eq.
// "like" is accepted as a spelling of lk.
func ParseOperator(token string) (Operator, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	switch token {
	case "":
		return OpEq, true
	case "like":
		return OpLike, true
	}
	op := Operator(token)
	_, ok := operatorSQL[op]
	return op, ok
}

// SQL returns the SQL comparison operator for op.
func (op Operator) SQL() string {
	return operatorSQL[op]
}

// Multi reports whether op takes a list of values.
func (op Operator) Multi() bool {
	return op == OpIn || op == OpNin || op == OpBetween
}

// Operators lists every supported token in a stable order.
func Operators() []Operator {
	return []Operator{OpEq, OpNe, OpGte, OpGt, OpLte, OpLt, OpIn, OpNin, OpLike, OpBetween}
}
