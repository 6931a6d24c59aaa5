package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"worklog/internal/query"

	"github.com/jackc/pgx/v5"
)

type statement struct {
	sql  string
	args []any
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// builder accumulates a WHERE clause and its bind arguments. Identifiers only
// ever come from the schema, values only ever travel as arguments.
type builder struct {
	sc    *schema
	where []string
	args  []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) column(field string) (string, error) {
	if !b.sc.hasColumn(field) {
		return "", fmt.Errorf("%s has no column %q", b.sc.table, field)
	}
	return quote(field), nil
}

func (b *builder) predicate(p query.Predicate) error {
	col, err := b.column(p.Field)
	if err != nil {
		return err
	}
	args, err := p.Args()
	if err != nil {
		return err
	}

	switch p.Operator {
	case query.OpIn, query.OpNin:
		marks := make([]string, len(args))
		for i, a := range args {
			marks[i] = b.bind(a)
		}
		b.where = append(b.where, fmt.Sprintf("%s %s (%s)", col, p.Operator.SQL(), strings.Join(marks, ", ")))
	case query.OpBetween:
		b.where = append(b.where, fmt.Sprintf("%s BETWEEN %s AND %s", col, b.bind(args[0]), b.bind(args[1])))
	case query.OpLike:
		b.where = append(b.where, fmt.Sprintf(`%s LIKE %s ESCAPE '\'`, col, b.bind(likePattern(p.Value()))))
	default:
		b.where = append(b.where, fmt.Sprintf("%s %s %s", col, p.Operator.SQL(), b.bind(args[0])))
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `_`, `\_`)

// likePattern turns a bare term into a literal contains match; values that
// already carry a % are used as written, with \ as the escape character.
func likePattern(v string) string {
	if strings.Contains(v, "%") {
		return v
	}
	return "%" + likeEscaper.Replace(v) + "%"
}

func (b *builder) orderBy(specs []query.SortSpec) (string, error) {
	parts := make([]string, 0, len(specs)+1)
	byID := false
	for _, s := range specs {
		col, err := b.column(s.Field)
		if err != nil {
			return "", err
		}
		parts = append(parts, col+" "+s.Direction.SQL())
		byID = byID || s.Field == "id"
	}
	if !byID {
		parts = append(parts, quote("id")+" ASC")
	}
	return strings.Join(parts, ", "), nil
}

// buildList returns the page query and the matching count query for req.
func buildList(sc *schema, tenantID int64, req *query.Request) (list, count statement, err error) {
	b := &builder{sc: sc}
	b.where = append(b.where, quote("tenant_id")+" = "+b.bind(tenantID))
	for _, p := range req.Filters {
		if err := b.predicate(p); err != nil {
			return statement{}, statement{}, err
		}
	}
	where := strings.Join(b.where, " AND ")

	count = statement{
		sql:  fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", quote(sc.table), where),
		args: append([]any(nil), b.args...),
	}

	order, err := b.orderBy(req.Sort)
	if err != nil {
		return statement{}, statement{}, err
	}
	page := req.Page
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Size < 1 {
		page.Size = query.DefaultPageSize
	}
	limit, offset := b.bind(page.Size), b.bind(page.Offset())

	list = statement{
		sql: fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT %s OFFSET %s",
			sc.selectList(), quote(sc.table), where, order, limit, offset),
		args: b.args,
	}
	return list, count, nil
}

func buildFindByID(sc *schema, tenantID, id int64) statement {
	return statement{
		sql: fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
			sc.selectList(), quote(sc.table), quote("tenant_id"), quote("id")),
		args: []any{tenantID, id},
	}
}

func buildFindByIDs(sc *schema, tenantID int64, ids []int64) statement {
	return statement{
		sql: fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2)",
			sc.selectList(), quote(sc.table), quote("tenant_id"), quote("id")),
		args: []any{tenantID, ids},
	}
}

func buildDelete(sc *schema, tenantID, id int64) statement {
	return statement{
		sql:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", quote(sc.table), quote("tenant_id"), quote("id")),
		args: []any{tenantID, id},
	}
}
