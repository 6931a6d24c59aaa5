package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"worklog/internal/query"
	"worklog/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// table implements the read and delete half of repositories.Repository for
// one schema. Repositories embed it and add Save.
type table[T any] struct {
	db DBTX
	sc *schema
}

// FindByParams runs the count and page queries built from req, then loads the
// requested relations for the page.
func (t table[T]) FindByParams(ctx context.Context, tenantID int64, req *query.Request) (*repositories.Page[T], error) {
	list, count, err := buildList(t.sc, tenantID, req)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := t.db.QueryRow(ctx, count.sql, count.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", t.sc.table, err)
	}

	page := &repositories.Page[T]{Items: []T{}, Total: total, Page: req.Page}
	if total <= int64(req.Page.Offset()) {
		return page, nil
	}

	items, err := queryAll(ctx, t.db, t.sc, list)
	if err != nil {
		return nil, err
	}
	if !req.Relations.Empty() {
		if err := hydrate(ctx, t.db, t.sc, tenantID, items, req.Relations.Tree()); err != nil {
			return nil, err
		}
	}
	page.Items = typed[T](items)

	log.Debug().
		Str("table", t.sc.table).
		Int64("tenant_id", tenantID).
		Int("filters", len(req.Filters)).
		Int64("total", total).
		Int("returned", len(page.Items)).
		Msg("find by params")

	return page, nil
}

// FindByID finds a row inside the tenant and loads the requested relations.
func (t table[T]) FindByID(ctx context.Context, tenantID, id int64, rel query.Relations) (T, error) {
	var zero T
	st := buildFindByID(t.sc, tenantID, id)
	m, err := t.sc.scan(t.db.QueryRow(ctx, st.sql, st.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, repositories.ErrNotFound
		}
		return zero, err
	}
	if !rel.Empty() {
		if err := hydrate(ctx, t.db, t.sc, tenantID, []any{m}, rel.Tree()); err != nil {
			return zero, err
		}
	}
	return m.(T), nil
}

// Delete removes a row inside the tenant.
func (t table[T]) Delete(ctx context.Context, tenantID, id int64) error {
	st := buildDelete(t.sc, tenantID, id)
	tag, err := t.db.Exec(ctx, st.sql, st.args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func queryAll(ctx context.Context, db DBTX, sc *schema, st statement) ([]any, error) {
	rows, err := db.Query(ctx, st.sql, st.args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sc.table, err)
	}
	defer rows.Close()

	var items []any
	for rows.Next() {
		m, err := sc.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// hydrate loads every relation in tree for items with one query per relation
// and level, then recurses into the loaded rows.
func hydrate(ctx context.Context, db DBTX, sc *schema, tenantID int64, items []any, tree query.Tree) error {
	if len(items) == 0 || len(tree) == 0 {
		return nil
	}
	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rel, ok := sc.relations[name]
		if !ok {
			// allowed as a segment elsewhere in the graph but not on this table
			continue
		}
		ids := foreignKeys(items, rel)
		if len(ids) == 0 {
			continue
		}
		related, err := queryAll(ctx, db, rel.target, buildFindByIDs(rel.target, tenantID, ids))
		if err != nil {
			return err
		}
		byID := make(map[int64]any, len(related))
		for _, r := range related {
			byID[rel.target.id(r)] = r
		}
		for _, it := range items {
			if k := rel.key(it); k != nil {
				if r, ok := byID[*k]; ok {
					rel.set(it, r)
				}
			}
		}
		if err := hydrate(ctx, db, rel.target, tenantID, related, tree[name]); err != nil {
			return err
		}
	}
	return nil
}

func foreignKeys(items []any, rel belongsTo) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, it := range items {
		k := rel.key(it)
		if k == nil || seen[*k] {
			continue
		}
		seen[*k] = true
		ids = append(ids, *k)
	}
	return ids
}

func typed[T any](items []any) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.(T)
	}
	return out
}

// mapError translates constraint violations into repository errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return fmt.Errorf("%w: %s", repositories.ErrConflict, pgErr.ConstraintName)
	case "23503":
		return fmt.Errorf("%w: %s", repositories.ErrInvalidReference, pgErr.ConstraintName)
	}
	return err
}
