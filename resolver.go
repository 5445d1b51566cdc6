package mapper

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// resolveIncludes fetches the included relations of every row
// concurrently and merges them into the rows under their relation names.
// Rows are changed only if every fetch succeeds.
func (m *Model) resolveIncludes(ctx context.Context, rows []Row, includes Includes) error {
	names, unknown := includes.names(m)
	for _, name := range unknown {
		m.logf("%s has no relation named %q, include ignored", m.tableName, name)
	}
	if len(names) == 0 {
		return nil
	}
	additions := make([]Row, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	if m.limit > 0 {
		g.SetLimit(m.limit)
	}
	for i, row := range rows {
		g.Go(func() error {
			out, err := m.resolveRow(ctx, row, names, includes)
			if err != nil {
				return err
			}
			additions[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, row := range rows {
		for name, value := range additions[i] {
			row[name] = value
		}
	}
	return nil
}

// resolveRow fetches the named relations of one row concurrently.
func (m *Model) resolveRow(ctx context.Context, row Row, names []string, includes Includes) (Row, error) {
	var mu sync.Mutex
	out := make(Row, len(names))
	g, ctx := errgroup.WithContext(ctx)
	if m.limit > 0 {
		g.SetLimit(m.limit)
	}
	for _, name := range names {
		g.Go(func() error {
			value, err := m.fetchRelation(ctx, row, m.relations[name], includes[name])
			if err != nil {
				return &ResolutionError{Table: m.tableName, Relation: name, Err: err}
			}
			mu.Lock()
			out[name] = value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchRelation finds the rows of the relation owned by the row. The
// caller's Where is combined with the join condition, which takes
// precedence on the same key. If the owner's join value is nil, nothing is
// queried and the empty value is returned.
func (m *Model) fetchRelation(ctx context.Context, owner Row, rel Relation, inc Include) (interface{}, error) {
	opts := &FindOptions{
		Include: inc.Include,
		OrderBy: inc.OrderBy,
		Limit:   inc.Limit,
	}
	var sel Selector
	switch rel.Kind {
	case Many:
		pk := owner[m.primaryKey]
		if pk == nil {
			return []Row{}, nil
		}
		if rel.Through == nil {
			sel = Where(inc.Where.merge(Filter{rel.JoinOn: pk}))
			break
		}
		ownerKey, err := rel.Through.foreignKeyTo(m)
		if err != nil {
			return nil, err
		}
		linkKey, err := rel.Through.foreignKeyTo(rel.Target)
		if err != nil {
			return nil, err
		}
		sel = Where(inc.Where.merge(Filter{rel.Through.TableName() + "." + ownerKey: pk}))
		opts.join = &Join{Model: rel.Through, Key: linkKey}
	case One:
		value := owner[rel.JoinOn]
		if value == nil {
			return nil, nil
		}
		sel = Key(value)
	case BelongsTo:
		value := owner[rel.JoinOn]
		if value == nil {
			return []Row{}, nil
		}
		sel = Where(inc.Where.merge(Filter{rel.Target.PrimaryKey(): value}))
	default:
		return nil, fmt.Errorf("unknown relation kind %d", rel.Kind)
	}
	result, err := rel.Target.Find(ctx, sel, opts)
	if err != nil {
		return nil, err
	}
	return result.Value(), nil
}
