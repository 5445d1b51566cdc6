package mapper

import (
	"context"
)

// Truncate removes all rows of the table.
//  // TRUNCATE TABLE users RESTART IDENTITY
//  users.Truncate(ctx, mapper.TruncateOptions{RestartIdentity: true})
func (m *Model) Truncate(ctx context.Context, options ...TruncateOptions) error {
	if _, err := m.Schema(ctx); err != nil {
		return err
	}
	var opts TruncateOptions
	if len(options) > 0 {
		opts = options[0]
	}
	stmt, err := m.statements.Truncate(m, opts)
	if err != nil {
		return &StatementError{Table: m.tableName, Err: err}
	}
	if _, err := m.exec(ctx, stmt); err != nil {
		return &ExecutionError{Table: m.tableName, SQL: stmt.SQL, Err: err}
	}
	return nil
}

// Create inserts the record and returns the inserted row, including
// database defaults. Keys not matching any column are ignored.
//  // INSERT INTO users (name, email) VALUES ($1, $2) RETURNING *
//  user, err := users.Create(ctx, mapper.Row{"name": "Ann", "email": "ann@example.com"})
func (m *Model) Create(ctx context.Context, record Row) (Row, error) {
	schema, err := m.Schema(ctx)
	if err != nil {
		return nil, err
	}
	stmt, err := m.statements.Insert(m, schema, record)
	if err != nil {
		return nil, &StatementError{Table: m.tableName, Err: err}
	}
	rows, err := m.query(ctx, stmt)
	if err != nil {
		return nil, &ExecutionError{Table: m.tableName, SQL: stmt.SQL, Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Find returns rows matching the selector, with the requested relations
// included. The value of the result is a list for Keys() and Where()
// selectors and a single row or nil for a Key() selector. A nil selector
// selects all rows.
//  // SELECT id, name FROM users WHERE id IN ($1, $2)
//  result, err := users.Find(ctx, mapper.Keys(1, 2), &mapper.FindOptions{
//  	Include: mapper.Includes{"posts": {OrderBy: []string{"id DESC"}}},
//  })
func (m *Model) Find(ctx context.Context, sel Selector, opts *FindOptions) (Result, error) {
	return m.find(ctx, sel, opts, false)
}

// FindOne returns the first row matching the selector, or nil if there is
// none.
//  // SELECT id, name FROM users WHERE (active = $1) AND (name = $2) LIMIT 1
//  user, err := users.FindOne(ctx, mapper.Where(mapper.Filter{"name": "Ann", "active": true}), nil)
func (m *Model) FindOne(ctx context.Context, sel Selector, opts *FindOptions) (Row, error) {
	result, err := m.find(ctx, sel, opts, true)
	if err != nil {
		return nil, err
	}
	return result.Row(), nil
}

func (m *Model) find(ctx context.Context, sel Selector, opts *FindOptions, findOne bool) (Result, error) {
	o := opts.copy()
	if findOne {
		o.Limit = 1
	}
	schema, join, err := m.ensureSchema(ctx, o.join)
	if err != nil {
		return Result{}, err
	}
	stmt, err := m.statements.Select(SelectQuery{
		Model:    m,
		Schema:   schema,
		Selector: sel,
		OrderBy:  o.OrderBy,
		Limit:    o.Limit,
		Offset:   o.Offset,
		Join:     join,
	})
	if err != nil {
		return Result{}, &StatementError{Table: m.tableName, Err: err}
	}
	rows, err := m.query(ctx, stmt)
	if err != nil {
		return Result{}, &ExecutionError{Table: m.tableName, SQL: stmt.SQL, Err: err}
	}
	result := shape(rows, sel, findOne)
	if len(o.Include) == 0 || result.Len() == 0 {
		return result, nil
	}
	if err := m.resolveIncludes(ctx, result.rows, o.Include); err != nil {
		return Result{}, err
	}
	return result, nil
}

// Update updates rows matching the selector with values of the patch and
// returns number of rows affected.
//  // UPDATE users SET name = $1 WHERE id = $2
//  n, err := users.Update(ctx, mapper.Key(1), mapper.Row{"name": "Bob"})
func (m *Model) Update(ctx context.Context, sel Selector, patch Row) (int64, error) {
	schema, err := m.Schema(ctx)
	if err != nil {
		return 0, err
	}
	stmt, err := m.statements.Update(m, schema, sel, patch)
	if err != nil {
		return 0, &StatementError{Table: m.tableName, Err: err}
	}
	n, err := m.exec(ctx, stmt)
	if err != nil {
		return 0, &ExecutionError{Table: m.tableName, SQL: stmt.SQL, Err: err}
	}
	return n, nil
}

// Destroy deletes rows matching the selector and returns number of rows
// affected. A nil selector deletes all rows.
//  // DELETE FROM users WHERE id IN ($1, $2)
//  n, err := users.Destroy(ctx, mapper.Keys(1, 2))
func (m *Model) Destroy(ctx context.Context, sel Selector) (int64, error) {
	schema, err := m.Schema(ctx)
	if err != nil {
		return 0, err
	}
	stmt, err := m.statements.Destroy(m, schema, sel)
	if err != nil {
		return 0, &StatementError{Table: m.tableName, Err: err}
	}
	n, err := m.exec(ctx, stmt)
	if err != nil {
		return 0, &ExecutionError{Table: m.tableName, SQL: stmt.SQL, Err: err}
	}
	return n, nil
}
