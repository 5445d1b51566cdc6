package mapper

import (
	"context"

	"github.com/gopsql/db"
)

type (
	// Client executes statements. It is the only I/O boundary of a Model.
	// Query returns rows keyed by column name; Exec returns the number of
	// rows affected.
	Client interface {
		Query(ctx context.Context, query string, args ...interface{}) ([]Row, error)
		Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
	}

	connClient struct {
		conn db.DB
	}
)

// NewClient creates a Client from a database connection, for example:
//  conn := pgx.MustOpen("postgres://localhost:5432/mydb?sslmode=disable")
//  users := mapper.NewModelTable("users").SetClient(mapper.NewClient(conn))
// Connections that convert parameters (see db.ConvertParameters) get
// statements converted before execution.
func NewClient(conn db.DB) Client {
	return connClient{conn: conn}
}

func (c connClient) convert(query string, args []interface{}) (string, []interface{}) {
	if cp, ok := c.conn.(db.ConvertParameters); ok {
		return cp.ConvertParameters(query, args)
	}
	return query, args
}

// Query executes the query and scans every row into a Row. Values of
// []byte are converted to string.
func (c connClient) Query(ctx context.Context, query string, args ...interface{}) (out []Row, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	query, args = c.convert(query, args)
	var rows db.Rows
	rows, err = c.conn.Query(query, args...)
	if err != nil {
		return
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dests := make([]interface{}, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Exec executes a statement without returning any rows and returns the
// number of rows affected.
func (c connClient) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	query, args = c.convert(query, args)
	result, err := c.conn.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (m *Model) query(ctx context.Context, stmt Statement) ([]Row, error) {
	if m.client == nil {
		return nil, ErrNoClient
	}
	m.log(stmt.SQL, stmt.Args)
	return m.client.Query(ctx, stmt.SQL, stmt.Args...)
}

func (m *Model) exec(ctx context.Context, stmt Statement) (int64, error) {
	if m.client == nil {
		return 0, ErrNoClient
	}
	m.log(stmt.SQL, stmt.Args)
	return m.client.Exec(ctx, stmt.SQL, stmt.Args...)
}
