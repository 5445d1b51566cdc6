package mapper

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cast"
	"golang.org/x/sync/singleflight"
)

type (
	// Schema is the column metadata of a table.
	Schema struct {
		Fields  []Field
		Columns []string
	}

	// Field is a row of information_schema.columns.
	Field struct {
		ColumnName      string  `json:"column_name"`
		DataType        string  `json:"data_type"`
		Nullable        bool    `json:"nullable"`
		Default         *string `json:"default"`
		OrdinalPosition int     `json:"ordinal_position"`
	}

	// SchemaCache memoizes schemas of models. Schemas are loaded at most
	// once per model: concurrent first callers wait for the same load. A
	// failed load is not cached, so the next call loads again. Entries are
	// never invalidated. Clones of a model share its entry.
	SchemaCache struct {
		mu      sync.RWMutex
		schemas map[*modelInfo]*Schema
		group   singleflight.Group
	}
)

var defaultSchemaCache = NewSchemaCache()

// NewSchemaCache creates an empty SchemaCache.
func NewSchemaCache() *SchemaCache {
	return &SchemaCache{
		schemas: map[*modelInfo]*Schema{},
	}
}

// Get returns the cached schema of the model, if any.
func (c *SchemaCache) Get(m *Model) (*Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.schemas[m.modelInfo]
	return s, ok
}

// Ensure returns the schema of the model, loading it with the model's
// statements and client if it is not cached. Concurrent callers share one
// load, which is not cancelled with any caller's context: a cancelled
// caller returns its context error while the others keep waiting.
func (c *SchemaCache) Ensure(ctx context.Context, m *Model) (*Schema, error) {
	if s, ok := c.Get(m); ok {
		return s, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, &SchemaLoadError{Table: m.tableName, Err: err}
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%p", m.modelInfo), func() (interface{}, error) {
		if s, ok := c.Get(m); ok {
			return s, nil
		}
		s, err := m.loadSchema(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.schemas[m.modelInfo] = s
		c.mu.Unlock()
		return s, nil
	})
	select {
	case <-ctx.Done():
		return nil, &SchemaLoadError{Table: m.tableName, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Schema), nil
	}
}

func (m *Model) loadSchema(ctx context.Context) (*Schema, error) {
	stmt, err := m.statements.Information(m)
	if err != nil {
		return nil, &SchemaLoadError{Table: m.tableName, Err: err}
	}
	rows, err := m.query(ctx, stmt)
	if err != nil {
		return nil, &SchemaLoadError{Table: m.tableName, Err: err}
	}
	if len(rows) == 0 {
		return nil, &SchemaLoadError{Table: m.tableName, Err: ErrTableNotFound}
	}
	s := &Schema{}
	for _, row := range rows {
		f := Field{
			ColumnName:      cast.ToString(row["column_name"]),
			DataType:        cast.ToString(row["data_type"]),
			Nullable:        cast.ToString(row["is_nullable"]) == "YES",
			OrdinalPosition: cast.ToInt(row["ordinal_position"]),
		}
		if row["column_default"] != nil {
			def := cast.ToString(row["column_default"])
			f.Default = &def
		}
		s.Fields = append(s.Fields, f)
		s.Columns = append(s.Columns, f.ColumnName)
	}
	m.logf("loaded %d columns of %s", len(s.Columns), m.tableName)
	return s, nil
}

// ensureSchema loads the schema of the model and, for a many-to-many
// select, of the join model. Both are required before the select is built.
func (m *Model) ensureSchema(ctx context.Context, join *Join) (*Schema, *JoinQuery, error) {
	schema, err := m.schemas.Ensure(ctx, m)
	if err != nil {
		return nil, nil, err
	}
	if join == nil {
		return schema, nil, nil
	}
	joinSchema, err := join.Model.Schema(ctx)
	if err != nil {
		return nil, nil, err
	}
	return schema, &JoinQuery{Model: join.Model, Schema: joinSchema, Key: join.Key}, nil
}

// Column returns the field of the named column.
func (s *Schema) Column(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.ColumnName == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s *Schema) scope(m *Model) columnScope {
	return columnScope{
		table:   m.TableName(),
		columns: s.Columns,
		namer:   m.ToColumnName,
	}
}
