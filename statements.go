package mapper

import (
	"strings"
)

type (
	// Statement is a driver-ready SQL statement with its positional
	// parameters.
	Statement struct {
		SQL  string
		Args []interface{}
	}

	// Statements builds statements for a model. Implementations must be
	// pure: they never perform I/O. Columns of the model (and of the
	// joined model) are known when Select, Insert, Update and Destroy are
	// called.
	Statements interface {
		Information(m *Model) (Statement, error)
		Select(q SelectQuery) (Statement, error)
		Insert(m *Model, schema *Schema, record Row) (Statement, error)
		Update(m *Model, schema *Schema, sel Selector, patch Row) (Statement, error)
		Destroy(m *Model, schema *Schema, sel Selector) (Statement, error)
		Truncate(m *Model, opts TruncateOptions) (Statement, error)
	}

	// SelectQuery is everything Statements.Select() needs to build a
	// SELECT statement.
	SelectQuery struct {
		Model    *Model
		Schema   *Schema
		Selector Selector
		OrderBy  []string
		Limit    int
		Offset   int
		Join     *JoinQuery
	}

	// JoinQuery is the join table of a many-to-many select. Rows of the
	// selected table are joined on Model.Key = selected table's primary
	// key.
	JoinQuery struct {
		Model  *Model
		Schema *Schema
		Key    string
	}

	// PostgresStatements builds PostgreSQL statements with $1, $2, ...
	// positional parameters.
	PostgresStatements struct{}
)

// Information builds the query of column metadata of the model's table,
// in ordinal order. Unqualified table names are looked up in the current
// schema.
func (PostgresStatements) Information(m *Model) (Statement, error) {
	s := &SelectSQL{
		fields: []string{"column_name", "data_type", "is_nullable", "column_default", "ordinal_position"},
		from:   "information_schema.columns",
	}
	schema, table := splitTableName(m.TableName())
	if schema == "" {
		s.Where("table_schema = current_schema()")
	} else {
		s.Where("table_schema = $?", schema)
	}
	s.Where("table_name = $?", table)
	s.OrderBy("ordinal_position")
	return newStatement(s.StringValues())
}

// Select builds a SELECT statement of all known columns.
//  SELECT id, name FROM users WHERE id IN ($1, $2)
// With a join, columns are qualified:
//  SELECT tags.id, tags.name FROM tags
//  INNER JOIN post_tags ON post_tags.tag_id = tags.id
//  WHERE post_tags.post_id = $1
func (PostgresStatements) Select(q SelectQuery) (Statement, error) {
	m := q.Model
	s := &SelectSQL{
		fields: q.Schema.Columns,
		from:   m.TableName(),
	}
	scope := columnScope{
		table:   m.TableName(),
		columns: q.Schema.Columns,
		namer:   m.ToColumnName,
	}
	if j := q.Join; j != nil {
		s.fields = AddTableName(s.fields, m.TableName())
		s.Join("INNER JOIN " + j.Model.TableName() + " ON " +
			j.Model.TableName() + "." + j.Key + " = " + m.TableName() + "." + m.PrimaryKey())
		scope.joinTable = j.Model.TableName()
		scope.joinColumns = j.Schema.Columns
	}
	if err := s.selector(scope, m.PrimaryKey(), q.Selector); err != nil {
		return Statement{}, err
	}
	s.OrderBy(q.OrderBy...).Limit(q.Limit).Offset(q.Offset)
	return newStatement(s.StringValues())
}

// Insert builds an INSERT statement of the record's values of known
// columns, returning the inserted row. Keys of unknown columns are
// ignored; ErrEmptyChanges is returned if no key is known.
func (PostgresStatements) Insert(m *Model, schema *Schema, record Row) (Statement, error) {
	s := &InsertSQL{table: m.TableName()}
	for _, c := range knownChanges(m, schema, record) {
		s.Set(c.column, c.value)
	}
	if len(s.fields) == 0 {
		return Statement{}, ErrEmptyChanges
	}
	s.Returning("*")
	return newStatement(s.StringValues())
}

// Update builds an UPDATE statement of the patch's values of known
// columns for rows matching the selector.
func (PostgresStatements) Update(m *Model, schema *Schema, sel Selector, patch Row) (Statement, error) {
	s := &UpdateSQL{table: m.TableName()}
	for _, c := range knownChanges(m, schema, patch) {
		s.Set(c.column, c.value)
	}
	if len(s.fields) == 0 {
		return Statement{}, ErrEmptyChanges
	}
	if err := s.selector(schema.scope(m), m.PrimaryKey(), sel); err != nil {
		return Statement{}, err
	}
	return newStatement(s.StringValues())
}

// Destroy builds a DELETE statement of rows matching the selector. A nil
// selector or an empty filter deletes all rows.
func (PostgresStatements) Destroy(m *Model, schema *Schema, sel Selector) (Statement, error) {
	s := &DeleteSQL{table: m.TableName()}
	if err := s.selector(schema.scope(m), m.PrimaryKey(), sel); err != nil {
		return Statement{}, err
	}
	return newStatement(s.StringValues())
}

// Truncate builds a TRUNCATE TABLE statement.
func (PostgresStatements) Truncate(m *Model, opts TruncateOptions) (Statement, error) {
	return Statement{SQL: TruncateSQL{table: m.TableName(), TruncateOptions: opts}.String()}, nil
}

func newStatement(sql string, args []interface{}) (Statement, error) {
	return Statement{SQL: sql, Args: args}, nil
}

type change struct {
	column string
	value  interface{}
}

// knownChanges returns values of the row for known columns, in column
// order.
func knownChanges(m *Model, schema *Schema, row Row) (out []change) {
	values := map[string]interface{}{}
	for key, value := range row {
		values[m.ToColumnName(key)] = value
	}
	for _, column := range schema.Columns {
		if value, ok := values[column]; ok {
			out = append(out, change{column, value})
		}
	}
	return
}

// "public.users" => "public", "users"
func splitTableName(name string) (schema, table string) {
	if i := strings.Index(name, "."); i != -1 {
		return name[:i], name[i+1:]
	}
	return "", name
}
