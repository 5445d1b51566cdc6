package mapper

import (
	"context"
	"strconv"

	"github.com/gopsql/db"
	"github.com/gopsql/logger"
)

type (
	// Model is a database table with a primary key and declared
	// relations. Table name is inferred from the name of the struct passed
	// to NewModel(), the tag of its __TABLE_NAME__ field or its
	// TableName() receiver, or set directly with NewModelTable(). Columns
	// are not declared: they are loaded from the information schema the
	// first time the model is used and cached in its SchemaCache.
	Model struct {
		client     Client
		logger     logger.Logger
		statements Statements
		schemas    *SchemaCache
		limit      int
		*modelInfo
	}

	modelInfo struct {
		tableName     string
		primaryKey    string
		relations     map[string]Relation
		relationNames []string
		foreignKeys   []ForeignKey
	}

	// PrimaryKey is an option to set the primary key column of a Model.
	PrimaryKey string

	// ConcurrencyLimit is an option to cap the number of concurrent
	// sub-fetches of each fan-out when resolving includes. Zero or less
	// means no limit.
	ConcurrencyLimit int
)

// Initialize a Model from a struct. For available options, see SetOptions().
//  users := mapper.NewModel(models.User{}, conn, logger.StandardLogger)
func NewModel(object interface{}, options ...interface{}) *Model {
	return NewModelTable(ToTableName(object), options...)
}

// Initialize a Model by defining table name only. For available options,
// see SetOptions().
//  users := mapper.NewModelTable("users", conn)
func NewModelTable(tableName string, options ...interface{}) (m *Model) {
	m = &Model{
		statements: PostgresStatements{},
		schemas:    defaultSchemaCache,
		modelInfo: &modelInfo{
			tableName:  tableName,
			primaryKey: DefaultPrimaryKey,
			relations:  map[string]Relation{},
		},
	}
	m.SetOptions(options...)
	return
}

func (m Model) String() string {
	return `model (table: "` + m.tableName + `") has ` +
		strconv.Itoa(len(m.relationNames)) + " relations"
}

// Table name of the Model.
func (m Model) TableName() string {
	return m.tableName
}

// Primary key column of the Model.
func (m Model) PrimaryKey() string {
	return m.primaryKey
}

// ToColumnName converts a filter or record key to a column name with
// DefaultColumnNamer, if any.
func (m Model) ToColumnName(in string) string {
	if DefaultColumnNamer != nil {
		return DefaultColumnNamer(in)
	}
	return in
}

// Clone returns a copy of the model. The copy shares table declarations
// and cached schema with the original.
func (m *Model) Clone() *Model {
	return &Model{
		client:     m.client,
		logger:     m.logger,
		statements: m.statements,
		schemas:    m.schemas,
		limit:      m.limit,
		modelInfo:  m.modelInfo,
	}
}

// Quiet returns a copy of the model without logger.
func (m *Model) Quiet() *Model {
	return m.Clone().SetLogger(nil)
}

// SetOptions sets options of the Model. Options can be a database
// connection (see SetConnection()), a Client (see SetClient()), a logger
// (see SetLogger()), a Statements builder, a *SchemaCache, a PrimaryKey or
// a ConcurrencyLimit.
func (m *Model) SetOptions(options ...interface{}) *Model {
	for _, option := range options {
		switch o := option.(type) {
		case Client:
			m.SetClient(o)
		case db.DB:
			m.SetConnection(o)
		case logger.Logger:
			m.SetLogger(o)
		case Statements:
			m.SetStatements(o)
		case *SchemaCache:
			m.SetSchemaCache(o)
		case PrimaryKey:
			m.primaryKey = string(o)
		case ConcurrencyLimit:
			m.limit = int(o)
		}
	}
	return m
}

// Return client of the Model.
func (m *Model) Client() Client {
	return m.client
}

// Set a database connection for the Model. It is wrapped with NewClient().
func (m *Model) SetConnection(conn db.DB) *Model {
	if conn == nil {
		m.client = nil
		return m
	}
	m.client = NewClient(conn)
	return m
}

// Set the client which executes statements of the Model. ErrNoClient is
// returned by operations if no client is set.
func (m *Model) SetClient(client Client) *Model {
	m.client = client
	return m
}

// Set the logger for the Model. Use logger.StandardLogger if you want to use
// Go's built-in standard logging package. By default, no logger is used, so
// the SQL statements are not printed to the console.
func (m *Model) SetLogger(logger logger.Logger) *Model {
	m.logger = logger
	return m
}

// Set the statement builder of the Model. Default is PostgresStatements.
func (m *Model) SetStatements(statements Statements) *Model {
	m.statements = statements
	return m
}

// Set the schema cache of the Model. By default (or if cache is nil) all
// models share one package-level cache.
func (m *Model) SetSchemaCache(cache *SchemaCache) *Model {
	if cache == nil {
		cache = defaultSchemaCache
	}
	m.schemas = cache
	return m
}

// Schema returns the columns of the Model, loading them from the
// information schema if they are not cached yet.
func (m *Model) Schema(ctx context.Context) (*Schema, error) {
	return m.schemas.Ensure(ctx, m)
}
