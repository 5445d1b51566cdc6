package mapper

import (
	"errors"
)

var (
	ErrNoClient           = errors.New("no client")
	ErrNoPrimaryKey       = errors.New("no primary key")
	ErrTableNotFound      = errors.New("table not found")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrUnknownOperator    = errors.New("unknown operator")
	ErrEmptyChanges       = errors.New("no known columns to change")
	ErrInvalidValue       = errors.New("invalid value for operator")
	ErrForeignKeyNotFound = errors.New("foreign key not found")
)

type (
	// SchemaLoadError is returned when the information schema of a table
	// could not be loaded. A failed load is never cached.
	SchemaLoadError struct {
		Table string
		Err   error
	}

	// StatementError is returned when the statement builder rejects a
	// selector, filter or record, before anything is sent to the database.
	StatementError struct {
		Table string
		Err   error
	}

	// ExecutionError is returned when the client fails to execute a
	// statement.
	ExecutionError struct {
		Table string
		SQL   string
		Err   error
	}

	// ResolutionError is returned when fetching an included relation
	// fails. Err is the error of the failed sub-fetch, which may itself be
	// a ResolutionError for nested includes.
	ResolutionError struct {
		Table    string
		Relation string
		Err      error
	}
)

func (e *SchemaLoadError) Error() string {
	return "load schema of " + e.Table + ": " + e.Err.Error()
}

func (e *SchemaLoadError) Unwrap() error { return e.Err }

func (e *StatementError) Error() string {
	return "build statement for " + e.Table + ": " + e.Err.Error()
}

func (e *StatementError) Unwrap() error { return e.Err }

func (e *ExecutionError) Error() string {
	return "execute statement on " + e.Table + ": " + e.Err.Error()
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Error() string {
	return "include " + e.Relation + " of " + e.Table + ": " + e.Err.Error()
}

func (e *ResolutionError) Unwrap() error { return e.Err }
