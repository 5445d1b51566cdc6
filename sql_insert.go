package mapper

import (
	"fmt"
	"strings"
)

type (
	// InsertSQL represents an INSERT statement. It is created by
	// PostgresStatements.Insert().
	InsertSQL struct {
		table            string
		fields           []string
		values           []interface{}
		outputExpression string
	}
)

// Adds a column value to the INSERT statement. A column set twice keeps
// the last value.
func (s *InsertSQL) Set(column string, value interface{}) *InsertSQL {
	for i, field := range s.fields {
		if field == column { // prevent duplication
			s.values[i] = value
			return s
		}
	}
	s.fields = append(s.fields, column)
	s.values = append(s.values, value)
	return s
}

// Returning adds a RETURNING clause to retrieve values from inserted rows.
func (s *InsertSQL) Returning(expressions ...string) *InsertSQL {
	s.outputExpression = strings.Join(expressions, ", ")
	return s
}

func (s InsertSQL) String() string {
	sql, _ := s.StringValues()
	return sql
}

func (s *InsertSQL) StringValues() (string, []interface{}) {
	if len(s.fields) == 0 {
		return "", nil
	}
	numbers := make([]string, len(s.fields))
	for i := range s.fields {
		numbers[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := "INSERT INTO " + s.table + " (" + strings.Join(s.fields, ", ") + ") VALUES (" + strings.Join(numbers, ", ") + ")"
	if s.outputExpression != "" {
		sql += " RETURNING " + s.outputExpression
	}
	return sql, s.values
}
