package mapper

import (
	"strconv"
	"strings"
)

type (
	// UpdateSQL represents an UPDATE statement. It is created by
	// PostgresStatements.Update(). Set() must be called before any
	// condition is added, so parameters of SET come first.
	UpdateSQL struct {
		sqlConditions
		table       string
		fields      []string
		fieldsIndex map[string]int
	}
)

// Adds "column = value" to UPDATE statement. A column set twice keeps the
// last value.
func (s *UpdateSQL) Set(column string, value interface{}) *UpdateSQL {
	if s.fieldsIndex == nil {
		s.fieldsIndex = map[string]int{}
	}
	if idx, ok := s.fieldsIndex[column]; ok { // prevent duplication
		s.args[idx] = value
		return s
	}
	s.args = append(s.args, value)
	s.fieldsIndex[column] = len(s.args) - 1
	s.fields = append(s.fields, column+" = $"+strconv.Itoa(len(s.args)))
	return s
}

func (s *UpdateSQL) String() string {
	sql, _ := s.StringValues()
	return sql
}

func (s *UpdateSQL) StringValues() (string, []interface{}) {
	if len(s.fields) == 0 {
		return "", nil
	}
	return "UPDATE " + s.table + " SET " + strings.Join(s.fields, ", ") + s.where(), s.args
}
