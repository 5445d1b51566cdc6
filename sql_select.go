package mapper

import (
	"fmt"
	"strings"
)

type (
	// SelectSQL is a SELECT statement. It is created by
	// PostgresStatements.Select() and PostgresStatements.Information().
	SelectSQL struct {
		sqlConditions
		fields  []string
		from    string
		join    string
		orderBy string
		limit   string
		offset  string
	}
)

// Adds join to SELECT statement.
func (s *SelectSQL) Join(expressions ...string) *SelectSQL {
	if s.join != "" && !strings.HasSuffix(s.join, " ") {
		s.join += " "
	}
	s.join += strings.Join(expressions, " ")
	return s
}

// Adds ORDER BY to SELECT statement.
func (s *SelectSQL) OrderBy(expressions ...string) *SelectSQL {
	s.orderBy = strings.Join(expressions, ", ")
	return s
}

// Adds LIMIT to SELECT statement. Zero or less removes it.
func (s *SelectSQL) Limit(count int) *SelectSQL {
	if count <= 0 {
		s.limit = ""
	} else {
		s.limit = fmt.Sprint(count)
	}
	return s
}

// Adds OFFSET to SELECT statement. Zero or less removes it.
func (s *SelectSQL) Offset(start int) *SelectSQL {
	if start <= 0 {
		s.offset = ""
	} else {
		s.offset = fmt.Sprint(start)
	}
	return s
}

func (s *SelectSQL) String() string {
	fields := "*"
	if len(s.fields) > 0 {
		fields = strings.Join(s.fields, ", ")
	}
	sql := "SELECT " + fields + " FROM " + s.from
	if s.join != "" {
		sql += " " + s.join
	}
	sql += s.where()
	if s.orderBy != "" {
		sql += " ORDER BY " + s.orderBy
	}
	if s.limit != "" {
		sql += " LIMIT " + s.limit
	}
	if s.offset != "" {
		sql += " OFFSET " + s.offset
	}
	return sql
}

func (s *SelectSQL) StringValues() (string, []interface{}) {
	return s.String(), s.args
}
