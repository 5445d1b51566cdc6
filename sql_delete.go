package mapper

type (
	// DeleteSQL represents a DELETE statement. It is created by
	// PostgresStatements.Destroy().
	DeleteSQL struct {
		sqlConditions
		table string
	}

	// TruncateSQL represents a TRUNCATE statement. It is created by
	// PostgresStatements.Truncate().
	TruncateSQL struct {
		table string
		TruncateOptions
	}
)

func (s *DeleteSQL) String() string {
	return "DELETE FROM " + s.table + s.where()
}

func (s *DeleteSQL) StringValues() (string, []interface{}) {
	return s.String(), s.args
}

func (s TruncateSQL) String() string {
	sql := "TRUNCATE TABLE " + s.table
	if s.RestartIdentity {
		sql += " RESTART IDENTITY"
	}
	if s.Cascade {
		sql += " CASCADE"
	}
	return sql
}
