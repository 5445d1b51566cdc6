package mapper

import (
	"errors"
	"reflect"
	"testing"
)

type insertTestStruct struct {
	Id     int
	Name   string
	Status string
	Score  int
}

func TestInsert(t *testing.T) {
	t.Parallel()
	m := NewModel(insertTestStruct{})
	schema := testSchema("id", "name", "status", "score")

	tests := []struct {
		name     string
		record   Row
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "single column",
			record:   Row{"name": "test"},
			wantSQL:  "INSERT INTO insert_test_structs (name) VALUES ($1) RETURNING *",
			wantArgs: []interface{}{"test"},
		},
		{
			name:     "columns in table order",
			record:   Row{"score": 100, "status": "active", "name": "test"},
			wantSQL:  "INSERT INTO insert_test_structs (name, status, score) VALUES ($1, $2, $3) RETURNING *",
			wantArgs: []interface{}{"test", "active", 100},
		},
		{
			name:     "unknown keys ignored",
			record:   Row{"name": "test", "password": "secret"},
			wantSQL:  "INSERT INTO insert_test_structs (name) VALUES ($1) RETURNING *",
			wantArgs: []interface{}{"test"},
		},
		{
			name:     "camel case keys",
			record:   Row{"Name": "test", "Score": 1},
			wantSQL:  "INSERT INTO insert_test_structs (name, score) VALUES ($1, $2) RETURNING *",
			wantArgs: []interface{}{"test", 1},
		},
		{
			name:     "nil value",
			record:   Row{"status": nil},
			wantSQL:  "INSERT INTO insert_test_structs (status) VALUES ($1) RETURNING *",
			wantArgs: []interface{}{nil},
		},
		{
			name:     "primary key",
			record:   Row{"id": 5, "name": "test"},
			wantSQL:  "INSERT INTO insert_test_structs (id, name) VALUES ($1, $2) RETURNING *",
			wantArgs: []interface{}{5, "test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostgresStatements{}.Insert(m, schema, tt.record)
			if err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			if got.SQL != tt.wantSQL {
				t.Errorf("SQL = %q, want %q", got.SQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(got.Args, tt.wantArgs) {
				t.Errorf("Args = %v, want %v", got.Args, tt.wantArgs)
			}
		})
	}
}

func TestInsertEmpty(t *testing.T) {
	t.Parallel()
	m := NewModel(insertTestStruct{})
	schema := testSchema("id", "name", "status", "score")

	for _, record := range []Row{nil, {}, {"unknown": 1}} {
		_, err := PostgresStatements{}.Insert(m, schema, record)
		if !errors.Is(err, ErrEmptyChanges) {
			t.Errorf("Insert(%v) error = %v, want %v", record, err, ErrEmptyChanges)
		}
	}
}

func TestInsertSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *InsertSQL
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "without returning",
			build:    func() *InsertSQL { return (&InsertSQL{table: "users"}).Set("name", "a") },
			wantSQL:  "INSERT INTO users (name) VALUES ($1)",
			wantArgs: []interface{}{"a"},
		},
		{
			name: "duplicate column keeps last value",
			build: func() *InsertSQL {
				return (&InsertSQL{table: "users"}).Set("name", "a").Set("age", 1).Set("name", "b")
			},
			wantSQL:  "INSERT INTO users (name, age) VALUES ($1, $2)",
			wantArgs: []interface{}{"b", 1},
		},
		{
			name: "returning",
			build: func() *InsertSQL {
				return (&InsertSQL{table: "users"}).Set("name", "a").Returning("id", "name")
			},
			wantSQL:  "INSERT INTO users (name) VALUES ($1) RETURNING id, name",
			wantArgs: []interface{}{"a"},
		},
		{
			name:    "empty",
			build:   func() *InsertSQL { return &InsertSQL{table: "users"} },
			wantSQL: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := tt.build().StringValues()
			if gotSQL != tt.wantSQL {
				t.Errorf("SQL = %q, want %q", gotSQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("Args = %v, want %v", gotArgs, tt.wantArgs)
			}
		})
	}
}
