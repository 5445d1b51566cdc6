package mapper

import (
	"errors"
	"reflect"
	"testing"
)

type deleteTestStruct struct {
	Id     int
	Name   string
	Status string
}

func TestDestroy(t *testing.T) {
	t.Parallel()
	m := NewModel(deleteTestStruct{})
	schema := testSchema("id", "name", "status")

	tests := []struct {
		name     string
		selector Selector
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:    "all rows",
			wantSQL: "DELETE FROM delete_test_structs",
		},
		{
			name:     "key",
			selector: Key(1),
			wantSQL:  "DELETE FROM delete_test_structs WHERE id = $1",
			wantArgs: []interface{}{1},
		},
		{
			name:     "keys",
			selector: Keys(1, 2, 3),
			wantSQL:  "DELETE FROM delete_test_structs WHERE id IN ($1, $2, $3)",
			wantArgs: []interface{}{1, 2, 3},
		},
		{
			name:     "no keys",
			selector: Keys(),
			wantSQL:  "DELETE FROM delete_test_structs WHERE FALSE",
		},
		{
			name:     "where",
			selector: Where(Filter{"status.in": []string{"a", "b"}, "name.ne": "root"}),
			wantSQL:  "DELETE FROM delete_test_structs WHERE (name <> $1) AND (status IN ($2, $3))",
			wantArgs: []interface{}{"root", "a", "b"},
		},
		{
			name:     "empty where",
			selector: Where(nil),
			wantSQL:  "DELETE FROM delete_test_structs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostgresStatements{}.Destroy(m, schema, tt.selector)
			if err != nil {
				t.Fatalf("Destroy() error = %v", err)
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

func TestDestroyErrors(t *testing.T) {
	t.Parallel()
	m := NewModel(deleteTestStruct{})
	schema := testSchema("id", "name", "status")

	_, err := PostgresStatements{}.Destroy(m, schema, Where(Filter{"email": "a"}))
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Destroy() error = %v, want %v", err, ErrUnknownColumn)
	}

	_, err = PostgresStatements{}.Destroy(m, schema, Where(Filter{"name.like": nil}))
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Destroy() error = %v, want %v", err, ErrInvalidValue)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	m := NewModel(deleteTestStruct{})

	tests := []struct {
		name    string
		opts    TruncateOptions
		wantSQL string
	}{
		{"plain", TruncateOptions{}, "TRUNCATE TABLE delete_test_structs"},
		{"restart identity", TruncateOptions{RestartIdentity: true}, "TRUNCATE TABLE delete_test_structs RESTART IDENTITY"},
		{"cascade", TruncateOptions{Cascade: true}, "TRUNCATE TABLE delete_test_structs CASCADE"},
		{"both", TruncateOptions{RestartIdentity: true, Cascade: true}, "TRUNCATE TABLE delete_test_structs RESTART IDENTITY CASCADE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostgresStatements{}.Truncate(m, tt.opts)
			if err != nil {
				t.Fatalf("Truncate() error = %v", err)
			}
			if got.SQL != tt.wantSQL {
				t.Errorf("SQL = %q, want %q", got.SQL, tt.wantSQL)
			}
			if got.Args != nil {
				t.Errorf("Args = %v, want nil", got.Args)
			}
		})
	}
}
