package mapper

import (
	"errors"
	"reflect"
	"testing"
)

type updateTestStruct struct {
	Id     int
	Name   string
	Status string
	Score  int
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	m := NewModel(updateTestStruct{})
	schema := testSchema("id", "name", "status", "score")

	tests := []struct {
		name     string
		selector Selector
		patch    Row
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "all rows",
			patch:    Row{"status": "active"},
			wantSQL:  "UPDATE update_test_structs SET status = $1",
			wantArgs: []interface{}{"active"},
		},
		{
			name:     "key",
			selector: Key(1),
			patch:    Row{"name": "test", "score": 10},
			wantSQL:  "UPDATE update_test_structs SET name = $1, score = $2 WHERE id = $3",
			wantArgs: []interface{}{"test", 10, 1},
		},
		{
			name:     "keys",
			selector: Keys(1, 2),
			patch:    Row{"status": nil},
			wantSQL:  "UPDATE update_test_structs SET status = $1 WHERE id IN ($2, $3)",
			wantArgs: []interface{}{nil, 1, 2},
		},
		{
			name:     "where",
			selector: Where(Filter{"status": "pending", "score.lt": 5}),
			patch:    Row{"status": "failed", "unknown": true},
			wantSQL:  "UPDATE update_test_structs SET status = $1 WHERE (score < $2) AND (status = $3)",
			wantArgs: []interface{}{"failed", 5, "pending"},
		},
		{
			name:     "where null",
			selector: Where(Filter{"name": nil}),
			patch:    Row{"Name": "unnamed"},
			wantSQL:  "UPDATE update_test_structs SET name = $1 WHERE name IS NULL",
			wantArgs: []interface{}{"unnamed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostgresStatements{}.Update(m, schema, tt.selector, tt.patch)
			if err != nil {
				t.Fatalf("Update() error = %v", err)
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

func TestUpdateErrors(t *testing.T) {
	t.Parallel()
	m := NewModel(updateTestStruct{})
	schema := testSchema("id", "name", "status", "score")

	tests := []struct {
		name     string
		selector Selector
		patch    Row
		wantErr  error
	}{
		{"empty patch", Key(1), Row{}, ErrEmptyChanges},
		{"unknown columns only", Key(1), Row{"email": "a"}, ErrEmptyChanges},
		{"unknown filter column", Where(Filter{"email": "a"}), Row{"name": "a"}, ErrUnknownColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PostgresStatements{}.Update(m, schema, tt.selector, tt.patch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Update() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateSQL(t *testing.T) {
	t.Parallel()

	s := &UpdateSQL{table: "users"}
	s.Set("name", "a").Set("age", 1).Set("name", "b")
	s.Where("id = $?", 5)

	gotSQL, gotArgs := s.StringValues()
	wantSQL := "UPDATE users SET name = $1, age = $2 WHERE id = $3"
	if gotSQL != wantSQL {
		t.Errorf("SQL = %q, want %q", gotSQL, wantSQL)
	}
	wantArgs := []interface{}{"b", 1, 5}
	if !reflect.DeepEqual(gotArgs, wantArgs) {
		t.Errorf("Args = %v, want %v", gotArgs, wantArgs)
	}

	if got := (&UpdateSQL{table: "users"}).String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
