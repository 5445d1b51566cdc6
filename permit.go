package mapper

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"
)

type (
	// PermittedModel wraps a Model with a whitelist of columns for mass
	// assignment protection. Create instances using Permit or
	// PermitAllExcept, then use Filter to extract allowed values from user
	// input before Create() or Update().
	PermittedModel struct {
		*Model
		columns []string
		except  bool
	}
)

// Permit creates a PermittedModel that only allows the specified columns in
// Filter operations. If no column is provided, no column is permitted.
func (m *Model) Permit(columns ...string) *PermittedModel {
	return &PermittedModel{Model: m, columns: m.toColumnNames(columns)}
}

// PermitAllExcept creates a PermittedModel that allows all columns except
// the specified ones in Filter operations. If no column is provided, all
// columns are permitted.
func (m *Model) PermitAllExcept(columns ...string) *PermittedModel {
	return &PermittedModel{Model: m, columns: m.toColumnNames(columns), except: true}
}

func (m *Model) toColumnNames(in []string) []string {
	out := make([]string, len(in))
	for i, name := range in {
		out[i] = m.ToColumnName(name)
	}
	return out
}

func (m PermittedModel) permitted(column string) bool {
	return contains(m.columns, column) != m.except
}

// Filter extracts only permitted columns from input data. Accepts Row,
// map[string]interface{}, JSON strings, []byte, io.Reader, or structs.
// Keys are converted with the model's column namer; struct fields use
// their "column" tag or their snake_case name. Later inputs override
// earlier ones. Invalid JSON inputs are skipped.
//
//	// Filter JSON from request body
//	record := users.Permit("name", "email").Filter(requestBody)
//	users.Create(ctx, record)
func (m PermittedModel) Filter(inputs ...interface{}) Row {
	out := Row{}
	for _, input := range inputs {
		switch in := input.(type) {
		case Row:
			m.filterPermits(in, out)
		case map[string]interface{}:
			m.filterPermits(in, out)
		case string:
			var c map[string]interface{}
			if json.Unmarshal([]byte(in), &c) == nil {
				m.filterPermits(c, out)
			}
		case []byte:
			var c map[string]interface{}
			if json.Unmarshal(in, &c) == nil {
				m.filterPermits(c, out)
			}
		case io.Reader:
			var c map[string]interface{}
			if json.NewDecoder(in).Decode(&c) == nil {
				m.filterPermits(c, out)
			}
		default:
			m.filterPermits(structValues(in), out)
		}
	}
	return out
}

func (m PermittedModel) filterPermits(in map[string]interface{}, out Row) {
	for key, value := range in {
		if column := m.ToColumnName(key); m.permitted(column) {
			out[column] = value
		}
	}
}

// structValues returns exported fields of a struct keyed by column name.
func structValues(in interface{}) map[string]interface{} {
	rv := reflect.ValueOf(in)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()
	out := map[string]interface{}{}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("column")
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "-" {
			continue
		}
		if name == "" {
			name = ToUnderscore(f.Name)
		}
		out[name] = rv.Field(i).Interface()
	}
	return out
}
