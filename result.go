package mapper

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

type (
	// Row is a record keyed by column name. Included relations are merged
	// into the row under their relation name, as a Row, a []Row or nil.
	Row map[string]interface{}

	// Result is the shaped result of Find(). Its value is a []Row (never
	// nil) for list results and a Row or nil for single results.
	Result struct {
		rows        []Row
		cardinality Cardinality
	}
)

// shape applies the result contract of a finder: findOne and Key
// selectors return a single row or nil, Keys and Where selectors return
// a list.
func shape(rows []Row, sel Selector, findOne bool) Result {
	cardinality := List
	if findOne || (sel != nil && sel.Cardinality() == Single) {
		cardinality = Single
	}
	if cardinality == Single && len(rows) > 1 {
		rows = rows[:1]
	}
	return Result{rows: rows, cardinality: cardinality}
}

// Cardinality returns whether the result is a list or a single row.
func (r Result) Cardinality() Cardinality {
	return r.cardinality
}

// Len returns number of rows of the result.
func (r Result) Len() int {
	return len(r.rows)
}

// Rows returns rows of the result, never nil.
func (r Result) Rows() []Row {
	if r.rows == nil {
		return []Row{}
	}
	return r.rows
}

// Row returns the first row of the result, or nil if there is none.
func (r Result) Row() Row {
	if len(r.rows) == 0 {
		return nil
	}
	return r.rows[0]
}

// Value returns the shaped value: []Row for list results, Row or nil for
// single results.
func (r Result) Value() interface{} {
	if r.cardinality == List {
		return r.Rows()
	}
	if row := r.Row(); row != nil {
		return row
	}
	return nil
}

// MarshalJSON encodes list results as an array and single results as an
// object or null.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// Decode decodes the result into a pointer to a slice of structs (list
// results) or to a struct (single results). A single nil result leaves
// out unchanged. See Row.Decode() for field matching.
func (r Result) Decode(out interface{}) error {
	return decode(r.Value(), out)
}

// Decode decodes the row into a pointer to a struct. Fields are matched by
// their "column" tag, or by name in either CamelCase or snake_case:
//  type Post struct {
//  	Id       int
//  	AuthorId int `column:"user_id"`
//  	Comments []Comment
//  }
// Included relations decode into struct, pointer or slice fields.
func (r Row) Decode(out interface{}) error {
	return decode(map[string]interface{}(r), out)
}

func decode(in, out interface{}) error {
	if in == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		WeaklyTypedInput: true,
		TagName:          "column",
		MatchName:        matchColumnName,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(in)
}

func matchColumnName(key, fieldName string) bool {
	return strings.EqualFold(key, fieldName) || key == ToUnderscore(fieldName)
}
