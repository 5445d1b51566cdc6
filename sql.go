package mapper

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

type (
	sqlConditions struct {
		conditions []string
		args       []interface{}
	}

	fieldsFunc = func([]string, string) []string

	// columnScope resolves filter keys to columns of a table and,
	// optionally, of a joined table.
	columnScope struct {
		table       string
		columns     []string
		joinTable   string
		joinColumns []string
		namer       func(string) string
	}
)

// Can be used to add table name to all field names.
var AddTableName fieldsFunc = func(fields []string, tableName string) (out []string) {
	for _, field := range fields {
		if strings.Contains(field, ".") {
			out = append(out, field)
			continue
		}
		out = append(out, tableName+"."+field)
	}
	return
}

var operators = map[string]string{
	"eq":    "=",
	"ne":    "<>",
	"gt":    ">",
	"gte":   ">=",
	"lt":    "<",
	"lte":   "<=",
	"like":  "LIKE",
	"ilike": "ILIKE",
	"in":    "IN",
	"nin":   "NOT IN",
	"null":  "IS NULL",
}

// Adds condition. Each "$?" in the condition is replaced with the
// positional parameter of the corresponding argument.
func (s *sqlConditions) Where(condition string, args ...interface{}) {
	for _, arg := range args {
		s.args = append(s.args, arg)
		condition = strings.Replace(condition, "$?", fmt.Sprintf("$%d", len(s.args)), 1)
	}
	s.conditions = append(s.conditions, condition)
}

func (s sqlConditions) where() string {
	return conditionsToStr(s.conditions, " WHERE ")
}

func conditionsToStr(conds []string, prefix string) (out string) {
	moreThanOne := len(conds) > 1
	for i, conf := range conds {
		if i > 0 {
			out += " AND "
		}
		if moreThanOne {
			out += "(" + conf + ")"
		} else {
			out += conf
		}
	}
	if out != "" {
		out = prefix + out
	}
	return
}

// selector adds conditions of a selector. The primary key column is
// resolved in the scope like any filter key.
func (s *sqlConditions) selector(scope columnScope, pk string, sel Selector) error {
	if sel == nil {
		return nil
	}
	if v, ok := sel.(WhereSelector); ok {
		return s.filter(scope, Filter(v))
	}
	if pk == "" {
		return ErrNoPrimaryKey
	}
	column, err := scope.resolve(pk)
	if err != nil {
		return err
	}
	switch v := sel.(type) {
	case KeysSelector:
		return s.compare(column, "in", []interface{}(v))
	case KeySelector:
		return s.compare(column, "eq", v.Value)
	}
	return fmt.Errorf("unsupported selector %T", sel)
}

// filter adds conditions of a filter in sorted key order, so the same
// filter always produces the same statement.
func (s *sqlConditions) filter(scope columnScope, f Filter) error {
	for _, key := range f.Keys() {
		name, op := splitOperator(key)
		column, err := scope.resolve(name)
		if err != nil {
			return err
		}
		if err := s.compare(column, op, f[key]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (s *sqlConditions) compare(column, op string, value interface{}) error {
	list, isList := expand(value)
	switch op {
	case "eq", "ne":
		if value == nil {
			if op == "eq" {
				s.Where(column + " IS NULL")
			} else {
				s.Where(column + " IS NOT NULL")
			}
			return nil
		}
		if isList {
			if op == "eq" {
				return s.compare(column, "in", value)
			}
			return s.compare(column, "nin", value)
		}
		s.Where(column+" "+operators[op]+" $?", value)
	case "gt", "gte", "lt", "lte", "like", "ilike":
		if value == nil || isList {
			return ErrInvalidValue
		}
		s.Where(column+" "+operators[op]+" $?", value)
	case "in", "nin":
		if !isList {
			return ErrInvalidValue
		}
		if len(list) == 0 {
			if op == "in" {
				s.Where("FALSE")
			}
			return nil
		}
		placeholders := strings.TrimSuffix(strings.Repeat("$?, ", len(list)), ", ")
		s.Where(column+" "+operators[op]+" ("+placeholders+")", list...)
	case "null":
		isNull, err := cast.ToBoolE(value)
		if err != nil {
			return ErrInvalidValue
		}
		if isNull {
			s.Where(column + " IS NULL")
		} else {
			s.Where(column + " IS NOT NULL")
		}
	default:
		return ErrUnknownOperator
	}
	return nil
}

// "title.like" => "title", "like"; "post_tags.tag_id" => "post_tags.tag_id", "eq"
func splitOperator(key string) (name, op string) {
	if i := strings.LastIndex(key, "."); i != -1 {
		if _, ok := operators[key[i+1:]]; ok {
			return key[:i], key[i+1:]
		}
	}
	return key, "eq"
}

// expand returns elements of slices and arrays, except []byte.
func expand(value interface{}) ([]interface{}, bool) {
	if value == nil {
		return nil, false
	}
	if list, ok := value.([]interface{}); ok {
		return list, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// resolve returns the column a filter key refers to, qualified with its
// table name if a table is joined. The table part of a key may itself be
// schema-qualified ("blog.post_tags.post_id").
func (c columnScope) resolve(key string) (string, error) {
	table, name := "", key
	if i := strings.LastIndex(key, "."); i != -1 {
		table, name = key[:i], key[i+1:]
	}
	if name == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if c.namer != nil {
		name = c.namer(name)
	}
	if (table == "" || table == c.table) && contains(c.columns, name) {
		return c.qualify(c.table, name), nil
	}
	if c.joinTable != "" && (table == "" || table == c.joinTable) && contains(c.joinColumns, name) {
		return c.qualify(c.joinTable, name), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownColumn, key)
}

func (c columnScope) qualify(table, column string) string {
	if c.joinTable == "" {
		return column
	}
	return table + "." + column
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
