package mapper

import (
	"reflect"
	"strings"
	"unicode"
)

var (
	// DefaultColumnNamer converts filter and record keys to column names.
	// Default is null, which uses keys as column names. Set it to
	// ToUnderscore to accept "UserId" for "user_id".
	DefaultColumnNamer func(string) string = nil

	// DefaultTableNamer converts struct names to table names in
	// NewModel(). Default is ToPlural.
	DefaultTableNamer func(string) string = ToPlural

	// DefaultPrimaryKey is the primary key column of new models, unless
	// the PrimaryKey option is given.
	DefaultPrimaryKey = "id"
)

const tableNameField = "__TABLE_NAME__"

// ToTableName returns table name of a struct, which is, in order:
// the result of its "TableName() string" method, the tag of its
// __TABLE_NAME__ field, or its type name converted by DefaultTableNamer.
// Anonymous structs and other types get "error_no_table_name".
func ToTableName(object interface{}) string {
	if o, ok := object.(interface{ TableName() string }); ok {
		if name := o.TableName(); name != "" {
			return name
		}
	}
	rt := reflect.TypeOf(object)
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return "error_no_table_name"
	}
	if f, ok := rt.FieldByName(tableNameField); ok && f.Tag != "" {
		return string(f.Tag)
	}
	name := rt.Name()
	if name == "" {
		return "error_no_table_name"
	}
	if DefaultTableNamer != nil {
		name = DefaultTableNamer(name)
	}
	return name
}

// ToPlural converts a word to its plural form:
//  category -> categories, day -> days, status -> statuses,
//  box -> boxes, branch -> branches, hero -> heroes, user -> users
func ToPlural(in string) string {
	switch {
	case in == "":
		return ""
	case strings.HasSuffix(in, "y") && !endsWithVowelY(in):
		return in[:len(in)-1] + "ies"
	case strings.HasSuffix(in, "s"), strings.HasSuffix(in, "x"), strings.HasSuffix(in, "o"),
		strings.HasSuffix(in, "ch"), strings.HasSuffix(in, "sh"):
		return in + "es"
	}
	return in + "s"
}

func endsWithVowelY(in string) bool {
	if len(in) < 2 {
		return false
	}
	return strings.ContainsRune("aeiouAEIOU", rune(in[len(in)-2]))
}

// ToPluralUnderscore converts a "CamelCase" word to its plural snake_case
// form, for example "PostComment" to "post_comments".
func ToPluralUnderscore(in string) string {
	return ToPlural(ToUnderscore(in))
}

// ToUnderscore converts a "CamelCase" word to snake_case. Acronyms are
// kept together and digits stay attached to the preceding word:
//  FullName -> full_name, UserID -> user_id, HTTPServer -> http_server,
//  Address2 -> address2
func ToUnderscore(in string) string {
	runes := []rune(in)
	var b strings.Builder
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		if i > 0 && runes[i-1] != '_' {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
