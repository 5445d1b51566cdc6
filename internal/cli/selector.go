package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gopsql/mapper"
	"github.com/spf13/cast"
)

// numeric matches plain decimal numbers without leading zeros, so values
// like zip codes stay strings.
var numeric = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// parseValue converts a command-line value to null, a boolean, a number
// or a string.
func parseValue(s string) interface{} {
	switch s {
	case "null":
		return nil
	case "true", "false":
		return s == "true"
	}
	if !numeric.MatchString(s) {
		return s
	}
	if strings.Contains(s, ".") {
		return cast.ToFloat64(s)
	}
	if i, err := cast.ToInt64E(s); err == nil {
		return i
	}
	return s
}

func parseList(s string) []interface{} {
	out := []interface{}{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, parseValue(v))
		}
	}
	return out
}

// parseFilter parses "column[.operator]=value" conditions. Values of the
// in and nin operators are comma separated lists.
func parseFilter(conditions []string) (mapper.Filter, error) {
	filter := mapper.Filter{}
	for _, c := range conditions {
		key, value, ok := strings.Cut(c, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid condition %q (expected column[.operator]=value)", c)
		}
		if strings.HasSuffix(key, ".in") || strings.HasSuffix(key, ".nin") {
			filter[key] = parseList(value)
			continue
		}
		filter[key] = parseValue(value)
	}
	return filter, nil
}

// parseSelector builds the selector of primary key arguments or where
// conditions. One key selects a single row; several keys, or keys joined
// by commas, select a list. Without keys and conditions every row is
// selected.
func parseSelector(keys, conditions []string) (mapper.Selector, error) {
	if len(keys) > 0 && len(conditions) > 0 {
		return nil, fmt.Errorf("primary keys and --where cannot be used together")
	}
	if len(conditions) > 0 {
		filter, err := parseFilter(conditions)
		if err != nil {
			return nil, err
		}
		return mapper.Where(filter), nil
	}
	if len(keys) == 0 {
		return nil, nil
	}
	if len(keys) == 1 && !strings.Contains(keys[0], ",") {
		return mapper.Key(parseValue(keys[0])), nil
	}
	var values []interface{}
	for _, k := range keys {
		values = append(values, parseList(k)...)
	}
	return mapper.Keys(values...), nil
}
