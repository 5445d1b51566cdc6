package mapper

import (
	"sort"
)

// Cardinality is the shape a finder promises for its result.
type Cardinality int

const (
	// List results are always a slice of rows, possibly empty, never nil.
	List Cardinality = iota
	// Single results are a row or nil.
	Single
)

func (c Cardinality) String() string {
	if c == Single {
		return "single"
	}
	return "list"
}

type (
	// Selector picks rows of a table. It is one of KeysSelector,
	// KeySelector or WhereSelector, created with Keys(), Key() and Where().
	Selector interface {
		Cardinality() Cardinality
		isSelector()
	}

	// KeysSelector selects rows by a list of primary key values.
	KeysSelector []interface{}

	// KeySelector selects a single row by its primary key value.
	KeySelector struct {
		Value interface{}
	}

	// WhereSelector selects rows matching a filter.
	WhereSelector Filter

	// Filter maps column names to values. Keys are column names,
	// optionally qualified by table name ("post_tags.tag_id") and
	// optionally suffixed by an operator ("title.like"). Known operators
	// are eq, ne, gt, gte, lt, lte, like, ilike, in, nin and null. All
	// conditions are AND-combined.
	//  mapper.Filter{
	//  	"title.ilike": "%go%",
	//  	"id.in":       []int{1, 2, 3},
	//  	"deleted_at":  nil, // deleted_at IS NULL
	//  }
	Filter map[string]interface{}
)

// Keys creates a selector by primary key values. Its result is always a
// list, in which missing keys are simply absent.
func Keys(values ...interface{}) KeysSelector {
	return KeysSelector(values)
}

// Key creates a selector by one primary key value. Its result is a single
// row or nil, even when used with Find().
func Key(value interface{}) KeySelector {
	return KeySelector{Value: value}
}

// Where creates a selector from a filter. Its result is a list when used
// with Find().
func Where(filter Filter) WhereSelector {
	return WhereSelector(filter)
}

func (KeysSelector) Cardinality() Cardinality  { return List }
func (KeySelector) Cardinality() Cardinality   { return Single }
func (WhereSelector) Cardinality() Cardinality { return List }

func (KeysSelector) isSelector()  {}
func (KeySelector) isSelector()   {}
func (WhereSelector) isSelector() {}

// merge returns a copy of the filter with the computed conditions added.
// Computed conditions win on key collision.
func (f Filter) merge(computed Filter) Filter {
	out := make(Filter, len(f)+len(computed))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range computed {
		out[k] = v
	}
	return out
}

// Keys returns the filter keys in sorted order.
func (f Filter) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
