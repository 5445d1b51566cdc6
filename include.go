package mapper

import (
	"strings"
)

type (
	// Includes maps relation names to the way they should be fetched.
	Includes map[string]Include

	// Include describes how one declared relation is fetched and merged
	// onto each owning row. Where is AND-combined with the join
	// predicate; it cannot override it. OrderBy and Limit apply to each
	// owning row's sub-fetch separately.
	Include struct {
		Where   Filter
		Include Includes
		OrderBy []string
		Limit   int
	}

	// FindOptions are options of Find() and FindOne().
	FindOptions struct {
		Include Includes
		OrderBy []string
		Limit   int
		Offset  int

		join *Join
	}

	// Join is a request-scoped many-to-many join descriptor: the target
	// table is joined to Model (the join table) on Model.Key = target's
	// primary key.
	Join struct {
		Model *Model
		Key   string
	}
)

// ParseIncludes builds Includes from dotted relation paths.
//  mapper.ParseIncludes("posts.comments", "posts.tags", "profile")
//  // Includes{
//  // 	"posts": {Include: Includes{"comments": {}, "tags": {}}},
//  // 	"profile": {},
//  // }
func ParseIncludes(paths ...string) Includes {
	out := Includes{}
	for _, path := range paths {
		for _, p := range strings.Split(path, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out.add(strings.Split(p, "."))
		}
	}
	return out
}

func (in Includes) add(names []string) {
	name := strings.TrimSpace(names[0])
	if name == "" {
		return
	}
	inc := in[name]
	if len(names) > 1 {
		if inc.Include == nil {
			inc.Include = Includes{}
		}
		inc.Include.add(names[1:])
	}
	in[name] = inc
}

// names splits requested relation names into the ones declared on m, in
// declaration order, and the unknown ones.
func (in Includes) names(m *Model) (known, unknown []string) {
	for _, name := range m.relationNames {
		if _, ok := in[name]; ok {
			known = append(known, name)
		}
	}
	for name := range in {
		if _, ok := m.relations[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return
}

func (o *FindOptions) copy() FindOptions {
	if o == nil {
		return FindOptions{}
	}
	return *o
}

// TruncateOptions are options of Truncate().
type TruncateOptions struct {
	RestartIdentity bool
	Cascade         bool
}
