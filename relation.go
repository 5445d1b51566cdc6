package mapper

import (
	"fmt"
)

// RelationKind tells how a relation is joined to its owning model.
type RelationKind int

const (
	// Many is a one-to-many relation (target.JoinOn = owner's primary key)
	// or, with a Through model, a many-to-many relation.
	Many RelationKind = iota + 1
	// One is a one-to-one relation: the owner's JoinOn column holds the
	// primary key of a single target row.
	One
	// BelongsTo is an inverse relation: the owner's JoinOn column holds the
	// primary key of target rows, which are fetched as a list.
	BelongsTo
)

func (k RelationKind) String() string {
	switch k {
	case Many:
		return "many"
	case One:
		return "one"
	case BelongsTo:
		return "belongsTo"
	}
	return fmt.Sprintf("RelationKind(%d)", int(k))
}

type (
	// Relation is a relationship declared on a model under a name.
	Relation struct {
		Kind    RelationKind
		Target  *Model
		JoinOn  string
		Through *Model // join model of a many-to-many relation
	}

	// ForeignKey is declared on join models: column Key references
	// the primary key of Model.
	ForeignKey struct {
		Key   string
		Model *Model
	}
)

// HasMany declares a one-to-many relation: rows of target whose joinOn
// column equals the primary key of the owning row.
//  users.HasMany("posts", posts, "user_id")
func (m *Model) HasMany(name string, target *Model, joinOn string) *Model {
	return m.addRelation(name, Relation{Kind: Many, Target: target, JoinOn: joinOn})
}

// HasManyThrough declares a many-to-many relation linked by the join model
// through, which must declare a foreign key to both m and target.
//  postTags := mapper.NewModelTable("post_tags", conn).
//  	ForeignKey("post_id", posts).
//  	ForeignKey("tag_id", tags)
//  posts.HasManyThrough("tags", tags, postTags)
func (m *Model) HasManyThrough(name string, target, through *Model) *Model {
	return m.addRelation(name, Relation{Kind: Many, Target: target, Through: through})
}

// HasOne declares a one-to-one relation: the single row of target whose
// primary key equals the joinOn column of the owning row.
func (m *Model) HasOne(name string, target *Model, joinOn string) *Model {
	return m.addRelation(name, Relation{Kind: One, Target: target, JoinOn: joinOn})
}

// BelongsTo declares an inverse relation: rows of target whose primary key
// equals the joinOn column of the owning row.
func (m *Model) BelongsTo(name string, target *Model, joinOn string) *Model {
	return m.addRelation(name, Relation{Kind: BelongsTo, Target: target, JoinOn: joinOn})
}

// ForeignKey declares that column key of this (join) model references the
// primary key of model. Declaration order is kept.
func (m *Model) ForeignKey(key string, model *Model) *Model {
	m.foreignKeys = append(m.foreignKeys, ForeignKey{Key: key, Model: model})
	return m
}

// Relation returns the relation declared under name.
func (m Model) Relation(name string) (Relation, bool) {
	r, ok := m.relations[name]
	return r, ok
}

// Relations returns names of declared relations in declaration order.
func (m Model) Relations() []string {
	return append([]string{}, m.relationNames...)
}

// ForeignKeys returns foreign keys declared on the model.
func (m Model) ForeignKeys() []ForeignKey {
	return append([]ForeignKey{}, m.foreignKeys...)
}

// Redeclaring a name replaces the previous relation.
func (m *Model) addRelation(name string, r Relation) *Model {
	if m.relations == nil {
		m.relations = map[string]Relation{}
	}
	if _, ok := m.relations[name]; !ok {
		m.relationNames = append(m.relationNames, name)
	}
	m.relations[name] = r
	return m
}

// foreignKeyTo finds the key of the first foreign key referencing a model
// with the same table name as target.
func (m Model) foreignKeyTo(target *Model) (string, error) {
	for _, fk := range m.foreignKeys {
		if fk.Model != nil && fk.Model.tableName == target.tableName {
			return fk.Key, nil
		}
	}
	return "", fmt.Errorf("%w: %s has no foreign key to %s", ErrForeignKeyNotFound, m.tableName, target.tableName)
}
