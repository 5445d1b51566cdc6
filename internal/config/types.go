// Package config loads the configuration of the mapper command: the
// database to connect to and the models, with their relations, to declare
// on it.
package config

// Drivers supported by the mapper command.
const (
	DriverPgx      = "pgx"
	DriverPq       = "pq"
	DriverStandard = "standard"
)

// Defaults.
const (
	DefaultDriver      = DriverPgx
	DefaultConcurrency = 0
	DefaultConfigFile  = "mapper.yaml"
	EnvPrefix          = "MAPPER_"
)

// Relation kinds accepted in a model's relations.
const (
	KindMany      = "many"
	KindOne       = "one"
	KindBelongsTo = "belongs_to"
)

// Config holds all configuration options of the mapper command.
type Config struct {
	Driver      string                 `koanf:"driver"`
	URL         string                 `koanf:"url"`
	Concurrency int                    `koanf:"concurrency"`
	Verbose     bool                   `koanf:"verbose"`
	Models      map[string]ModelConfig `koanf:"models"`
}

// ModelConfig declares one model. Table defaults to the model name.
type ModelConfig struct {
	Table       string                    `koanf:"table"`
	PrimaryKey  string                    `koanf:"primary_key"`
	Permit      []string                  `koanf:"permit"`
	Relations   map[string]RelationConfig `koanf:"relations"`
	ForeignKeys []ForeignKeyConfig        `koanf:"foreign_keys"`
}

// RelationConfig declares a relation of a model. Model names the target
// model. Through names the join model of a many-through relation, in which
// case JoinOn is not used.
type RelationConfig struct {
	Kind    string `koanf:"kind"`
	Model   string `koanf:"model"`
	JoinOn  string `koanf:"join_on"`
	Through string `koanf:"through"`
}

// ForeignKeyConfig declares a foreign key column of a join model.
type ForeignKeyConfig struct {
	Key   string `koanf:"key"`
	Model string `koanf:"model"`
}

// TableName returns the table of the model, which is its name unless set.
func (m ModelConfig) TableName(name string) string {
	if m.Table != "" {
		return m.Table
	}
	return name
}
