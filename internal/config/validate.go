package config

import (
	"fmt"
	"maps"
	"slices"
)

// Validate checks the driver and that every relation and foreign key
// refers to a declared model. The database URL is not checked here: it is
// only required by commands that connect.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPgx, DriverPq, DriverStandard:
	default:
		return fmt.Errorf("unknown driver %q (expected %s, %s or %s)", c.Driver, DriverPgx, DriverPq, DriverStandard)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	for _, name := range c.ModelNames() {
		if err := c.validateModel(name, c.Models[name]); err != nil {
			return fmt.Errorf("model %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) validateModel(name string, m ModelConfig) error {
	for _, r := range slices.Sorted(maps.Keys(m.Relations)) {
		rel := m.Relations[r]
		if _, ok := c.Models[rel.Model]; !ok {
			return fmt.Errorf("relation %s: unknown model %q", r, rel.Model)
		}
		switch rel.Kind {
		case KindMany:
			if rel.Through != "" {
				if _, ok := c.Models[rel.Through]; !ok {
					return fmt.Errorf("relation %s: unknown through model %q", r, rel.Through)
				}
				continue
			}
		case KindOne, KindBelongsTo:
			if rel.Through != "" {
				return fmt.Errorf("relation %s: through is only supported by %s relations", r, KindMany)
			}
		default:
			return fmt.Errorf("relation %s: unknown kind %q", r, rel.Kind)
		}
		if rel.JoinOn == "" {
			return fmt.Errorf("relation %s: join_on is required", r)
		}
	}
	for _, fk := range m.ForeignKeys {
		if fk.Key == "" {
			return fmt.Errorf("foreign key to %s: key is required", fk.Model)
		}
		if _, ok := c.Models[fk.Model]; !ok {
			return fmt.Errorf("foreign key %s: unknown model %q", fk.Key, fk.Model)
		}
	}
	return nil
}

// ModelNames returns names of the declared models in sorted order.
func (c *Config) ModelNames() []string {
	return slices.Sorted(maps.Keys(c.Models))
}
