package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gopsql/db"
	"github.com/gopsql/logger"
	"github.com/gopsql/mapper"
	"github.com/gopsql/mapper/internal/config"
	"github.com/gopsql/pgx"
	"github.com/gopsql/pq"
	"github.com/gopsql/standard"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

type (
	opener func(driver, url string) (db.DB, error)

	app struct {
		cfgFile string
		cfg     *config.Config
		open    opener
		conn    db.DB
		models  map[string]*mapper.Model
	}
)

var errNoURL = errors.New("database url is required (set url in the config file, MAPPER_URL or --url)")

// openDB opens a connection with one of the supported drivers.
func openDB(driver, url string) (db.DB, error) {
	switch driver {
	case config.DriverPgx:
		conn, err := pgx.Open(url)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case config.DriverPq:
		conn, err := pq.Open(url)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case config.DriverStandard:
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, err
		}
		return standard.NewDB("postgres", conn), nil
	}
	return nil, fmt.Errorf("unknown driver %q", driver)
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, used, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.models = nil
	if cfg.Verbose && used != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", used)
	}
	return nil
}

// connect opens the database connection once.
func (a *app) connect() error {
	if a.conn != nil {
		return nil
	}
	if a.cfg.URL == "" {
		return errNoURL
	}
	conn, err := a.open(a.cfg.Driver, a.cfg.URL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	a.conn = conn
	a.models = nil
	return nil
}

func (a *app) close() error {
	if a.conn == nil {
		return nil
	}
	conn := a.conn
	a.conn = nil
	a.models = nil
	return conn.Close()
}

// model returns the named model, connecting first if needed.
func (a *app) model(name string) (*mapper.Model, error) {
	if err := a.connect(); err != nil {
		return nil, err
	}
	return a.declared(name)
}

// declared returns the named model without connecting.
func (a *app) declared(name string) (*mapper.Model, error) {
	if a.models == nil {
		a.models = a.buildModels()
	}
	m, ok := a.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model %q", name)
	}
	return m, nil
}

// buildModels declares every configured model and its relations. Models
// share one schema cache.
func (a *app) buildModels() map[string]*mapper.Model {
	options := []interface{}{
		mapper.NewSchemaCache(),
		mapper.ConcurrencyLimit(a.cfg.Concurrency),
	}
	if a.conn != nil {
		options = append(options, a.conn)
	}
	if a.cfg.Verbose {
		options = append(options, logger.StandardLogger)
	}

	names := a.cfg.ModelNames()
	models := make(map[string]*mapper.Model, len(names))
	for _, name := range names {
		mc := a.cfg.Models[name]
		m := mapper.NewModelTable(mc.TableName(name), options...)
		if mc.PrimaryKey != "" {
			m.SetOptions(mapper.PrimaryKey(mc.PrimaryKey))
		}
		models[name] = m
	}
	for _, name := range names {
		mc := a.cfg.Models[name]
		m := models[name]
		for _, r := range slices.Sorted(maps.Keys(mc.Relations)) {
			rel := mc.Relations[r]
			target := models[rel.Model]
			switch {
			case rel.Kind == config.KindMany && rel.Through != "":
				m.HasManyThrough(r, target, models[rel.Through])
			case rel.Kind == config.KindMany:
				m.HasMany(r, target, rel.JoinOn)
			case rel.Kind == config.KindOne:
				m.HasOne(r, target, rel.JoinOn)
			case rel.Kind == config.KindBelongsTo:
				m.BelongsTo(r, target, rel.JoinOn)
			}
		}
		for _, fk := range mc.ForeignKeys {
			m.ForeignKey(fk.Key, models[fk.Model])
		}
	}
	return models
}

// permitted returns the model restricted to its configured permitted
// columns, or to all columns but the primary key if none is configured.
func (a *app) permitted(name string, m *mapper.Model) *mapper.PermittedModel {
	if columns := a.cfg.Models[name].Permit; len(columns) > 0 {
		return m.Permit(columns...)
	}
	return m.PermitAllExcept(m.PrimaryKey())
}
