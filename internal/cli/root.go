// Package cli provides the command-line interface of mapper.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0"

// newRootCmd creates the root command and the state its commands share.
func newRootCmd(open opener) (*cobra.Command, *app) {
	a := &app{open: open}

	rootCmd := &cobra.Command{
		Use:   "mapper",
		Short: "Query PostgreSQL tables through declared models",
		Long: `mapper declares models and their relations from a YAML config file
(./mapper.yaml by default) and finds, creates, updates and destroys rows of
their tables, resolving nested includes of related rows.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./mapper.yaml)")
	flags.String("driver", "", "database driver (pgx|pq|standard)")
	flags.String("url", "", "database connection URL")
	flags.Int("concurrency", 0, "max concurrent sub-fetches of each include fan-out (0 for no limit)")
	flags.BoolP("verbose", "v", false, "log executed statements")

	_ = rootCmd.RegisterFlagCompletionFunc("driver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"pgx", "pq", "standard"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		newModelsCmd(a),
		newSchemaCmd(a),
		newFindCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDestroyCmd(a),
		newTruncateCmd(a),
	)
	return rootCmd, a
}

// Execute runs the root command and closes the database connection it
// opened, if any.
func Execute(ctx context.Context) error {
	cmd, a := newRootCmd(openDB)
	return execute(ctx, cmd, a)
}

func execute(ctx context.Context, cmd *cobra.Command, a *app) error {
	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("mapper: %w", err)
	}
	return nil
}
