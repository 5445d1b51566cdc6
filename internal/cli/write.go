package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gopsql/mapper"
	"github.com/spf13/cobra"
)

type affected struct {
	RowsAffected int64 `json:"rows_affected"`
}

// readData returns the JSON object of --data, or of standard input if
// --data is not set.
func readData(cmd *cobra.Command, data string) ([]byte, error) {
	b := []byte(data)
	if data == "" {
		var err error
		if b, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
	}
	var object map[string]interface{}
	if err := json.Unmarshal(b, &object); err != nil {
		return nil, fmt.Errorf("input must be a JSON object: %w", err)
	}
	return b, nil
}

func newCreateCmd(a *app) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "create MODEL",
		Short: "Insert a row and print it",
		Long: `Insert a row from a JSON object given with --data or on standard input.
Only the model's permitted columns are inserted: the columns listed in its
permit config, or every column but the primary key.`,
		Example: `  mapper create users --data '{"name": "ann"}'
  echo '{"title": "Hello", "user_id": 1}' | mapper create posts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model(args[0])
			if err != nil {
				return err
			}
			b, err := readData(cmd, data)
			if err != nil {
				return err
			}
			row, err := m.Create(cmd.Context(), a.permitted(args[0], m).Filter(b))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), row)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON object of the row (default: read standard input)")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		data  string
		where []string
	)

	cmd := &cobra.Command{
		Use:   "update MODEL [KEY...]",
		Short: "Update rows by primary keys or conditions",
		Long: `Update rows with a JSON object given with --data or on standard input.
Only the model's permitted columns are updated.`,
		Example: `  mapper update posts 10 --data '{"published": true}'
  mapper update posts --where user_id=1 --data '{"published": false}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := requireSelector(args[1:], where, false)
			if err != nil {
				return err
			}
			m, err := a.model(args[0])
			if err != nil {
				return err
			}
			b, err := readData(cmd, data)
			if err != nil {
				return err
			}
			n, err := m.Update(cmd.Context(), sel, a.permitted(args[0], m).Filter(b))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), affected{n})
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON object of the changes (default: read standard input)")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition column[.operator]=value (repeatable)")
	return cmd
}

func newDestroyCmd(a *app) *cobra.Command {
	var (
		where []string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "destroy MODEL [KEY...]",
		Short: "Delete rows by primary keys or conditions",
		Example: `  mapper destroy posts 10 11
  mapper destroy comments --where post_id=10
  mapper destroy comments --all`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := requireSelector(args[1:], where, all)
			if err != nil {
				return err
			}
			m, err := a.model(args[0])
			if err != nil {
				return err
			}
			n, err := m.Destroy(cmd.Context(), sel)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), affected{n})
		},
	}
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condition column[.operator]=value (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "delete every row")
	return cmd
}

func newTruncateCmd(a *app) *cobra.Command {
	var opts mapper.TruncateOptions

	cmd := &cobra.Command{
		Use:   "truncate MODEL",
		Short: "Remove every row of a model's table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model(args[0])
			if err != nil {
				return err
			}
			return m.Truncate(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.RestartIdentity, "restart-identity", false, "restart sequences owned by the table's columns")
	cmd.Flags().BoolVar(&opts.Cascade, "cascade", false, "also truncate tables with foreign keys to the table")
	return cmd
}

var errNoSelector = errors.New("primary keys or --where are required")

// requireSelector is parseSelector that refuses to select every row
// unless all is set.
func requireSelector(keys, conditions []string, all bool) (mapper.Selector, error) {
	if all {
		if len(keys) > 0 || len(conditions) > 0 {
			return nil, errors.New("--all cannot be used with primary keys or --where")
		}
		return nil, nil
	}
	if len(keys) == 0 && len(conditions) == 0 {
		return nil, errNoSelector
	}
	return parseSelector(keys, conditions)
}
