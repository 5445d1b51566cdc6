package cli

import (
	"github.com/gopsql/mapper"
	"github.com/spf13/cobra"
)

func newFindCmd(a *app) *cobra.Command {
	var (
		where    []string
		includes []string
		one      bool
		opts     mapper.FindOptions
	)

	cmd := &cobra.Command{
		Use:   "find MODEL [KEY...]",
		Short: "Find rows by primary keys or conditions",
		Long: `Find rows of a model and print them as JSON.

One primary key prints a single row (or null), several keys or
--where conditions print a list. Without keys and conditions every row is
printed. Related rows are included with --include, using dotted paths for
nested relations.`,
		Example: `  mapper find users 1 --include posts.comments,company
  mapper find users 1,2,3
  mapper find posts --where user_id=1 --where title.ilike=%go% --order "id DESC" --limit 10
  mapper find posts --where id.in=10,11 --one`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelector(args[1:], where)
			if err != nil {
				return err
			}
			m, err := a.model(args[0])
			if err != nil {
				return err
			}
			opts.Include = mapper.ParseIncludes(includes...)
			if one {
				row, err := m.FindOne(cmd.Context(), sel, &opts)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), row)
			}
			result, err := m.Find(cmd.Context(), sel, &opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&where, "where", "w", nil, "condition column[.operator]=value (repeatable)")
	flags.StringArrayVarP(&includes, "include", "i", nil, "relations to include, e.g. posts.comments (repeatable)")
	flags.StringArrayVar(&opts.OrderBy, "order", nil, "ORDER BY expression (repeatable)")
	flags.IntVar(&opts.Limit, "limit", 0, "maximum number of rows")
	flags.IntVar(&opts.Offset, "offset", 0, "number of rows to skip")
	flags.BoolVar(&one, "one", false, "print the first row only (or null)")
	return cmd
}
