package cli

import (
	"github.com/spf13/cobra"
)

type (
	modelInfo struct {
		Name        string           `json:"name"`
		Table       string           `json:"table"`
		PrimaryKey  string           `json:"primary_key"`
		Relations   []relationInfo   `json:"relations"`
		ForeignKeys []foreignKeyInfo `json:"foreign_keys"`
	}

	foreignKeyInfo struct {
		Key    string `json:"key"`
		Target string `json:"target"`
	}

	relationInfo struct {
		Name    string `json:"name"`
		Kind    string `json:"kind"`
		Target  string `json:"target"`
		JoinOn  string `json:"join_on,omitempty"`
		Through string `json:"through,omitempty"`
	}
)

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List declared models and their relations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := []modelInfo{}
			for _, name := range a.cfg.ModelNames() {
				m, err := a.declared(name)
				if err != nil {
					return err
				}
				info := modelInfo{
					Name:        name,
					Table:       m.TableName(),
					PrimaryKey:  m.PrimaryKey(),
					Relations:   []relationInfo{},
					ForeignKeys: []foreignKeyInfo{},
				}
				for _, r := range m.Relations() {
					rel, _ := m.Relation(r)
					ri := relationInfo{
						Name:   r,
						Kind:   rel.Kind.String(),
						Target: rel.Target.TableName(),
						JoinOn: rel.JoinOn,
					}
					if rel.Through != nil {
						ri.Through = rel.Through.TableName()
					}
					info.Relations = append(info.Relations, ri)
				}
				for _, fk := range m.ForeignKeys() {
					info.ForeignKeys = append(info.ForeignKeys, foreignKeyInfo{Key: fk.Key, Target: fk.Model.TableName()})
				}
				out = append(out, info)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema MODEL",
		Short: "Show the columns of a model's table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model(args[0])
			if err != nil {
				return err
			}
			schema, err := m.Schema(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), schema.Fields)
		},
	}
}
