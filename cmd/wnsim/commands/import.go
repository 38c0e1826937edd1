package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/wnsim/pkg/wnsim/wordnet/memdict"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet/sqlitedict"
)

func (c *CLI) newImportCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a YAML dictionary into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.dictPath == "" {
				return errNoDict
			}
			if dbPath == "" {
				return errors.New("--db required")
			}

			src, err := memdict.LoadYAML(c.dictPath)
			if err != nil {
				return fmt.Errorf("load dictionary: %w", err)
			}

			ctx := cmd.Context()
			db, err := sqlitedict.Open(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := db.Import(ctx, src); err != nil {
				return fmt.Errorf("import: %w", err)
			}

			stats := src.Stats()
			c.logger.Info("imported dictionary",
				"db", dbPath,
				"version", src.Version(),
				"synsets", stats.Synsets,
				"senses", stats.Senses,
				"hypernym_links", stats.HypernymLinks)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d synsets into %s\n", stats.Synsets, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Target SQLite database (required)")
	return cmd
}
