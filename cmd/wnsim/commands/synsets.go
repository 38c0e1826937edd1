package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newSynsetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "synsets word",
		Short: "List the synsets a word resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			measure, cleanup, err := c.openMeasure(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			synsets, err := measure.Synsets(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(synsets) == 0 {
				fmt.Fprintf(out, "No synsets found for %s\n", args[0])
				return nil
			}
			for _, s := range synsets {
				fmt.Fprintf(out, "%s\t%s\tic=%.4f\t%s\n", s.ID(), strings.Join(s.Words, ","), measure.IC(s), s.Gloss)
			}
			return nil
		},
	}
}
