package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/wnsim/pkg/wnsim/similarity"
)

func (c *CLI) newSimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sim [word1 word2]",
		Short: "Score the similarity of two words",
		Long: `Score the similarity of two words. Words may be encoded as word,
word#pos or word#pos#sense, e.g. cat#n#1.

Without arguments, pairs of words are read from standard input, one pair
per line.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected two words, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			measure, cleanup, err := c.openMeasure(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if len(args) == 2 {
				return printSimilarity(ctx, out, measure, args[0], args[1])
			}
			return c.interactive(ctx, cmd.InOrStdin(), out, measure)
		},
	}
}

func (c *CLI) interactive(ctx context.Context, in io.Reader, out io.Writer, measure *similarity.Measure) error {
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintf(out, "  wnsim (%s)\n", measure.Name())
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Enter two words per line (Ctrl+D to exit):")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			fmt.Fprintln(out, "Error: expected two words")
			continue
		}

		if err := printSimilarity(ctx, out, measure, fields[0], fields[1]); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nGoodbye!")
	return scanner.Err()
}

func printSimilarity(ctx context.Context, out io.Writer, measure *similarity.Measure, w1, w2 string) error {
	info, err := measure.WordSimilarity(ctx, w1, w2)
	if err != nil {
		return err
	}

	if info == nil {
		fmt.Fprintf(out, "No synsets found for %s / %s\n", w1, w2)
		for _, w := range []string{w1, w2} {
			if s := suggestions(measure.Dictionary(), w); len(s) > 0 {
				fmt.Fprintf(out, "  did you mean (%s): %s\n", w, strings.Join(s, ", "))
			}
		}
		return nil
	}

	fmt.Fprintln(out, info.String())
	return nil
}
