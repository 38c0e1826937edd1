// Package commands implements the wnsim command line interface.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/wnsim/internal/build"
)

// CLI represents the command line interface for wnsim.
type CLI struct {
	rootCmd *cobra.Command
	logger  *slog.Logger

	configPath string
	dictPath   string
	jsonLogs   bool
	verbose    bool
}

// New creates a new CLI instance.
func New() *CLI {
	c := &CLI{logger: slog.Default()}

	rootCmd := &cobra.Command{
		Use:           "wnsim",
		Short:         "WordNet information-content similarity",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.String(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.logger = newLogger(cmd.ErrOrStderr(), c.jsonLogs, c.verbose)
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Similarity parameter file (key:value or YAML)")
	flags.StringVarP(&c.dictPath, "dict", "d", "", "WordNet data: YAML file, or SQLite database (.db, .sqlite)")
	flags.BoolVar(&c.jsonLogs, "json", false, "Log as JSON")
	flags.BoolVar(&c.verbose, "verbose", false, "Enable debug logging")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newSimCmd())
	rootCmd.AddCommand(c.newSynsetsCmd())
	rootCmd.AddCommand(c.newImportCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetIO redirects the command's input and output. Used for testing.
func (c *CLI) SetIO(in io.Reader, out, errOut io.Writer) {
	c.rootCmd.SetIn(in)
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

func newLogger(w io.Writer, jsonLogs, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
