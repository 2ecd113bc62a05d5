// Package cmd implements the letter command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/letterlang/letter/internal/config"
	"github.com/letterlang/letter/internal/render"
)

// app carries the flags and the resolved configuration of one invocation.
type app struct {
	cfgFile string
	verbose bool
	format  string
	indent  int

	cfg *config.Config
	log *slog.Logger
}

// reportedError marks an error whose diagnostic was already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Execute runs the letter command with os.Args.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !errors.As(err, new(reportedError)) {
		fmt.Fprint(root.ErrOrStderr(), render.NewPrinter(root.ErrOrStderr()).Diagnostic("", "", err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "letter",
		Short: "Letter - recursive-descent parser for a tiny statement language",
		Long: `letter turns Letter source text into an abstract syntax tree.

The language has semicolon-terminated statements, brace-delimited blocks,
numeric and string literals, + - * / with the usual precedence, parentheses,
and // or /* */ comments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.DefaultPath+" if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "output format: json, yaml or text (overrides config)")
	root.PersistentFlags().IntVar(&a.indent, "indent", -1, "indentation width for json and yaml output (overrides config)")

	root.AddCommand(newParseCmd(a), newTokensCmd(a), newVersionCmd())
	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadDefault(a.cfgFile)
	if err != nil {
		return err
	}
	if a.format != "" {
		cfg.Output.Format = a.format
		cfg.Tokens.Format = a.format
	}
	if a.indent >= 0 {
		cfg.Output.Indent = a.indent
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := cfg.Log.SlogLevel()
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	a.log.Debug("configuration loaded",
		"config", a.cfgFile,
		"format", cfg.Output.Format,
		"indent", cfg.Output.Indent)
	return nil
}

// readSource returns the source text and a display name for diagnostics.
// expr wins over args; no argument or "-" reads from in.
func readSource(in io.Reader, args []string, expr string, exprSet bool) (name, src string, err error) {
	if exprSet {
		return "<expr>", expr, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read source: %w", err)
	}
	return args[0], string(data), nil
}

// report prints a diagnostic for err against src and marks it as reported.
func report(cmd *cobra.Command, name, src string, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), render.NewPrinter(cmd.ErrOrStderr()).Diagnostic(name, src, err))
	return reportedError{err}
}
