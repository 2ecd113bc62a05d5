package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/letterlang/letter/internal/render"
	"github.com/letterlang/letter/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse source and print its AST",
		Long: `Parse a Letter source file and print the abstract syntax tree.

Reads from stdin when no file (or "-") is given. Use -e to parse a string
given on the command line.`,
		Example: `  letter parse program.lt
  echo '2 + 3 * 4;' | letter parse
  letter parse -e '(2 + 3) * 4;' --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd.InOrStdin(), args, expr, cmd.Flags().Changed("expr"))
			if err != nil {
				return err
			}

			start := time.Now()
			prog, err := parser.Parse(src)
			if err != nil {
				a.log.Debug("parse failed", "source", name, "error", err)
				return report(cmd, name, src, err)
			}
			a.log.Debug("parsed source",
				"source", name,
				"bytes", len(src),
				"statements", len(prog.Body),
				"duration", time.Since(start))

			return render.AST(cmd.OutOrStdout(), prog, a.cfg.Output.Format, a.cfg.Output.Indent)
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "source text to parse instead of a file")
	return cmd
}
