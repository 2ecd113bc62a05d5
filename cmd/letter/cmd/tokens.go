package cmd

import (
	"github.com/spf13/cobra"

	"github.com/letterlang/letter/internal/render"
	"github.com/letterlang/letter/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of source",
		Long: `Scan a Letter source file and print its tokens, one per line as
line:col KIND "text". Whitespace and comments are not shown.

The format comes from tokens.format in the config file (text by default);
--format overrides it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd.InOrStdin(), args, expr, cmd.Flags().Changed("expr"))
			if err != nil {
				return err
			}

			toks, err := lexer.Tokenize(src)
			if err != nil {
				return report(cmd, name, src, err)
			}
			a.log.Debug("scanned source", "source", name, "tokens", len(toks))

			return render.Tokens(cmd.OutOrStdout(), toks, a.cfg.Tokens.Format, a.cfg.Output.Indent)
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "source text to scan instead of a file")
	return cmd
}
