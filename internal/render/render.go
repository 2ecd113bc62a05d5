// Package render writes parse results for the letter CLI: ASTs and token
// streams in JSON, YAML or text form, and styled diagnostics for errors.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/letterlang/letter/ast"
	"github.com/letterlang/letter/internal/config"
)

// AST writes prog to w in the given format. An indent of 0 gives compact JSON.
func AST(w io.Writer, prog *ast.Program, format string, indent int) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, prog, indent)
	case config.FormatYAML:
		return writeYAML(w, prog, indent)
	case config.FormatText:
		_, err := io.WriteString(w, prog.String())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Tokens writes a token stream to w. The text form prints one token per line
// as: line:col KIND "text".
func Tokens(w io.Writer, toks []ast.Token, format string, indent int) error {
	if toks == nil {
		toks = []ast.Token{}
	}
	switch format {
	case config.FormatJSON:
		return writeJSON(w, toks, indent)
	case config.FormatYAML:
		return writeYAML(w, toks, indent)
	case config.FormatText:
		for _, tok := range toks {
			if _, err := fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Line, tok.Col, tok.Kind, tok.Text); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any, indent int) error {
	enc := yaml.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
