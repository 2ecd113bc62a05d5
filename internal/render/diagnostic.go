package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/letterlang/letter/lexer"
	"github.com/letterlang/letter/parser"
)

// Color palette for diagnostics
var (
	ColorError  = lipgloss.Color("#EF4444") // Red
	ColorAccent = lipgloss.Color("#F59E0B") // Amber
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
)

// Printer formats errors for a terminal. Styles degrade to plain text when w
// is not a terminal.
type Printer struct {
	errorStyle  lipgloss.Style
	gutterStyle lipgloss.Style
	caretStyle  lipgloss.Style
}

// NewPrinter returns a Printer whose styles match the capabilities of w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		errorStyle:  r.NewStyle().Foreground(ColorError).Bold(true),
		gutterStyle: r.NewStyle().Foreground(ColorMuted),
		caretStyle:  r.NewStyle().Foreground(ColorAccent).Bold(true),
	}
}

// Diagnostic renders err for the source named name. Lexical and syntax errors
// also show the offending source line with a caret under the reported column.
func (p *Printer) Diagnostic(name, source string, err error) string {
	line, col, ok := position(err)

	var sb strings.Builder
	sb.WriteString(p.errorStyle.Render("error:"))
	sb.WriteByte(' ')
	if ok && name != "" {
		sb.WriteString(name)
		sb.WriteByte(':')
	}
	sb.WriteString(err.Error())
	sb.WriteByte('\n')
	if !ok {
		return sb.String()
	}

	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return sb.String()
	}
	text := strings.TrimRight(lines[line-1], "\r")
	num := fmt.Sprintf("%d", line)
	pad := strings.Repeat(" ", len(num))

	sb.WriteString(p.gutterStyle.Render(num + " | "))
	sb.WriteString(text)
	sb.WriteByte('\n')
	sb.WriteString(p.gutterStyle.Render(pad + " | "))
	sb.WriteString(caretPadding(text, col))
	sb.WriteString(p.caretStyle.Render("^"))
	sb.WriteByte('\n')
	return sb.String()
}

// position extracts the 1-based line and column from lexer and parser errors.
func position(err error) (line, col int, ok bool) {
	var le *lexer.LexError
	if errors.As(err, &le) {
		return le.Line, le.Col, true
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Line, pe.Col, true
	}
	return 0, 0, false
}

// caretPadding returns the whitespace that puts a caret under column col of
// text, keeping tabs so the caret lines up.
func caretPadding(text string, col int) string {
	var sb strings.Builder
	i := 1
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		i++
	}
	for ; i < col; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}
