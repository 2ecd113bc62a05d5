package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/letterlang/letter/ast"
	"github.com/letterlang/letter/internal/config"
	"github.com/letterlang/letter/lexer"
	"github.com/letterlang/letter/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func TestAST_JSON(t *testing.T) {
	prog := mustParse(t, "1 + 2;")

	var compact bytes.Buffer
	if err := AST(&compact, prog, config.FormatJSON, 0); err != nil {
		t.Fatal(err)
	}
	want := `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` +
		`{"type":"BinaryExpression","operator":"+","left":{"type":"NumericLiteral","value":1},` +
		`"right":{"type":"NumericLiteral","value":2}}}]}` + "\n"
	if compact.String() != want {
		t.Errorf("compact JSON:\n got %s\nwant %s", compact.String(), want)
	}

	var indented bytes.Buffer
	if err := AST(&indented, prog, config.FormatJSON, 2); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(indented.String(), "{\n  \"type\": \"Program\",\n  \"body\": [\n    {\n") {
		t.Errorf("indented JSON:\n%s", indented.String())
	}
}

func TestAST_JSONNoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	if err := AST(&buf, mustParse(t, `"<a&b>";`), config.FormatJSON, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"value":"<a&b>"`) {
		t.Errorf("string value was escaped: %s", buf.String())
	}
}

func TestAST_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := AST(&buf, mustParse(t, "{ 'hi'; }"), config.FormatYAML, 2); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Type string `yaml:"type"`
		Body []struct {
			Type string `yaml:"type"`
			Body []struct {
				Type       string `yaml:"type"`
				Expression struct {
					Type  string `yaml:"type"`
					Value string `yaml:"value"`
				} `yaml:"expression"`
			} `yaml:"body"`
		} `yaml:"body"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if doc.Type != "Program" || len(doc.Body) != 1 || doc.Body[0].Type != "BlockStatement" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	inner := doc.Body[0].Body
	if len(inner) != 1 || inner[0].Expression.Type != "StringLiteral" || inner[0].Expression.Value != "hi" {
		t.Errorf("unexpected block body: %+v", inner)
	}
}

func TestAST_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := AST(&buf, mustParse(t, "2+3*4; ;"), config.FormatText, 0); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "(2 + (3 * 4));\n;\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAST_UnknownFormat(t *testing.T) {
	if err := AST(&bytes.Buffer{}, &ast.Program{}, "xml", 0); err == nil {
		t.Error("expected an error")
	}
	if err := Tokens(&bytes.Buffer{}, nil, "xml", 0); err == nil {
		t.Error("expected an error")
	}
}

func TestTokens(t *testing.T) {
	toks, err := lexer.Tokenize("(1)\n'a';")
	if err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	if err := Tokens(&text, toks, config.FormatText, 0); err != nil {
		t.Fatal(err)
	}
	want := "1:1\t(\t\"(\"\n" +
		"1:2\tNUMBER\t\"1\"\n" +
		"1:3\t)\t\")\"\n" +
		"2:1\tSTRING\t\"'a'\"\n" +
		"2:4\t;\t\";\"\n"
	if text.String() != want {
		t.Errorf("text:\n got %q\nwant %q", text.String(), want)
	}

	var js bytes.Buffer
	if err := Tokens(&js, toks[:1], config.FormatJSON, 0); err != nil {
		t.Fatal(err)
	}
	if got, want := js.String(), `[{"type":"(","value":"(","line":1,"col":1}]`+"\n"; got != want {
		t.Errorf("json:\n got %s\nwant %s", got, want)
	}

	var empty bytes.Buffer
	if err := Tokens(&empty, nil, config.FormatJSON, 0); err != nil {
		t.Fatal(err)
	}
	if empty.String() != "[]\n" {
		t.Errorf("empty stream: got %q", empty.String())
	}
}

func TestDiagnostic_ParseError(t *testing.T) {
	src := "1;\n\t1 + ;\n"
	_, err := parser.Parse(src)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	out := NewPrinter(&bytes.Buffer{}).Diagnostic("input.lt", src, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "error:") || !strings.Contains(lines[0], `input.lt:2:6: unexpected token ";"`) {
		t.Errorf("header: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "\t1 + ;") {
		t.Errorf("source line: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "\t    ^") {
		t.Errorf("caret line: %q", lines[2])
	}
}

func TestDiagnostic_LexError(t *testing.T) {
	src := "@;"
	_, err := parser.Parse(src)
	out := NewPrinter(&bytes.Buffer{}).Diagnostic("", src, err)
	if !strings.Contains(out, `1:1: unexpected token '@'`) {
		t.Errorf("missing message:\n%s", out)
	}
	if !strings.Contains(out, "@;\n") || !strings.HasSuffix(out, "^\n") {
		t.Errorf("missing source excerpt:\n%s", out)
	}
}

func TestDiagnostic_EndOfInput(t *testing.T) {
	src := "1 +"
	_, err := parser.Parse(src)
	out := NewPrinter(&bytes.Buffer{}).Diagnostic("", src, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[2], "   ^") {
		t.Errorf("caret should sit past the last token:\n%s", out)
	}
}

func TestDiagnostic_PlainError(t *testing.T) {
	out := NewPrinter(&bytes.Buffer{}).Diagnostic("x", "", errors.New("boom"))
	if !strings.HasSuffix(out, "boom\n") || strings.Contains(out, "|") {
		t.Errorf("plain errors get a single line: %q", out)
	}
}

func TestCaretPadding(t *testing.T) {
	tests := []struct {
		text string
		col  int
		want string
	}{
		{"abc", 1, ""},
		{"abc", 3, "  "},
		{"\tab", 3, "\t "},
		{"ab", 4, "   "},
	}
	for _, tt := range tests {
		if got := caretPadding(tt.text, tt.col); got != tt.want {
			t.Errorf("caretPadding(%q, %d) = %q, want %q", tt.text, tt.col, got, tt.want)
		}
	}
}
