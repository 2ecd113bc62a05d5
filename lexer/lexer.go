// Package lexer implements the Letter lexer (tokeniser).
//
// The lexer converts a Letter source string into a lazy stream of [ast.Token]
// values. Call [New] to create a lexer and then call [Lexer.NextToken]
// repeatedly until it returns [io.EOF].
//
// Design notes:
//   - Tokens are recognised by an ordered rule table. Every call walks the
//     table top to bottom against the unconsumed input; the first rule that
//     matches a prefix wins. There is no backtracking between rules.
//   - Whitespace and comments (// … and /* … */) are skip rules: they consume
//     input and the scan continues, so the caller never sees them.
//   - Token text is kept verbatim. Quotes stay on strings and numbers stay as
//     digit text; conversion is the parser's job.
//   - No global state; every [Lexer] is independent.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/letterlang/letter/ast"
)

// skip marks a rule whose match produces no token.
const skip = ast.Invalid

// rule pairs an anchored pattern with the kind of token it produces.
type rule struct {
	re   *regexp.Regexp
	kind ast.TokenKind
}

var (
	// whitespace covers ASCII blanks, \v, Unicode space separators, the byte
	// order mark and the line/paragraph separators.
	whitespace = regexp.MustCompile(`^[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)

	blockComment = regexp.MustCompile(`^/\*[\s\S]*?\*/`)
)

// rules is the lexical grammar, in priority order.
var rules = []rule{
	// ── Skipped ─────────────────────────────────────────────────────────────
	{whitespace, skip},
	{regexp.MustCompile(`^//.*`), skip},
	{blockComment, skip},

	// ── Literals and punctuation ────────────────────────────────────────────
	{regexp.MustCompile(`^;`), ast.Semicolon},
	{regexp.MustCompile(`^\d+`), ast.Number},
	{regexp.MustCompile(`^"[^"]*"`), ast.String},
	{regexp.MustCompile(`^'[^']*'`), ast.String},
	{regexp.MustCompile(`^\{`), ast.OpenBrace},
	{regexp.MustCompile(`^\}`), ast.CloseBrace},
	{regexp.MustCompile(`^\(`), ast.OpenParen},
	{regexp.MustCompile(`^\)`), ast.CloseParen},

	// ── Operators ───────────────────────────────────────────────────────────
	{regexp.MustCompile(`^[+\-]`), ast.AdditiveOperator},
	{regexp.MustCompile(`^[*/]`), ast.MultiplicativeOperator},
}

// LexError reports input that no lexical rule matches.
type LexError struct {
	Char   rune // the offending character
	Offset int  // 0-based byte offset
	Line   int
	Col    int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: unexpected token %q", e.Line, e.Col, e.Char)
}

// Lexer holds all state required to tokenise a single Letter source string.
// Create one with [New]; a Lexer is not safe for concurrent use.
type Lexer struct {
	input string // the full source text
	pos   int    // byte offset of the first unconsumed character

	line int // 1-based line of input[pos]
	col  int // 1-based column of input[pos]

	// unclosed is the offset of a /* found to have no closing */, or -1.
	// No block comment can start at or after it.
	unclosed int
}

// New creates a [Lexer] positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

// Reset re-initialises the lexer over a new source, discarding any progress.
func (l *Lexer) Reset(input string) {
	l.input = input
	l.pos = 0
	l.line = 1
	l.col = 1
	l.unclosed = -1
}

// HasMoreTokens reports whether unconsumed input remains. Remaining input may
// still consist only of whitespace or comments.
func (l *Lexer) HasMoreTokens() bool {
	return l.pos < len(l.input)
}

// IsEOF reports whether the cursor has reached the end of the input.
func (l *Lexer) IsEOF() bool {
	return l.pos == len(l.input)
}

// NextToken returns the next token from the input.
//
// Skipped input (whitespace, comments) is consumed transparently. When the
// input is exhausted NextToken returns [io.EOF], on this and every later call.
// If no rule matches, it returns a *[LexError] and does not advance.
func (l *Lexer) NextToken() (ast.Token, error) {
scan:
	for l.HasMoreTokens() {
		rest := l.input[l.pos:]
		for _, r := range rules {
			if r.re == blockComment && l.unclosed >= 0 && l.pos >= l.unclosed {
				continue
			}
			m := r.re.FindString(rest)
			if m == "" {
				if r.re == blockComment && strings.HasPrefix(rest, "/*") {
					l.unclosed = l.pos
				}
				continue
			}
			tok := ast.Token{Kind: r.kind, Text: m, Offset: l.pos, Line: l.line, Col: l.col}
			l.advance(m)
			if r.kind == skip {
				continue scan
			}
			return tok, nil
		}
		ch, _ := utf8.DecodeRuneInString(rest)
		return ast.Token{}, &LexError{Char: ch, Offset: l.pos, Line: l.line, Col: l.col}
	}
	return ast.Token{}, io.EOF
}

// Tokens returns the remaining tokens as a lazy sequence. The sequence is
// finite and not restartable; it ends at end of input, or right after yielding
// the first error.
func (l *Lexer) Tokens() iter.Seq2[ast.Token, error] {
	return func(yield func(ast.Token, error) bool) {
		for {
			tok, err := l.NextToken()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize scans the whole of input and returns every token, or the first
// lexical error.
func Tokenize(input string) ([]ast.Token, error) {
	var toks []ast.Token
	for tok, err := range New(input).Tokens() {
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// advance moves the cursor past matched, keeping line and column in step.
func (l *Lexer) advance(matched string) {
	for _, r := range matched {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.pos += len(matched)
}
