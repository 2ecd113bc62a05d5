package ast

import "fmt"

// TokenKind identifies the category of a scanned token.
// The zero value is reserved and never carried by a scanned token.
type TokenKind int

const (
	// Invalid is the zero value. The parser uses it as a stop kind that no
	// token can match.
	Invalid TokenKind = iota

	// ── Literals ───────────────────────────────────────────────────────────────

	// Number is a run of ASCII digits: 0, 42, 007. No sign, no decimal point.
	Number
	// String is a single- or double-quoted string literal. The token text
	// keeps the surrounding quotes; there are no escape sequences.
	String

	// ── Punctuation ────────────────────────────────────────────────────────────

	// Semicolon terminates a statement, or stands alone as an empty statement.
	Semicolon
	// OpenBrace opens a block: {
	OpenBrace
	// CloseBrace closes a block: }
	CloseBrace
	// OpenParen opens a parenthesised expression: (
	OpenParen
	// CloseParen closes a parenthesised expression: )
	CloseParen

	// ── Operators ──────────────────────────────────────────────────────────────

	// AdditiveOperator is + or -.
	AdditiveOperator
	// MultiplicativeOperator is * or /.
	MultiplicativeOperator
)

var kindNames = [...]string{
	Invalid:                "INVALID",
	Number:                 "NUMBER",
	String:                 "STRING",
	Semicolon:              ";",
	OpenBrace:              "{",
	CloseBrace:             "}",
	OpenParen:              "(",
	CloseParen:             ")",
	AdditiveOperator:       "ADDITIVE_OPERATOR",
	MultiplicativeOperator: "MULTIPLICATIVE_OPERATOR",
}

// String returns the display name of the kind, as used in diagnostics.
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a single lexical unit produced by the Letter lexer.
//
// Fields:
//   - Kind   — the category of this token (see TokenKind constants)
//   - Text   — the exact source text that was matched, quotes included
//   - Offset — 0-based byte offset of the first character
//   - Line   — 1-based source line number
//   - Col    — 1-based column of the first character
type Token struct {
	Kind   TokenKind `json:"type" yaml:"type"`
	Text   string    `json:"value" yaml:"value"`
	Offset int       `json:"-" yaml:"-"`
	Line   int       `json:"line" yaml:"line"`
	Col    int       `json:"col" yaml:"col"`
}

// String returns the token text. It is meant for diagnostics.
func (t Token) String() string {
	return t.Text
}
