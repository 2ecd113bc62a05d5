// Package ast defines the token types and the AST node types shared by the
// Letter lexer and parser.
//
// Tokens are the smallest meaningful units of a Letter source text. Every token
// carries its kind, the exact text it was scanned from, and its source position.
// Position is 1-based: the first character of a source is Line 1, Col 1.
//
// Node hierarchy:
//
//	Node (interface)
//	  Program
//	  Statement (interface)
//	    ExpressionStatement, BlockStatement, EmptyStatement
//	  Expression (interface)
//	    BinaryExpression, NumericLiteral, StringLiteral
//
// The JSON (and YAML) form of every node is an object whose first key is
// "type", holding the node kind, followed by the node's fields. That shape is
// what external consumers depend on, so those keys must not change.
package ast

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Letter AST.
type Node interface {
	// Type returns the node kind tag, e.g. "BinaryExpression".
	Type() string
	// TokenLiteral returns the text of the token that began this node.
	TokenLiteral() string
	// String returns a compact, human-readable representation of the node.
	// It is intended for debugging and test output.
	String() string
}

// Statement is a Node that may appear in a Program or BlockStatement body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root AST node produced by the parser.
type Program struct {
	Body []Statement
}

func (p *Program) Type() string { return "Program" }

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Body) > 0 {
		return p.Body[0].TokenLiteral()
	}
	return ""
}

// String returns all statements, one per line, useful for snapshot testing.
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Body {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p *Program) tagged() any {
	return struct {
		Type string      `json:"type" yaml:"type"`
		Body []Statement `json:"body" yaml:"body"`
	}{p.Type(), nonNil(p.Body)}
}

func (p *Program) MarshalJSON() ([]byte, error) { return marshal(p.tagged()) }
func (p *Program) MarshalYAML() (any, error)    { return p.tagged(), nil }

// ── Statements ────────────────────────────────────────────────────────────────

// ExpressionStatement is an expression terminated by a semicolon: 1 + 2;
type ExpressionStatement struct {
	Token      Token // first token of the expression
	Expression Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) Type() string         { return "ExpressionStatement" }
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Text }
func (s *ExpressionStatement) String() string       { return s.Expression.String() + ";" }

func (s *ExpressionStatement) tagged() any {
	return struct {
		Type       string     `json:"type" yaml:"type"`
		Expression Expression `json:"expression" yaml:"expression"`
	}{s.Type(), s.Expression}
}

func (s *ExpressionStatement) MarshalJSON() ([]byte, error) { return marshal(s.tagged()) }
func (s *ExpressionStatement) MarshalYAML() (any, error)    { return s.tagged(), nil }

// BlockStatement is a brace-delimited statement list: { 1; 2; }
// Body is empty, not nil, for {}.
type BlockStatement struct {
	Token Token // the '{' token
	Body  []Statement
}

func (s *BlockStatement) statementNode()       {}
func (s *BlockStatement) Type() string         { return "BlockStatement" }
func (s *BlockStatement) TokenLiteral() string { return s.Token.Text }
func (s *BlockStatement) String() string {
	if len(s.Body) == 0 {
		return "{}"
	}
	parts := make([]string, len(s.Body))
	for i, st := range s.Body {
		parts[i] = st.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (s *BlockStatement) tagged() any {
	return struct {
		Type string      `json:"type" yaml:"type"`
		Body []Statement `json:"body" yaml:"body"`
	}{s.Type(), nonNil(s.Body)}
}

func (s *BlockStatement) MarshalJSON() ([]byte, error) { return marshal(s.tagged()) }
func (s *BlockStatement) MarshalYAML() (any, error)    { return s.tagged(), nil }

// EmptyStatement is a lone semicolon.
type EmptyStatement struct {
	Token Token // the ';' token
}

func (s *EmptyStatement) statementNode()       {}
func (s *EmptyStatement) Type() string         { return "EmptyStatement" }
func (s *EmptyStatement) TokenLiteral() string { return s.Token.Text }
func (s *EmptyStatement) String() string       { return ";" }

func (s *EmptyStatement) tagged() any {
	return struct {
		Type string `json:"type" yaml:"type"`
	}{s.Type()}
}

func (s *EmptyStatement) MarshalJSON() ([]byte, error) { return marshal(s.tagged()) }
func (s *EmptyStatement) MarshalYAML() (any, error)    { return s.tagged(), nil }

// ── Expressions ───────────────────────────────────────────────────────────────

// BinaryExpression is a left-associative infix operation: left op right.
// Operator is one of "+", "-", "*", "/".
type BinaryExpression struct {
	Token    Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) Type() string         { return "BinaryExpression" }
func (e *BinaryExpression) TokenLiteral() string { return e.Token.Text }
func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

func (e *BinaryExpression) tagged() any {
	return struct {
		Type     string     `json:"type" yaml:"type"`
		Operator string     `json:"operator" yaml:"operator"`
		Left     Expression `json:"left" yaml:"left"`
		Right    Expression `json:"right" yaml:"right"`
	}{e.Type(), e.Operator, e.Left, e.Right}
}

func (e *BinaryExpression) MarshalJSON() ([]byte, error) { return marshal(e.tagged()) }
func (e *BinaryExpression) MarshalYAML() (any, error)    { return e.tagged(), nil }

// NumericLiteral is a decimal number literal.
type NumericLiteral struct {
	Token Token
	Value float64
}

func (e *NumericLiteral) expressionNode()      {}
func (e *NumericLiteral) Type() string         { return "NumericLiteral" }
func (e *NumericLiteral) TokenLiteral() string { return e.Token.Text }
func (e *NumericLiteral) String() string       { return strconv.FormatFloat(e.Value, 'f', -1, 64) }

func (e *NumericLiteral) tagged() any {
	return struct {
		Type  string  `json:"type" yaml:"type"`
		Value float64 `json:"value" yaml:"value"`
	}{e.Type(), e.Value}
}

func (e *NumericLiteral) MarshalJSON() ([]byte, error) { return marshal(e.tagged()) }
func (e *NumericLiteral) MarshalYAML() (any, error)    { return e.tagged(), nil }

// StringLiteral is a quoted string. Value excludes the quotes.
type StringLiteral struct {
	Token Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) Type() string         { return "StringLiteral" }
func (e *StringLiteral) TokenLiteral() string { return e.Token.Text }
func (e *StringLiteral) String() string       { return strconv.Quote(e.Value) }

func (e *StringLiteral) tagged() any {
	return struct {
		Type  string `json:"type" yaml:"type"`
		Value string `json:"value" yaml:"value"`
	}{e.Type(), e.Value}
}

func (e *StringLiteral) MarshalJSON() ([]byte, error) { return marshal(e.tagged()) }
func (e *StringLiteral) MarshalYAML() (any, error)    { return e.tagged(), nil }

// nonNil makes empty bodies serialise as [] instead of null.
func nonNil(body []Statement) []Statement {
	if body == nil {
		return []Statement{}
	}
	return body
}

// marshal encodes v without HTML escaping. encoding/json still escapes when
// the caller asks for it, since it re-compacts Marshaler output.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
