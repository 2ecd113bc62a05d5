// Package parser implements the Letter recursive-descent parser.
//
// The parser pulls tokens one at a time from a [lexer.Lexer] and builds an
// [ast.Program]. Every production decides what to do from the kind of a single
// lookahead token (LL(1)); nothing is ever backtracked.
//
// Usage:
//
//	prog, err := parser.Parse(source)
//	if err != nil { ... }
//
// Grammar:
//
//	Program                  : StatementList(EOF)
//	StatementList(stop)      : Statement { Statement }
//	Statement                : EmptyStatement | BlockStatement | ExpressionStatement
//	EmptyStatement           : ';'
//	BlockStatement           : '{' [ StatementList('}') ] '}'
//	ExpressionStatement      : Expression ';'
//	Expression               : AdditiveExpression
//	AdditiveExpression       : MultiplicativeExpression { ('+'|'-') MultiplicativeExpression }
//	MultiplicativeExpression : PrimaryExpression { ('*'|'/') PrimaryExpression }
//	PrimaryExpression        : '(' Expression ')' | Literal
//	Literal                  : NUMBER | STRING
//
// There is no error recovery: the first lexical or syntax error aborts the
// parse and is returned as is.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/letterlang/letter/ast"
	"github.com/letterlang/letter/lexer"
)

// ParseError reports a token the grammar did not allow at its position, or a
// premature end of input.
type ParseError struct {
	Expected string     // what the grammar wanted, e.g. ";" or "literal"
	Found    *ast.Token // nil at end of input
	Line     int        // position of Found, or of the end of input
	Col      int
	Msg      string // optional detail replacing the default message
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	if e.Found == nil {
		return fmt.Sprintf("%d:%d: unexpected end of input, expected %q", e.Line, e.Col, e.Expected)
	}
	return fmt.Sprintf("%d:%d: unexpected token %q (%s), expected %q",
		e.Line, e.Col, e.Found.Text, e.Found.Kind, e.Expected)
}

// Parser holds the state of a single parse: the token source and one token of
// lookahead. Create one with [New]; a Parser parses exactly once.
type Parser struct {
	lex       *lexer.Lexer
	lookahead *ast.Token // nil once the input is exhausted
	endLine   int        // position reported for end-of-input errors
	endCol    int
	used      bool
}

// New creates a Parser over source. No input is read until Parse is called.
func New(source string) *Parser {
	return &Parser{lex: lexer.New(source)}
}

// Parse parses a complete source text. It is shorthand for New(source).Parse().
func Parse(source string) (*ast.Program, error) {
	return New(source).Parse()
}

// Parse primes the lookahead and parses the Program production.
func (p *Parser) Parse() (*ast.Program, error) {
	if p.used {
		return nil, errors.New("parser: Parse called more than once")
	}
	p.used = true

	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.program()
}

// ── Internal token management ─────────────────────────────────────────────────

// advance replaces the lookahead with the next token from the lexer.
func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if errors.Is(err, io.EOF) {
		p.lookahead = nil
		return nil
	}
	if err != nil {
		return err
	}
	p.lookahead = &tok
	p.endLine, p.endCol = endOf(tok)
	return nil
}

// eat consumes the lookahead if it has the given kind and returns it.
// It is the only way the parser consumes tokens.
func (p *Parser) eat(kind ast.TokenKind) (ast.Token, error) {
	tok := p.lookahead
	if tok == nil || tok.Kind != kind {
		return ast.Token{}, p.unexpected(kind.String())
	}
	if err := p.advance(); err != nil {
		return ast.Token{}, err
	}
	return *tok, nil
}

// lookaheadIs reports whether the lookahead exists and has the given kind.
func (p *Parser) lookaheadIs(kind ast.TokenKind) bool {
	return p.lookahead != nil && p.lookahead.Kind == kind
}

// unexpected builds a ParseError for the current lookahead.
func (p *Parser) unexpected(expected string) *ParseError {
	if p.lookahead == nil {
		line, col := p.endLine, p.endCol
		if line == 0 {
			line, col = 1, 1
		}
		return &ParseError{Expected: expected, Line: line, Col: col}
	}
	tok := *p.lookahead
	return &ParseError{Expected: expected, Found: &tok, Line: tok.Line, Col: tok.Col}
}

// endOf returns the line and column just past tok.
func endOf(tok ast.Token) (line, col int) {
	line, col = tok.Line, tok.Col
	for _, r := range tok.Text {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// ── Statements ────────────────────────────────────────────────────────────────

// program parses the whole input as a statement list.
func (p *Parser) program() (*ast.Program, error) {
	body, err := p.statementList(ast.Invalid)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: body}, nil
}

// statementList parses one statement, then more until the lookahead has kind
// stop or the input runs out. ast.Invalid never matches a token, so passing it
// runs to the end of input.
func (p *Parser) statementList(stop ast.TokenKind) ([]ast.Statement, error) {
	first, err := p.statement()
	if err != nil {
		return nil, err
	}
	list := []ast.Statement{first}

	for p.lookahead != nil && p.lookahead.Kind != stop {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

// statement dispatches on the lookahead kind.
func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.lookaheadIs(ast.Semicolon):
		return p.emptyStatement()
	case p.lookaheadIs(ast.OpenBrace):
		return p.blockStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) emptyStatement() (ast.Statement, error) {
	tok, err := p.eat(ast.Semicolon)
	if err != nil {
		return nil, err
	}
	return &ast.EmptyStatement{Token: tok}, nil
}

// blockStatement parses '{' [StatementList('}')] '}'.
func (p *Parser) blockStatement() (ast.Statement, error) {
	open, err := p.eat(ast.OpenBrace)
	if err != nil {
		return nil, err
	}

	body := []ast.Statement{}
	if !p.lookaheadIs(ast.CloseBrace) {
		if body, err = p.statementList(ast.CloseBrace); err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(ast.CloseBrace); err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Token: open, Body: body}, nil
}

// expressionStatement parses Expression ';'.
func (p *Parser) expressionStatement() (ast.Statement, error) {
	var start ast.Token
	if p.lookahead != nil {
		start = *p.lookahead
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(ast.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Token: start, Expression: expr}, nil
}

// ── Expressions ───────────────────────────────────────────────────────────────

func (p *Parser) expression() (ast.Expression, error) {
	return p.additiveExpression()
}

func (p *Parser) additiveExpression() (ast.Expression, error) {
	return p.binaryExpression(p.multiplicativeExpression, ast.AdditiveOperator)
}

func (p *Parser) multiplicativeExpression() (ast.Expression, error) {
	return p.binaryExpression(p.primaryExpression, ast.MultiplicativeOperator)
}

// binaryExpression parses operand { op operand }, folding to the left so that
// 1 - 2 - 3 groups as (1 - 2) - 3.
func (p *Parser) binaryExpression(operand func() (ast.Expression, error), op ast.TokenKind) (ast.Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.lookaheadIs(op) {
		opTok, err := p.eat(op)
		if err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Token:    opTok,
			Operator: opTok.Text,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// primaryExpression parses a parenthesised expression or a literal.
func (p *Parser) primaryExpression() (ast.Expression, error) {
	if p.lookaheadIs(ast.OpenParen) {
		return p.parenthesizedExpression()
	}
	return p.literal()
}

func (p *Parser) parenthesizedExpression() (ast.Expression, error) {
	if _, err := p.eat(ast.OpenParen); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(ast.CloseParen); err != nil {
		return nil, err
	}
	return expr, nil
}

// literal parses a NUMBER or STRING token.
func (p *Parser) literal() (ast.Expression, error) {
	switch {
	case p.lookaheadIs(ast.Number):
		return p.numericLiteral()
	case p.lookaheadIs(ast.String):
		return p.stringLiteral()
	}
	return nil, p.unexpected("literal")
}

func (p *Parser) numericLiteral() (ast.Expression, error) {
	tok, err := p.eat(ast.Number)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		found := tok
		return nil, &ParseError{
			Expected: ast.Number.String(),
			Found:    &found,
			Line:     tok.Line,
			Col:      tok.Col,
			Msg:      fmt.Sprintf("invalid numeric literal %q", tok.Text),
		}
	}
	return &ast.NumericLiteral{Token: tok, Value: v}, nil
}

// stringLiteral strips the enclosing quotes from the token text.
func (p *Parser) stringLiteral() (ast.Expression, error) {
	tok, err := p.eat(ast.String)
	if err != nil {
		return nil, err
	}
	return &ast.StringLiteral{Token: tok, Value: tok.Text[1 : len(tok.Text)-1]}, nil
}
