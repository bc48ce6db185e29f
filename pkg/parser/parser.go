// Package parser turns Tern source text into the expression AST consumed by
// the interpreter. The grammar is expression-only: programs, blocks and REPL
// lines are all sequences of semicolon-separated expressions.
//
// Infix and unary operators desugar to calls on the operator's name, so the
// evaluator sees operators only as ordinary calls resolved through the
// builtin scope.
package parser

import (
	"fmt"
	"strconv"

	"tern/interpreter-go/pkg/ast"
)

// ParseError reports malformed input with its source position.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Operator precedence, loosest to tightest.
const (
	precLowest = iota
	precOr
	precAnd
	precXor
	precCompare
	precSum
	precProduct
	precPrefix
	precPostfix
)

// wordOps maps identifier-spelled operators to their precedence tier.
var wordOps = map[string]int{
	"OR":   precOr,
	"NOR":  precOr,
	"IMP":  precOr,
	"AND":  precAnd,
	"NAND": precAnd,
	"XOR":  precXor,
	"EQ":   precXor,
	"NEQ":  precXor,
}

type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

// Parse parses a complete source text into a single root expression. Multiple
// top-level expressions become a sequence; a single one is returned directly.
func Parse(source string) (ast.Expression, error) {
	p := &Parser{lexer: NewLexer(source)}
	p.next()
	p.next()
	expr, err := p.parseSequence(EOF)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != EOF {
		return nil, p.errorf("unexpected token %q", p.cur.Literal)
	}
	return expr, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: p.cur.Line, Col: p.cur.Col}
}

func (p *Parser) expectPeek(t TokenType) error {
	if p.peek.Type != t {
		return &ParseError{
			Msg:  fmt.Sprintf("expected %q, got %q", string(t), p.peek.Literal),
			Line: p.peek.Line,
			Col:  p.peek.Col,
		}
	}
	p.next()
	return nil
}

// parseSequence parses expressions separated by semicolons until the end
// token, leaving the current token on the terminator. A local binding
// swallows the remainder of the sequence as its body.
func (p *Parser) parseSequence(end TokenType) (ast.Expression, error) {
	var exprs []ast.Expression
	for p.cur.Type != end {
		if p.cur.Type == LOCAL {
			local, err := p.parseLocal(end)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, local)
			break
		}
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if p.peek.Type == SEMI {
			p.next()
			p.next()
			continue
		}
		if err := p.expectPeek(end); err != nil {
			return nil, err
		}
		break
	}
	switch len(exprs) {
	case 0:
		return nil, p.errorf("empty sequence")
	case 1:
		return exprs[0], nil
	default:
		return ast.NewSequence(exprs), nil
	}
}

// parseLocal parses "local name := expr ; rest..." where the rest of the
// enclosing sequence is the binding's body.
func (p *Parser) parseLocal(end TokenType) (ast.Expression, error) {
	if err := p.expectPeek(IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	if err := p.expectPeek(ASSIGN); err != nil {
		return nil, err
	}
	p.next()
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(SEMI); err != nil {
		return nil, err
	}
	p.next()
	if p.cur.Type == end {
		return nil, p.errorf("local binding requires a body expression")
	}
	body, err := p.parseSequence(end)
	if err != nil {
		return nil, err
	}
	return ast.NewLocalExpression(ast.NewAssignExpression(name, value), body), nil
}

// parseExpression is called with the current token on the first token of the
// expression and returns with it on the last.
func (p *Parser) parseExpression(prec int) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case prec < precPostfix && (p.peek.Type == LPAREN || p.peek.Type == LBRACKET || p.peek.Type == DOT):
			p.next()
			left, err = p.parsePostfix(left)
			if err != nil {
				return nil, err
			}
		default:
			name, opPrec, ok := p.peekInfixOp()
			if !ok || prec >= opPrec {
				return left, nil
			}
			p.next()
			p.next()
			right, err := p.parseExpression(opPrec)
			if err != nil {
				return nil, err
			}
			left = ast.NewCallExpression(ast.NewVariable(name), []ast.Expression{left, right})
		}
	}
}

func (p *Parser) peekInfixOp() (string, int, bool) {
	switch p.peek.Type {
	case PLUS, MINUS:
		return p.peek.Literal, precSum, true
	case STAR, SLASH:
		return p.peek.Literal, precProduct, true
	case LT, GT, LE, GE, EQ, NE:
		return p.peek.Literal, precCompare, true
	case IDENT:
		if prec, ok := wordOps[p.peek.Literal]; ok {
			return p.peek.Literal, prec, true
		}
	}
	return "", 0, false
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch p.cur.Type {
	case NUMBER:
		val, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return nil, p.errorf("malformed number %q", p.cur.Literal)
		}
		return ast.NewNumberLiteral(val), nil
	case STRING:
		return ast.NewStringLiteral(p.cur.Literal), nil
	case CHAR:
		runes := []rune(p.cur.Literal)
		if len(runes) != 1 {
			return nil, p.errorf("malformed char literal %q", p.cur.Literal)
		}
		return ast.NewCharLiteral(runes[0]), nil
	case TRUE, FALSE:
		return ast.NewBooleanLiteral(p.cur.Literal), nil
	case IDENT:
		return p.parseIdent()
	case MINUS:
		return p.parseNegation()
	case LPAREN:
		p.next()
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case LBRACKET:
		return p.parseArrayLiteral()
	case LBRACE:
		p.next()
		return p.parseBraceSequence()
	case DOT:
		if err := p.expectPeek(IDENT); err != nil {
			return nil, err
		}
		return ast.NewMemberAccessExpression(nil, p.cur.Literal), nil
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case DO:
		return p.parseDoWhile()
	case LOOP:
		return p.parseLoop()
	case FUN:
		return p.parseLambda()
	case STRUCT:
		return p.parseStruct(nil)
	case EXTEND:
		return p.parseExtend()
	case LOCK:
		return p.parseLockExpr()
	case LOCAL:
		return nil, p.errorf("local binding is only allowed inside a sequence")
	default:
		return nil, p.errorf("unexpected token %q", p.cur.Literal)
	}
}

// parseIdent handles variable references, assignments, and the unary NOT
// word operator.
func (p *Parser) parseIdent() (ast.Expression, error) {
	name := p.cur.Literal
	if p.peek.Type == ASSIGN {
		p.next()
		p.next()
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		return ast.NewAssignExpression(name, value), nil
	}
	if name == "NOT" && p.peekStartsExpression() {
		p.next()
		operand, err := p.parseExpression(precPrefix)
		if err != nil {
			return nil, err
		}
		return ast.NewCallExpression(ast.NewVariable("NOT"), []ast.Expression{operand}), nil
	}
	return ast.NewVariable(name), nil
}

func (p *Parser) peekStartsExpression() bool {
	switch p.peek.Type {
	case NUMBER, STRING, CHAR, TRUE, FALSE, IDENT, LPAREN, LBRACKET, DOT:
		return true
	default:
		return false
	}
}

// parseNegation folds unary minus into numeric literals and otherwise
// desugars to a subtraction from zero.
func (p *Parser) parseNegation() (ast.Expression, error) {
	p.next()
	operand, err := p.parseExpression(precPrefix)
	if err != nil {
		return nil, err
	}
	if num, ok := operand.(*ast.NumberLiteral); ok {
		return ast.NewNumberLiteral(-num.Value), nil
	}
	return ast.NewCallExpression(ast.NewVariable("-"), []ast.Expression{ast.NewNumberLiteral(0), operand}), nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	elements, err := p.parseExpressionList(RBRACKET)
	if err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(elements), nil
}

// parseExpressionList parses comma-separated expressions; the current token
// is on the opening delimiter and ends on the closing one.
func (p *Parser) parseExpressionList(end TokenType) ([]ast.Expression, error) {
	var list []ast.Expression
	if p.peek.Type == end {
		p.next()
		return list, nil
	}
	for {
		p.next()
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if p.peek.Type == COMMA {
			p.next()
			continue
		}
		if err := p.expectPeek(end); err != nil {
			return nil, err
		}
		return list, nil
	}
}

// parseBraceSequence parses the contents of a `{ ... }` block; the current
// token is on the first inner token.
func (p *Parser) parseBraceSequence() (ast.Expression, error) {
	return p.parseSequence(RBRACE)
}

func (p *Parser) parseIf() (ast.Expression, error) {
	p.next()
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(THEN); err != nil {
		return nil, err
	}
	p.next()
	then, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	var alt ast.Expression
	if p.peek.Type == ELSE {
		p.next()
		p.next()
		alt, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfExpression(cond, then, alt), nil
}

func (p *Parser) parseWhile() (ast.Expression, error) {
	p.next()
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.next()
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return ast.NewWhileExpression(cond, body), nil
}

func (p *Parser) parseDoWhile() (ast.Expression, error) {
	p.next()
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(WHILE); err != nil {
		return nil, err
	}
	p.next()
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return ast.NewDoWhileExpression(cond, body), nil
}

func (p *Parser) parseLoop() (ast.Expression, error) {
	p.next()
	count, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.next()
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return ast.NewLoopExpression(count, body), nil
}

func (p *Parser) parseLambda() (ast.Expression, error) {
	if err := p.expectPeek(LPAREN); err != nil {
		return nil, err
	}
	var params []string
	variadic := false
	if p.peek.Type != RPAREN {
		for {
			if err := p.expectPeek(IDENT); err != nil {
				return nil, err
			}
			params = append(params, p.cur.Literal)
			if p.peek.Type == ELLIPSIS {
				p.next()
				variadic = true
				break
			}
			if p.peek.Type != COMMA {
				break
			}
			p.next()
		}
	}
	if err := p.expectPeek(RPAREN); err != nil {
		return nil, err
	}
	p.next()
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return ast.NewLambdaExpression(params, body, variadic), nil
}

func (p *Parser) parseStruct(parent ast.Expression) (ast.Expression, error) {
	if err := p.expectPeek(LBRACE); err != nil {
		return nil, err
	}
	inits, err := p.parseInitializerList()
	if err != nil {
		return nil, err
	}
	return ast.NewStructExpression(inits, parent), nil
}

func (p *Parser) parseExtend() (ast.Expression, error) {
	p.next()
	parent, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return p.parseStruct(parent)
}

// parseInitializerList parses the semicolon-separated field assignments of a
// struct body; the current token is on the opening brace. A struct with no
// fields is allowed.
func (p *Parser) parseInitializerList() ([]*ast.AssignExpression, error) {
	var inits []*ast.AssignExpression
	for p.peek.Type != RBRACE {
		p.next()
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		assign, ok := expr.(*ast.AssignExpression)
		if !ok {
			return nil, p.errorf("struct initializer must be an assignment")
		}
		inits = append(inits, assign)
		if p.peek.Type == SEMI {
			p.next()
			continue
		}
		break
	}
	if err := p.expectPeek(RBRACE); err != nil {
		return nil, err
	}
	return inits, nil
}

func (p *Parser) parseLockExpr() (ast.Expression, error) {
	if err := p.expectPeek(IDENT); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	p.next()
	body, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return ast.NewLockExpression(name, body), nil
}

func (p *Parser) parsePostfix(left ast.Expression) (ast.Expression, error) {
	switch p.cur.Type {
	case LPAREN:
		args, err := p.parseExpressionList(RPAREN)
		if err != nil {
			return nil, err
		}
		return ast.NewCallExpression(left, args), nil
	case LBRACKET:
		p.next()
		index, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(RBRACKET); err != nil {
			return nil, err
		}
		return ast.NewCallExpression(ast.NewVariable("[]"), []ast.Expression{left, index}), nil
	case DOT:
		if err := p.expectPeek(IDENT); err != nil {
			return nil, err
		}
		return ast.NewMemberAccessExpression(left, p.cur.Literal), nil
	default:
		return nil, p.errorf("unexpected token %q", p.cur.Literal)
	}
}
