// Package parser implements BearLang's recursive-descent parser with a
// precedence-climbing expression sub-grammar.
package parser

import (
	"fmt"

	"bearlangc/pkg/ast"
	"bearlangc/pkg/diag"
	"bearlangc/pkg/token"
)

// Parser consumes a token stream and builds a Program.
type Parser struct {
	tokens  []token.Token
	current int
}

// ParseProgram runs the parser to completion, returning the Program or a
// *diag.ParseError. The first error aborts; there is no recovery.
func ParseProgram(tokens []token.Token) (prog *ast.Program, err error) {
	p := &Parser{tokens: tokens}
	defer func() {
		if r := recover(); r != nil {
			parseErr, ok := r.(*diag.ParseError)
			if !ok {
				panic(r)
			}
			prog, err = nil, parseErr
		}
	}()
	return p.parseProgram(), nil
}

func (p *Parser) fail(format string, args ...interface{}) {
	tok := p.peek()
	panic(&diag.ParseError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column})
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.isAtEnd() {
		prog.Statements = append(prog.Statements, p.parseStatement())
		p.skipNewlines()
	}
	return prog
}

func (p *Parser) peek() token.Token       { return p.tokens[p.current] }
func (p *Parser) previous() token.Token   { return p.tokens[p.current-1] }
func (p *Parser) isAtEnd() bool           { return p.peek().Kind == token.EOF }
func (p *Parser) check(k token.Kind) bool { return !p.isAtEnd() && p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) consume(k token.Kind, message string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.fail(message)
	panic("unreachable")
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) skipNewlines() {
	for p.match(token.Newline) {
	}
}

func (p *Parser) expectNewline(context string) {
	if p.match(token.Newline) {
		p.skipNewlines()
		return
	}
	if p.check(token.Dedent) || p.isAtEnd() {
		return
	}
	p.fail("Ожидается перевод строки после %s", context)
}

func (p *Parser) parseTypeKeyword(context string) ast.ValueType {
	switch {
	case p.match(token.TInt):
		return ast.Integer
	case p.match(token.TDouble):
		return ast.Double
	case p.match(token.TString):
		return ast.String
	case p.match(token.TBool):
		return ast.Boolean
	}
	p.fail("Ожидается тип для %s", context)
	panic("unreachable")
}

func (p *Parser) parseStatement() *ast.Node {
	if p.check(token.Indent) {
		p.fail("Неожиданный отступ")
	}

	if p.peek().Kind.IsTypeKeyword() {
		return p.parseVarDecl()
	}

	switch p.peek().Kind {
	case token.Input:
		return p.parseInput()
	case token.Output:
		return p.parseOutput()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	case token.Ident:
		return p.parseAssignment()
	default:
		p.fail("Неожиданное слово '%s'", p.peek().Lexeme)
		panic("unreachable")
	}
}

func (p *Parser) parseVarDecl() *ast.Node {
	typeTok := p.advance()
	valType := ast.ValueTypeFromKeyword(typeTok.Kind)

	name := p.consume(token.Ident, "Ожидается имя переменной")
	var initializer *ast.Node
	if p.match(token.Assign) {
		initializer = p.parseExpression()
	}
	stmt := ast.NewVarDecl(typeTok, valType, name.Lexeme, initializer)
	p.expectNewline("объявления переменной")
	return stmt
}

func (p *Parser) parseAssignment() *ast.Node {
	name := p.advance()
	p.consume(token.Assign, "Ожидается '=' в присваивании")
	value := p.parseExpression()
	stmt := ast.NewAssign(name, name.Lexeme, value)
	p.expectNewline("присваивания")
	return stmt
}

func (p *Parser) parseInput() *ast.Node {
	tok := p.advance()
	name := p.consume(token.Ident, "Ожидается переменная для ввода")
	stmt := ast.NewInput(tok, name.Lexeme)
	p.expectNewline("оператора ввода")
	return stmt
}

func (p *Parser) parseOutput() *ast.Node {
	tok := p.advance()
	value := p.parseExpression()
	stmt := ast.NewOutput(tok, value)
	p.expectNewline("оператора вывода")
	return stmt
}

func (p *Parser) parseIf() *ast.Node {
	tok := p.advance()
	condition := p.parseParenthesizedCondition("если")
	body := p.parseIndentedBlock("условия 'если'")

	branches := []ast.IfBranch{{Condition: condition, Body: body}}
	var elseBranch []*ast.Node
	hasElse := false

	for p.match(token.Else) {
		if p.match(token.If) {
			elseIfCond := p.parseParenthesizedCondition("иначе если")
			elseIfBody := p.parseIndentedBlock("условия 'иначе если'")
			branches = append(branches, ast.IfBranch{Condition: elseIfCond, Body: elseIfBody})
			continue
		}
		elseBranch = p.parseIndentedBlock("блока 'иначе'")
		hasElse = true
		break
	}

	return ast.NewIf(tok, branches, elseBranch, hasElse)
}

func (p *Parser) parseWhile() *ast.Node {
	tok := p.advance()
	condition := p.parseParenthesizedCondition("пока")
	body := p.parseIndentedBlock("цикла 'пока'")
	return ast.NewWhile(tok, condition, body)
}

func (p *Parser) parseFor() *ast.Node {
	tok := p.advance()
	p.consume(token.LParen, "Ожидается '(' после 'для'")
	valType := p.parseTypeKeyword("цикла 'для'")
	name := p.consume(token.Ident, "Ожидается имя счётчика")
	p.consume(token.From, "Ожидается слово 'от' в цикле")
	from := p.parseExpression()
	p.consume(token.To, "Ожидается слово 'до' в цикле")
	to := p.parseExpression()
	p.consume(token.RParen, "Ожидается ')' после заголовка цикла")
	body := p.parseIndentedBlock("цикла 'для'")
	return ast.NewForRange(tok, valType, name.Lexeme, from, to, body)
}

func (p *Parser) parseIndentedBlock(context string) []*ast.Node {
	p.consumeOrFail(token.Newline, "Ожидается новая строка после "+context)
	p.consumeOrFail(token.Indent, "Ожидается отступ после "+context)
	var body []*ast.Node
	p.skipNewlines()
	for !p.check(token.Dedent) && !p.isAtEnd() {
		body = append(body, p.parseStatement())
		p.skipNewlines()
	}
	p.consumeOrFail(token.Dedent, "Ожидается завершение блока "+context)
	return body
}

func (p *Parser) consumeOrFail(k token.Kind, message string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.fail(message)
	panic("unreachable")
}

// --- Expression grammar: Or > And > Equality > Comparison > Term > Factor
// > Power (right-associative) > Unary > Primary ---

func (p *Parser) parseExpression() *ast.Node { return p.parseOr() }

func (p *Parser) parseOr() *ast.Node {
	expr := p.parseAnd()
	for p.match(token.Or) {
		right := p.parseAnd()
		expr = ast.NewBinary(p.previous(), "||", expr, right)
	}
	return expr
}

func (p *Parser) parseAnd() *ast.Node {
	expr := p.parseEquality()
	for p.match(token.And) {
		right := p.parseEquality()
		expr = ast.NewBinary(p.previous(), "&&", expr, right)
	}
	return expr
}

func (p *Parser) parseEquality() *ast.Node {
	expr := p.parseComparison()
	for p.match(token.Eq) {
		right := p.parseComparison()
		expr = ast.NewBinary(p.previous(), "==", expr, right)
	}
	return expr
}

func (p *Parser) parseComparison() *ast.Node {
	expr := p.parseTerm()
	for {
		switch {
		case p.match(token.Lt):
			expr = ast.NewBinary(p.previous(), "<", expr, p.parseTerm())
		case p.match(token.Lte):
			expr = ast.NewBinary(p.previous(), "<=", expr, p.parseTerm())
		case p.match(token.Gt):
			expr = ast.NewBinary(p.previous(), ">", expr, p.parseTerm())
		case p.match(token.Gte):
			expr = ast.NewBinary(p.previous(), ">=", expr, p.parseTerm())
		default:
			return expr
		}
	}
}

func (p *Parser) parseTerm() *ast.Node {
	expr := p.parseFactor()
	for {
		switch {
		case p.match(token.Plus):
			expr = ast.NewBinary(p.previous(), "+", expr, p.parseFactor())
		case p.match(token.Minus):
			expr = ast.NewBinary(p.previous(), "-", expr, p.parseFactor())
		default:
			return expr
		}
	}
}

func (p *Parser) parseFactor() *ast.Node {
	expr := p.parsePower()
	for {
		switch {
		case p.match(token.Star):
			expr = ast.NewBinary(p.previous(), "*", expr, p.parsePower())
		case p.match(token.Slash):
			expr = ast.NewBinary(p.previous(), "/", expr, p.parsePower())
		case p.match(token.Percent):
			expr = ast.NewBinary(p.previous(), "%", expr, p.parsePower())
		default:
			return expr
		}
	}
}

// parsePower recurses into itself (not parseFactor) on a match, making
// exponentiation right-associative: a ^ b ^ c parses as a ^ (b ^ c).
func (p *Parser) parsePower() *ast.Node {
	expr := p.parseUnary()
	if p.match(token.Caret) {
		right := p.parsePower()
		expr = ast.NewBinary(p.previous(), "^", expr, right)
	}
	return expr
}

func (p *Parser) parseUnary() *ast.Node {
	if p.match(token.Minus) {
		tok := p.previous()
		return ast.NewUnary(tok, "-", p.parseUnary())
	}
	if p.match(token.Not) {
		tok := p.previous()
		return ast.NewUnary(tok, "!", p.parseUnary())
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() *ast.Node {
	switch {
	case p.match(token.Int):
		tok := p.previous()
		return ast.NewLiteral(tok, ast.Integer, tok.Lexeme, false)
	case p.match(token.Double):
		tok := p.previous()
		return ast.NewLiteral(tok, ast.Double, tok.Lexeme, false)
	case p.match(token.String):
		tok := p.previous()
		return ast.NewLiteral(tok, ast.String, tok.Lexeme, false)
	case p.match(token.True):
		tok := p.previous()
		return ast.NewLiteral(tok, ast.Boolean, "true", true)
	case p.match(token.False):
		tok := p.previous()
		return ast.NewLiteral(tok, ast.Boolean, "false", false)
	case p.match(token.Ident):
		tok := p.previous()
		return ast.NewVariable(tok, tok.Lexeme)
	case p.match(token.LParen):
		expr := p.parseExpression()
		p.consume(token.RParen, "Ожидается ')' ")
		return expr
	}

	p.fail("Неожиданный токен '%s'", p.peek().Lexeme)
	panic("unreachable")
}

func (p *Parser) parseParenthesizedCondition(context string) *ast.Node {
	p.consume(token.LParen, "Ожидается '(' после "+context)
	condition := p.parseExpression()
	p.consume(token.RParen, "Ожидается ')' после условия "+context)
	return condition
}
