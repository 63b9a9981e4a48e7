package monkey

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors ParseErrors

	// parenDepth counts the parentheses opened by tokens already consumed.
	parenDepth int

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// ParseProgram parses source into a Program. The program is only safe to
// evaluate when the returned error list is empty.
func ParseProgram(source string) (*Program, ParseErrors) {
	return newParser(source).ParseProgram()
}

func newParser(input string) *parser {
	l := newLexer(input)
	p := &parser{l: l}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenInt, p.parseIntegerLiteral)
	p.registerPrefix(tokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(tokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(tokenBang, p.parsePrefixExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenIf, p.parseIfExpression)
	p.registerPrefix(tokenFunction, p.parseFunctionLiteral)

	p.infixFns[tokenPlus] = p.parseInfixExpression
	p.infixFns[tokenMinus] = p.parseInfixExpression
	p.infixFns[tokenSlash] = p.parseInfixExpression
	p.infixFns[tokenAsterisk] = p.parseInfixExpression
	p.infixFns[tokenEQ] = p.parseInfixExpression
	p.infixFns[tokenNotEQ] = p.parseInfixExpression
	p.infixFns[tokenLT] = p.parseInfixExpression
	p.infixFns[tokenGT] = p.parseInfixExpression
	p.infixFns[tokenLParen] = p.parseCallExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	switch p.curToken.Type {
	case tokenLParen:
		p.parenDepth++
	case tokenRParen:
		if p.parenDepth > 0 {
			p.parenDepth--
		}
	}
}

func (p *parser) ParseProgram() (*Program, ParseErrors) {
	program := &Program{source: p.l.input}
	program.Statements = p.parseStatementList(tokenEOF)
	return program, p.errors
}

// parseStatementList parses statements until stop (or end of input) is the
// current token. A statement that fails to parse is dropped and the parser
// resynchronises at the next statement boundary.
func (p *parser) parseStatementList(stop TokenType) []Statement {
	stmts := []Statement{}
	for p.curToken.Type != stop && p.curToken.Type != tokenEOF {
		parens := p.parenDepth
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize(stop, parens)
			continue
		}
		stmts = append(stmts, stmt)
		p.nextToken()
	}
	return stmts
}

// synchronize skips tokens until the start of the next statement: just past
// a `;` at the nesting level the failed statement started at, or at the `}`
// closing the enclosing block. parens is the paren depth at statement start.
func (p *parser) synchronize(stop TokenType, parens int) {
	depth := 0
	for p.curToken.Type != tokenEOF {
		switch p.curToken.Type {
		case tokenLBrace:
			depth++
		case tokenRBrace:
			if depth > 0 {
				depth--
			} else if stop == tokenRBrace {
				p.parenDepth = parens
				return
			}
		case tokenSemicolon:
			if depth == 0 && p.parenDepth <= parens {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenLet:
		return p.parseLetStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseLetStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	name := &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}

	if !p.expectPeek(tokenAssign) {
		return nil
	}

	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	if fn, ok := value.(*FunctionLiteral); ok && fn.Name == "" {
		fn.Name = name.Name
	}

	p.skipSemicolon()
	return &LetStatement{Name: name, Value: value, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	switch p.peekToken.Type {
	case tokenSemicolon:
		p.nextToken()
		return &ReturnStatement{position: pos}
	case tokenRBrace, tokenEOF:
		return &ReturnStatement{position: pos}
	}

	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	p.skipSemicolon()
	return &ReturnStatement{Value: value, position: pos}
}

// parseExpressionStatement parses an expression used as a statement. An `if`
// in statement position ends at its closing brace, so `if (c) { a } -1`
// is two statements.
func (p *parser) parseExpressionStatement() Statement {
	pos := p.curToken.Pos
	var expr Expression
	if p.curToken.Type == tokenIf {
		expr = p.parseIfExpression()
	} else {
		expr = p.parseExpression(lowestPrec)
	}
	if expr == nil {
		return nil
	}
	p.skipSemicolon()
	return &ExpressionStatement{Expr: expr, position: pos}
}

func (p *parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{position: p.curToken.Pos}
	p.nextToken()
	block.Statements = p.parseStatementList(tokenRBrace)
	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, typeLabel(tokenRBrace))
		return nil
	}
	return block
}

// skipSemicolon consumes an optional trailing semicolon.
func (p *parser) skipSemicolon() {
	if p.peekToken.Type == tokenSemicolon {
		p.nextToken()
	}
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, typeLabel(tt))
	return false
}
