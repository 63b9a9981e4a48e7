package monkey

import (
	"fmt"
	"strconv"
)

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenSemicolon && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addParseError(p.curToken, fmt.Sprintf("integer literal %s out of range", p.curToken.Literal))
		return nil
	}
	return &IntegerLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Value: p.curToken.Type == tokenTrue, position: p.curToken.Pos}
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &PrefixExpression{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &InfixExpression{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parseIfExpression() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	consequence := p.parseBlockStatement()
	if consequence == nil {
		return nil
	}

	expr := &IfExpression{Condition: condition, Consequence: consequence, position: pos}
	if p.peekToken.Type == tokenElse {
		p.nextToken()
		if !p.expectPeek(tokenLBrace) {
			return nil
		}
		expr.Alternative = p.parseBlockStatement()
		if expr.Alternative == nil {
			return nil
		}
	}
	return expr
}

func (p *parser) parseFunctionLiteral() Expression {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	if !p.expectPeek(tokenLBrace) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &FunctionLiteral{Params: params, Body: body, position: pos}
}

func (p *parser) parseFunctionParameters() ([]*Identifier, bool) {
	params := []*Identifier{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return params, true
	}

	seen := make(map[string]struct{})
	addParam := func() bool {
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "parameter name")
			return false
		}
		if _, dup := seen[p.curToken.Literal]; dup {
			p.addParseError(p.curToken, fmt.Sprintf("duplicate parameter %s", p.curToken.Literal))
			return false
		}
		seen[p.curToken.Literal] = struct{}{}
		params = append(params, &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos})
		return true
	}

	p.nextToken()
	if !addParam() {
		return nil, false
	}
	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if !addParam() {
			return nil, false
		}
	}

	if !p.expectPeek(tokenRParen) {
		return nil, false
	}
	return params, true
}

func (p *parser) parseCallExpression(function Expression) Expression {
	pos := p.curToken.Pos
	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	return &CallExpression{Function: function, Args: args, position: pos}
}

func (p *parser) parseCallArguments() ([]Expression, bool) {
	args := []Expression{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return args, true
	}

	p.nextToken()
	arg := p.parseExpression(lowestPrec)
	if arg == nil {
		return nil, false
	}
	args = append(args, arg)

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(lowestPrec)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.expectPeek(tokenRParen) {
		return nil, false
	}
	return args, true
}
