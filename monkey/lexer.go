package monkey

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

// Lex returns the token sequence of source, terminated by a single EOF
// token. Each range over the sequence scans source again from the start.
func Lex(source string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := newLexer(source)
		for {
			tok := l.NextToken()
			if !yield(tok) || tok.Type == tokenEOF {
				return
			}
		}
	}
}

func (l *lexer) readRune() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch l.ch {
	case 0:
		if l.width == 0 {
			tok.Type = tokenEOF
			tok.Literal = ""
			return tok
		}
		// a literal NUL byte inside the input
		tok = l.makeToken(tokenIllegal, string(l.ch))
		l.readRune()
	case '+':
		tok = l.makeToken(tokenPlus, "+")
		l.readRune()
	case '-':
		tok = l.makeToken(tokenMinus, "-")
		l.readRune()
	case '*':
		tok = l.makeToken(tokenAsterisk, "*")
		l.readRune()
	case '/':
		tok = l.makeToken(tokenSlash, "/")
		l.readRune()
	case '<':
		tok = l.makeToken(tokenLT, "<")
		l.readRune()
	case '>':
		tok = l.makeToken(tokenGT, ">")
		l.readRune()
	case ',':
		tok = l.makeToken(tokenComma, ",")
		l.readRune()
	case ';':
		tok = l.makeToken(tokenSemicolon, ";")
		l.readRune()
	case '(':
		tok = l.makeToken(tokenLParen, "(")
		l.readRune()
	case ')':
		tok = l.makeToken(tokenRParen, ")")
		l.readRune()
	case '{':
		tok = l.makeToken(tokenLBrace, "{")
		l.readRune()
	case '}':
		tok = l.makeToken(tokenRBrace, "}")
		l.readRune()
	case '!':
		if l.peekRune() == '=' {
			first := l.ch
			l.readRune()
			tok = l.makeTokenAt(tok.Pos, tokenNotEQ, string(first)+string(l.ch))
			l.readRune()
		} else {
			tok = l.makeToken(tokenBang, "!")
			l.readRune()
		}
	case '=':
		if l.peekRune() == '=' {
			first := l.ch
			l.readRune()
			tok = l.makeTokenAt(tok.Pos, tokenEQ, string(first)+string(l.ch))
			l.readRune()
		} else {
			tok = l.makeToken(tokenAssign, "=")
			l.readRune()
		}
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
			return tok
		case isDigit(l.ch):
			tok.Type = tokenInt
			tok.Literal = l.readNumber()
			return tok
		default:
			tok = l.makeToken(tokenIllegal, string(l.ch))
			l.readRune()
		}
	}

	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

func (l *lexer) makeTokenAt(pos Position, tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: pos}
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readNumber consumes a maximal run of digits. Range checking happens in
// the parser when the literal is interpreted.
func (l *lexer) readNumber() string {
	start := l.currentOffset()
	for isDigit(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_'
}
