package monkey

import (
	"fmt"
	"strings"
)

// ParseError describes one syntax error. Errors are collected rather than
// returned eagerly so a single bad statement does not hide the rest.
type ParseError struct {
	Pos Position
	Msg string

	source string
	atEOF  bool
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// Incomplete reports whether the error was caused by running out of input,
// meaning more source text could still complete the program.
func (e *ParseError) Incomplete() bool { return e.atEOF }

// ParseErrors is the ordered list of syntax errors from one parse.
type ParseErrors []*ParseError

func (errs ParseErrors) Error() string {
	switch len(errs) {
	case 0:
		return "no parse errors"
	case 1:
		return errs[0].Error()
	}
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "\n\n")
}

// Messages returns the one-line description of every error, in source order.
func (errs ParseErrors) Messages() []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = fmt.Sprintf("%d:%d: %s", err.Pos.Line, err.Pos.Column, err.Msg)
	}
	return out
}

// Incomplete reports whether any error stems from premature end of input.
func (errs ParseErrors) Incomplete() bool {
	for _, err := range errs {
		if err.Incomplete() {
			return true
		}
	}
	return false
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	if tok.Type == tokenIllegal {
		p.addParseError(tok, fmt.Sprintf("illegal character %q", tok.Literal))
		return
	}
	p.addParseError(tok, fmt.Sprintf("unexpected token %s", tokenLabel(tok)))
}

func (p *parser) addParseError(tok Token, msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:    tok.Pos,
		Msg:    msg,
		source: p.l.input,
		atEOF:  tok.Type == tokenEOF,
	})
}

func tokenLabel(tok Token) string {
	if tok.Type == tokenIllegal {
		return fmt.Sprintf("illegal character %q", tok.Literal)
	}
	return typeLabel(tok.Type)
}

func typeLabel(tt TokenType) string {
	switch tt {
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer"
	case tokenEOF:
		return "end of input"
	case tokenFunction:
		return "'fn'"
	}
	if len(tt) <= 2 {
		return fmt.Sprintf("%q", string(tt))
	}
	return "'" + strings.ToLower(string(tt)) + "'"
}
