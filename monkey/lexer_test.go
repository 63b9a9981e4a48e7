package monkey

import "testing"

func collectTokens(source string) []Token {
	var out []Token
	for tok := range Lex(source) {
		out = append(out, tok)
	}
	return out
}

func TestLexerTokenStream(t *testing.T) {
	input := `let five = 5;
let add = fn(x, y) {
  x + y;
};
!-/*5;
5 < 10 > 5;
if (5 < 10) { return true; } else { return false; }
10 == 10;
10 != 9;
`

	tests := []struct {
		typ     TokenType
		literal string
	}{
		{tokenLet, "let"}, {tokenIdent, "five"}, {tokenAssign, "="}, {tokenInt, "5"}, {tokenSemicolon, ";"},
		{tokenLet, "let"}, {tokenIdent, "add"}, {tokenAssign, "="}, {tokenFunction, "fn"},
		{tokenLParen, "("}, {tokenIdent, "x"}, {tokenComma, ","}, {tokenIdent, "y"}, {tokenRParen, ")"},
		{tokenLBrace, "{"}, {tokenIdent, "x"}, {tokenPlus, "+"}, {tokenIdent, "y"}, {tokenSemicolon, ";"},
		{tokenRBrace, "}"}, {tokenSemicolon, ";"},
		{tokenBang, "!"}, {tokenMinus, "-"}, {tokenSlash, "/"}, {tokenAsterisk, "*"}, {tokenInt, "5"}, {tokenSemicolon, ";"},
		{tokenInt, "5"}, {tokenLT, "<"}, {tokenInt, "10"}, {tokenGT, ">"}, {tokenInt, "5"}, {tokenSemicolon, ";"},
		{tokenIf, "if"}, {tokenLParen, "("}, {tokenInt, "5"}, {tokenLT, "<"}, {tokenInt, "10"}, {tokenRParen, ")"},
		{tokenLBrace, "{"}, {tokenReturn, "return"}, {tokenTrue, "true"}, {tokenSemicolon, ";"}, {tokenRBrace, "}"},
		{tokenElse, "else"}, {tokenLBrace, "{"}, {tokenReturn, "return"}, {tokenFalse, "false"}, {tokenSemicolon, ";"}, {tokenRBrace, "}"},
		{tokenInt, "10"}, {tokenEQ, "=="}, {tokenInt, "10"}, {tokenSemicolon, ";"},
		{tokenInt, "10"}, {tokenNotEQ, "!="}, {tokenInt, "9"}, {tokenSemicolon, ";"},
		{tokenEOF, ""},
	}

	tokens := collectTokens(input)
	if len(tokens) != len(tests) {
		t.Fatalf("token count mismatch: got %d want %d (%v)", len(tokens), len(tests), tokens)
	}
	for i, tt := range tests {
		if tokens[i].Type != tt.typ {
			t.Fatalf("tests[%d] type mismatch: got %q want %q", i, tokens[i].Type, tt.typ)
		}
		if tokens[i].Literal != tt.literal {
			t.Fatalf("tests[%d] literal mismatch: got %q want %q", i, tokens[i].Literal, tt.literal)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := collectTokens("let x = 10;\n  x != 3\n")
	want := []struct {
		literal string
		pos     Position
	}{
		{"let", Position{Line: 1, Column: 1}},
		{"x", Position{Line: 1, Column: 5}},
		{"=", Position{Line: 1, Column: 7}},
		{"10", Position{Line: 1, Column: 9}},
		{";", Position{Line: 1, Column: 11}},
		{"x", Position{Line: 2, Column: 3}},
		{"!=", Position{Line: 2, Column: 5}},
		{"3", Position{Line: 2, Column: 8}},
		{"", Position{Line: 3, Column: 1}},
	}
	if len(tokens) != len(want) {
		t.Fatalf("token count mismatch: got %d want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Literal != w.literal || tokens[i].Pos != w.pos {
			t.Fatalf("token %d: got %q at %v, want %q at %v", i, tokens[i].Literal, tokens[i].Pos, w.literal, w.pos)
		}
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"foo_bar", tokenIdent},
		{"_private", tokenIdent},
		{"x1", tokenIdent},
		{"letter", tokenIdent},
		{"fnord", tokenIdent},
		{"día", tokenIdent},
		{"let", tokenLet},
		{"return", tokenReturn},
	}
	for _, tt := range tests {
		tokens := collectTokens(tt.input)
		if len(tokens) != 2 {
			t.Fatalf("%q: expected one token plus EOF, got %v", tt.input, tokens)
		}
		if tokens[0].Type != tt.typ || tokens[0].Literal != tt.input {
			t.Fatalf("%q: got %q %q", tt.input, tokens[0].Type, tokens[0].Literal)
		}
	}
}

func TestLexerIllegalCharactersAreTokens(t *testing.T) {
	tokens := collectTokens("1 @ 2 \x00 #")
	want := []TokenType{tokenInt, tokenIllegal, tokenInt, tokenIllegal, tokenIllegal, tokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("token count mismatch: got %d want %d (%v)", len(tokens), len(want), tokens)
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Fatalf("token %d: got %q want %q", i, tokens[i].Type, typ)
		}
	}
	if tokens[1].Literal != "@" || !tokens[1].IsIllegal() {
		t.Fatalf("unexpected illegal token %+v", tokens[1])
	}
	if !tokens[len(tokens)-1].IsEOF() {
		t.Fatalf("expected trailing EOF")
	}
}

func TestLexerDoesNotRangeCheckIntegers(t *testing.T) {
	tokens := collectTokens("99999999999999999999999")
	if tokens[0].Type != tokenInt || tokens[0].Literal != "99999999999999999999999" {
		t.Fatalf("unexpected token %+v", tokens[0])
	}
}

func TestLexIsRestartable(t *testing.T) {
	seq := Lex("let a = 1;")
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 6 || second != first {
		t.Fatalf("expected two identical passes of 6 tokens, got %d and %d", first, second)
	}
}

func TestLexStopsEarly(t *testing.T) {
	var seen []Token
	for tok := range Lex("a b c d") {
		seen = append(seen, tok)
		if len(seen) == 2 {
			break
		}
	}
	if len(seen) != 2 || seen[1].Literal != "b" {
		t.Fatalf("unexpected tokens %v", seen)
	}
}

func TestLexEmptyInput(t *testing.T) {
	tokens := collectTokens("")
	if len(tokens) != 1 || !tokens[0].IsEOF() {
		t.Fatalf("expected a single EOF token, got %v", tokens)
	}
	if tokens[0].Pos != (Position{Line: 1, Column: 1}) {
		t.Fatalf("unexpected EOF position %v", tokens[0].Pos)
	}
}
