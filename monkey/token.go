package monkey

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent TokenType = "IDENT"
	tokenInt   TokenType = "INT"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenBang     TokenType = "!"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="

	tokenComma     TokenType = ","
	tokenSemicolon TokenType = ";"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"

	tokenLet      TokenType = "LET"
	tokenFunction TokenType = "FUNCTION"
	tokenIf       TokenType = "IF"
	tokenElse     TokenType = "ELSE"
	tokenReturn   TokenType = "RETURN"
	tokenTrue     TokenType = "TRUE"
	tokenFalse    TokenType = "FALSE"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source text. Both are 1-based.
type Position struct {
	Line   int
	Column int
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool { return t.Type == tokenEOF }

// IsIllegal reports whether the lexer could not classify the token.
func (t Token) IsIllegal() bool { return t.Type == tokenIllegal }

var keywords = map[string]TokenType{
	"let":    tokenLet,
	"fn":     tokenFunction,
	"if":     tokenIf,
	"else":   tokenElse,
	"return": tokenReturn,
	"true":   tokenTrue,
	"false":  tokenFalse,
}

// Keywords returns the reserved words of the language in source order.
func Keywords() []string {
	return []string{"let", "fn", "if", "else", "return", "true", "false"}
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}
