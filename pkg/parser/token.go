package parser

// TokenType discriminates lexed tokens.
type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"
	CHAR   TokenType = "CHAR"

	ASSIGN   TokenType = ":="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	STAR     TokenType = "*"
	SLASH    TokenType = "/"
	LT       TokenType = "<"
	GT       TokenType = ">"
	LE       TokenType = "<="
	GE       TokenType = ">="
	EQ       TokenType = "="
	NE       TokenType = "!="
	COMMA    TokenType = ","
	SEMI     TokenType = ";"
	DOT      TokenType = "."
	ELLIPSIS TokenType = "..."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"

	LOCAL  TokenType = "local"
	LOOP   TokenType = "loop"
	WHILE  TokenType = "while"
	DO     TokenType = "do"
	IF     TokenType = "if"
	THEN   TokenType = "then"
	ELSE   TokenType = "else"
	FUN    TokenType = "fun"
	STRUCT TokenType = "struct"
	EXTEND TokenType = "extend"
	LOCK   TokenType = "lock"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
)

// Token carries the lexed type, its raw literal, and its source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// Structural keywords only. The word operators (AND, OR, NOT, ...) stay
// plain identifiers: they are ordinary bindings in the builtin scope and the
// parser recognizes them by literal when they appear in operator position.
var keywords = map[string]TokenType{
	"local":  LOCAL,
	"loop":   LOOP,
	"while":  WHILE,
	"do":     DO,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"fun":    FUN,
	"struct": STRUCT,
	"extend": EXTEND,
	"lock":   LOCK,
	"TRUE":   TRUE,
	"FALSE":  FALSE,
}

func lookupIdent(ident string) TokenType {
	if kw, ok := keywords[ident]; ok {
		return kw
	}
	return IDENT
}
