package parser

// Lexer turns Tern source text into tokens. Input is treated as UTF-8;
// structure characters are all ASCII so scanning is byte-based, with rune
// decoding only inside string and char literals.
type Lexer struct {
	input   string
	pos     int  // current position (points at ch)
	readPos int  // next position
	ch      byte // byte under examination
	line    int
	col     int
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) NextToken() Token {
	l.skipSpaceAndComments()

	tok := Token{Line: l.line, Col: l.col}

	switch l.ch {
	case 0:
		tok.Type = EOF
		return tok
	case '+':
		tok.Type, tok.Literal = PLUS, "+"
	case '-':
		tok.Type, tok.Literal = MINUS, "-"
	case '*':
		tok.Type, tok.Literal = STAR, "*"
	case '/':
		tok.Type, tok.Literal = SLASH, "/"
	case '=':
		tok.Type, tok.Literal = EQ, "="
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = LE, "<="
		} else {
			tok.Type, tok.Literal = LT, "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = GE, ">="
		} else {
			tok.Type, tok.Literal = GT, ">"
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = NE, "!="
		} else {
			tok.Type, tok.Literal = ILLEGAL, "!"
		}
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type, tok.Literal = ASSIGN, ":="
		} else {
			tok.Type, tok.Literal = ILLEGAL, ":"
		}
	case ',':
		tok.Type, tok.Literal = COMMA, ","
	case ';':
		tok.Type, tok.Literal = SEMI, ";"
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				tok.Type, tok.Literal = ELLIPSIS, "..."
			} else {
				tok.Type, tok.Literal = ILLEGAL, ".."
			}
		} else {
			tok.Type, tok.Literal = DOT, "."
		}
	case '(':
		tok.Type, tok.Literal = LPAREN, "("
	case ')':
		tok.Type, tok.Literal = RPAREN, ")"
	case '[':
		tok.Type, tok.Literal = LBRACKET, "["
	case ']':
		tok.Type, tok.Literal = RBRACKET, "]"
	case '{':
		tok.Type, tok.Literal = LBRACE, "{"
	case '}':
		tok.Type, tok.Literal = RBRACE, "}"
	case '"':
		tok.Type = STRING
		lit, ok := l.readString()
		tok.Literal = lit
		if !ok {
			tok.Type = ILLEGAL
		}
		return tok
	case '\'':
		tok.Type = CHAR
		lit, ok := l.readCharLiteral()
		tok.Literal = lit
		if !ok {
			tok.Type = ILLEGAL
		}
		return tok
	default:
		switch {
		case isLetter(l.ch):
			tok.Literal = l.readIdentifier()
			tok.Type = lookupIdent(tok.Literal)
			return tok
		case isDigit(l.ch):
			tok.Type = NUMBER
			tok.Literal = l.readNumber()
			return tok
		default:
			tok.Type, tok.Literal = ILLEGAL, string(l.ch)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipSpaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		return
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

// readString consumes a double-quoted literal, handling \n \t \r \\ \" escapes.
// Returns the decoded contents and whether the literal was terminated.
func (l *Lexer) readString() (string, bool) {
	var out []byte
	for {
		l.readChar()
		switch l.ch {
		case '"':
			l.readChar()
			return string(out), true
		case 0:
			return string(out), false
		case '\\':
			l.readChar()
			out = append(out, unescape(l.ch))
		default:
			out = append(out, l.ch)
		}
	}
}

// readCharLiteral consumes a single-quoted literal holding exactly one rune.
func (l *Lexer) readCharLiteral() (string, bool) {
	l.readChar()
	if l.ch == 0 || l.ch == '\'' {
		return "", false
	}
	var out []byte
	if l.ch == '\\' {
		l.readChar()
		out = append(out, unescape(l.ch))
		l.readChar()
	} else {
		// Copy one UTF-8 rune, however many bytes it spans.
		for {
			out = append(out, l.ch)
			l.readChar()
			if l.ch < 0x80 || l.ch >= 0xC0 {
				break
			}
		}
	}
	if l.ch != '\'' {
		return string(out), false
	}
	l.readChar()
	return string(out), true
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return ch
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
