package lexer

import (
	"pasc/internal/token"
)

type Lexer struct {
	input string

	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination

	line int // 1-based
	col  int // 1-based column of current char
}

func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0, // readChar() will advance to col=1 for first char
	}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()

		if l.ch == '{' {
			line, col := l.line, l.col
			if !l.skipBraceComment() {
				return l.newToken(token.ILLEGAL, "unterminated comment", line, col)
			}
			continue
		}
		if l.ch == '(' && l.peekChar() == '*' {
			line, col := l.line, l.col
			if !l.skipParenComment() {
				return l.newToken(token.ILLEGAL, "unterminated comment", line, col)
			}
			continue
		}

		break
	}

	if l.ch == 0 {
		return l.newToken(token.EOF, "", l.line, l.col)
	}

	startLine, startCol := l.line, l.col

	switch l.ch {
	case ';':
		return l.single(token.SEMICOLON, startLine, startCol)
	case ',':
		return l.single(token.COMMA, startLine, startCol)
	case '(':
		return l.single(token.LPAREN, startLine, startCol)
	case ')':
		return l.single(token.RPAREN, startLine, startCol)
	case '[':
		return l.single(token.LBRACKET, startLine, startCol)
	case ']':
		return l.single(token.RBRACKET, startLine, startCol)
	case '+':
		return l.single(token.PLUS, startLine, startCol)
	case '-':
		return l.single(token.MINUS, startLine, startCol)
	case '*':
		return l.single(token.STAR, startLine, startCol)
	case '/':
		return l.single(token.SLASH, startLine, startCol)
	case '=':
		return l.single(token.EQ, startLine, startCol)

	case ':':
		if l.peekChar() == '=' {
			return l.double(token.ASSIGN, startLine, startCol)
		}
		return l.single(token.COLON, startLine, startCol)

	case '.':
		if l.peekChar() == '.' {
			return l.double(token.DOTDOT, startLine, startCol)
		}
		return l.single(token.DOT, startLine, startCol)

	case '<':
		switch l.peekChar() {
		case '=':
			return l.double(token.LE, startLine, startCol)
		case '>':
			return l.double(token.NE, startLine, startCol)
		}
		return l.single(token.LT, startLine, startCol)

	case '>':
		if l.peekChar() == '=' {
			return l.double(token.GE, startLine, startCol)
		}
		return l.single(token.GT, startLine, startCol)
	}

	// Identifiers / keywords
	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		return l.newToken(token.LookupIdent(lit), lit, startLine, startCol)
	}

	// Numbers (integer or real)
	if isDigit(l.ch) {
		lit, isReal := l.readNumber()
		if isReal {
			return l.newToken(token.REAL, lit, startLine, startCol)
		}
		return l.newToken(token.INT, lit, startLine, startCol)
	}

	// Unknown character
	tok := l.newToken(token.ILLEGAL, string(l.ch), startLine, startCol)
	l.readChar()
	return tok
}

func (l *Lexer) single(t token.Type, line, col int) token.Token {
	tok := l.newToken(t, string(t), line, col)
	l.readChar()
	return tok
}

func (l *Lexer) double(t token.Type, line, col int) token.Token {
	l.readChar()
	return l.single(t, line, col)
}

func (l *Lexer) newToken(t token.Type, lit string, line, col int) token.Token {
	return token.Token{
		Type:    t,
		Literal: lit,
		Line:    line,
		Col:     col,
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}

	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// skipBraceComment consumes a { ... } comment and reports whether it was
// closed before EOF.
func (l *Lexer) skipBraceComment() bool {
	l.readChar() // consume '{'
	for l.ch != 0 {
		if l.ch == '}' {
			l.readChar()
			return true
		}
		l.readChar()
	}
	return false
}

func (l *Lexer) skipParenComment() bool {
	l.readChar() // consume '('
	l.readChar() // consume '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == ')' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
	return false
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads digits with an optional fraction. A '.' only starts a
// fraction when a digit follows, so 1..10 stays a range.
func (l *Lexer) readNumber() (string, bool) {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	isReal := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isReal = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position], isReal
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
