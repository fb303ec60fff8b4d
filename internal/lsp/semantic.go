package lsp

import "pasc/internal/token"

// semantic token type indices (must match legend order in server)
const (
	ttKeyword   = 0
	ttNumber    = 1
	ttOperator  = 2
	ttFunction  = 3
	ttVariable  = 4
	ttParameter = 5
	ttType      = 6
)

const (
	modDecl = 1 << 0
)

// TokenTypes is the legend matching the tt* indices.
var TokenTypes = []string{"keyword", "number", "operator", "function", "variable", "parameter", "type"}

// TokenModifiers is the legend matching the mod* bits.
var TokenModifiers = []string{"declaration"}

type SemTok struct {
	Line   int
	Col    int
	Length int
	Type   int
	Mods   int
}

func Classify(tok token.Token) (int, bool) {
	switch tok.Type {
	case token.PROGRAM, token.VAR, token.OF, token.FUNCTION, token.PROCEDURE,
		token.BEGIN, token.END, token.IF, token.THEN, token.ELSE, token.WHILE, token.DO,
		token.NOT, token.OR, token.AND, token.DIV, token.MOD, token.WRITE, token.READ:
		return ttKeyword, true

	case token.INTEGER, token.REALTYPE, token.ARRAY:
		return ttType, true

	case token.INT, token.REAL:
		return ttNumber, true

	case token.ASSIGN, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE, token.DOTDOT:
		return ttOperator, true

	case token.IDENT:
		return ttVariable, true
	}

	return 0, false
}
