package token

type Type string

type Token struct {
	Type    Type
	Literal string
	Line    int
	Col     int
}

const (
	// Special
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Identifiers + literals
	IDENT Type = "IDENT"
	INT   Type = "INT"
	REAL  Type = "REAL"

	// Keywords
	PROGRAM   Type = "PROGRAM"
	VAR       Type = "VAR"
	ARRAY     Type = "ARRAY"
	OF        Type = "OF"
	INTEGER   Type = "INTEGER"
	REALTYPE  Type = "REALTYPE"
	FUNCTION  Type = "FUNCTION"
	PROCEDURE Type = "PROCEDURE"
	BEGIN     Type = "BEGIN"
	END       Type = "END"
	IF        Type = "IF"
	THEN      Type = "THEN"
	ELSE      Type = "ELSE"
	WHILE     Type = "WHILE"
	DO        Type = "DO"
	NOT       Type = "NOT"
	OR        Type = "OR"
	AND       Type = "AND"
	DIV       Type = "DIV"
	MOD       Type = "MOD"
	WRITE     Type = "WRITE"
	READ      Type = "READ"

	// Operators
	ASSIGN Type = ":="
	PLUS   Type = "+"
	MINUS  Type = "-"
	STAR   Type = "*"
	SLASH  Type = "/"

	EQ Type = "="
	NE Type = "<>"
	LT Type = "<"
	LE Type = "<="
	GT Type = ">"
	GE Type = ">="

	// Delimiters
	COMMA     Type = ","
	SEMICOLON Type = ";"
	COLON     Type = ":"
	DOT       Type = "."
	DOTDOT    Type = ".."
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"
)

var keywords = map[string]Type{
	"program":   PROGRAM,
	"var":       VAR,
	"array":     ARRAY,
	"of":        OF,
	"integer":   INTEGER,
	"real":      REALTYPE,
	"function":  FUNCTION,
	"procedure": PROCEDURE,
	"begin":     BEGIN,
	"end":       END,
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"while":     WHILE,
	"do":        DO,
	"not":       NOT,
	"or":        OR,
	"and":       AND,
	"div":       DIV,
	"mod":       MOD,
	"write":     WRITE,
	"read":      READ,
}

func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsRelational reports whether t compares two values.
func IsRelational(t Type) bool {
	switch t {
	case EQ, NE, LT, LE, GT, GE:
		return true
	}
	return false
}
