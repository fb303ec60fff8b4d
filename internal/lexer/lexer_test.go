package lexer

import (
	"testing"

	"pasc/internal/token"
)

type expectedToken struct {
	typ token.Type
	lit string
}

func expectTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - wrong type. expected=%q got=%q (lit=%q)", i, tt.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.lit {
			t.Fatalf("tests[%d] - wrong literal. expected=%q got=%q (type=%q)", i, tt.lit, tok.Literal, tok.Type)
		}
	}
}

func TestLexer_Program(t *testing.T) {
	input := `program example(input, output);
var x, y: integer;
var g: real;

function gcd(a, b: integer): integer;
begin
  if b = 0 then gcd := a
  else gcd := gcd(b, a mod b)
end;

begin
  read(x, y);
  g := gcd(x, y) / 2.5;
  write(g)
end.`

	expectTokens(t, input, []expectedToken{
		{token.PROGRAM, "program"},
		{token.IDENT, "example"},
		{token.LPAREN, "("},
		{token.IDENT, "input"},
		{token.COMMA, ","},
		{token.IDENT, "output"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},

		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.COLON, ":"},
		{token.INTEGER, "integer"},
		{token.SEMICOLON, ";"},
		{token.VAR, "var"},
		{token.IDENT, "g"},
		{token.COLON, ":"},
		{token.REALTYPE, "real"},
		{token.SEMICOLON, ";"},

		{token.FUNCTION, "function"},
		{token.IDENT, "gcd"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.COLON, ":"},
		{token.INTEGER, "integer"},
		{token.RPAREN, ")"},
		{token.COLON, ":"},
		{token.INTEGER, "integer"},
		{token.SEMICOLON, ";"},
		{token.BEGIN, "begin"},
		{token.IF, "if"},
		{token.IDENT, "b"},
		{token.EQ, "="},
		{token.INT, "0"},
		{token.THEN, "then"},
		{token.IDENT, "gcd"},
		{token.ASSIGN, ":="},
		{token.IDENT, "a"},
		{token.ELSE, "else"},
		{token.IDENT, "gcd"},
		{token.ASSIGN, ":="},
		{token.IDENT, "gcd"},
		{token.LPAREN, "("},
		{token.IDENT, "b"},
		{token.COMMA, ","},
		{token.IDENT, "a"},
		{token.MOD, "mod"},
		{token.IDENT, "b"},
		{token.RPAREN, ")"},
		{token.END, "end"},
		{token.SEMICOLON, ";"},

		{token.BEGIN, "begin"},
		{token.READ, "read"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "g"},
		{token.ASSIGN, ":="},
		{token.IDENT, "gcd"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.SLASH, "/"},
		{token.REAL, "2.5"},
		{token.SEMICOLON, ";"},
		{token.WRITE, "write"},
		{token.LPAREN, "("},
		{token.IDENT, "g"},
		{token.RPAREN, ")"},
		{token.END, "end"},
		{token.DOT, "."},
		{token.EOF, ""},
	})
}

func TestLexer_Operators(t *testing.T) {
	expectTokens(t, "a := b <> c <= d >= e < f > g = h + - * /", []expectedToken{
		{token.IDENT, "a"},
		{token.ASSIGN, ":="},
		{token.IDENT, "b"},
		{token.NE, "<>"},
		{token.IDENT, "c"},
		{token.LE, "<="},
		{token.IDENT, "d"},
		{token.GE, ">="},
		{token.IDENT, "e"},
		{token.LT, "<"},
		{token.IDENT, "f"},
		{token.GT, ">"},
		{token.IDENT, "g"},
		{token.EQ, "="},
		{token.IDENT, "h"},
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.STAR, "*"},
		{token.SLASH, "/"},
		{token.EOF, ""},
	})
}

func TestLexer_ArrayRange(t *testing.T) {
	expectTokens(t, "array[1..10] of real; v[3.5]", []expectedToken{
		{token.ARRAY, "array"},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.DOTDOT, ".."},
		{token.INT, "10"},
		{token.RBRACKET, "]"},
		{token.OF, "of"},
		{token.REALTYPE, "real"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "v"},
		{token.LBRACKET, "["},
		{token.REAL, "3.5"},
		{token.RBRACKET, "]"},
		{token.EOF, ""},
	})
}

func TestLexer_Comments(t *testing.T) {
	input := "x { brace\ncomment } := (* paren\n* comment *) 1 { }"
	expectTokens(t, input, []expectedToken{
		{token.IDENT, "x"},
		{token.ASSIGN, ":="},
		{token.INT, "1"},
		{token.EOF, ""},
	})
}

func TestLexer_UnterminatedComment(t *testing.T) {
	for _, input := range []string{"x { open", "x (* open *"} {
		l := New(input)
		l.NextToken()
		tok := l.NextToken()
		if tok.Type != token.ILLEGAL || tok.Literal != "unterminated comment" {
			t.Fatalf("%q: expected unterminated comment, got %q %q", input, tok.Type, tok.Literal)
		}
		if tok.Line != 1 || tok.Col != 3 {
			t.Fatalf("%q: expected comment start 1:3, got %d:%d", input, tok.Line, tok.Col)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	l := New("begin\n  x := 1\nend")
	tests := []struct {
		typ  token.Type
		line int
		col  int
	}{
		{token.BEGIN, 1, 1},
		{token.IDENT, 2, 3},
		{token.ASSIGN, 2, 5},
		{token.INT, 2, 8},
		{token.END, 3, 1},
		{token.EOF, 3, 3},
	}
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Line != tt.line || tok.Col != tt.col {
			t.Fatalf("tests[%d] - expected %q at %d:%d, got %q at %d:%d", i, tt.typ, tt.line, tt.col, tok.Type, tok.Line, tok.Col)
		}
	}
}

func TestLexer_KeywordsAreCaseSensitive(t *testing.T) {
	expectTokens(t, "Begin BEGIN begin $", []expectedToken{
		{token.IDENT, "Begin"},
		{token.IDENT, "BEGIN"},
		{token.BEGIN, "begin"},
		{token.ILLEGAL, "$"},
		{token.EOF, ""},
	})
}
