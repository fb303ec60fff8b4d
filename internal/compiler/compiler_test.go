package compiler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pasc/internal/symtab"
)

func TestCompile_Golden(t *testing.T) {
	update := os.Getenv("UPDATE_GOLDENS") == "1"
	inDir := filepath.Join("testdata", "in")
	outDir := filepath.Join("testdata", "out")

	entries, err := os.ReadDir(inDir)
	if err != nil {
		t.Fatalf("read dir %s: %v", inDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		inPath := filepath.Join(inDir, name)
		outPath := filepath.Join(outDir, strings.TrimSuffix(name, ".pas")+".asm")

		src, err := os.ReadFile(inPath)
		if err != nil {
			t.Fatalf("read %s: %v", inPath, err)
		}
		var out bytes.Buffer
		if err := Compile(name, string(src), &out, Options{}); err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}

		if update {
			if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
				t.Fatalf("update %s: %v", outPath, err)
			}
			continue
		}

		want, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("read %s: %v", outPath, err)
		}
		if string(want) != out.String() {
			t.Fatalf("golden mismatch for %s\n--- want ---\n%s\n--- got ---\n%s", name, string(want), out.String())
		}
	}
}

func TestCompile_Comments(t *testing.T) {
	src := `program p;
var x: integer;
var r: real;
begin
  x := 5;
  r := x
end.`
	var out bytes.Buffer
	if err := Compile("comments.pas", src, &out, Options{Comments: true}); err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := "" +
		"\tjump.i #lab0;\n" +
		"lab0:\n" +
		"\tmov.i #5, 0;\t;mov 5,x\n" +
		"\tinttoreal.i 0, 12;\t;inttoreal x,$t0\n" +
		"\tmov.r 12, 4;\t;mov $t0,r\n" +
		"\texit;\n"
	if out.String() != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestCompile_RecursionAndNestedCalls(t *testing.T) {
	src := `program p;
var n: integer;
function fact(k: integer): integer;
begin
  if k <= 1 then fact := 1
  else fact := k * fact(k - 1)
end;
procedure show(v: integer);
begin
  write(v)
end;
begin
  read(n);
  show(fact(n))
end.`
	var out bytes.Buffer
	if err := Compile("fact.pas", src, &out, Options{}); err != nil {
		t.Fatalf("compile: %v", err)
	}
	asm := out.String()
	for _, want := range []string{
		"fact:\n\tenter.i #",
		"\tcall.i #fact;\n\tincsp.i #8;\n",
		"show:\n\tenter.i #0;\n\twrite.i *BP+8;\n\tleave;\n\treturn;\n",
		"\tcall.i #show;\n\tincsp.i #4;\n\texit;\n",
	} {
		if !strings.Contains(asm, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, asm)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind symtab.Kind
		line int
		col  int
	}{
		{
			name: "too many arguments",
			src: `program p;
var x: integer;
procedure q(a, b: integer);
begin
end;
begin
  q(1, 2, x)
end.`,
			kind: symtab.TooManyArguments,
			line: 7, col: 11,
		},
		{
			name: "too few arguments",
			src: `program p;
procedure q(a, b: integer);
begin
end;
begin
  q(1)
end.`,
			kind: symtab.TooFewArguments,
			line: 6, col: 3,
		},
		{
			name: "unknown symbol",
			src: `program p;
begin
  y := 1
end.`,
			kind: symtab.UnknownSymbol,
			line: 3, col: 3,
		},
		{
			name: "duplicate global",
			src: `program p;
var x: integer;
var x: real;
begin
end.`,
			kind: symtab.DuplicateDeclaration,
			line: 3, col: 5,
		},
		{
			name: "duplicate local",
			src: `program p;
procedure q(a: integer);
var a: real;
begin
end;
begin
end.`,
			kind: symtab.DuplicateDeclaration,
			line: 3, col: 5,
		},
		{
			name: "header name is not storage",
			src: `program p(input, output);
var x: integer;
begin
  x := input
end.`,
			kind: symtab.UndeclaredVariable,
			line: 4, col: 8,
		},
		{
			name: "nested routine",
			src: `program p;
procedure outer;
procedure inner;
begin
end;
begin
end;
begin
end.`,
			kind: symtab.NestedRoutineNotSupported,
			line: 3, col: 11,
		},
		{
			name: "procedure used as value",
			src: `program p;
var x: integer;
procedure q;
begin
end;
begin
  x := q
end.`,
			kind: symtab.NotCallable,
			line: 7, col: 8,
		},
		{
			name: "empty array",
			src: `program p;
var v: array[3..1] of integer;
begin
end.`,
			kind: symtab.UnknownType,
			line: 2, col: 8,
		},
		{
			name: "array size wraps around",
			src: `program p;
var v: array[0..2305843009213693952] of real; x: integer;
begin
  x := 1
end.`,
			kind: symtab.StorageOverflow,
			line: 2, col: 8,
		},
		{
			name: "array element count wraps around",
			src: `program p;
var v: array[-9223372036854775807..9223372036854775807] of integer;
begin
end.`,
			kind: symtab.StorageOverflow,
			line: 2, col: 8,
		},
	}

	for _, tt := range tests {
		err := Compile("test.pas", tt.src, &bytes.Buffer{}, Options{})
		if !errors.Is(err, tt.kind) {
			t.Fatalf("%s: expected %s, got %v", tt.name, tt.kind, err)
		}
		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: expected *Error, got %T", tt.name, err)
		}
		if cerr.Diag.Code != tt.kind.Code() {
			t.Fatalf("%s: expected code %s, got %s", tt.name, tt.kind.Code(), cerr.Diag.Code)
		}
		if cerr.Diag.Range.Line != tt.line || cerr.Diag.Range.Col != tt.col {
			t.Fatalf("%s: expected %d:%d, got %d:%d", tt.name, tt.line, tt.col, cerr.Diag.Range.Line, cerr.Diag.Range.Col)
		}
	}
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"missing semicolon", "program p\nbegin end.", `expected ;, got "begin"`},
		{"missing dot", "program p;\nbegin end", "expected ., got end of file"},
		{"trailing input", "program p;\nbegin end. x", `unexpected identifier "x" after end of program`},
		{"illegal character", "program p;\nbegin x $ end.", `illegal input "$"`},
		{"unterminated comment", "program p;\n{ open\nbegin end.", `illegal input "unterminated comment"`},
		{"assign to procedure", "program p;\nprocedure q;\nbegin end;\nbegin q := 1 end.", "cannot assign to procedure q here"},
		{"assign to function outside", "program p;\nfunction f: integer;\nbegin f := 1 end;\nbegin f := 2 end.", "cannot assign to function f here"},
		{"array without index", "program p;\nvar v: array[1..2] of integer;\nbegin v := 1 end.", "array v used without an index"},
		{"index into scalar", "program p;\nvar x: integer;\nbegin x[1] := 1 end.", "x is not an array"},
		{"bad type", "program p;\nvar x: boolean;\nbegin end.", `expected integer or real, got identifier "boolean"`},
	}
	for _, tt := range tests {
		err := Compile("test.pas", tt.src, &bytes.Buffer{}, Options{})
		if err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: expected *Error, got %T", tt.name, err)
		}
		if cerr.Diag.Message != tt.msg {
			t.Fatalf("%s: expected message %q, got %q", tt.name, tt.msg, cerr.Diag.Message)
		}
		if symtab.KindOf(err) != 0 {
			t.Fatalf("%s: expected a syntax error, got %s", tt.name, symtab.KindOf(err))
		}
		if cerr.Diag.Code != "PS0100" {
			t.Fatalf("%s: expected PS0100, got %s", tt.name, cerr.Diag.Code)
		}
	}
}

func TestError_Format(t *testing.T) {
	err := Compile("main.pas", "program p;\nbegin\n  y := 1\nend.", &bytes.Buffer{}, Options{})
	want := "main.pas:3:3: error PS0001: symbol y is absent from the symbol table"
	if err == nil || err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
}
