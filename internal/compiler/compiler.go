package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"pasc/internal/code"
	"pasc/internal/diag"
	"pasc/internal/lexer"
	"pasc/internal/symtab"
	"pasc/internal/token"
)

var log = commonlog.GetLogger("pasc.compiler")

type Options struct {
	// Comments appends the symbolic form of every generated instruction as
	// a trailing comment.
	Comments bool
}

// Error is the first failure of a compilation, positioned in the source.
type Error struct {
	File string
	Diag diag.Diagnostic
	Err  error
}

func (e *Error) Error() string {
	return e.Diag.Format(e.File)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// bailout unwinds the parser on the first error.
type bailout struct {
	err *Error
}

// Compiler is a single-pass translator: it parses the source with recursive
// descent and drives the symbol table and the emitter at every reduction.
type Compiler struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token

	file  string
	opts  Options
	table *symtab.Table
	em    *code.Emitter
}

func New(file, src string, out io.Writer, opts Options) *Compiler {
	table := symtab.New()
	c := &Compiler{
		l:     lexer.New(src),
		file:  file,
		opts:  opts,
		table: table,
		em:    code.New(out, table),
	}
	c.peek = c.l.NextToken()
	return c
}

// Compile translates src into assembly written to out. On error, whatever
// was written to out is not a valid program.
func Compile(file, src string, out io.Writer, opts Options) error {
	return New(file, src, out, opts).Run()
}

// Run compiles the whole program. It stops at the first error, which is
// always an *Error.
func (c *Compiler) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	c.next()
	c.program()
	return nil
}

func (c *Compiler) Table() *symtab.Table {
	return c.table
}

func (c *Compiler) fail(tok token.Token, err error) {
	length := len(tok.Literal)
	d := diag.FromError(err, diag.Range{Line: tok.Line, Col: tok.Col, Length: length})
	log.Debugf("%s", d.Format(c.file))
	panic(bailout{&Error{File: c.file, Diag: d, Err: err}})
}

func (c *Compiler) failf(tok token.Token, format string, args ...any) {
	c.fail(tok, errors.Errorf(format, args...))
}

func (c *Compiler) check(tok token.Token, err error) {
	if err != nil {
		c.fail(tok, err)
	}
}

func (c *Compiler) next() {
	c.cur = c.peek
	c.peek = c.l.NextToken()
	if c.cur.Type == token.ILLEGAL {
		c.failf(c.cur, "illegal input %q", c.cur.Literal)
	}
}

func (c *Compiler) expect(t token.Type) token.Token {
	tok := c.cur
	if tok.Type != t {
		c.failf(tok, "expected %s, got %s", t, describe(tok))
	}
	c.next()
	return tok
}

func (c *Compiler) accept(t token.Type) bool {
	if c.cur.Type != t {
		return false
	}
	c.next()
	return true
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case token.INT, token.REAL:
		return fmt.Sprintf("number %s", tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}

func (c *Compiler) symbol(tok token.Token, h symtab.Handle) *symtab.Symbol {
	sym, err := c.table.At(h)
	c.check(tok, err)
	return sym
}

// note is the trailing comment for an instruction over hs.
func (c *Compiler) note(op code.Mnemonic, hs ...symtab.Handle) string {
	if !c.opts.Comments {
		return ""
	}
	names := make([]string, len(hs))
	for i, h := range hs {
		if sym, err := c.table.At(h); err == nil {
			names[i] = sym.Display()
		}
	}
	return fmt.Sprintf("%s %s", op, strings.Join(names, ","))
}
