package compiler

import (
	"strconv"

	"pasc/internal/symtab"
	"pasc/internal/token"
)

// program := program id ( id-list ) ; declarations routines compound .
func (c *Compiler) program() {
	c.expect(token.PROGRAM)
	name := c.expect(token.IDENT)
	if c.accept(token.LPAREN) {
		c.identifierList()
		c.expect(token.RPAREN)
	}
	c.expect(token.SEMICOLON)

	// the header names the program's files; they are never storage
	_, err := c.em.AllocateAndJumpToNewLabel()
	c.check(name, err)
	c.table.DiscardStaged()

	c.declarations()
	for c.cur.Type == token.FUNCTION || c.cur.Type == token.PROCEDURE {
		c.routine()
	}

	begin := c.cur
	c.check(begin, c.em.BeginProgram())
	c.compound()
	c.expect(token.DOT)
	if c.cur.Type != token.EOF {
		c.failf(c.cur, "unexpected %s after end of program", describe(c.cur))
	}
	c.check(c.cur, c.em.EndProgram())
	log.Debugf("compiled %s: %d global symbols", c.file, c.table.Len())
}

// identifierList stages every identifier of an id-list.
func (c *Compiler) identifierList() {
	for {
		tok := c.expect(token.IDENT)
		_, err := c.table.Stage(c.table.LookupOrInsert(tok.Literal))
		c.check(tok, err)
		if !c.accept(token.COMMA) {
			return
		}
	}
}

// declarations := { var id-list : type ; { id-list : type ; } }
func (c *Compiler) declarations() {
	for c.accept(token.VAR) {
		for {
			c.identifierList()
			c.expect(token.COLON)
			tok := c.cur
			vt, bounds := c.typeSpec()
			c.table.SetPendingBounds(bounds)
			c.check(tok, c.table.CommitToMemory(vt))
			c.table.SetPendingBounds(symtab.Bounds{})
			c.expect(token.SEMICOLON)
			if c.cur.Type != token.IDENT {
				break
			}
		}
	}
}

// typeSpec := std-type | array [ num .. num ] of std-type
func (c *Compiler) typeSpec() (symtab.ValueType, symtab.Bounds) {
	if !c.accept(token.ARRAY) {
		return c.standardType(), symtab.Bounds{}
	}
	c.expect(token.LBRACKET)
	start := c.bound()
	c.expect(token.DOTDOT)
	end := c.bound()
	c.expect(token.RBRACKET)
	c.expect(token.OF)
	return c.standardType(), symtab.Bounds{Start: start, End: end}
}

func (c *Compiler) bound() int {
	negative := c.accept(token.MINUS)
	tok := c.expect(token.INT)
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		c.failf(tok, "array bound %s out of range", tok.Literal)
	}
	if negative {
		return -n
	}
	return n
}

func (c *Compiler) standardType() symtab.ValueType {
	tok := c.cur
	switch {
	case c.accept(token.INTEGER):
		return symtab.Integer
	case c.accept(token.REALTYPE):
		return symtab.Real
	}
	c.failf(tok, "expected integer or real, got %s", describe(tok))
	return symtab.Unset
}

// routine := (function | procedure) id [ ( params ) ] [ : std-type ] ;
// declarations compound ;
func (c *Compiler) routine() {
	kind := symtab.Procedure
	if c.cur.Type == token.FUNCTION {
		kind = symtab.Function
	}
	c.next()
	name := c.expect(token.IDENT)

	h, err := c.table.DeclareRoutine(name.Literal, kind)
	c.check(name, err)
	c.check(name, c.em.EmitLabel(name.Literal))
	c.check(name, c.table.EnterRoutine(h))

	if c.accept(token.LPAREN) {
		c.parameters()
		c.expect(token.RPAREN)
	}
	n, err := c.table.CommitAsArguments(h)
	c.check(name, err)

	if kind == symtab.Function {
		c.expect(token.COLON)
		c.symbol(name, h).Type = c.standardType()
	}
	c.expect(token.SEMICOLON)

	c.declarations()
	if c.cur.Type == token.FUNCTION || c.cur.Type == token.PROCEDURE {
		// rejected by the symbol table
		c.routine()
	}
	c.check(name, c.em.BeginBufferedBody())
	c.compound()
	frame := c.table.FrameSize()
	c.check(name, c.em.EndBufferedBody(frame))
	log.Debugf("%s %s: %d parameters, frame %d", kind, name.Literal, n, frame)
	c.check(name, c.table.ExitRoutine())
	c.expect(token.SEMICOLON)
}

// parameters := id-list : type { ; id-list : type }
func (c *Compiler) parameters() {
	for {
		c.identifierList()
		c.expect(token.COLON)
		tok := c.cur
		vt, bounds := c.typeSpec()
		c.table.SetPendingBounds(bounds)
		c.check(tok, c.table.StampPendingType(vt))
		c.table.SetPendingBounds(symtab.Bounds{})
		if !c.accept(token.SEMICOLON) {
			return
		}
	}
}
