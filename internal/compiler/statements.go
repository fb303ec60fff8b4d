package compiler

import (
	"pasc/internal/code"
	"pasc/internal/symtab"
	"pasc/internal/token"
)

// compound := begin [ statement { ; statement } ] end
func (c *Compiler) compound() {
	c.expect(token.BEGIN)
	c.statement()
	for c.accept(token.SEMICOLON) {
		c.statement()
	}
	c.expect(token.END)
}

func (c *Compiler) statement() {
	switch c.cur.Type {
	case token.BEGIN:
		c.compound()
	case token.IF:
		c.ifStatement()
	case token.WHILE:
		c.whileStatement()
	case token.WRITE:
		c.writeStatement()
	case token.READ:
		c.readStatement()
	case token.IDENT:
		c.assignOrCall()
	case token.SEMICOLON, token.END, token.ELSE:
		// empty statement
	default:
		c.failf(c.cur, "expected statement, got %s", describe(c.cur))
	}
}

func (c *Compiler) assignOrCall() {
	tok := c.expect(token.IDENT)
	h, err := c.table.LookupOrFail(tok.Literal)
	c.check(tok, err)
	sym := c.symbol(tok, h)

	if sym.IsRoutine() && c.cur.Type != token.ASSIGN {
		c.call(tok, h)
		return
	}

	var target symtab.Handle
	if sym.IsRoutine() {
		active, ok := c.table.ActiveRoutine()
		if sym.Routine != symtab.Function || !ok || active != h {
			c.failf(tok, "cannot assign to %s %s here", sym.Routine, sym.Name)
		}
		target = h
	} else {
		target = c.scalar(tok, c.variable(tok, h))
	}

	op := c.expect(token.ASSIGN)
	value := c.scalar(op, c.expression())
	value = c.convert(op, value, c.symbol(tok, target).Type)
	c.check(op, c.em.Emit(code.Mov, c.note(code.Mov, value, target), code.Value(value), code.Value(target)))
}

// ifStatement := if expr then statement [ else statement ]
func (c *Compiler) ifStatement() {
	tok := c.expect(token.IF)
	end := c.table.PushNewLabel()
	otherwise := c.table.PushNewLabel()

	cond := c.scalar(tok, c.expression())
	c.expect(token.THEN)
	c.check(tok, c.em.Emit(code.Je, "", code.Value(cond), code.Imm(0), code.Label(code.LabelName(otherwise))))
	c.statement()

	if c.cur.Type == token.ELSE {
		c.check(tok, c.em.EmitJump(code.LabelName(end)))
	}
	c.defineLabel(tok)
	if c.accept(token.ELSE) {
		c.statement()
		c.defineLabel(tok)
		return
	}
	_, err := c.table.PopLabel()
	c.check(tok, err)
}

// whileStatement := while expr do statement
func (c *Compiler) whileStatement() {
	tok := c.expect(token.WHILE)
	end := c.table.PushNewLabel()
	start := c.table.PushNewLabel()
	c.check(tok, c.em.EmitLabel(code.LabelName(start)))

	cond := c.scalar(tok, c.expression())
	c.expect(token.DO)
	c.check(tok, c.em.Emit(code.Je, "", code.Value(cond), code.Imm(0), code.Label(code.LabelName(end))))
	c.statement()

	top, err := c.table.PopLabel()
	c.check(tok, err)
	c.check(tok, c.em.EmitJump(code.LabelName(top)))
	c.defineLabel(tok)
}

// defineLabel pops the innermost pending label and places it here.
func (c *Compiler) defineLabel(tok token.Token) {
	id, err := c.table.PopLabel()
	c.check(tok, err)
	c.check(tok, c.em.EmitLabel(code.LabelName(id)))
}

// writeStatement := write ( expr { , expr } )
func (c *Compiler) writeStatement() {
	c.expect(token.WRITE)
	c.expect(token.LPAREN)
	for {
		tok := c.cur
		v := c.scalar(tok, c.expression())
		c.check(tok, c.em.Emit(code.Write, c.note(code.Write, v), code.Value(v)))
		if !c.accept(token.COMMA) {
			break
		}
	}
	c.expect(token.RPAREN)
}

// readStatement := read ( var { , var } )
func (c *Compiler) readStatement() {
	c.expect(token.READ)
	c.expect(token.LPAREN)
	for {
		tok := c.expect(token.IDENT)
		h, err := c.table.LookupOrFail(tok.Literal)
		c.check(tok, err)
		v := c.scalar(tok, c.variable(tok, h))
		c.check(tok, c.em.Emit(code.Read, c.note(code.Read, v), code.Value(v)))
		if !c.accept(token.COMMA) {
			break
		}
	}
	c.expect(token.RPAREN)
}

// call parses the optional argument list of routine h, whose name tok has
// been consumed, and emits the call. Functions return the temporary holding
// their result.
func (c *Compiler) call(tok token.Token, h symtab.Handle) symtab.Handle {
	sym := c.symbol(tok, h)
	if !sym.IsRoutine() {
		c.fail(tok, symtab.Errorf(symtab.NotCallable, "%s is not a procedure or function", sym.Name))
	}

	c.table.PushCall(h)
	words, n := 0, 0
	if c.accept(token.LPAREN) {
		for {
			arg := c.cur
			current, err := c.table.CurrentCall()
			c.check(arg, err)
			want, err := c.table.ArgumentType(current, n)
			c.check(arg, err)

			v := c.argument(arg, c.expression(), want)
			c.check(arg, c.em.PushArgument(v))
			words++
			n++
			if !c.accept(token.COMMA) {
				break
			}
		}
		c.expect(token.RPAREN)
	}
	if n < sym.ArgCount() {
		c.fail(tok, symtab.Errorf(symtab.TooFewArguments, "%s expects %d arguments, got %d", sym.Name, sym.ArgCount(), n))
	}

	result := symtab.NoHandle
	if sym.Routine == symtab.Function {
		var err error
		result, err = c.table.NewTemporary(sym.Type, "")
		c.check(tok, err)
		c.check(tok, c.em.PushArgument(result))
		words++
	}

	c.check(tok, c.em.EmitTyped(code.Call, symtab.Integer, "", code.Label(sym.Name)))
	if words > 0 {
		size, _ := symtab.SizeOf(symtab.Integer, words)
		c.check(tok, c.em.EmitTyped(code.IncSP, symtab.Integer, "", code.Imm(size)))
	}
	_, err := c.table.PopCall()
	c.check(tok, err)
	return result
}

// argument prepares v to be passed where a parameter of type want is
// declared. Whole arrays are passed as they are; scalars of the other type
// are converted into a temporary.
func (c *Compiler) argument(tok token.Token, v symtab.Handle, want symtab.ValueType) symtab.Handle {
	sym := c.symbol(tok, v)
	if sym.IsArray() {
		if sym.Type != want {
			c.failf(tok, "cannot pass array of %s as %s", sym.Type, want)
		}
		return v
	}
	return c.convert(tok, v, want)
}
