package compiler

import (
	"fmt"

	"pasc/internal/code"
	"pasc/internal/symtab"
	"pasc/internal/token"
)

var jumps = map[token.Type]code.Mnemonic{
	token.EQ: code.Je,
	token.NE: code.Jne,
	token.LT: code.Jl,
	token.LE: code.Jle,
	token.GT: code.Jg,
	token.GE: code.Jge,
}

var arithmetic = map[token.Type]code.Mnemonic{
	token.PLUS:  code.Add,
	token.MINUS: code.Sub,
	token.OR:    code.Or,
	token.STAR:  code.Mul,
	token.SLASH: code.Div,
	token.DIV:   code.Div,
	token.MOD:   code.Mod,
	token.AND:   code.And,
}

// expression := simple [ relop simple ]
func (c *Compiler) expression() symtab.Handle {
	left := c.simple()
	if !token.IsRelational(c.cur.Type) {
		return left
	}
	op := c.cur
	c.next()
	right := c.simple()
	return c.relation(op, c.scalar(op, left), c.scalar(op, right))
}

// simple := [ + | - ] term { (+ | - | or) term }
func (c *Compiler) simple() symtab.Handle {
	sign := c.cur
	negate := c.accept(token.MINUS)
	if !negate {
		c.accept(token.PLUS)
	}

	left := c.term()
	if negate {
		v := c.scalar(sign, left)
		result, err := c.table.NewTemporary(c.symbol(sign, v).Type, "")
		c.check(sign, err)
		c.check(sign, c.em.EmitNegate(code.Value(result), code.Value(v)))
		left = result
	}

	for c.cur.Type == token.PLUS || c.cur.Type == token.MINUS || c.cur.Type == token.OR {
		op := c.cur
		c.next()
		left = c.arith(op, left, c.term())
	}
	return left
}

// term := factor { (* | / | div | mod | and) factor }
func (c *Compiler) term() symtab.Handle {
	left := c.factor()
	for {
		switch c.cur.Type {
		case token.STAR, token.SLASH, token.DIV, token.MOD, token.AND:
			op := c.cur
			c.next()
			left = c.arith(op, left, c.factor())
		default:
			return left
		}
	}
}

// factor := var | id ( expr-list ) | num | ( expr ) | not factor
func (c *Compiler) factor() symtab.Handle {
	tok := c.cur
	switch tok.Type {
	case token.INT, token.REAL:
		c.next()
		return c.table.InternNumber(tok.Literal)

	case token.LPAREN:
		c.next()
		v := c.expression()
		c.expect(token.RPAREN)
		return v

	case token.NOT:
		c.next()
		return c.not(tok, c.factor())

	case token.IDENT:
		c.next()
		h, err := c.table.LookupOrFail(tok.Literal)
		c.check(tok, err)
		switch c.symbol(tok, h).Routine {
		case symtab.Function:
			return c.call(tok, h)
		case symtab.Procedure:
			c.fail(tok, symtab.Errorf(symtab.NotCallable, "procedure %s does not return a value", tok.Literal))
		}
		return c.variable(tok, h)
	}

	c.failf(tok, "expected expression, got %s", describe(tok))
	return symtab.NoHandle
}

// variable resolves the declared variable h, whose name tok has been
// consumed, and an optional index into it.
func (c *Compiler) variable(tok token.Token, h symtab.Handle) symtab.Handle {
	sym := c.symbol(tok, h)
	if !sym.IsPlaced() {
		c.fail(tok, symtab.Errorf(symtab.UndeclaredVariable, "variable %s is not declared", sym.Name))
	}
	if c.cur.Type != token.LBRACKET {
		return h
	}
	open := c.expect(token.LBRACKET)
	if !sym.IsArray() {
		c.failf(open, "%s is not an array", sym.Name)
	}
	index := c.convert(open, c.scalar(open, c.expression()), symtab.Integer)
	c.expect(token.RBRACKET)
	return c.element(open, h, index)
}

// element computes the address of array[index] into a pointer temporary.
func (c *Compiler) element(tok token.Token, array, index symtab.Handle) symtab.Handle {
	sym := c.symbol(tok, array)
	size, err := symtab.SizeOf(sym.Type, 1)
	c.check(tok, err)

	offset, err := c.table.NewTemporary(symtab.Integer, "")
	c.check(tok, err)
	c.check(tok, c.em.Emit(code.Sub, "", code.Value(index), code.Imm(sym.Bounds.Start), code.Value(offset)))
	c.check(tok, c.em.Emit(code.Mul, "", code.Value(offset), code.Imm(size), code.Value(offset)))

	display := fmt.Sprintf("%s[%s]", sym.Name, c.symbol(tok, index).Display())
	ptr, err := c.table.NewPointerTemporary(sym.Type, display)
	c.check(tok, err)
	base, err := c.em.RenderReferenceOperand(array)
	c.check(tok, err)
	c.check(tok, c.em.EmitTyped(code.Add, symtab.Integer, "", code.Const(base), code.Value(offset), code.Address(ptr)))
	return ptr
}

// scalar rejects values that cannot take part in arithmetic.
func (c *Compiler) scalar(tok token.Token, v symtab.Handle) symtab.Handle {
	sym := c.symbol(tok, v)
	if sym.IsArray() {
		c.failf(tok, "array %s used without an index", sym.Name)
	}
	return v
}

// convert returns v as a value of type want, converting it into a new
// temporary when its type differs.
func (c *Compiler) convert(tok token.Token, v symtab.Handle, want symtab.ValueType) symtab.Handle {
	sym := c.symbol(tok, v)
	if sym.Type == want {
		return v
	}
	result, err := c.table.NewTemporary(want, "")
	c.check(tok, err)
	op := code.RealToInt
	if want == symtab.Real {
		op = code.IntToReal
	}
	c.check(tok, c.em.Emit(op, c.note(op, v, result), code.Value(v), code.Value(result)))
	return result
}

// unify converts the integer side of a mixed pair to real.
func (c *Compiler) unify(tok token.Token, l, r symtab.Handle) (symtab.Handle, symtab.Handle) {
	lt, rt := c.symbol(tok, l).Type, c.symbol(tok, r).Type
	switch {
	case lt == rt:
		return l, r
	case lt == symtab.Integer:
		return c.convert(tok, l, rt), r
	default:
		return l, c.convert(tok, r, lt)
	}
}

func (c *Compiler) arith(op token.Token, l, r symtab.Handle) symtab.Handle {
	l, r = c.scalar(op, l), c.scalar(op, r)
	switch op.Type {
	case token.DIV, token.MOD, token.AND, token.OR:
		l = c.convert(op, l, symtab.Integer)
		r = c.convert(op, r, symtab.Integer)
	default:
		l, r = c.unify(op, l, r)
	}

	mnemonic := arithmetic[op.Type]
	result, err := c.table.NewTemporary(c.symbol(op, l).Type, "")
	c.check(op, err)
	c.check(op, c.em.Emit(mnemonic, c.note(mnemonic, l, r, result), code.Value(l), code.Value(r), code.Value(result)))
	return result
}

// relation materializes l op r as 0 or 1 in an integer temporary.
func (c *Compiler) relation(op token.Token, l, r symtab.Handle) symtab.Handle {
	l, r = c.unify(op, l, r)
	jump := jumps[op.Type]
	return c.flag(op, func(yes string) error {
		return c.em.Emit(jump, c.note(jump, l, r), code.Value(l), code.Value(r), code.Label(yes))
	})
}

// not yields 1 when v is zero and 0 otherwise.
func (c *Compiler) not(tok token.Token, v symtab.Handle) symtab.Handle {
	v = c.convert(tok, c.scalar(tok, v), symtab.Integer)
	return c.flag(tok, func(yes string) error {
		return c.em.Emit(code.Je, "", code.Value(v), code.Imm(0), code.Label(yes))
	})
}

// flag emits test, which jumps to its label argument when the condition
// holds, and sets a fresh integer temporary accordingly.
func (c *Compiler) flag(tok token.Token, test func(yes string) error) symtab.Handle {
	result, err := c.table.NewTemporary(symtab.Integer, "")
	c.check(tok, err)
	yes := code.LabelName(c.table.NewLabel())
	done := code.LabelName(c.table.NewLabel())

	c.check(tok, test(yes))
	c.check(tok, c.em.Emit(code.Mov, "", code.Imm(0), code.Value(result)))
	c.check(tok, c.em.EmitJump(done))
	c.check(tok, c.em.EmitLabel(yes))
	c.check(tok, c.em.Emit(code.Mov, "", code.Imm(1), code.Value(result)))
	c.check(tok, c.em.EmitLabel(done))
	return result
}
