package code

import (
	"fmt"
	"strconv"

	"pasc/internal/symtab"
)

// ReturnSlot is how a function body addresses its result: through the
// pointer the caller pushed last, at argument offset 8.
const ReturnSlot = "*BP+8"

// Operand is one instruction operand: a symbol, rendered through the table
// at emission time, or literal text emitted verbatim.
type Operand struct {
	sym   symtab.Handle
	text  string
	isSym bool
	deref bool
}

// Value is the operand reading or writing h. By-reference symbols are
// dereferenced.
func Value(h symtab.Handle) Operand {
	return Operand{sym: h, isSym: true, deref: true}
}

// Address is h's stored address without following a reference.
func Address(h symtab.Handle) Operand {
	return Operand{sym: h, isSym: true}
}

// Const is literal operand text such as "#0".
func Const(text string) Operand {
	return Operand{text: text}
}

// Imm is an immediate integer operand.
func Imm(n int) Operand {
	return Operand{text: "#" + strconv.Itoa(n)}
}

// Label is an immediate reference to a label.
func Label(name string) Operand {
	return Operand{text: "#" + name}
}

// LabelName is the assembly name of label id.
func LabelName(id int) string {
	return fmt.Sprintf("lab%d", id)
}

func formatAddress(sym *symtab.Symbol) string {
	if sym.Local {
		return fmt.Sprintf("BP%+d", sym.Address)
	}
	return strconv.Itoa(sym.Address)
}

// RenderOperand renders h as an operand. deref asks by-reference symbols
// to be read through their pointer.
func (e *Emitter) RenderOperand(h symtab.Handle, deref bool) (string, error) {
	sym, err := e.table.At(h)
	if err != nil {
		return "", err
	}
	switch {
	case sym.Routine == symtab.Function:
		return ReturnSlot, nil
	case sym.Kind == symtab.NumericLiteral:
		return "#" + sym.Name, nil
	case !sym.IsPlaced():
		return "", symtab.Errorf(symtab.UndeclaredVariable, "variable %s is not declared", sym.Display())
	}
	addr := formatAddress(sym)
	if sym.ByReference && deref {
		return "*" + addr, nil
	}
	return addr, nil
}

// RenderReferenceOperand renders the address of h as a value, as needed when
// h is passed by reference. A reference parameter already holds an address
// and is used as is. A literal has no address, so it is first copied into a
// fresh temporary.
func (e *Emitter) RenderReferenceOperand(h symtab.Handle) (string, error) {
	sym, err := e.table.At(h)
	if err != nil {
		return "", err
	}
	switch {
	case sym.Routine == symtab.Function:
		return ReturnSlot[1:], nil
	case sym.ByReference:
		if !sym.IsPlaced() {
			return "", symtab.Errorf(symtab.UndeclaredVariable, "variable %s is not declared", sym.Display())
		}
		return formatAddress(sym), nil
	case sym.Kind == symtab.NumericLiteral:
		tmp, err := e.table.NewTemporary(sym.Type, sym.Name)
		if err != nil {
			return "", err
		}
		if err := e.Emit(Mov, "", Value(h), Value(tmp)); err != nil {
			return "", err
		}
		tsym, err := e.table.At(tmp)
		if err != nil {
			return "", err
		}
		return "#" + formatAddress(tsym), nil
	case !sym.IsPlaced():
		return "", symtab.Errorf(symtab.UndeclaredVariable, "variable %s is not declared", sym.Display())
	}
	return "#" + formatAddress(sym), nil
}

func (e *Emitter) render(op Operand) (string, error) {
	if !op.isSym {
		return op.text, nil
	}
	return e.RenderOperand(op.sym, op.deref)
}

// typeOf picks the instruction type from the first symbol operand.
func (e *Emitter) typeOf(ops []Operand) (symtab.ValueType, error) {
	for _, op := range ops {
		if !op.isSym {
			continue
		}
		sym, err := e.table.At(op.sym)
		if err != nil {
			return symtab.Unset, err
		}
		if sym.Type == symtab.Unset {
			return symtab.Unset, symtab.Errorf(symtab.UndeclaredVariable, "%s has no type", sym.Display())
		}
		return sym.Type, nil
	}
	return symtab.Unset, symtab.Errorf(symtab.UnknownType, "no operand to take the instruction type from")
}
