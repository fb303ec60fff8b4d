package symtab

import (
	"fmt"
	"math"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pasc.symtab")

type Scope int

const (
	GlobalScope Scope = iota
	ProcedureScope
	FunctionScope
)

func (s Scope) String() string {
	switch s {
	case ProcedureScope:
		return "procedure"
	case FunctionScope:
		return "function"
	default:
		return "global"
	}
}

// Table is the compile-time symbol store. Symbols are appended and only
// removed when the routine that declared them is exited.
type Table struct {
	symbols []*Symbol

	globalCursor   int
	localCursor    int
	argumentCursor int

	nextTemporary int
	nextLabel     int
	labels        []int
	calls         []Handle

	staged  []Handle
	stamped int
	pending Bounds

	scope  Scope
	active Handle
}

func New() *Table {
	return &Table{active: NoHandle}
}

func (t *Table) Len() int {
	return len(t.symbols)
}

// At returns the symbol behind h.
func (t *Table) At(h Handle) (*Symbol, error) {
	if h < 0 || int(h) >= len(t.symbols) {
		return nil, Errorf(InvalidHandle, "symbol handle %d out of range [0,%d)", int(h), len(t.symbols))
	}
	return t.symbols[h], nil
}

func (t *Table) Scope() Scope {
	return t.scope
}

// ActiveRoutine is the routine whose body is being compiled.
func (t *Table) ActiveRoutine() (Handle, bool) {
	return t.active, t.scope != GlobalScope
}

// Lookup finds the most recently added symbol called name, which makes
// later declarations shadow earlier ones.
func (t *Table) Lookup(name string) (Handle, bool) {
	for i := len(t.symbols) - 1; i >= 0; i-- {
		if t.symbols[i].Name == name {
			return Handle(i), true
		}
	}
	return NoHandle, false
}

func (t *Table) LookupOrFail(name string) (Handle, error) {
	if h, ok := t.Lookup(name); ok {
		return h, nil
	}
	return NoHandle, Errorf(UnknownSymbol, "symbol %s is absent from the symbol table", name)
}

func (t *Table) LookupOrInsert(name string) Handle {
	if h, ok := t.Lookup(name); ok {
		return h
	}
	return t.ForceInsert(name)
}

// ForceInsert appends a new identifier even if name is already known.
func (t *Table) ForceInsert(name string) Handle {
	return t.push(newSymbol(name, Identifier))
}

// InternNumber returns the literal symbol for text, creating it on first
// use. Text containing a fractional separator is a real literal.
func (t *Table) InternNumber(text string) Handle {
	for i := len(t.symbols) - 1; i >= 0; i-- {
		sym := t.symbols[i]
		if sym.Kind == NumericLiteral && sym.Name == text {
			return Handle(i)
		}
	}
	sym := newSymbol(text, NumericLiteral)
	sym.Type = Integer
	if strings.Contains(text, ".") {
		sym.Type = Real
	}
	return t.push(sym)
}

// NewTemporary allocates a fresh, unnamed storage slot of type vt in the
// current scope.
func (t *Table) NewTemporary(vt ValueType, display string) (Handle, error) {
	size, err := SizeOf(vt, 1)
	if err != nil {
		return NoHandle, err
	}
	return t.newTemporary(vt, size, display), nil
}

// NewPointerTemporary allocates a temporary that holds the address of a
// value of type vt, such as a computed array element.
func (t *Table) NewPointerTemporary(vt ValueType, display string) (Handle, error) {
	if _, err := SizeOf(vt, 1); err != nil {
		return NoHandle, err
	}
	size, _ := SizeOf(Integer, 1)
	h := t.newTemporary(vt, size, display)
	t.symbols[h].ByReference = true
	return h, nil
}

func (t *Table) newTemporary(vt ValueType, size int, display string) Handle {
	name := fmt.Sprintf("$t%d", t.nextTemporary)
	t.nextTemporary++

	sym := newSymbol(name, Identifier)
	sym.Type = vt
	sym.Address = t.allocate(size)
	if display == "" {
		display = name
	}
	sym.SetDisplay(display)
	h := t.push(sym)
	log.Debugf("created %s temporary %s(%s) of type %s at %d @%d", t.scope, name, display, vt, int(h), sym.Address)
	return h
}

func (t *Table) push(sym *Symbol) Handle {
	sym.Local = t.scope != GlobalScope
	t.symbols = append(t.symbols, sym)
	h := Handle(len(t.symbols) - 1)
	log.Debugf("adding %s symbol %q at %d", t.scope, sym.Name, int(h))
	return h
}

// allocate reserves size units in the current scope. Globals grow upwards
// from 0, locals grow downwards from the frame base.
func (t *Table) allocate(size int) int {
	if t.scope == GlobalScope {
		addr := t.globalCursor
		t.globalCursor += size
		return addr
	}
	t.localCursor -= size
	return t.localCursor
}

// fits reports whether n allocations of size units can be made in the
// current scope without the address cursor overflowing.
func (t *Table) fits(size, n int) bool {
	if n == 0 {
		return true
	}
	if size > 0 && n > math.MaxInt/size {
		return false
	}
	total := size * n
	if t.scope == GlobalScope {
		return t.globalCursor <= math.MaxInt-total
	}
	return t.localCursor >= math.MinInt+total
}

// NewLabel allocates a label id without pushing it.
func (t *Table) NewLabel() int {
	id := t.nextLabel
	t.nextLabel++
	return id
}

// PushNewLabel allocates a label id and pushes it on the label stack.
func (t *Table) PushNewLabel() int {
	id := t.NewLabel()
	t.labels = append(t.labels, id)
	return id
}

func (t *Table) PopLabel() (int, error) {
	id, err := t.PeekLabel()
	if err != nil {
		return 0, err
	}
	t.labels = t.labels[:len(t.labels)-1]
	return id, nil
}

func (t *Table) PeekLabel() (int, error) {
	if len(t.labels) == 0 {
		return 0, Errorf(EmptyStack, "label stack is empty")
	}
	return t.labels[len(t.labels)-1], nil
}

// PushCall records the routine whose argument list is being parsed.
func (t *Table) PushCall(routine Handle) {
	t.calls = append(t.calls, routine)
}

func (t *Table) PopCall() (Handle, error) {
	h, err := t.CurrentCall()
	if err != nil {
		return NoHandle, err
	}
	t.calls = t.calls[:len(t.calls)-1]
	return h, nil
}

// CurrentCall is the innermost call whose arguments are being parsed.
func (t *Table) CurrentCall() (Handle, error) {
	if len(t.calls) == 0 {
		return NoHandle, Errorf(EmptyStack, "call stack is empty")
	}
	return t.calls[len(t.calls)-1], nil
}

// ArgumentType returns the declared type of the parameter at position of
// routine.
func (t *Table) ArgumentType(routine Handle, position int) (ValueType, error) {
	sym, err := t.At(routine)
	if err != nil {
		return Unset, err
	}
	return sym.ArgType(position)
}
