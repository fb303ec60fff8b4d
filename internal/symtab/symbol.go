package symtab

import "math"

type SymbolKind int

const (
	NumericLiteral SymbolKind = iota
	Identifier
)

type ValueType int

const (
	Unset ValueType = iota
	Integer
	Real
)

func (t ValueType) String() string {
	switch t {
	case Unset:
		return "<notype>"
	case Integer:
		return "integer"
	case Real:
		return "real"
	default:
		return "<badtype>"
	}
}

// Suffix is the one-letter instruction suffix selecting the integer or real
// form of an opcode.
func (t ValueType) Suffix() string {
	if t == Real {
		return "r"
	}
	return "i"
}

type RoutineKind int

const (
	NotRoutine RoutineKind = iota
	Procedure
	Function
)

func (k RoutineKind) String() string {
	switch k {
	case Procedure:
		return "procedure"
	case Function:
		return "function"
	default:
		return "none"
	}
}

// Bounds are inclusive array index bounds. The zero value means "not an
// array".
type Bounds struct {
	Start int
	End   int
}

func (b Bounds) IsArray() bool {
	return b.Start != 0 || b.End != 0
}

// Count is the number of elements described by b, 1 for scalars. Bounds
// whose element count does not fit an int are a StorageOverflow.
func (b Bounds) Count() (int, error) {
	if !b.IsArray() {
		return 1, nil
	}
	if b.Start <= 0 && b.End > math.MaxInt+b.Start-1 {
		return 0, Errorf(StorageOverflow, "array bounds %d..%d hold too many elements", b.Start, b.End)
	}
	return b.End - b.Start + 1, nil
}

// NoAddress marks a symbol that has not been placed in storage yet.
const NoAddress = math.MaxInt

// Handle identifies a symbol inside its Table.
type Handle int

// NoHandle is returned where no symbol applies.
const NoHandle Handle = -1

// Symbol describes one declared name, literal constant or temporary. It is
// updated in place as declarations are parsed.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Type    ValueType
	Routine RoutineKind
	Bounds  Bounds
	Address int

	// ByReference is set for parameters: Address holds a pointer that must
	// be followed once to reach the value.
	ByReference bool
	// Local symbols belong to the routine being compiled and are dropped
	// when it is exited. Their addresses are frame-relative.
	Local bool

	Args []ValueType

	display string
}

func newSymbol(name string, kind SymbolKind) *Symbol {
	return &Symbol{Name: name, Kind: kind, Address: NoAddress}
}

// Display is the label used in trace output and generated comments.
func (s *Symbol) Display() string {
	if s.display == "" {
		return s.Name
	}
	return s.display
}

func (s *Symbol) SetDisplay(display string) {
	s.display = display
}

// IsPlaced reports whether the symbol has both storage and a type.
func (s *Symbol) IsPlaced() bool {
	return s.Address != NoAddress && s.Type != Unset
}

func (s *Symbol) IsArray() bool {
	return s.Bounds.IsArray()
}

func (s *Symbol) IsRoutine() bool {
	return s.Routine != NotRoutine
}

// ArgType returns the declared type of the parameter at position.
func (s *Symbol) ArgType(position int) (ValueType, error) {
	if position < 0 || position >= len(s.Args) {
		return Unset, Errorf(TooManyArguments, "too many arguments to call to %s", s.Display())
	}
	return s.Args[position], nil
}

func (s *Symbol) ArgCount() int {
	return len(s.Args)
}

// SizeOf is the storage taken by count elements of type t.
func SizeOf(t ValueType, count int) (int, error) {
	var size int
	switch t {
	case Integer:
		size = 4
	case Real:
		size = 8
	case Unset:
		return 0, Errorf(UnknownType, "tried obtaining size of %s", t)
	default:
		return 0, Errorf(UnknownType, "unknown value type %d", int(t))
	}
	if count > 1 {
		if count > math.MaxInt/size {
			return 0, Errorf(StorageOverflow, "%d elements of %s do not fit in memory", count, t)
		}
		size *= count
	}
	return size, nil
}
