package symtab

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the symbol table or the emitter. Every kind
// is fatal to the compilation that produced it.
type Kind int

const (
	UnknownSymbol Kind = iota + 1
	DuplicateDeclaration
	UndeclaredVariable
	TooManyArguments
	TooFewArguments
	NestedRoutineNotSupported
	NotInRoutine
	NotCallable
	InvalidArgumentContext
	UnknownType
	InvalidHandle
	EmptyStack
	BufferActive
	BufferNotActive
	OutputClosed
	OperandCount
	StorageOverflow
)

var kindNames = map[Kind]string{
	UnknownSymbol:             "UnknownSymbol",
	DuplicateDeclaration:      "DuplicateDeclaration",
	UndeclaredVariable:        "UndeclaredVariable",
	TooManyArguments:          "TooManyArguments",
	TooFewArguments:           "TooFewArguments",
	NestedRoutineNotSupported: "NestedRoutineNotSupported",
	NotInRoutine:              "NotInRoutine",
	NotCallable:               "NotCallable",
	InvalidArgumentContext:    "InvalidArgumentContext",
	UnknownType:               "UnknownType",
	InvalidHandle:             "InvalidHandle",
	EmptyStack:                "EmptyStack",
	BufferActive:              "BufferActive",
	BufferNotActive:           "BufferNotActive",
	OutputClosed:              "OutputClosed",
	OperandCount:              "OperandCount",
	StorageOverflow:           "StorageOverflow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code is the stable diagnostic code reported for this kind.
func (k Kind) Code() string {
	return fmt.Sprintf("PS%04d", int(k))
}

// Error lets a bare Kind be used as a target for errors.Is.
func (k Kind) Error() string { return k.String() }

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf reports the kind carried by err, or 0 when err did not originate
// from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Errorf builds an error of the given kind. The emitter shares this
// taxonomy.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
