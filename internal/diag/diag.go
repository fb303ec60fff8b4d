package diag

import (
	"fmt"

	"pasc/internal/symtab"
)

// SyntaxCode is reported for errors raised by the parser itself rather than
// by the symbol table or the emitter.
const SyntaxCode = "PS0100"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

type Range struct {
	Line   int // 1-based
	Col    int // 1-based
	Length int // best-effort; can be 1 if unknown
}

type Diagnostic struct {
	Code     string
	Message  string
	Severity Severity
	Range    Range
}

func (d Diagnostic) Format(path string) string {
	if d.Code != "" {
		return fmt.Sprintf("%s:%d:%d: %s %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Message)
}

// FromError builds an error diagnostic at r. Errors of the symbol table and
// emitter keep the code of their kind, anything else is a syntax error.
func FromError(err error, r Range) Diagnostic {
	code := SyntaxCode
	if kind := symtab.KindOf(err); kind != 0 {
		code = kind.Code()
	}
	if r.Length < 1 {
		r.Length = 1
	}
	return Diagnostic{
		Code:     code,
		Message:  err.Error(),
		Severity: SeverityError,
		Range:    r,
	}
}
