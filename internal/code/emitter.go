package code

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"pasc/internal/symtab"
)

var log = commonlog.GetLogger("pasc.code")

type sink int

const (
	sinkDirect sink = iota
	sinkBuffered
)

func (s sink) String() string {
	if s == sinkBuffered {
		return "buffered"
	}
	return "direct"
}

// Emitter renders instructions as target assembly text. It owns no symbols:
// every operand is resolved through the table at the moment it is emitted.
//
// Routine bodies are emitted into an in-memory buffer until the routine's
// frame size is known, then flushed behind the enter instruction that
// reserves the frame.
type Emitter struct {
	out    io.Writer
	table  *symtab.Table
	mode   sink
	body   bytes.Buffer
	closed bool
}

func New(out io.Writer, table *symtab.Table) *Emitter {
	return &Emitter{out: out, table: table}
}

// Buffered reports whether a routine body is being collected.
func (e *Emitter) Buffered() bool {
	return e.mode == sinkBuffered
}

func (e *Emitter) current() io.Writer {
	if e.mode == sinkBuffered {
		return &e.body
	}
	return e.out
}

func (e *Emitter) write(line string) error {
	if e.closed {
		return symtab.Errorf(symtab.OutputClosed, "output already finalized")
	}
	log.Debugf("[%s] %s", e.mode, strings.TrimSpace(line))
	_, err := io.WriteString(e.current(), line+"\n")
	return err
}

// Emit writes one instruction typed after its first symbol operand.
func (e *Emitter) Emit(op Mnemonic, comment string, ops ...Operand) error {
	def, known := Lookup(op)
	if known && !def.Typed {
		return e.emit(op, "", comment, ops)
	}
	vt, err := e.typeOf(ops)
	if err != nil {
		return err
	}
	return e.emit(op, vt.Suffix(), comment, ops)
}

// EmitTyped writes one instruction with an explicit type, for operand lists
// that hold no symbol or where the operands disagree on purpose, as in
// conversions.
func (e *Emitter) EmitTyped(op Mnemonic, vt symtab.ValueType, comment string, ops ...Operand) error {
	if _, err := symtab.SizeOf(vt, 1); err != nil {
		return err
	}
	return e.emit(op, vt.Suffix(), comment, ops)
}

// Emit1, Emit2 and Emit3 take symbol operands in instruction order: sources
// first, destination last, as in "mov.i src, dst;".
func (e *Emitter) Emit1(op Mnemonic, operand symtab.Handle, comment string) error {
	return e.Emit(op, comment, Value(operand))
}

func (e *Emitter) Emit2(op Mnemonic, src, dst symtab.Handle, comment string) error {
	return e.Emit(op, comment, Value(src), Value(dst))
}

func (e *Emitter) Emit3(op Mnemonic, src1, src2, dst symtab.Handle, comment string) error {
	return e.Emit(op, comment, Value(src1), Value(src2), Value(dst))
}

func (e *Emitter) emit(op Mnemonic, suffix, comment string, ops []Operand) error {
	if def, ok := Lookup(op); ok && def.Operands != len(ops) {
		return symtab.Errorf(symtab.OperandCount, "%s takes %d operands, got %d", op, def.Operands, len(ops))
	}

	// every operand is rendered before anything is written so a failing
	// operand leaves no partial line behind
	rendered := make([]string, len(ops))
	for i, o := range ops {
		text, err := e.render(o)
		if err != nil {
			return err
		}
		rendered[i] = text
	}

	var b strings.Builder
	b.WriteByte('\t')
	b.WriteString(string(op))
	if suffix != "" {
		b.WriteByte('.')
		b.WriteString(suffix)
	}
	if len(rendered) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(rendered, ", "))
	}
	b.WriteByte(';')
	if comment != "" {
		b.WriteString("\t;")
		b.WriteString(comment)
	}
	return e.write(b.String())
}

// EmitNegate writes dst := 0 - src.
func (e *Emitter) EmitNegate(dst, src Operand) error {
	vt, err := e.typeOf([]Operand{src, dst})
	if err != nil {
		return err
	}
	s, err := e.render(src)
	if err != nil {
		return err
	}
	d, err := e.render(dst)
	if err != nil {
		return err
	}
	return e.write(fmt.Sprintf("\tsub.%s #0, %s, %s;", vt.Suffix(), s, d))
}

// EmitRaw writes text as a line of its own.
func (e *Emitter) EmitRaw(text string) error {
	return e.write(text)
}

func (e *Emitter) EmitLabel(name string) error {
	return e.write(name + ":")
}

func (e *Emitter) EmitJump(target string) error {
	return e.write(fmt.Sprintf("\t%s.i #%s;", Jump, target))
}

// AllocateAndJumpToNewLabel pushes a fresh label and jumps to it. The label
// stays on the stack until BeginProgram defines it.
func (e *Emitter) AllocateAndJumpToNewLabel() (string, error) {
	name := LabelName(e.table.PushNewLabel())
	return name, e.EmitJump(name)
}

// BeginProgram defines the label the entry jump targets.
func (e *Emitter) BeginProgram() error {
	id, err := e.table.PopLabel()
	if err != nil {
		return err
	}
	log.Debugf("begin program at %s", LabelName(id))
	return e.EmitLabel(LabelName(id))
}

// EndProgram writes the halt instruction and finalizes the output, closing
// it if it is closable. Nothing can be emitted afterwards.
func (e *Emitter) EndProgram() error {
	if e.mode == sinkBuffered {
		return symtab.Errorf(symtab.BufferActive, "program ended inside a routine body")
	}
	if err := e.write(fmt.Sprintf("\t%s;", Exit)); err != nil {
		return err
	}
	e.closed = true
	if c, ok := e.out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// BeginBufferedBody redirects emission into the body buffer.
func (e *Emitter) BeginBufferedBody() error {
	if e.mode == sinkBuffered {
		return symtab.Errorf(symtab.BufferActive, "routine body already buffered")
	}
	if e.closed {
		return symtab.Errorf(symtab.OutputClosed, "output already finalized")
	}
	e.mode = sinkBuffered
	return nil
}

// EndBufferedBody writes the prologue reserving frameSize units, the
// buffered body and the epilogue, in that order, and restores direct
// emission.
func (e *Emitter) EndBufferedBody(frameSize int) error {
	if e.mode != sinkBuffered {
		return symtab.Errorf(symtab.BufferNotActive, "no routine body is buffered")
	}
	e.mode = sinkDirect
	defer e.body.Reset()

	if err := e.write(fmt.Sprintf("\t%s.i #%d;", Enter, frameSize)); err != nil {
		return err
	}
	if _, err := e.body.WriteTo(e.out); err != nil {
		return err
	}
	if err := e.write(fmt.Sprintf("\t%s;", Leave)); err != nil {
		return err
	}
	return e.write(fmt.Sprintf("\t%s;", Return))
}

// PushArgument pushes the address of h for a by-reference parameter.
func (e *Emitter) PushArgument(h symtab.Handle) error {
	ref, err := e.RenderReferenceOperand(h)
	if err != nil {
		return err
	}
	return e.write(fmt.Sprintf("\t%s.i %s;", Push, ref))
}
