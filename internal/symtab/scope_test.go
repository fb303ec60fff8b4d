package symtab

import (
	"errors"
	"testing"
)

func enter(t *testing.T, st *Table, name string, kind RoutineKind) Handle {
	t.Helper()
	h, err := st.DeclareRoutine(name, kind)
	if err != nil {
		t.Fatalf("declare %s: %v", name, err)
	}
	if err := st.EnterRoutine(h); err != nil {
		t.Fatalf("enter %s: %v", name, err)
	}
	return h
}

func stageAll(t *testing.T, st *Table, vt ValueType, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := st.Stage(st.LookupOrInsert(name)); err != nil {
			t.Fatalf("stage %s: %v", name, err)
		}
	}
	if err := st.StampPendingType(vt); err != nil {
		t.Fatalf("stamp: %v", err)
	}
}

func TestArgumentOffsets(t *testing.T) {
	tests := []struct {
		kind RoutineKind
		base int
	}{
		{Procedure, 8},
		{Function, 12},
	}
	for _, tt := range tests {
		st := New()
		fn := enter(t, st, "f", tt.kind)
		stageAll(t, st, Integer, "a", "b")
		stageAll(t, st, Real, "c")
		staged := st.Staged()

		n, err := st.CommitAsArguments(fn)
		if err != nil {
			t.Fatalf("%s: commit arguments: %v", tt.kind, err)
		}
		if n != 3 {
			t.Fatalf("%s: expected 3 parameters, got %d", tt.kind, n)
		}

		// last declared parameter gets the lowest offset
		wantAddr := []int{tt.base + 8, tt.base + 4, tt.base}
		for i, h := range staged {
			sym, _ := st.At(h)
			if sym.Address != wantAddr[i] {
				t.Fatalf("%s: %s expected address %d, got %d", tt.kind, sym.Name, wantAddr[i], sym.Address)
			}
			if !sym.ByReference || !sym.Local {
				t.Fatalf("%s: %s expected local by-reference parameter", tt.kind, sym.Name)
			}
		}

		routine, _ := st.At(fn)
		wantArgs := []ValueType{Integer, Integer, Real}
		if len(routine.Args) != len(wantArgs) {
			t.Fatalf("%s: expected %d argument types, got %v", tt.kind, len(wantArgs), routine.Args)
		}
		for i, vt := range wantArgs {
			if routine.Args[i] != vt {
				t.Fatalf("%s: arg %d expected %s, got %s", tt.kind, i, vt, routine.Args[i])
			}
		}
	}
}

func TestCommitAsArgumentsAtGlobalScope(t *testing.T) {
	st := New()
	fn, _ := st.DeclareRoutine("p", Procedure)
	if _, err := st.CommitAsArguments(fn); !errors.Is(err, InvalidArgumentContext) {
		t.Fatalf("expected InvalidArgumentContext, got %v", err)
	}
}

func TestLocalsGrowDownAndResetPerRoutine(t *testing.T) {
	st := New()
	declareGlobals(t, st, Integer, "g")

	for _, name := range []string{"p", "q"} {
		enter(t, st, name, Procedure)
		st.Stage(st.LookupOrInsert("x"))
		st.Stage(st.LookupOrInsert("y"))
		staged := st.Staged()
		if err := st.CommitToMemory(Real); err != nil {
			t.Fatalf("commit: %v", err)
		}
		x, _ := st.At(staged[0])
		y, _ := st.At(staged[1])
		if x.Address != -8 || y.Address != -16 {
			t.Fatalf("%s: expected -8 and -16, got %d and %d", name, x.Address, y.Address)
		}
		tmp, _ := st.NewTemporary(Integer, "")
		ts, _ := st.At(tmp)
		if ts.Address != -20 || !ts.Local {
			t.Fatalf("%s: expected local temporary at -20, got %d", name, ts.Address)
		}
		if st.FrameSize() != 20 {
			t.Fatalf("%s: expected frame size 20, got %d", name, st.FrameSize())
		}
		if err := st.ExitRoutine(); err != nil {
			t.Fatalf("exit: %v", err)
		}
	}

	next := declareGlobals(t, st, Integer, "h")[0]
	sym, _ := st.At(next)
	if sym.Address != 4 {
		t.Fatalf("expected global cursor unaffected by routines, got %d", sym.Address)
	}
}

func TestExitRestoresSymbolCount(t *testing.T) {
	st := New()
	declareGlobals(t, st, Integer, "x")
	fn, _ := st.DeclareRoutine("f", Function)
	before := st.Len()

	if err := st.EnterRoutine(fn); err != nil {
		t.Fatalf("enter: %v", err)
	}
	stageAll(t, st, Integer, "a")
	st.CommitAsArguments(fn)
	st.Stage(st.LookupOrInsert("x"))
	st.CommitToMemory(Real)
	st.InternNumber("7")
	st.NewTemporary(Real, "")

	if err := st.ExitRoutine(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if st.Len() != before {
		t.Fatalf("expected %d symbols after exit, got %d", before, st.Len())
	}
	if st.Scope() != GlobalScope {
		t.Fatalf("expected global scope, got %s", st.Scope())
	}
	h, _ := st.Lookup("x")
	sym, _ := st.At(h)
	if sym.Local || sym.Type != Integer {
		t.Fatalf("expected global x to be visible again, got %+v", sym)
	}
}

func TestShadowingGlobalInRoutine(t *testing.T) {
	st := New()
	global := declareGlobals(t, st, Integer, "x")[0]
	enter(t, st, "p", Procedure)

	pos, err := st.Stage(st.LookupOrInsert("x"))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	local := st.Staged()[pos]
	if local == global {
		t.Fatalf("expected a new local symbol")
	}
	st.CommitToMemory(Real)
	if got, _ := st.Lookup("x"); got != local {
		t.Fatalf("expected lookup to find local %d, got %d", local, got)
	}

	_, err = st.Stage(st.LookupOrInsert("x"))
	if !errors.Is(err, DuplicateDeclaration) {
		t.Fatalf("expected DuplicateDeclaration for local redeclaration, got %v", err)
	}
}

func TestShadowingUnplacedGlobalInRoutine(t *testing.T) {
	st := New()
	global := st.LookupOrInsert("y")
	enter(t, st, "p", Procedure)

	pos, err := st.Stage(st.LookupOrInsert("y"))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	local := st.Staged()[pos]
	if local == global {
		t.Fatalf("expected a new local symbol")
	}
	if err := st.CommitToMemory(Integer); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := st.ExitRoutine(); err != nil {
		t.Fatalf("exit: %v", err)
	}

	sym, err := st.At(global)
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	if sym.IsPlaced() || sym.Local {
		t.Fatalf("expected global y to stay unplaced, got address %d local=%v", sym.Address, sym.Local)
	}
	if got, _ := st.Lookup("y"); got != global {
		t.Fatalf("expected lookup to find global %d after exit, got %d", global, got)
	}
}

func TestScopeTransitions(t *testing.T) {
	st := New()
	if err := st.ExitRoutine(); !errors.Is(err, NotInRoutine) {
		t.Fatalf("expected NotInRoutine, got %v", err)
	}

	v := declareGlobals(t, st, Integer, "v")[0]
	if err := st.EnterRoutine(v); !errors.Is(err, NotCallable) {
		t.Fatalf("expected NotCallable, got %v", err)
	}

	f := enter(t, st, "f", Function)
	if active, ok := st.ActiveRoutine(); !ok || active != f {
		t.Fatalf("expected active routine %d, got %d (%v)", f, active, ok)
	}
	g, _ := st.At(f)
	if err := st.EnterRoutine(f); !errors.Is(err, NestedRoutineNotSupported) {
		t.Fatalf("expected NestedRoutineNotSupported, got %v", err)
	}
	if _, err := st.DeclareRoutine("inner", Procedure); !errors.Is(err, NestedRoutineNotSupported) {
		t.Fatalf("expected NestedRoutineNotSupported, got %v", err)
	}
	if err := st.ExitRoutine(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if _, ok := st.ActiveRoutine(); ok {
		t.Fatalf("no routine should be active at global scope")
	}
	if _, err := st.DeclareRoutine(g.Name, Procedure); !errors.Is(err, DuplicateDeclaration) {
		t.Fatalf("expected DuplicateDeclaration, got %v", err)
	}
}

func TestCallStackAndArgumentTypes(t *testing.T) {
	st := New()
	p := enter(t, st, "p", Procedure)
	stageAll(t, st, Integer, "a", "b")
	st.CommitAsArguments(p)
	st.ExitRoutine()

	f := enter(t, st, "f", Function)
	stageAll(t, st, Real, "x")
	st.CommitAsArguments(f)
	st.ExitRoutine()

	// p(f(1), 2, 3)
	st.PushCall(p)
	st.PushCall(f)
	cur, _ := st.CurrentCall()
	if vt, err := st.ArgumentType(cur, 0); err != nil || vt != Real {
		t.Fatalf("expected f's first argument real, got %s (%v)", vt, err)
	}
	if popped, _ := st.PopCall(); popped != f {
		t.Fatalf("expected to pop f")
	}
	cur, _ = st.CurrentCall()
	for i := 0; i < 2; i++ {
		if vt, err := st.ArgumentType(cur, i); err != nil || vt != Integer {
			t.Fatalf("argument %d: expected integer, got %s (%v)", i, vt, err)
		}
	}
	if _, err := st.ArgumentType(cur, 2); !errors.Is(err, TooManyArguments) {
		t.Fatalf("expected TooManyArguments at third argument, got %v", err)
	}
	st.PopCall()
	if _, err := st.PopCall(); !errors.Is(err, EmptyStack) {
		t.Fatalf("expected EmptyStack, got %v", err)
	}
}

func TestLabelStack(t *testing.T) {
	st := New()
	outer := st.PushNewLabel()
	free := st.NewLabel()
	inner := st.PushNewLabel()
	if outer != 0 || free != 1 || inner != 2 {
		t.Fatalf("expected monotonic ids 0,1,2, got %d,%d,%d", outer, free, inner)
	}
	if top, _ := st.PeekLabel(); top != inner {
		t.Fatalf("expected %d on top, got %d", inner, top)
	}
	if got, _ := st.PopLabel(); got != inner {
		t.Fatalf("expected to pop %d, got %d", inner, got)
	}
	if got, _ := st.PopLabel(); got != outer {
		t.Fatalf("expected to pop %d, got %d", outer, got)
	}
	if _, err := st.PopLabel(); !errors.Is(err, EmptyStack) {
		t.Fatalf("expected EmptyStack, got %v", err)
	}
}

func TestKindOf(t *testing.T) {
	st := New()
	_, err := st.LookupOrFail("nope")
	if KindOf(err) != UnknownSymbol {
		t.Fatalf("expected UnknownSymbol, got %s", KindOf(err))
	}
	if UnknownSymbol.Code() != "PS0001" {
		t.Fatalf("unexpected code %s", UnknownSymbol.Code())
	}
}
