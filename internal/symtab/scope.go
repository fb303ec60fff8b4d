package symtab

// DeclareRoutine registers name as a procedure or function at global scope.
func (t *Table) DeclareRoutine(name string, kind RoutineKind) (Handle, error) {
	if t.scope != GlobalScope {
		return NoHandle, Errorf(NestedRoutineNotSupported, "cannot declare %s %s inside %s body", kind, name, t.scope)
	}
	if kind == NotRoutine {
		return NoHandle, Errorf(NotCallable, "%s declared without a routine kind", name)
	}
	h := t.LookupOrInsert(name)
	sym := t.symbols[h]
	if sym.IsRoutine() || sym.IsPlaced() || sym.Kind == NumericLiteral {
		return NoHandle, Errorf(DuplicateDeclaration, "%s already declared", name)
	}
	sym.Routine = kind
	return h, nil
}

// EnterRoutine opens the local scope of routine. Argument offsets start past
// the saved base pointer and return address, and past the result pointer
// for functions.
func (t *Table) EnterRoutine(routine Handle) error {
	sym, err := t.At(routine)
	if err != nil {
		return err
	}
	if t.scope != GlobalScope {
		return Errorf(NestedRoutineNotSupported, "already in %s body", t.scope)
	}
	switch sym.Routine {
	case Function:
		t.scope = FunctionScope
		t.argumentCursor = 12
	case Procedure:
		t.scope = ProcedureScope
		t.argumentCursor = 8
	default:
		return Errorf(NotCallable, "tried entering local context with symbol %s", sym.Display())
	}
	t.active = routine
	t.localCursor = 0
	log.Debugf("entering %s %s", t.scope, sym.Display())
	return nil
}

// ExitRoutine returns to global scope and drops the routine's locals and
// arguments. It relies on those being the trailing symbols of the table:
// nothing global may be appended while a routine scope is open.
func (t *Table) ExitRoutine() error {
	if t.scope == GlobalScope {
		return Errorf(NotInRoutine, "already in global context")
	}
	t.scope = GlobalScope
	t.active = NoHandle

	n := len(t.symbols)
	for n > 0 && t.symbols[n-1].Local {
		n--
	}
	log.Debugf("dropping %d local symbols", len(t.symbols)-n)
	clear(t.symbols[n:])
	t.symbols = t.symbols[:n]
	return nil
}

// FrameSize is the number of units of local storage the current routine
// needs.
func (t *Table) FrameSize() int {
	if t.localCursor < 0 {
		return -t.localCursor
	}
	return t.localCursor
}
