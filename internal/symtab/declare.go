package symtab

import "slices"

// Stage records h as part of an identifier list whose type has not been
// parsed yet and returns its position in the staging list. Inside a routine,
// a name that resolves to a global symbol is shadowed by a fresh local. This
// holds for unplaced globals too, such as a name only referenced so far: the
// global entry is left as it is and never receives a frame address.
func (t *Table) Stage(h Handle) (int, error) {
	sym, err := t.At(h)
	if err != nil {
		return 0, err
	}

	inRoutine := t.scope != GlobalScope
	switch {
	case sym.Kind == NumericLiteral:
		return 0, Errorf(DuplicateDeclaration, "cannot declare literal %s", sym.Name)
	case inRoutine && !sym.Local:
		log.Debugf("variable %s shadowing global", sym.Name)
		h = t.ForceInsert(sym.Name)
	case inRoutine && sym.IsPlaced():
		return 0, Errorf(DuplicateDeclaration, "local variable %s already declared", sym.Name)
	case !inRoutine && (sym.IsPlaced() || sym.IsRoutine()):
		return 0, Errorf(DuplicateDeclaration, "global variable %s already declared", sym.Name)
	}

	if slices.Contains(t.staged, h) {
		return 0, Errorf(DuplicateDeclaration, "%s appears twice in the same declaration", sym.Name)
	}
	t.staged = append(t.staged, h)
	log.Debugf("staged symbol %s at %d", sym.Name, len(t.staged)-1)
	return len(t.staged) - 1, nil
}

// Staged returns a copy of the staging list.
func (t *Table) Staged() []Handle {
	return slices.Clone(t.staged)
}

// DiscardStaged drops the staging list without typing or placing anything.
func (t *Table) DiscardStaged() {
	t.staged = t.staged[:0]
	t.stamped = 0
}

// SetPendingBounds sets the array bounds applied by the next stamp or
// commit. The zero Bounds declares scalars.
func (t *Table) SetPendingBounds(b Bounds) {
	t.pending = b
}

func (t *Table) PendingBounds() Bounds {
	return t.pending
}

// StampPendingType types every staged symbol not stamped yet with vt and the
// pending bounds. Earlier groups of the same declaration keep their type.
func (t *Table) StampPendingType(vt ValueType) error {
	if _, err := SizeOf(vt, 1); err != nil {
		return err
	}
	for _, h := range t.staged[t.stamped:] {
		sym := t.symbols[h]
		sym.Type = vt
		sym.Bounds = t.pending
	}
	t.stamped = len(t.staged)
	return nil
}

// CommitToMemory types and places every staged symbol in the current scope
// and clears the staging list.
func (t *Table) CommitToMemory(vt ValueType) error {
	count, err := t.pending.Count()
	if err != nil {
		return err
	}
	if t.pending.IsArray() && count <= 0 {
		return Errorf(UnknownType, "array bounds %d..%d are empty", t.pending.Start, t.pending.End)
	}
	size, err := SizeOf(vt, count)
	if err != nil {
		return err
	}
	if !t.fits(size, len(t.staged)) {
		return Errorf(StorageOverflow, "no room left in %s storage for %d symbols of %d units", t.scope, len(t.staged), size)
	}

	for _, h := range t.staged {
		sym := t.symbols[h]
		sym.Type = vt
		sym.Bounds = t.pending
		sym.Address = t.allocate(size)
		if sym.IsArray() {
			log.Debugf("placing array '%s[%d..%d]'(%s) in memory @ %d", sym.Display(), sym.Bounds.Start, sym.Bounds.End, vt, sym.Address)
		} else {
			log.Debugf("placing symbol '%s'(%s) in memory @ %d", sym.Display(), vt, sym.Address)
		}
	}
	t.DiscardStaged()
	return nil
}

// CommitAsArguments places the staged symbols as the parameters of routine
// and returns how many there were. Parameters are assigned argument offsets
// last-to-first, so the last declared one sits nearest the return address,
// and are always passed by reference.
func (t *Table) CommitAsArguments(routine Handle) (int, error) {
	fn, err := t.At(routine)
	if err != nil {
		return 0, err
	}
	if t.scope == GlobalScope {
		return 0, Errorf(InvalidArgumentContext, "tried getting next argument address in global context")
	}
	for _, h := range t.staged {
		if sym := t.symbols[h]; sym.Type == Unset {
			return 0, Errorf(UnknownType, "parameter %s of %s has no type", sym.Name, fn.Display())
		}
	}

	for i := len(t.staged) - 1; i >= 0; i-- {
		sym := t.symbols[t.staged[i]]
		addr, err := t.nextArgumentAddress()
		if err != nil {
			return 0, err
		}
		sym.Address = addr
		sym.ByReference = true
		log.Debugf("placing symbol '%s'(%s) as argument @ %d", sym.Display(), sym.Type, addr)
	}
	for _, h := range t.staged {
		fn.Args = append(fn.Args, t.symbols[h].Type)
	}

	n := len(t.staged)
	t.DiscardStaged()
	return n, nil
}

func (t *Table) nextArgumentAddress() (int, error) {
	if t.scope == GlobalScope {
		return 0, Errorf(InvalidArgumentContext, "tried getting next argument address in global context")
	}
	addr := t.argumentCursor
	t.argumentCursor += 4
	return addr, nil
}
