package enlistment

// Ledger holds one student's selection for one session: the locked keys
// already committed server side and the pending keys chosen in the session.
//
// A Ledger is not safe for concurrent use. Callers serialise access, one
// ledger per session.
type Ledger struct {
	catalog     *Catalog
	locked      keySet
	pending     keySet
	unitCap     int
	initialized bool
}

// State is a read-only snapshot of a ledger.
type State struct {
	Locked  []Key
	Pending []Key
	UnitCap int
}

// Active returns locked keys followed by pending keys.
func (s State) Active() []Key {
	active := make([]Key, 0, len(s.Locked)+len(s.Pending))
	active = append(active, s.Locked...)
	return append(active, s.Pending...)
}

// NewLedger returns an uninitialized ledger; every mutation fails with
// NOT_INITIALIZED until Initialize is called.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Initialize loads the catalog, the locked keys and the unit cap, and
// discards any pending selection.
func (l *Ledger) Initialize(catalog *Catalog, locked []Key, unitCap int) {
	if catalog == nil {
		catalog, _ = NewCatalog(nil)
	}
	l.catalog = catalog
	l.locked = newKeySet(locked...)
	l.pending = newKeySet()
	l.unitCap = max(unitCap, 0)
	l.initialized = true
}

// Initialized reports whether Initialize has run.
func (l *Ledger) Initialized() bool {
	return l.initialized
}

// Check evaluates whether key could be added right now without changing
// anything. Checks run in a fixed order so the most fundamental reason wins.
func (l *Ledger) Check(key Key) error {
	if !l.initialized {
		return &Rejection{Reason: ReasonNotInitialized, Key: key}
	}
	if l.locked.has(key) {
		return &Rejection{Reason: ReasonAlreadyLocked, Key: key}
	}
	if existing, ok := l.selectedSection(key.Code); ok {
		return &Rejection{Reason: ReasonSubjectAlreadySelected, Key: key, Existing: existing}
	}
	offering, ok := l.catalog.Lookup(key)
	if !ok {
		return &Rejection{Reason: ReasonUnknownOffering, Key: key}
	}
	if offering.RemainingSeats() <= 0 {
		return &Rejection{Reason: ReasonSectionFull, Key: key}
	}
	active := l.ActiveSelection()
	if total := l.catalog.Units(active) + offering.Units; total > float64(l.unitCap) {
		return &Rejection{Reason: ReasonUnitCapExceeded, Key: key, Units: total, UnitCap: l.unitCap}
	}
	if conflict, found := FindConflict(key, active, l.catalog); found {
		return &Rejection{Reason: ReasonScheduleConflict, Key: key, Conflict: conflict}
	}
	return nil
}

// TryAdd adds key to the pending selection when every admission check passes.
func (l *Ledger) TryAdd(key Key) error {
	if err := l.Check(key); err != nil {
		return err
	}
	l.pending.add(key)
	return nil
}

// TryRemove drops key from the pending selection. Locked keys cannot be
// removed, and removing an unselected key changes nothing.
func (l *Ledger) TryRemove(key Key) error {
	if !l.initialized {
		return &Rejection{Reason: ReasonNotInitialized, Key: key}
	}
	if l.locked.has(key) {
		return &Rejection{Reason: ReasonNotRemovable, Key: key}
	}
	if !l.pending.remove(key) {
		return &Rejection{Reason: ReasonNotSelected, Key: key}
	}
	return nil
}

// ClearPending empties the pending selection; locked keys are untouched.
func (l *Ledger) ClearPending() {
	l.pending = newKeySet()
}

// ActiveSelection returns locked ∪ pending, locked first, each in insertion order.
func (l *Ledger) ActiveSelection() []Key {
	return l.State().Active()
}

// Locked returns the committed keys.
func (l *Ledger) Locked() []Key {
	return l.locked.keys()
}

// Pending returns the keys selected in this session.
func (l *Ledger) Pending() []Key {
	return l.pending.keys()
}

// IsLocked reports whether key was committed before the session.
func (l *Ledger) IsLocked(key Key) bool {
	return l.locked.has(key)
}

// IsPending reports whether key was selected in this session.
func (l *Ledger) IsPending(key Key) bool {
	return l.pending.has(key)
}

// Cap returns the active unit cap.
func (l *Ledger) Cap() int {
	return l.unitCap
}

// Catalog returns the catalog the ledger was initialized with.
func (l *Ledger) Catalog() *Catalog {
	return l.catalog
}

// State snapshots the ledger.
func (l *Ledger) State() State {
	return State{Locked: l.locked.keys(), Pending: l.pending.keys(), UnitCap: l.unitCap}
}

func (l *Ledger) selectedSection(code string) (Key, bool) {
	if key, ok := l.locked.findCode(code); ok {
		return key, true
	}
	return l.pending.findCode(code)
}
