package enlistment

// Summary is the presentation aggregate recomputed after every mutation.
type Summary struct {
	TotalUnits        float64 `json:"totalUnits"`
	TotalSubjects     int     `json:"totalSubjects"`
	UnitCap           int     `json:"unitCap"`
	RemainingCapacity float64 `json:"remainingCapacity"`
	LockedSubjects    int     `json:"lockedSubjects"`
	PendingSubjects   int     `json:"pendingSubjects"`
}

// Project derives the summary from a ledger snapshot. RemainingCapacity is
// not clamped and goes negative when locked units already exceed the cap.
func Project(state State, catalog *Catalog) Summary {
	active := state.Active()
	total := catalog.Units(active)
	return Summary{
		TotalUnits:        total,
		TotalSubjects:     len(active),
		UnitCap:           state.UnitCap,
		RemainingCapacity: float64(state.UnitCap) - total,
		LockedSubjects:    len(state.Locked),
		PendingSubjects:   len(state.Pending),
	}
}
