package enlistment

// Conflict names the active offering a candidate collides with and the days
// on which they collide.
type Conflict struct {
	Key  Key    `json:"key"`
	Days DaySet `json:"days"`
}

// FindConflict checks the candidate's meetings against every active key in
// order and stops at the first collision. Touching intervals (one ends when
// the other starts) do not collide. Keys missing from the catalog are skipped.
func FindConflict(candidate Key, active []Key, catalog *Catalog) (*Conflict, bool) {
	offering, ok := catalog.Lookup(candidate)
	if !ok || !offering.HasSchedule() {
		return nil, false
	}
	for _, key := range active {
		if key == candidate {
			continue
		}
		existing, ok := catalog.Lookup(key)
		if !ok {
			continue
		}
		for _, c := range offering.Schedule {
			for _, e := range existing.Schedule {
				if days, overlaps := c.Overlap(e); overlaps {
					return &Conflict{Key: key, Days: days}, true
				}
			}
		}
	}
	return nil, false
}
