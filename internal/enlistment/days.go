package enlistment

import (
	"errors"
	"fmt"
	"strings"
)

// Day is a weekday token as written in catalog schedules.
type Day string

// Weekday tokens. Thursday is the only two-letter token.
const (
	Monday    Day = "M"
	Tuesday   Day = "T"
	Wednesday Day = "W"
	Thursday  Day = "TH"
	Friday    Day = "F"
	Saturday  Day = "S"
	Sunday    Day = "U"
)

// ErrUnknownDay is returned when day letters contain an unrecognised token.
var ErrUnknownDay = errors.New("unknown day token")

var singleLetterDays = map[byte]Day{
	'M': Monday,
	'T': Tuesday,
	'W': Wednesday,
	'F': Friday,
	'S': Saturday,
	'U': Sunday,
}

// DaySet is the ordered list of days a schedule clause recurs on.
type DaySet []Day

// TokenizeDays splits compound day letters left to right, matching the TH
// digraph before falling back to single letters. Matching is case-insensitive.
func TokenizeDays(letters string) (DaySet, error) {
	upper := strings.ToUpper(strings.TrimSpace(letters))
	if upper == "" {
		return nil, fmt.Errorf("%w: empty day letters", ErrUnknownDay)
	}
	days := make(DaySet, 0, len(upper))
	for i := 0; i < len(upper); i++ {
		if upper[i] == 'T' && i+1 < len(upper) && upper[i+1] == 'H' {
			days = append(days, Thursday)
			i++
			continue
		}
		day, ok := singleLetterDays[upper[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnknownDay, string(upper[i]), letters)
		}
		days = append(days, day)
	}
	return days, nil
}

// Contains reports whether day is part of the set.
func (d DaySet) Contains(day Day) bool {
	for _, existing := range d {
		if existing == day {
			return true
		}
	}
	return false
}

// Overlaps is true when both sets share at least one day.
func (d DaySet) Overlaps(other DaySet) bool {
	for _, day := range d {
		if other.Contains(day) {
			return true
		}
	}
	return false
}

// Intersection returns the shared days in the receiver's order.
func (d DaySet) Intersection(other DaySet) DaySet {
	var shared DaySet
	for _, day := range d {
		if other.Contains(day) && !shared.Contains(day) {
			shared = append(shared, day)
		}
	}
	return shared
}

func (d DaySet) String() string {
	var b strings.Builder
	for _, day := range d {
		b.WriteString(string(day))
	}
	return b.String()
}
