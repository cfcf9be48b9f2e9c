package enlistment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RegistrationStatus is the student's standing for the term.
type RegistrationStatus string

// Registration statuses.
const (
	StatusRegular   RegistrationStatus = "REGULAR"
	StatusIrregular RegistrationStatus = "IRREGULAR"
	StatusOnLeave   RegistrationStatus = "ON_LEAVE"
)

// Semester is the term within the school year.
type Semester int

// Semesters.
const (
	FirstSemester  Semester = 1
	SecondSemester Semester = 2
)

// Institutional defaults.
const (
	DefaultIrregularCap = 18
	DefaultCeiling      = 24
)

// TermLevel keys the curriculum ceiling table.
type TermLevel struct {
	Semester  Semester
	YearLevel int
}

// CapPolicy resolves the unit cap from the curriculum ceiling table.
type CapPolicy struct {
	IrregularCap   int
	DefaultCeiling int
	Ceilings       map[TermLevel]int
}

// NewCapPolicy fills in institutional defaults for non-positive values.
func NewCapPolicy(irregularCap, defaultCeiling int, ceilings map[TermLevel]int) CapPolicy {
	if irregularCap <= 0 {
		irregularCap = DefaultIrregularCap
	}
	if defaultCeiling <= 0 {
		defaultCeiling = DefaultCeiling
	}
	if ceilings == nil {
		ceilings = map[TermLevel]int{}
	}
	return CapPolicy{IrregularCap: irregularCap, DefaultCeiling: defaultCeiling, Ceilings: ceilings}
}

// Ceiling returns the curriculum ceiling for the term. A term missing from
// the table gets the default ceiling, never zero.
func (p CapPolicy) Ceiling(semester Semester, yearLevel int) int {
	if ceiling, ok := p.Ceilings[TermLevel{Semester: semester, YearLevel: yearLevel}]; ok && ceiling >= 0 {
		return ceiling
	}
	if p.DefaultCeiling > 0 {
		return p.DefaultCeiling
	}
	return DefaultCeiling
}

// Resolve returns the maximum unit load for the student.
func (p CapPolicy) Resolve(yearLevel int, semester Semester, status RegistrationStatus) int {
	if status == StatusOnLeave {
		return 0
	}
	ceiling := p.Ceiling(semester, yearLevel)
	if status == StatusIrregular {
		irregularCap := p.IrregularCap
		if irregularCap <= 0 {
			irregularCap = DefaultIrregularCap
		}
		return min(irregularCap, ceiling)
	}
	return ceiling
}

// ParseRegistrationStatus accepts the spellings used by the registrar
// ("Regular", "IRREGULAR", "On Leave", "ON_LEAVE").
func ParseRegistrationStatus(raw string) (RegistrationStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(normalized)
	switch normalized {
	case "REGULAR":
		return StatusRegular, nil
	case "IRREGULAR":
		return StatusIrregular, nil
	case "ONLEAVE":
		return StatusOnLeave, nil
	}
	return "", fmt.Errorf("unknown registration status %q", raw)
}

// ParseSemester accepts 1 or 2.
func ParseSemester(value int) (Semester, error) {
	switch Semester(value) {
	case FirstSemester, SecondSemester:
		return Semester(value), nil
	}
	return 0, fmt.Errorf("semester must be 1 or 2, got %d", value)
}

// ParseCeilings reads a ceiling table written as "semester:year=units" pairs
// separated by commas, e.g. "1:1=21,2:1=22".
func ParseCeilings(raw string) (map[TermLevel]int, error) {
	ceilings := make(map[TermLevel]int)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		termRaw, unitsRaw, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("ceiling %q: expected semester:year=units", part)
		}
		semRaw, yearRaw, ok := strings.Cut(termRaw, ":")
		if !ok {
			return nil, fmt.Errorf("ceiling %q: expected semester:year=units", part)
		}
		semValue, err := strconv.Atoi(strings.TrimSpace(semRaw))
		if err != nil {
			return nil, fmt.Errorf("ceiling %q: semester: %w", part, err)
		}
		semester, err := ParseSemester(semValue)
		if err != nil {
			return nil, fmt.Errorf("ceiling %q: %w", part, err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(yearRaw))
		if err != nil || year < 1 {
			return nil, fmt.Errorf("ceiling %q: invalid year level", part)
		}
		units, err := strconv.Atoi(strings.TrimSpace(unitsRaw))
		if err != nil || units < 0 {
			return nil, fmt.Errorf("ceiling %q: invalid units", part)
		}
		ceilings[TermLevel{Semester: semester, YearLevel: year}] = units
	}
	return ceilings, nil
}

// FormatCeilings is the inverse of ParseCeilings, sorted by semester then year.
func FormatCeilings(ceilings map[TermLevel]int) string {
	levels := make([]TermLevel, 0, len(ceilings))
	for level := range ceilings {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Semester == levels[j].Semester {
			return levels[i].YearLevel < levels[j].YearLevel
		}
		return levels[i].Semester < levels[j].Semester
	})
	parts := make([]string, 0, len(levels))
	for _, level := range levels {
		parts = append(parts, fmt.Sprintf("%d:%d=%d", level.Semester, level.YearLevel, ceilings[level]))
	}
	return strings.Join(parts, ",")
}
