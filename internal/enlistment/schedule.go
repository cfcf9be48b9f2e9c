package enlistment

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ClauseSeparator separates the meeting clauses of one schedule string.
const ClauseSeparator = " / "

var (
	// ErrMalformedClause marks a clause that does not start with "<days> <start> - <end>".
	ErrMalformedClause = errors.New("malformed schedule clause")
	// ErrInvalidTime marks a clause whose clock time is out of range.
	ErrInvalidTime = errors.New("invalid clock time")
)

// Trailing text after the end time, such as "(LEC)" or a room, is ignored.
var clausePattern = regexp.MustCompile(`(?i)^([a-z]+)\s+(\d{1,2}):(\d{2})\s*(AM|PM)\s*-\s*(\d{1,2}):(\d{2})\s*(AM|PM)`)

// Interval is one weekly meeting: a set of days and a wall-clock range in
// minutes since midnight. End is exclusive.
type Interval struct {
	Days  DaySet `json:"days"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Overlap returns the shared days when both intervals meet on a common day
// and their time ranges share a strictly positive span.
func (i Interval) Overlap(other Interval) (DaySet, bool) {
	if min(i.End, other.End)-max(i.Start, other.Start) <= 0 {
		return nil, false
	}
	shared := i.Days.Intersection(other.Days)
	if len(shared) == 0 {
		return nil, false
	}
	return shared, true
}

// Schedule is the parsed weekly timetable of an offering, in clause order.
type Schedule []Interval

// DroppedClause records a clause the parser could not read.
type DroppedClause struct {
	Clause string
	Reason error
}

// ParseResult holds the usable intervals and anything that was skipped.
type ParseResult struct {
	Intervals Schedule
	Dropped   []DroppedClause
}

// ParseSchedule reads a schedule string such as "TTH 01:00PM-02:30PM / S 8:00AM-11:00AM".
// Unreadable clauses are dropped and reported rather than failing the whole
// schedule; an empty string yields an empty schedule.
func ParseSchedule(text string) ParseResult {
	var result ParseResult
	if strings.TrimSpace(text) == "" {
		return result
	}
	for _, raw := range strings.Split(text, ClauseSeparator) {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			continue
		}
		interval, err := parseClause(clause)
		if err != nil {
			result.Dropped = append(result.Dropped, DroppedClause{Clause: clause, Reason: err})
			continue
		}
		result.Intervals = append(result.Intervals, interval)
	}
	return result
}

func parseClause(clause string) (Interval, error) {
	match := clausePattern.FindStringSubmatch(clause)
	if match == nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrMalformedClause, clause)
	}
	days, err := TokenizeDays(match[1])
	if err != nil {
		return Interval{}, err
	}
	start, err := toMinutes(match[2], match[3], match[4])
	if err != nil {
		return Interval{}, err
	}
	end, err := toMinutes(match[5], match[6], match[7])
	if err != nil {
		return Interval{}, err
	}
	return Interval{Days: days, Start: start, End: end}, nil
}

func toMinutes(hourRaw, minuteRaw, meridiem string) (int, error) {
	hour, err := strconv.Atoi(hourRaw)
	if err != nil {
		return 0, fmt.Errorf("%w: hour %q", ErrInvalidTime, hourRaw)
	}
	minute, err := strconv.Atoi(minuteRaw)
	if err != nil {
		return 0, fmt.Errorf("%w: minute %q", ErrInvalidTime, minuteRaw)
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, fmt.Errorf("%w: %s:%s%s", ErrInvalidTime, hourRaw, minuteRaw, meridiem)
	}
	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(meridiem, "PM") {
		hour += 12
	}
	return hour*60 + minute, nil
}

// FormatMinutes renders minutes since midnight as "h:mmAM".
func FormatMinutes(total int) string {
	hour := total / 60
	minute := total % 60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, meridiem)
}

func (i Interval) String() string {
	return fmt.Sprintf("%s %s-%s", i.Days, FormatMinutes(i.Start), FormatMinutes(i.End))
}
