package enlistment

import (
	"errors"
	"fmt"
)

// Reason classifies why a ledger mutation was refused.
type Reason string

// Rejection reasons. Every one of them is recoverable by the caller.
const (
	ReasonNotInitialized         Reason = "NOT_INITIALIZED"
	ReasonAlreadyLocked          Reason = "ALREADY_LOCKED"
	ReasonSubjectAlreadySelected Reason = "SUBJECT_ALREADY_SELECTED"
	ReasonUnknownOffering        Reason = "UNKNOWN_OFFERING"
	ReasonSectionFull            Reason = "SECTION_FULL"
	ReasonUnitCapExceeded        Reason = "UNIT_CAP_EXCEEDED"
	ReasonScheduleConflict       Reason = "SCHEDULE_CONFLICT"
	ReasonNotRemovable           Reason = "NOT_REMOVABLE"
	ReasonNotSelected            Reason = "NOT_SELECTED"
)

// Rejection is the typed result of a refused add or remove.
type Rejection struct {
	Reason Reason
	Key    Key
	// Existing is the already selected section of the same subject.
	Existing Key
	Conflict *Conflict
	// Units and UnitCap describe the load that would have resulted.
	Units   float64
	UnitCap int
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	if r == nil {
		return "<nil>"
	}
	switch r.Reason {
	case ReasonNotInitialized:
		return "enlistment session not initialized"
	case ReasonAlreadyLocked:
		return fmt.Sprintf("%s is already enlisted", r.Key)
	case ReasonSubjectAlreadySelected:
		return fmt.Sprintf("section %s of %s already selected", r.Existing.Section, r.Key.Code)
	case ReasonUnknownOffering:
		return fmt.Sprintf("%s is not offered this term", r.Key)
	case ReasonSectionFull:
		return fmt.Sprintf("section %s is full", r.Key)
	case ReasonUnitCapExceeded:
		return fmt.Sprintf("adding %s brings the load to %g units, above the %d unit limit", r.Key, r.Units, r.UnitCap)
	case ReasonScheduleConflict:
		if r.Conflict != nil {
			return fmt.Sprintf("%s conflicts with %s (%s)", r.Key, r.Conflict.Key, r.Conflict.Days)
		}
		return fmt.Sprintf("%s has a schedule conflict", r.Key)
	case ReasonNotRemovable:
		return fmt.Sprintf("%s is already enlisted and cannot be removed", r.Key)
	case ReasonNotSelected:
		return fmt.Sprintf("%s is not selected", r.Key)
	}
	return string(r.Reason)
}

// ReasonOf extracts the rejection reason from err.
func ReasonOf(err error) (Reason, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection.Reason, true
	}
	return "", false
}
