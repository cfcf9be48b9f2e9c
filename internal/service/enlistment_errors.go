package service

import (
	"errors"

	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
)

var rejectionErrors = map[enlistment.Reason]*appErrors.Error{
	enlistment.ReasonNotInitialized:         appErrors.ErrNotInitialized,
	enlistment.ReasonAlreadyLocked:          appErrors.ErrAlreadyLocked,
	enlistment.ReasonSubjectAlreadySelected: appErrors.ErrSubjectAlreadySelected,
	enlistment.ReasonUnknownOffering:        appErrors.ErrUnknownOffering,
	enlistment.ReasonSectionFull:            appErrors.ErrSectionFull,
	enlistment.ReasonUnitCapExceeded:        appErrors.ErrUnitCapExceeded,
	enlistment.ReasonScheduleConflict:       appErrors.ErrScheduleConflict,
	enlistment.ReasonNotRemovable:           appErrors.ErrNotRemovable,
	enlistment.ReasonNotSelected:            appErrors.ErrNotSelected,
}

// rejectionError maps a ledger rejection onto the API error of the same code,
// carrying the rejection details.
func rejectionError(err error) error {
	var rejection *enlistment.Rejection
	if !errors.As(err, &rejection) {
		return err
	}
	template, ok := rejectionErrors[rejection.Reason]
	if !ok {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unexpected enlistment rejection")
	}
	appErr := appErrors.Clone(template, rejection.Error())
	appErr.Err = rejection
	appErr = appErr.WithDetail("key", rejection.Key)
	switch rejection.Reason {
	case enlistment.ReasonSubjectAlreadySelected:
		appErr = appErr.WithDetail("selectedKey", rejection.Existing)
	case enlistment.ReasonUnitCapExceeded:
		appErr = appErr.WithDetail("units", rejection.Units).WithDetail("unitCap", rejection.UnitCap)
	case enlistment.ReasonScheduleConflict:
		if rejection.Conflict != nil {
			appErr = appErr.WithDetail("conflictingKey", rejection.Conflict.Key).
				WithDetail("conflictDays", rejection.Conflict.Days)
		}
	}
	return appErr
}
