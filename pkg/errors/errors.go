package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on code so a cloned error still matches its template.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy carrying an extra detail entry.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrLinkExpired        = New("LINK_EXPIRED", http.StatusGone, "download link expired")
)

// Enlistment admission errors. Codes match the ledger rejection reasons.
var (
	ErrSessionNotFound        = New("SESSION_NOT_FOUND", http.StatusNotFound, "no active enlistment session")
	ErrNotInitialized         = New("NOT_INITIALIZED", http.StatusPreconditionFailed, "enlistment session not initialized")
	ErrAlreadyLocked          = New("ALREADY_LOCKED", http.StatusConflict, "subject already enlisted")
	ErrSubjectAlreadySelected = New("SUBJECT_ALREADY_SELECTED", http.StatusConflict, "another section of this subject is already selected")
	ErrUnknownOffering        = New("UNKNOWN_OFFERING", http.StatusNotFound, "offering not found")
	ErrSectionFull            = New("SECTION_FULL", http.StatusUnprocessableEntity, "section is full")
	ErrUnitCapExceeded        = New("UNIT_CAP_EXCEEDED", http.StatusUnprocessableEntity, "unit limit exceeded")
	ErrScheduleConflict       = New("SCHEDULE_CONFLICT", http.StatusUnprocessableEntity, "schedule conflict")
	ErrNotRemovable           = New("NOT_REMOVABLE", http.StatusConflict, "enlisted subjects cannot be removed")
	ErrNotSelected            = New("NOT_SELECTED", http.StatusNotFound, "subject is not selected")
	ErrNothingToSubmit        = New("NOTHING_TO_SUBMIT", http.StatusUnprocessableEntity, "no new subjects selected")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
