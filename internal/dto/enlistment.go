package dto

import (
	"time"

	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
)

// StartSessionRequest opens or resets an enlistment session.
type StartSessionRequest struct {
	CourseFilter string `json:"courseFilter" validate:"omitempty,max=32"`
}

// SelectionRequest names one subject section.
type SelectionRequest struct {
	Code    string `json:"code" validate:"required,max=32"`
	Section string `json:"section" validate:"required,max=16"`
}

// OfferingFilter narrows the offerings view. Locked and pending rows are
// always kept.
type OfferingFilter struct {
	Search        string `form:"search" validate:"omitempty,max=64"`
	AvailableOnly bool   `form:"availableOnly"`
	Page          int    `form:"page" validate:"omitempty,min=1"`
	PageSize      int    `form:"pageSize" validate:"omitempty,min=1,max=200"`
}

// Offering row statuses besides the rejection reasons.
const (
	OfferingStatusLocked    = "LOCKED"
	OfferingStatusPending   = "PENDING"
	OfferingStatusAvailable = "AVAILABLE"
)

// OfferingView is a catalog card annotated for the current student.
type OfferingView struct {
	enlistment.Offering
	RemainingSeats int    `json:"remainingSeats"`
	Slots          string `json:"slots"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
}

// StudentInfo identifies the session owner.
type StudentInfo struct {
	StudentID          string `json:"studentId"`
	Name               string `json:"name"`
	CourseID           string `json:"courseId"`
	YearLevel          int    `json:"yearLevel"`
	Semester           int    `json:"semester"`
	SchoolYear         string `json:"schoolYear"`
	RegistrationStatus string `json:"registrationStatus"`
}

// SelectionItem is one row of the student's selection.
type SelectionItem struct {
	Code       string  `json:"code"`
	Section    string  `json:"section"`
	Title      string  `json:"title"`
	Units      float64 `json:"units"`
	Schedule   string  `json:"schedule"`
	Instructor string  `json:"instructor,omitempty"`
	Room       string  `json:"room,omitempty"`
	Locked     bool    `json:"locked"`
}

// SessionView is returned after every session mutation.
type SessionView struct {
	Student      StudentInfo        `json:"student"`
	CourseFilter string             `json:"courseFilter"`
	Locked       []SelectionItem    `json:"locked"`
	Pending      []SelectionItem    `json:"pending"`
	Summary      enlistment.Summary `json:"summary"`
	ExpiresAt    time.Time          `json:"expiresAt"`
}

// SubmissionResult reports a committed submission.
type SubmissionResult struct {
	ReferenceID string      `json:"referenceId"`
	Submitted   int         `json:"submitted"`
	Skipped     int         `json:"skipped"`
	Session     SessionView `json:"session"`
}

// Registration form formats.
const (
	FormFormatPDF = "pdf"
	FormFormatCSV = "csv"
)

// FormLinkRequest selects the registration form format.
type FormLinkRequest struct {
	Format string `form:"format" validate:"omitempty,oneof=pdf csv"`
}

// FormLink is a signed download link for the registration form.
type FormLink struct {
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RenderedForm is a generated registration form document.
type RenderedForm struct {
	Filename    string
	ContentType string
	Content     []byte
}
