package models

import "time"

// EnlistmentStatus is the registrar workflow state of an enlistment row.
type EnlistmentStatus string

const (
	EnlistmentStatusPending  EnlistmentStatus = "PEN"
	EnlistmentStatusApproved EnlistmentStatus = "APPROVED"
	EnlistmentStatusRejected EnlistmentStatus = "REJECTED"
)

// LockingStatuses are the statuses that make a subject immovable during enlistment.
var LockingStatuses = []EnlistmentStatus{EnlistmentStatusPending, EnlistmentStatusApproved}

// EnlistmentRecord is one committed subject section for a student and term.
type EnlistmentRecord struct {
	ID          string           `db:"id" json:"id"`
	StudentID   string           `db:"student_id" json:"student_id"`
	SubjectCode string           `db:"subject_code" json:"subject_code"`
	Section     string           `db:"section" json:"section"`
	Semester    int              `db:"semester" json:"semester"`
	SchoolYear  string           `db:"school_year" json:"school_year"`
	Status      EnlistmentStatus `db:"status" json:"status"`
	ReferenceID string           `db:"reference_id" json:"reference_id"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// TermRef identifies a student's current term.
type TermRef struct {
	Semester   int
	SchoolYear string
}
