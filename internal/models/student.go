package models

// StudentProfile is the slice of the student record enlistment depends on.
type StudentProfile struct {
	StudentID          string `db:"student_id" json:"student_id"`
	FirstName          string `db:"first_name" json:"first_name"`
	LastName           string `db:"last_name" json:"last_name"`
	CourseID           string `db:"course_id" json:"course_id"`
	YearLevel          int    `db:"year_level" json:"year_level"`
	Semester           int    `db:"semester" json:"semester"`
	SchoolYear         string `db:"school_year" json:"school_year"`
	RegistrationStatus string `db:"registration_status" json:"registration_status"`
}

// FullName renders "Last, First".
func (p StudentProfile) FullName() string {
	switch {
	case p.LastName == "":
		return p.FirstName
	case p.FirstName == "":
		return p.LastName
	}
	return p.LastName + ", " + p.FirstName
}
