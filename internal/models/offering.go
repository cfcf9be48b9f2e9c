package models

// Course filters. A specific course also sees the common subjects.
const (
	CourseFilterAll = "ALL"
	CourseCommon    = "COMMON"
)

// OfferingRow is one meeting of a section as listed by the subject view.
// Sections meeting on several day patterns appear once per pattern.
type OfferingRow struct {
	SubjectCode      string  `db:"subject_code" json:"subject_code"`
	SubjectTitle     string  `db:"subject_title" json:"subject_title"`
	Section          string  `db:"section" json:"section"`
	Units            float64 `db:"units" json:"units"`
	DayOfWeek        *string `db:"day_of_week" json:"day_of_week,omitempty"`
	TimeStart        *string `db:"time_start" json:"time_start,omitempty"`
	TimeEnd          *string `db:"time_end" json:"time_end,omitempty"`
	FacultyLastName  *string `db:"faculty_lastname" json:"faculty_lastname,omitempty"`
	FacultyFirstName *string `db:"faculty_firstname" json:"faculty_firstname,omitempty"`
	Room             *string `db:"room" json:"room,omitempty"`
	CourseID         string  `db:"course_id" json:"course_id"`
	FilledSlots      *int    `db:"filled_slots" json:"filled_slots,omitempty"`
	TotalSlots       *int    `db:"total_slots" json:"total_slots,omitempty"`
}
