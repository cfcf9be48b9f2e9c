package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-enlistment-api/internal/models"
)

// StudentRepository reads the student records enlistment depends on.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindProfile returns the student's current term, year level, course and
// registration standing. sql.ErrNoRows is returned unwrapped for unknown students.
func (r *StudentRepository) FindProfile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	const query = `SELECT s.student_id, s.first_name, s.last_name, s.course_id, s.year_level, s.semester, s.school_year,
        rs.registration_title AS registration_status
        FROM students s
        JOIN registration_statuses rs ON rs.registration_id = s.registration_id
        WHERE s.student_id = $1`
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, studentID); err != nil {
		return nil, err
	}
	return &profile, nil
}
