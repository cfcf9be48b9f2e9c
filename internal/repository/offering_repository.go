package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-enlistment-api/internal/models"
)

// OfferingRepository reads the term's subject offerings together with the
// central seat capacity table.
type OfferingRepository struct {
	db *sqlx.DB
}

// NewOfferingRepository constructs the repository.
func NewOfferingRepository(db *sqlx.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

const offeringSelect = `SELECT v.subject_code, v.subject_title, v.section, v.units, v.day_of_week, v.time_start, v.time_end,
        v.faculty_lastname, v.faculty_firstname, v.room, v.course_id,
        ssc.filled_slots, ssc.total_slots
        FROM vw_subject_offerings v
        LEFT JOIN subject_section_capacity ssc ON ssc.subject_id = v.subject_code AND ssc.section_id = v.section`

// ListRows returns one row per section meeting, ordered by code and section.
// A course filter other than ALL also includes the common subjects.
func (r *OfferingRepository) ListRows(ctx context.Context, courseFilter string) ([]models.OfferingRow, error) {
	query := offeringSelect
	var args []interface{}
	if courseFilter != "" && courseFilter != models.CourseFilterAll {
		query += " WHERE (v.course_id = $1 OR v.course_id = $2)"
		args = append(args, courseFilter, models.CourseCommon)
	}
	query += " ORDER BY v.subject_code, v.section, v.time_start"

	var rows []models.OfferingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	return rows, nil
}
