package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	"github.com/noah-isme/student-enlistment-api/internal/models"
)

// ErrSeatsExhausted is returned when a seat reservation overflows the section capacity.
var ErrSeatsExhausted = errors.New("section seats exhausted")

// SeatsExhaustedError names the section that ran out of seats at submission.
type SeatsExhaustedError struct {
	Key enlistment.Key
}

func (e *SeatsExhaustedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSeatsExhausted, e.Key)
}

// Unwrap lets errors.Is match ErrSeatsExhausted.
func (e *SeatsExhaustedError) Unwrap() error {
	return ErrSeatsExhausted
}

// PendingEnlistment describes one submission batch.
type PendingEnlistment struct {
	StudentID           string
	Term                models.TermRef
	Keys                []enlistment.Key
	ReferenceID         string
	DefaultSeatCapacity int
}

// EnlistmentRepository persists committed enlistment rows.
type EnlistmentRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewEnlistmentRepository constructs the repository.
func NewEnlistmentRepository(db *sqlx.DB) *EnlistmentRepository {
	return &EnlistmentRepository{db: db, now: time.Now}
}

// ListLocked returns the student's pending and approved rows for the term.
func (r *EnlistmentRepository) ListLocked(ctx context.Context, studentID string, term models.TermRef) ([]models.EnlistmentRecord, error) {
	const query = `SELECT id, student_id, subject_code, section, semester, school_year, status, reference_id, created_at
        FROM student_enlistments
        WHERE student_id = $1 AND semester = $2 AND school_year = $3 AND status = ANY($4)
        ORDER BY created_at, subject_code`
	statuses := make([]string, len(models.LockingStatuses))
	for i, status := range models.LockingStatuses {
		statuses[i] = string(status)
	}
	var records []models.EnlistmentRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, term.Semester, term.SchoolYear, pq.Array(statuses)); err != nil {
		return nil, fmt.Errorf("list locked enlistments: %w", err)
	}
	return records, nil
}

// CreatePending inserts the batch as PEN rows in one transaction and reserves
// one seat per newly inserted row. Rows already present are skipped. It
// returns the number of rows inserted; a capacity overflow rolls back the
// whole batch with a *SeatsExhaustedError.
func (r *EnlistmentRepository) CreatePending(ctx context.Context, batch PendingEnlistment) (inserted int, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin enlistment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `INSERT INTO student_enlistments (id, student_id, subject_code, section, semester, school_year, status, reference_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (student_id, subject_code, section, semester, school_year) DO NOTHING`
	const reserveQuery = `INSERT INTO subject_section_capacity (subject_id, section_id, filled_slots, total_slots)
VALUES ($1, $2, 1, $3)
ON CONFLICT (subject_id, section_id) DO UPDATE SET filled_slots = subject_section_capacity.filled_slots + 1
RETURNING filled_slots, total_slots`

	now := r.now().UTC()
	for _, key := range batch.Keys {
		result, execErr := tx.ExecContext(ctx, insertQuery, uuid.NewString(), batch.StudentID, key.Code, key.Section,
			batch.Term.Semester, batch.Term.SchoolYear, models.EnlistmentStatusPending, batch.ReferenceID, now)
		if execErr != nil {
			return 0, fmt.Errorf("insert enlistment %s: %w", key, execErr)
		}
		affected, execErr := result.RowsAffected()
		if execErr != nil {
			return 0, fmt.Errorf("insert enlistment %s: %w", key, execErr)
		}
		if affected == 0 {
			continue
		}

		var seats struct {
			Filled int `db:"filled_slots"`
			Total  int `db:"total_slots"`
		}
		if err = tx.GetContext(ctx, &seats, reserveQuery, key.Code, key.Section, batch.DefaultSeatCapacity); err != nil {
			return 0, fmt.Errorf("reserve seat %s: %w", key, err)
		}
		if seats.Filled > seats.Total {
			err = &SeatsExhaustedError{Key: key}
			return 0, err
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit enlistment: %w", err)
	}
	return inserted, nil
}
