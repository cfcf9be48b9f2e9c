package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-enlistment-api/internal/models"
)

// CurriculumRepository reads the unit ceiling table.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository constructs the repository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// ListUnitCeilings returns every configured ceiling.
func (r *CurriculumRepository) ListUnitCeilings(ctx context.Context) ([]models.UnitCeiling, error) {
	const query = `SELECT semester, year_level, max_units FROM curriculum_unit_ceilings ORDER BY semester, year_level`
	var ceilings []models.UnitCeiling
	if err := r.db.SelectContext(ctx, &ceilings, query); err != nil {
		return nil, fmt.Errorf("list unit ceilings: %w", err)
	}
	return ceilings, nil
}
