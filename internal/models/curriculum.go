package models

// UnitCeiling is the curriculum maximum load for a semester and year level.
type UnitCeiling struct {
	Semester  int `db:"semester" json:"semester"`
	YearLevel int `db:"year_level" json:"year_level"`
	MaxUnits  int `db:"max_units" json:"max_units"`
}
