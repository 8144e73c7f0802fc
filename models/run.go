package models

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/tattybubutashtanova/histmatch/imp"
)

// A Run records one histogram match: what was matched against what, the
// lookup table that was applied and how close the result got.
type Run struct {
	gorm.Model
	Scope     string `gorm:"index"`
	Source    string
	Reference string
	Output    string
	LUT       []byte
	Before    float64
	After     float64
}

// NewRun builds a run record out of a match report.
func NewRun(scope, source, reference, output string, rep *imp.Report) Run {
	lut := make([]byte, imp.Levels)
	copy(lut, rep.LUT[:])
	return Run{
		Scope:     scope,
		Source:    source,
		Reference: reference,
		Output:    output,
		LUT:       lut,
		Before:    rep.Before(),
		After:     rep.After(),
	}
}

func (r Run) String() string {
	return fmt.Sprintf("%s -> %s (%s): %.4f -> %.4f", r.Source, r.Reference, r.Output, r.Before, r.After)
}

// Table decodes the stored lookup table.
func (r Run) Table() (lut imp.LUT, err error) {
	if len(r.LUT) != imp.Levels {
		return lut, fmt.Errorf("run %d: lookup table has %d entries", r.ID, len(r.LUT))
	}
	copy(lut[:], r.LUT)
	return lut, nil
}

// RecordRun saves a run into the DB.
func RecordRun(db *gorm.DB, r *Run) error {
	return db.Create(r).Error
}

// ListRuns returns the most recent runs of a scope, newest first.
func ListRuns(db *gorm.DB, scope string, limit int) (runs []Run, err error) {
	err = db.Where("scope = ?", scope).Order("id desc").Limit(limit).Find(&runs).Error
	return
}
