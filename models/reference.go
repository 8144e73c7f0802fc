package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// LocalScope is the scope of references created from the command line.
const LocalScope = "local"

// ErrNoSuchReference is returned when no reference name is close enough to
// the one that was asked for.
var ErrNoSuchReference = errors.New("no such reference")

// A Reference is a named histogram that images can be matched against.
// References are grouped by scope (a Discord guild, or LocalScope).
type Reference struct {
	gorm.Model
	Scope  string `gorm:"unique_index:idx_reference_scope_name"`
	Name   string `gorm:"unique_index:idx_reference_scope_name"`
	Pixels uint64
	Counts string `gorm:"type:text"`
}

func (r Reference) String() string {
	return fmt.Sprintf("Reference{scope=%v, name=%v, pixels=%v}", r.Scope, r.Name, r.Pixels)
}

// BeforeSave is executed just before a Reference is saved into the DB
func (r *Reference) BeforeSave() error {
	if r.Scope == "" {
		return errors.New("missing reference scope")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("reference name can't be empty")
	}
	if r.Pixels == 0 {
		return errors.New("reference histogram can't be empty")
	}
	return nil
}

// SetHistogram stores h into the reference.
func (r *Reference) SetHistogram(h imp.Histogram) {
	counts := make([]string, imp.Levels)
	for i, c := range h.Counts {
		counts[i] = strconv.FormatUint(c, 10)
	}
	r.Counts = strings.Join(counts, ",")
	r.Pixels = h.Total
}

// Histogram decodes the stored histogram.
func (r Reference) Histogram() (imp.Histogram, error) {
	fields := strings.Split(r.Counts, ",")
	counts := make([]uint64, len(fields))
	for i, f := range fields {
		c, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return imp.Histogram{}, fmt.Errorf("reference %q: level %d: %w", r.Name, i, err)
		}
		counts[i] = c
	}
	h, err := imp.NewHistogram(counts)
	if err != nil {
		return h, fmt.Errorf("reference %q: %w", r.Name, err)
	}
	if h.Total != r.Pixels {
		return h, fmt.Errorf("reference %q: counts sum to %d, expected %d pixels", r.Name, h.Total, r.Pixels)
	}
	return h, nil
}

// SaveReference creates the named reference in the given scope, or
// overwrites its histogram if it already exists.
func SaveReference(db *gorm.DB, scope, name string, h imp.Histogram) (*Reference, error) {
	r := Reference{}
	err := db.Where("scope = ?", scope).Where("name = ?", name).First(&r).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}
	r.Scope, r.Name = scope, name
	r.SetHistogram(h)
	if err := db.Save(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReferences returns all references from given scope, sorted by name
func ListReferences(db *gorm.DB, scope string) (refs []Reference, err error) {
	err = db.Where("scope = ?", scope).Order("name").Find(&refs).Error
	return
}

// FindReference finds a reference from its exact Name and Scope
func FindReference(db *gorm.DB, scope, name string) (*Reference, error) {
	r := Reference{}
	err := db.Where("scope = ?", scope).Where("name = ?", name).First(&r).Error
	return &r, err
}

// FindClosestReference finds the reference whose name is the closest to the
// given one. The returned score is the edit distance between both names.
func FindClosestReference(db *gorm.DB, scope, name string) (best Reference, score int, err error) {
	refs, err := ListReferences(db, scope)
	if err != nil {
		return
	}
	best, score = closestReference(name, refs)
	if best.ID == 0 {
		err = fmt.Errorf("%w: %q", ErrNoSuchReference, name)
	}
	return
}

func closestReference(name string, refs []Reference) (best Reference, score int) {
	score = len([]rune(name))
	for _, r := range refs {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(r.Name), levenshtein.DefaultOptions)
		if d < score {
			best = r
			score = d
		}
	}
	return
}

// Delete deletes current reference from the DB
func (r *Reference) Delete(db *gorm.DB) error {
	return db.Unscoped().Where("id = ?", r.ID).Delete(&Reference{}).Error
}
