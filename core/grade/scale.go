// Package grade converts course/grade lists into GPA and credit figures.
package grade

import "math/big"

// Grade is a letter grade token, e.g. "A", "B+" or "F".
type Grade string

type step struct {
	grade  Grade
	points *big.Rat
}

// scale is the standard 13-step scale; the order is the display order.
var scale = []step{
	{"A+", big.NewRat(40, 10)},
	{"A", big.NewRat(40, 10)},
	{"A-", big.NewRat(37, 10)},
	{"B+", big.NewRat(33, 10)},
	{"B", big.NewRat(30, 10)},
	{"B-", big.NewRat(27, 10)},
	{"C+", big.NewRat(23, 10)},
	{"C", big.NewRat(20, 10)},
	{"C-", big.NewRat(17, 10)},
	{"D+", big.NewRat(13, 10)},
	{"D", big.NewRat(10, 10)},
	{"D-", big.NewRat(7, 10)},
	{"F", big.NewRat(0, 1)},
}

var scaleIdx = func() map[Grade]*big.Rat {
	idx := make(map[Grade]*big.Rat, len(scale))
	for _, s := range scale {
		idx[s.grade] = s.points
	}
	return idx
}()

// ScaleEntry is one row of the grade scale.
type ScaleEntry struct {
	Grade  Grade   `json:"grade"`
	Points float64 `json:"points"`
}

// Points returns the grade points of `g` and whether `g` is on the scale.
func Points(g Grade) (float64, bool) {
	r, ok := scaleIdx[g]
	if !ok {
		return 0, false
	}
	f, _ := r.Float64()
	return f, true
}

// IsValid reports whether `g` is on the scale.
func IsValid(g Grade) bool {
	_, ok := scaleIdx[g]
	return ok
}

// Grades returns the scale tokens, best first.
func Grades() []Grade {
	grades := make([]Grade, 0, len(scale))
	for _, s := range scale {
		grades = append(grades, s.grade)
	}
	return grades
}

// Scale returns a copy of the grade scale, best first.
func Scale() []ScaleEntry {
	entries := make([]ScaleEntry, 0, len(scale))
	for _, s := range scale {
		f, _ := s.points.Float64()
		entries = append(entries, ScaleEntry{Grade: s.grade, Points: f})
	}
	return entries
}

// ratPoints returns the exact grade points of `g`; unknown grades count as 0.
func ratPoints(g Grade) *big.Rat {
	if r, ok := scaleIdx[g]; ok {
		return r
	}
	return new(big.Rat)
}
