package grade

import (
	"math"
	"math/big"

	"github.com/trezcool/gateway/core"
)

// Trends of a projected cumulative GPA against the prior one.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// CourseEntry is one course typed into the calculator; Credits are capped so sums stay finite.
type CourseEntry struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name" validate:"required"`
	Credits float64 `json:"credits" validate:"gt=0,lte=30"`
	Grade   Grade   `json:"grade" validate:"required,gradetoken"`
}

// PriorRecord is the student's standing before the courses being calculated.
type PriorRecord struct {
	Credits float64 `json:"credits" validate:"gte=0,lte=1000"`
	GPA     float64 `json:"gpa" validate:"gte=0,lte=4"`
}

func ratOf(f float64) *big.Rat {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return new(big.Rat)
	}
	return new(big.Rat).SetFloat64(f)
}

func ratFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

func totalCredits(courses []CourseEntry) *big.Rat {
	sum := new(big.Rat)
	for _, c := range courses {
		sum.Add(sum, ratOf(c.Credits))
	}
	return sum
}

func qualityPoints(c CourseEntry) *big.Rat {
	return new(big.Rat).Mul(ratPoints(c.Grade), ratOf(c.Credits))
}

func semesterGPA(courses []CourseEntry) *big.Rat {
	credits := totalCredits(courses)
	if credits.Sign() <= 0 {
		return new(big.Rat)
	}
	points := new(big.Rat)
	for _, c := range courses {
		points.Add(points, qualityPoints(c))
	}
	return points.Quo(points, credits)
}

func cumulativeGPA(courses []CourseEntry, prior *PriorRecord) *big.Rat {
	sem := semesterGPA(courses)
	if prior == nil || prior.Credits == 0 {
		return sem
	}
	semCredits := totalCredits(courses)
	semPoints := new(big.Rat).Mul(sem, semCredits)

	priorCredits := ratOf(prior.Credits)
	priorPoints := new(big.Rat).Mul(ratOf(prior.GPA), priorCredits)

	credits := new(big.Rat).Add(priorCredits, semCredits)
	if credits.Sign() == 0 {
		return new(big.Rat)
	}
	points := new(big.Rat).Add(priorPoints, semPoints)
	return points.Quo(points, credits)
}

// SemesterGPA returns Σ(points×credits)/Σcredits, or 0 for no (or zero-credit) courses.
func SemesterGPA(courses []CourseEntry) float64 {
	return ratFloat(semesterGPA(courses))
}

// CumulativeGPA merges the semester into the prior record.
// Without a prior record (or with 0 prior credits) it is the semester GPA.
func CumulativeGPA(courses []CourseEntry, prior *PriorRecord) float64 {
	return ratFloat(cumulativeGPA(courses, prior))
}

// TotalCredits sums the credit hours of `courses`.
func TotalCredits(courses []CourseEntry) float64 {
	return ratFloat(totalCredits(courses))
}

// QualityPoints returns points(grade) × credits.
func QualityPoints(c CourseEntry) float64 {
	return ratFloat(qualityPoints(c))
}

// DegreeProgressPercent returns completed/total×100. The caller guards total = 0.
func DegreeProgressPercent(completed, total float64) float64 {
	r := new(big.Rat).Mul(ratOf(completed), big.NewRat(100, 1))
	tot := ratOf(total)
	if tot.Sign() == 0 {
		return math.Inf(1)
	}
	return ratFloat(r.Quo(r, tot))
}

// Round2 rounds to the 2 decimals used for semester GPA and credit figures.
func Round2(x float64) float64 { return core.Round(x, 2) }

// Round3 rounds to the 3 decimals used for the projected cumulative GPA.
func Round3(x float64) float64 { return core.Round(x, 3) }

// Row is a course with its computed points, as displayed in the calculator table.
type Row struct {
	CourseEntry
	GradePoints   float64 `json:"grade_points"`
	QualityPoints float64 `json:"quality_points"`
}

// Summary holds the display figures of a calculation.
type Summary struct {
	Courses            []Row        `json:"courses"`
	TotalCredits       float64      `json:"total_credits"`
	TotalQualityPoints float64      `json:"total_quality_points"`
	SemesterGPA        float64      `json:"semester_gpa"`
	CumulativeGPA      float64      `json:"cumulative_gpa"`
	Prior              *PriorRecord `json:"prior,omitempty"`
	CombinedCredits    float64      `json:"combined_credits"`
	Change             *float64     `json:"change,omitempty"`
	Trend              string       `json:"trend,omitempty"`
}

// Summarize computes every figure shown for `courses` and an optional prior record.
func Summarize(courses []CourseEntry, prior *PriorRecord) Summary {
	rows := make([]Row, 0, len(courses))
	points := new(big.Rat)
	for _, c := range courses {
		gp, _ := Points(c.Grade)
		qp := qualityPoints(c)
		points.Add(points, qp)
		rows = append(rows, Row{
			CourseEntry:   c,
			GradePoints:   Round2(gp),
			QualityPoints: Round2(ratFloat(qp)),
		})
	}

	credits := totalCredits(courses)
	cumulative := cumulativeGPA(courses, prior)
	sum := Summary{
		Courses:            rows,
		TotalCredits:       Round2(ratFloat(credits)),
		TotalQualityPoints: Round2(ratFloat(points)),
		SemesterGPA:        Round2(ratFloat(semesterGPA(courses))),
		CumulativeGPA:      Round3(ratFloat(cumulative)),
		CombinedCredits:    Round2(ratFloat(credits)),
	}
	if prior != nil {
		p := *prior
		sum.Prior = &p
		sum.CombinedCredits = Round2(ratFloat(new(big.Rat).Add(credits, ratOf(prior.Credits))))
		if prior.GPA > 0 {
			delta := new(big.Rat).Sub(cumulative, ratOf(prior.GPA))
			change := Round3(ratFloat(delta))
			sum.Change = &change
			switch delta.Sign() {
			case 1:
				sum.Trend = TrendUp
			case -1:
				sum.Trend = TrendDown
			default:
				sum.Trend = TrendFlat
			}
		}
	}
	return sum
}
