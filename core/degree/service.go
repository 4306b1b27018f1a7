package degree

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/core/user"
)

var NowFunc = time.Now // mockable

type (
	CategoryProgress struct {
		RequirementCategory
		Percent   float64 `json:"percent"` // 0dp
		Complete  bool    `json:"complete"`
		Remaining float64 `json:"remaining"`
		GPA       float64 `json:"gpa"` // graded courses only, 2dp
	}

	Report struct {
		Student          Student            `json:"student"`
		ProgressPercent  float64            `json:"progress_percent"` // 1dp
		ProjectedCredits float64            `json:"projected_credits"`
		ProjectedPercent float64            `json:"projected_percent"` // 1dp
		CreditsRemaining float64            `json:"credits_remaining"` // after this semester
		Categories       []CategoryProgress `json:"categories"`
		Semesters        []SemesterRecord   `json:"semesters"`
		GeneratedAt      time.Time          `json:"generated_at"` // UTC
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Report assembles the degree progress report, personalised for `usr` when signed in.
func (svc *Service) Report(ctx context.Context, usr *user.User) (Report, error) {
	student, err := svc.repo.GetStudent(ctx)
	if err != nil {
		return Report{}, errors.Wrap(err, "getting student")
	}
	reqs, err := svc.repo.QueryRequirements(ctx)
	if err != nil {
		return Report{}, errors.Wrap(err, "querying requirements")
	}
	sems, err := svc.repo.QuerySemesters(ctx)
	if err != nil {
		return Report{}, errors.Wrap(err, "querying semesters")
	}
	return BuildReport(personalise(student, usr), reqs, sems), nil
}

func personalise(s Student, usr *user.User) Student {
	s.Name = DefaultName
	if usr != nil && usr.FirstName != "" && usr.LastName != "" {
		s.Name = usr.FullName()
	}
	if s.StudentID == "" {
		s.StudentID = DefaultStudentID
	}
	if usr != nil && usr.StudentID != "" {
		s.StudentID = usr.StudentID
	}
	return s
}

// BuildReport computes the report figures.
func BuildReport(s Student, reqs []RequirementCategory, sems []SemesterRecord) Report {
	projected := s.CreditsCompleted + s.CreditsInProgress
	rep := Report{
		Student:          s,
		ProjectedCredits: projected,
		CreditsRemaining: s.TotalCreditsRequired - projected,
		Categories:       make([]CategoryProgress, 0, len(reqs)),
		Semesters:        sems,
		GeneratedAt:      NowFunc().UTC(),
	}
	if s.TotalCreditsRequired > 0 {
		rep.ProgressPercent = core.Round(grade.DegreeProgressPercent(s.CreditsCompleted, s.TotalCreditsRequired), 1)
		rep.ProjectedPercent = core.Round(grade.DegreeProgressPercent(projected, s.TotalCreditsRequired), 1)
	}
	if rep.CreditsRemaining < 0 {
		rep.CreditsRemaining = 0
	}

	for _, req := range reqs {
		cp := CategoryProgress{
			RequirementCategory: req,
			Complete:            req.Completed >= req.Required,
			GPA:                 grade.Round2(grade.SemesterGPA(gradedCourses(req.Courses))),
		}
		if req.Required > 0 {
			cp.Percent = core.Round(grade.DegreeProgressPercent(req.Completed, req.Required), 0)
		}
		if !cp.Complete {
			cp.Remaining = req.Required - req.Completed
		}
		rep.Categories = append(rep.Categories, cp)
	}
	return rep
}

// gradedCourses converts the courses carrying grade points; in progress and pass/fail courses are left out.
func gradedCourses(courses []CourseRecord) []grade.CourseEntry {
	entries := make([]grade.CourseEntry, 0, len(courses))
	for _, c := range courses {
		if !c.Graded() {
			continue
		}
		entries = append(entries, grade.CourseEntry{Name: c.Code, Credits: c.Credits, Grade: grade.Grade(c.Grade)})
	}
	return entries
}

// Category returns the first category whose name starts with `prefix`.
func (r Report) Category(prefix string) (CategoryProgress, bool) {
	for _, c := range r.Categories {
		if strings.HasPrefix(c.Name, prefix) {
			return c, true
		}
	}
	return CategoryProgress{}, false
}
