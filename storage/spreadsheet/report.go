package spreadsheet

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/gateway/core/degree"
)

// ExportDegreeReport writes the report as a workbook with Summary, Requirements and History sheets.
func ExportDegreeReport(w io.Writer, rep degree.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	s := rep.Student
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	summary := [][]interface{}{
		{"Name", s.Name},
		{"Student ID", s.StudentID},
		{"Major", s.Major},
		{"Minor", s.Minor},
		{"Current Year", s.CurrentYear},
		{"Expected Graduation", s.ExpectedGraduation},
		{"Overall GPA", s.OverallGPA},
		{"Major GPA", s.MajorGPA},
		{"Credits Completed", s.CreditsCompleted},
		{"Credits In Progress", s.CreditsInProgress},
		{"Credits Required", s.TotalCreditsRequired},
		{"Progress %", rep.ProgressPercent},
		{"Projected %", rep.ProjectedPercent},
		{"Credits Remaining", rep.CreditsRemaining},
		{"Generated", rep.GeneratedAt.Format("Jan 2, 2006")},
	}
	if err := writeRows(f, "Summary", summary); err != nil {
		return err
	}

	reqs := [][]interface{}{{"Category", "Required", "Completed", "In Progress", "Percent", "Code", "Course", "Credits", "Grade", "Semester"}}
	for _, c := range rep.Categories {
		reqs = append(reqs, []interface{}{c.Name, c.Required, c.Completed, c.InProgress, c.Percent})
		for _, course := range c.Courses {
			reqs = append(reqs, []interface{}{nil, nil, nil, nil, nil, course.Code, course.Name, course.Credits, course.Grade, course.Semester})
		}
	}
	if err := newSheet(f, "Requirements", reqs); err != nil {
		return err
	}

	history := [][]interface{}{{"Term", "Credits", "GPA", "Courses"}}
	for _, sem := range rep.Semesters {
		var gpa interface{} = degree.GradeInProgress
		if !sem.InProgress() {
			gpa = *sem.GPA
		}
		history = append(history, []interface{}{sem.Term, sem.Credits, gpa, sem.Courses})
	}
	if err := newSheet(f, "History", history); err != nil {
		return err
	}
	return errors.Wrap(f.Write(w), "writing workbook")
}
