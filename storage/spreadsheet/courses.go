// Package spreadsheet imports GPA calculator courses from and exports reports to .xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/grade"
)

const (
	// MaxImportRows bounds the courses read from one workbook.
	MaxImportRows = 200

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var courseHeader = []string{"Course", "Credits", "Grade"}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowError(rowNum int, field, msg string) core.FieldError {
	return core.FieldError{Field: fmt.Sprintf("row %d.%s", rowNum, field), Error: msg}
}

// ImportCourses reads the courses of the first sheet. The first row must be the
// Course, Credits, Grade header; blank rows are skipped. Every invalid row is
// reported in the returned validation error, keyed "row N.field".
func ImportCourses(r io.Reader, validate *validator.Validate, translator ut.Translator) ([]grade.CourseEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "file", Error: "File is not a valid .xlsx workbook"})
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "file", Error: "Workbook has no sheets"})
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}

	headerIdx := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 || !isHeader(rows[headerIdx]) {
		return nil, core.NewValidationError(nil, core.FieldError{
			Field: "file",
			Error: "First row must be: " + strings.Join(courseHeader, ", "),
		})
	}

	var (
		courses []grade.CourseEntry
		fldErrs []core.FieldError
	)
	for i := headerIdx + 1; i < len(rows); i++ {
		row, rowNum := rows[i], i+1
		if isBlank(row) {
			continue
		}
		if len(courses)+len(fldErrs) >= MaxImportRows {
			fldErrs = append(fldErrs, core.FieldError{Field: "file", Error: fmt.Sprintf("At most %d courses can be imported", MaxImportRows)})
			break
		}

		entry := grade.CourseEntry{
			Name:  cell(row, 0),
			Grade: grade.Grade(strings.ToUpper(cell(row, 2))),
		}
		if raw := cell(row, 1); raw != "" {
			credits, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fldErrs = append(fldErrs, rowError(rowNum, "credits", "Credit hours must be a number"))
				continue
			}
			entry.Credits = credits
		}

		if err := entry.Validate(validate, translator); err != nil {
			vErr, ok := core.AsValidationError(err)
			if !ok {
				return nil, err
			}
			for _, fe := range vErr.Fields {
				fldErrs = append(fldErrs, rowError(rowNum, fe.Field, fe.Error))
			}
			continue
		}
		courses = append(courses, entry)
	}

	if len(fldErrs) > 0 {
		return nil, core.NewValidationError(nil, fldErrs...)
	}
	if len(courses) == 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "file", Error: "No courses found"})
	}
	return courses, nil
}

func isHeader(row []string) bool {
	for i, name := range courseHeader {
		if !strings.EqualFold(cell(row, i), name) {
			return false
		}
	}
	return true
}

// ExportCourses writes the calculator courses in the layout ImportCourses reads; totals go to a second sheet.
func ExportCourses(w io.Writer, sum grade.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Courses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	rows := [][]interface{}{{courseHeader[0], courseHeader[1], courseHeader[2], "Grade Points", "Quality Points"}}
	for _, c := range sum.Courses {
		rows = append(rows, []interface{}{c.Name, c.Credits, string(c.Grade), c.GradePoints, c.QualityPoints})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}

	totals := [][]interface{}{
		{"Total Credits", sum.TotalCredits},
		{"Total Quality Points", sum.TotalQualityPoints},
		{"Semester GPA", sum.SemesterGPA},
	}
	if sum.Prior != nil {
		totals = append(totals,
			[]interface{}{"Prior Credits", sum.Prior.Credits},
			[]interface{}{"Prior GPA", sum.Prior.GPA},
			[]interface{}{"Cumulative GPA", sum.CumulativeGPA},
		)
	}
	if err := newSheet(f, "Totals", totals); err != nil {
		return err
	}
	return errors.Wrap(f.Write(w), "writing workbook")
}

func newSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Wrapf(err, "adding sheet %s", name)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, addr, &row); err != nil {
			return errors.Wrapf(err, "writing %s!%s", sheet, addr)
		}
	}
	return nil
}
