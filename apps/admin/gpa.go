package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/storage/spreadsheet"
)

func (cli *commandLine) printScale() {
	for _, e := range grade.Scale() {
		fmt.Fprintf(cli.out, "%-3s %.1f\n", e.Grade, e.Points)
	}
}

func (cli *commandLine) gpa(path string, withPrior bool, priorCredits, priorGPA float64) error {
	var prior *grade.PriorRecord
	if withPrior {
		prior = &grade.PriorRecord{Credits: priorCredits, GPA: priorGPA}
		if err := prior.Validate(cli.validate, cli.translator); err != nil {
			return cli.fieldErrors(err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening workbook")
	}
	defer func() { _ = f.Close() }()

	courses, err := spreadsheet.ImportCourses(f, cli.validate, cli.translator)
	if err != nil {
		return cli.fieldErrors(err)
	}

	sum := grade.Summarize(courses, prior)
	for _, row := range sum.Courses {
		fmt.Fprintf(cli.out, "%-30s %5.1f  %-2s  %5.2f\n", row.Name, row.Credits, row.Grade, row.QualityPoints)
	}
	fmt.Fprintf(cli.out, "Credits: %.1f  Quality points: %.2f\n", sum.TotalCredits, sum.TotalQualityPoints)
	fmt.Fprintf(cli.out, "Semester GPA: %.2f\n", sum.SemesterGPA)
	if sum.Prior != nil {
		fmt.Fprintf(cli.out, "Cumulative GPA: %.3f over %.1f credits", sum.CumulativeGPA, sum.CombinedCredits)
		if sum.Change != nil {
			fmt.Fprintf(cli.out, " (%+.3f, %s)", *sum.Change, sum.Trend)
		}
		fmt.Fprintln(cli.out)
	}
	return nil
}

// fieldErrors prints validation failures one per line.
func (cli *commandLine) fieldErrors(err error) error {
	vErr, ok := core.AsValidationError(err)
	if !ok {
		return err
	}
	for _, fe := range vErr.Fields {
		fmt.Fprintf(cli.out, "  %s: %s\n", fe.Field, fe.Error)
	}
	return vErr
}
