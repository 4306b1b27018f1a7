package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/storage/inmem"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out        io.Writer
	validate   *validator.Validate
	translator ut.Translator
	degreeSvc  *degree.Service
	db         *inmem.DB
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  scale - print the grade scale")
	fmt.Fprintln(cli.out, "  gpa -file FILE [-prior-credits N -prior-gpa G] - calculate the GPA of a course workbook")
	fmt.Fprintln(cli.out, "  report -out FILE [-email EMAIL -id STUDENT_ID] - export the degree progress report")
	fmt.Fprintln(cli.out, "  fixtures -out FILE - dump the portal data as YAML (see portalFixturesFile)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	gpaCmd := flag.NewFlagSet("gpa", flag.ContinueOnError)
	gpaCmd.SetOutput(cli.out)
	gpaFile := gpaCmd.String("file", "", "The .xlsx workbook with a Course, Credits, Grade header.")
	gpaPriorCredits := gpaCmd.Float64("prior-credits", 0, "Credits completed before these courses.")
	gpaPriorGPA := gpaCmd.Float64("prior-gpa", 0, "Cumulative GPA before these courses.")

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportCmd.SetOutput(cli.out)
	reportOut := reportCmd.String("out", "", "Where to write the .xlsx report.")
	reportEmail := reportCmd.String("email", "", "Student email; the name is derived from it.")
	reportID := reportCmd.String("id", "", "Student ID.")

	fixturesCmd := flag.NewFlagSet("fixtures", flag.ContinueOnError)
	fixturesCmd.SetOutput(cli.out)
	fixturesOut := fixturesCmd.String("out", "", "Where to write the YAML fixtures.")

	switch args[1] {
	case "scale":
		cli.printScale()
		return nil
	case "gpa":
		if err := gpaCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *gpaFile == "" {
			gpaCmd.Usage()
			return errHelp
		}
		withPrior := false
		gpaCmd.Visit(func(f *flag.Flag) {
			if f.Name == "prior-credits" || f.Name == "prior-gpa" {
				withPrior = true
			}
		})
		return cli.gpa(*gpaFile, withPrior, *gpaPriorCredits, *gpaPriorGPA)
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *reportOut == "" {
			reportCmd.Usage()
			return errHelp
		}
		return cli.report(*reportOut, *reportEmail, *reportID)
	case "fixtures":
		if err := fixturesCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *fixturesOut == "" {
			fixturesCmd.Usage()
			return errHelp
		}
		return cli.dumpFixtures(*fixturesOut)
	default:
		cli.printUsage()
		return errHelp
	}
}
