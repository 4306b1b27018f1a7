package main

import (
	"log"
	"os"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/storage/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up data
	db, err := inmem.Open()
	errAndDie(err)

	validate, translator := core.NewValidator()
	grade.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		out:        os.Stdout,
		validate:   validate,
		translator: translator,
		degreeSvc:  degree.NewService(inmem.NewDegreeRepository(db)),
		db:         db,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
