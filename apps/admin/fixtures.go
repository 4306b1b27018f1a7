package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

func (cli *commandLine) dumpFixtures(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating fixtures file")
	}
	defer func() {
		if cErr := f.Close(); err == nil && cErr != nil {
			err = errors.Wrap(cErr, "closing fixtures file")
		}
	}()

	if err = cli.db.Dump(f); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Fixtures written to %s\n", path)
	return nil
}
