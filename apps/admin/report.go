package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core/user"
	"github.com/trezcool/gateway/storage/spreadsheet"
)

func (cli *commandLine) report(path, email, studentID string) (err error) {
	var usr *user.User
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" || studentID != "" {
		usr = &user.User{Email: email, StudentID: strings.TrimSpace(studentID)}
		if email != "" {
			usr.FirstName, usr.LastName = user.NameFromEmail(email)
		}
	}

	rep, err := cli.degreeSvc.Report(context.Background(), usr)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating report file")
	}
	defer func() {
		if cErr := f.Close(); err == nil && cErr != nil {
			err = errors.Wrap(cErr, "closing report file")
		}
	}()

	if err = spreadsheet.ExportDegreeReport(f, rep); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %.1f%% complete, %.0f credits remaining\n", rep.Student.Name, rep.ProgressPercent, rep.CreditsRemaining)
	fmt.Fprintf(cli.out, "Report written to %s\n", path)
	return nil
}
