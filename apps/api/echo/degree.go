package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/storage/spreadsheet"
)

const reportFilename = "degree-progress.xlsx"

var errSignInRequired = echo.NewHTTPError(http.StatusForbidden, "sign in to email the report")

type (
	degreeApi struct {
		svc     *degree.Service
		mailSvc core.EmailService
	}

	EmailReportResponse struct {
		To string `json:"to"`
	}

	reportEmailData struct {
		Name      string
		Filename  string
		Progress  string
		Remaining string
	}
)

func registerDegreeAPI(g *echo.Group, jwt, sess echo.MiddlewareFunc, svc *degree.Service, mailSvc core.EmailService) {
	api := degreeApi{svc: svc, mailSvc: mailSvc}

	dg := g.Group("/degree", jwt, sess)
	dg.GET("", api.report)
	dg.GET("/export", api.export)
	dg.POST("/email", api.email)
}

func (api *degreeApi) getReport(ctx echo.Context) (degree.Report, error) {
	sess, err := getContextSession(ctx)
	if err != nil {
		return degree.Report{}, err
	}
	rep, err := api.svc.Report(ctx.Request().Context(), sessionUser(sess))
	return rep, errors.Wrap(err, "building degree report")
}

// Handlers

func (api *degreeApi) report(ctx echo.Context) error {
	rep, err := api.getReport(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *degreeApi) export(ctx echo.Context) error {
	rep, err := api.getReport(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = spreadsheet.ExportDegreeReport(&buf, rep); err != nil {
		return errors.Wrap(err, "exporting degree report")
	}
	return attachment(ctx, reportFilename, buf.Bytes())
}

// email sends the exported report to the signed in student.
func (api *degreeApi) email(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	usr := sessionUser(sess)
	if usr == nil {
		return errSignInRequired
	}
	rep, err := api.getReport(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = spreadsheet.ExportDegreeReport(&buf, rep); err != nil {
		return errors.Wrap(err, "exporting degree report")
	}
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject:      "Your degree progress report",
		TemplateName: "degree_report",
		TemplateData: reportEmailData{
			Name:      usr.FirstName,
			Filename:  reportFilename,
			Progress:  fmt.Sprintf("%.1f", rep.ProgressPercent),
			Remaining: fmt.Sprintf("%.0f", rep.CreditsRemaining),
		},
	}
	if err = msg.Attach(&buf, reportFilename, spreadsheet.ContentType); err != nil {
		return errors.Wrap(err, "attaching degree report")
	}
	api.mailSvc.SendMessages(msg)
	return ctx.JSON(http.StatusAccepted, EmailReportResponse{To: usr.Email})
}
