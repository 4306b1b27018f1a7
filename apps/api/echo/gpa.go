package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/core/session"
	"github.com/trezcool/gateway/storage/spreadsheet"
)

const uploadField = "file"

type (
	gpaApi struct {
		store      session.Store
		validate   *validator.Validate
		translator ut.Translator
	}

	// CalculationRequest is a one-off calculation that is not kept in the session.
	CalculationRequest struct {
		Courses []grade.CourseEntry `json:"courses"`
		Prior   *grade.PriorRecord  `json:"prior"`
	}

	ImportResponse struct {
		Imported int           `json:"imported"`
		Summary  grade.Summary `json:"summary"`
	}
)

func registerGPAAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	sess echo.MiddlewareFunc,
	store session.Store,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := gpaApi{
		store:      store,
		validate:   validate,
		translator: translator,
	}

	// un-authed endpoints
	g.GET("/grades/scale", api.scale)
	g.POST("/gpa", api.calculate)
	g.POST("/gpa/import", api.importFile)

	// session calculator
	g.GET("/gpa", api.retrieve, jwt, sess)
	g.GET("/gpa/export", api.export, jwt, sess)
	g.POST("/gpa/courses", api.addCourse, jwt, sess)
	g.POST("/gpa/courses/import", api.importCourses, jwt, sess)
	g.DELETE("/gpa/courses", api.clearCourses, jwt, sess)
	g.DELETE("/gpa/courses/:id", api.removeCourse, jwt, sess)
	g.PUT("/gpa/prior", api.setPrior, jwt, sess)
	g.DELETE("/gpa/prior", api.clearPrior, jwt, sess)
}

// validateAll validates every course and the prior record, keying course errors by their position.
func (api *gpaApi) validateAll(courses []grade.CourseEntry, prior *grade.PriorRecord) error {
	var fldErrs []core.FieldError
	collect := func(prefix string, err error) error {
		if err == nil {
			return nil
		}
		vErr, ok := core.AsValidationError(err)
		if !ok {
			return err
		}
		for _, fe := range vErr.Fields {
			fldErrs = append(fldErrs, core.FieldError{Field: prefix + fe.Field, Error: fe.Error})
		}
		return nil
	}

	for i := range courses {
		if err := collect(fmt.Sprintf("courses.%d.", i), courses[i].Validate(api.validate, api.translator)); err != nil {
			return err
		}
	}
	if prior != nil {
		if err := collect("prior.", prior.Validate(api.validate, api.translator)); err != nil {
			return err
		}
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}

func (api *gpaApi) readUpload(ctx echo.Context) ([]grade.CourseEntry, error) {
	fh, err := ctx.FormFile(uploadField)
	if err != nil {
		return nil, errMissingUpload
	}
	file, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening upload")
	}
	defer file.Close()
	return spreadsheet.ImportCourses(file, api.validate, api.translator)
}

func (api *gpaApi) updateCalculator(ctx echo.Context, code int, fn func(c *grade.Calculator) error) error {
	sess, err := updateSession(ctx, api.store, func(s *session.Session) error {
		return fn(&s.Calculator)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(code, sess.Calculator.Summary())
}

// Handlers

func (api *gpaApi) scale(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, grade.Scale())
}

func (api *gpaApi) calculate(ctx echo.Context) error {
	var data CalculationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CalculationRequest")
	}
	if err := api.validateAll(data.Courses, data.Prior); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grade.Summarize(data.Courses, data.Prior))
}

func (api *gpaApi) importFile(ctx echo.Context) error {
	courses, err := api.readUpload(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ImportResponse{Imported: len(courses), Summary: grade.Summarize(courses, nil)})
}

func (api *gpaApi) retrieve(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sess.Calculator.Summary())
}

func (api *gpaApi) export(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = spreadsheet.ExportCourses(&buf, sess.Calculator.Summary()); err != nil {
		return errors.Wrap(err, "exporting courses")
	}
	return attachment(ctx, "gpa.xlsx", buf.Bytes())
}

func (api *gpaApi) addCourse(ctx echo.Context) error {
	var data grade.CourseEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CourseEntry")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}
	return api.updateCalculator(ctx, http.StatusCreated, func(c *grade.Calculator) error {
		_, err := c.Add(data)
		return err
	})
}

func (api *gpaApi) importCourses(ctx echo.Context) error {
	courses, err := api.readUpload(ctx)
	if err != nil {
		return err
	}
	return api.updateCalculator(ctx, http.StatusCreated, func(c *grade.Calculator) error {
		for _, course := range courses {
			if _, err := c.Add(course); err != nil {
				return err
			}
		}
		return nil
	})
}

func (api *gpaApi) clearCourses(ctx echo.Context) error {
	return api.updateCalculator(ctx, http.StatusOK, func(c *grade.Calculator) error {
		c.Clear()
		return nil
	})
}

func (api *gpaApi) removeCourse(ctx echo.Context) error {
	id := ctx.Param("id")
	return api.updateCalculator(ctx, http.StatusOK, func(c *grade.Calculator) error {
		return c.Remove(id)
	})
}

func (api *gpaApi) setPrior(ctx echo.Context) error {
	var data grade.PriorRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PriorRecord")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}
	return api.updateCalculator(ctx, http.StatusOK, func(c *grade.Calculator) error {
		c.SetPrior(&data)
		return nil
	})
}

func (api *gpaApi) clearPrior(ctx echo.Context) error {
	return api.updateCalculator(ctx, http.StatusOK, func(c *grade.Calculator) error {
		c.SetPrior(nil)
		return nil
	})
}

// attachment sends an .xlsx workbook as a download.
func attachment(ctx echo.Context, name string, data []byte) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return ctx.Blob(http.StatusOK, spreadsheet.ContentType, data)
}
