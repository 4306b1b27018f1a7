package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core/schedule"
)

type scheduleApi struct {
	svc *schedule.Service
}

func registerScheduleAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *schedule.Service) {
	api := scheduleApi{svc: svc}

	sg := g.Group("/schedule", jwt)
	sg.GET("", api.week)
	sg.GET("/holds/:id", api.hold)
	sg.GET("/enrollments/:id", api.enrollment)
}

// paramID reads the integer path parameter "id".
func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// Handlers

func (api *scheduleApi) week(ctx echo.Context) error {
	week, err := api.svc.Week(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting week")
	}
	return ctx.JSON(http.StatusOK, week)
}

func (api *scheduleApi) hold(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	hold, err := api.svc.Hold(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, hold)
}

func (api *scheduleApi) enrollment(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	enr, err := api.svc.Enrollment(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, enr)
}
