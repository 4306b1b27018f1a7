package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core/planner"
	"github.com/trezcool/gateway/core/session"
)

type (
	plannerApi struct {
		store session.Store
		svc   *planner.Service
	}

	PlanRequest struct {
		ID string `json:"id"`
	}
)

func registerPlannerAPI(g *echo.Group, jwt, sess echo.MiddlewareFunc, store session.Store, svc *planner.Service) {
	api := plannerApi{store: store, svc: svc}

	pg := g.Group("/planner", jwt, sess)
	pg.GET("/courses", api.search)
	pg.GET("/courses/:id", api.retrieve)
	pg.GET("/plan", api.plan)
	pg.POST("/plan", api.add)
	pg.DELETE("/plan/:id", api.remove)
}

func (api *plannerApi) summary(ctx echo.Context, code int, plan []string) error {
	sum, err := api.svc.Summary(ctx.Request().Context(), plan)
	if err != nil {
		return errors.Wrap(err, "summarizing plan")
	}
	return ctx.JSON(code, sum)
}

// Handlers

func (api *plannerApi) search(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var query SearchQuery
	query.Bind(ctx)

	listings, err := api.svc.Search(ctx.Request().Context(), query.Term, sess.Plan)
	if err != nil {
		return errors.Wrap(err, "searching offerings")
	}
	return ctx.JSON(http.StatusOK, listings)
}

func (api *plannerApi) retrieve(ctx echo.Context) error {
	listing, err := api.svc.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, listing)
}

func (api *plannerApi) plan(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return api.summary(ctx, http.StatusOK, sess.Plan)
}

func (api *plannerApi) add(ctx echo.Context) error {
	var data PlanRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PlanRequest")
	}
	sess, err := updateSession(ctx, api.store, func(s *session.Session) error {
		plan, err := api.svc.Add(ctx.Request().Context(), s.Plan, data.ID)
		if err != nil {
			return err
		}
		s.Plan = plan
		return nil
	})
	if err != nil {
		return err
	}
	return api.summary(ctx, http.StatusCreated, sess.Plan)
}

func (api *plannerApi) remove(ctx echo.Context) error {
	id := ctx.Param("id")
	sess, err := updateSession(ctx, api.store, func(s *session.Session) error {
		plan, err := planner.Remove(s.Plan, id)
		if err != nil {
			return err
		}
		s.Plan = plan
		return nil
	})
	if err != nil {
		return err
	}
	return api.summary(ctx, http.StatusOK, sess.Plan)
}
