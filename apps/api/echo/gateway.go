package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core/dashboard"
	"github.com/trezcool/gateway/core/session"
)

type gatewayApi struct {
	store session.Store
	svc   *dashboard.Service
}

func registerGatewayAPI(g *echo.Group, jwt, sess echo.MiddlewareFunc, store session.Store, svc *dashboard.Service) {
	api := gatewayApi{store: store, svc: svc}

	gg := g.Group("/gateway", jwt, sess)
	gg.GET("", api.overview)
	gg.GET("/announcements/:id", api.announcement)
	gg.POST("/todos/:id/dismiss", api.dismiss)
}

func (api *gatewayApi) respond(ctx echo.Context, sess session.Session) error {
	ov, err := api.svc.Overview(ctx.Request().Context(), sessionUser(sess), sess.Dismissed)
	if err != nil {
		return errors.Wrap(err, "getting overview")
	}
	return ctx.JSON(http.StatusOK, ov)
}

// Handlers

func (api *gatewayApi) overview(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return api.respond(ctx, sess)
}

func (api *gatewayApi) announcement(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	ann, err := api.svc.Announcement(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *gatewayApi) dismiss(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	sess, err := updateSession(ctx, api.store, func(s *session.Session) error {
		dismissed, err := api.svc.Dismiss(ctx.Request().Context(), s.Dismissed, id)
		if err != nil {
			return err
		}
		s.Dismissed = dismissed
		return nil
	})
	if err != nil {
		return err
	}
	return api.respond(ctx, sess)
}
