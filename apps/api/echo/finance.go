package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core/finance"
)

type (
	financeApi struct {
		svc *finance.Service
	}

	PaymentsResponse struct {
		Payments   []finance.Payment `json:"payments"`
		Processing bool              `json:"processing"`
	}
)

func registerFinanceAPI(g *echo.Group, jwt, sess echo.MiddlewareFunc, svc *finance.Service) {
	api := financeApi{svc: svc}

	fg := g.Group("/finance", jwt, sess)
	fg.GET("/account", api.account)
	fg.GET("/aid", api.aid)
	fg.GET("/payments", api.payments)
	fg.POST("/payments", api.pay)
}

// Handlers

func (api *financeApi) account(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	acct, err := api.svc.Account(ctx.Request().Context(), sess.ID)
	if err != nil {
		return errors.Wrap(err, "getting account")
	}
	return ctx.JSON(http.StatusOK, acct)
}

func (api *financeApi) aid(ctx echo.Context) error {
	sum, err := api.svc.Aid(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting financial aid")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *financeApi) payments(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	payments, err := api.svc.Payments(ctx.Request().Context(), sess.ID)
	if err != nil {
		return err
	}
	if payments == nil {
		payments = []finance.Payment{}
	}
	return ctx.JSON(http.StatusOK, PaymentsResponse{
		Payments:   payments,
		Processing: finance.Processing(payments),
	})
}

// pay accepts the payment; it completes in the background and shows up in the payments list.
func (api *financeApi) pay(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data finance.PaymentRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PaymentRequest")
	}
	p, _, err := api.svc.Pay(ctx.Request().Context(), sess.ID, sessionUser(sess), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusAccepted, p)
}
