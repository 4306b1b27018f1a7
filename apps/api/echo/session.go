package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/nav"
	"github.com/trezcool/gateway/core/session"
	"github.com/trezcool/gateway/core/user"
)

type (
	sessionApi struct {
		conf    *core.Config
		store   session.Store
		machine *nav.Machine
	}

	// SessionResponse is the navigation state of the session as rendered by the client.
	SessionResponse struct {
		ID        string     `json:"id"`
		View      nav.View   `json:"view"`
		Previous  nav.View   `json:"previous,omitempty"`
		BackText  string     `json:"back_text"`
		SignedIn  bool       `json:"signed_in"`
		User      *user.User `json:"user,omitempty"`
		CreatedAt time.Time  `json:"created_at"`
	}

	NewSessionResponse struct {
		Token   string          `json:"token"`
		Session SessionResponse `json:"session"`
	}

	ViewRequest struct {
		View string `json:"view"`
	}
)

func newSessionResponse(sess session.Session) SessionResponse {
	return SessionResponse{
		ID:        sess.ID,
		View:      sess.Nav.Current,
		Previous:  sess.Nav.Previous,
		BackText:  sess.Nav.BackText(),
		SignedIn:  sess.Nav.SignedIn(),
		User:      sessionUser(sess),
		CreatedAt: sess.CreatedAt,
	}
}

func registerSessionAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	sess echo.MiddlewareFunc,
	conf *core.Config,
	store session.Store,
	machine *nav.Machine,
) {
	api := sessionApi{
		conf:    conf,
		store:   store,
		machine: machine,
	}

	// un-authed endpoints
	g.POST("/sessions", api.create)

	// authed endpoints
	sg := g.Group("/session", jwt, sess)
	sg.GET("", api.retrieve)
	sg.DELETE("", api.destroy)
	sg.POST("/navigate", api.navigate)
	sg.POST("/show", api.show)
	sg.POST("/back", api.back)
	sg.POST("/signin", api.signIn)
	sg.POST("/register", api.register)
	sg.POST("/signout", api.signOut)
}

// Handlers

func (api *sessionApi) create(ctx echo.Context) error {
	sess := session.New()
	if err := api.store.Create(ctx.Request().Context(), sess); err != nil {
		return errors.Wrap(err, "creating session")
	}
	token, err := GenerateToken(api.conf, newSessionClaims(api.conf, sess.ID))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, NewSessionResponse{Token: token, Session: newSessionResponse(sess)})
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newSessionResponse(sess))
}

func (api *sessionApi) destroy(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	if err = api.store.Delete(ctx.Request().Context(), sess.ID); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) bindView(ctx echo.Context) (nav.View, error) {
	var data ViewRequest
	if err := ctx.Bind(&data); err != nil {
		return "", errors.Wrap(err, "binding to ViewRequest")
	}
	return nav.ParseView(data.View)
}

func (api *sessionApi) transition(ctx echo.Context, fn func(s nav.State) (nav.State, error)) error {
	sess, err := updateSession(ctx, api.store, func(s *session.Session) error {
		next, err := fn(s.Nav)
		if err != nil {
			return err
		}
		s.Nav = next
		return nil
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newSessionResponse(sess))
}

func (api *sessionApi) navigate(ctx echo.Context) error {
	view, err := api.bindView(ctx)
	if err != nil {
		return err
	}
	return api.transition(ctx, func(s nav.State) (nav.State, error) { return s.NavigateTo(view), nil })
}

func (api *sessionApi) show(ctx echo.Context) error {
	view, err := api.bindView(ctx)
	if err != nil {
		return err
	}
	return api.transition(ctx, func(s nav.State) (nav.State, error) { return s.Show(view), nil })
}

func (api *sessionApi) back(ctx echo.Context) error {
	return api.transition(ctx, func(s nav.State) (nav.State, error) { return s.NavigateBack(), nil })
}

func (api *sessionApi) signIn(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	return api.transition(ctx, func(s nav.State) (nav.State, error) {
		return api.machine.SignIn(ctx.Request().Context(), s, data)
	})
}

func (api *sessionApi) register(ctx echo.Context) error {
	var data user.Profile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Profile")
	}
	return api.transition(ctx, func(s nav.State) (nav.State, error) {
		return api.machine.Register(ctx.Request().Context(), s, data)
	})
}

func (api *sessionApi) signOut(ctx echo.Context) error {
	return api.transition(ctx, func(s nav.State) (nav.State, error) { return api.machine.SignOut(s), nil })
}
