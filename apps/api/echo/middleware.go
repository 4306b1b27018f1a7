package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core/session"
	"github.com/trezcool/gateway/core/user"
)

// sessionMiddleware loads the session named by the token subject. It must run after the JWT middleware.
func sessionMiddleware(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			sess, err := store.Get(ctx.Request().Context(), claims.Subject)
			if err != nil {
				return errors.Wrap(err, "getting session")
			}
			ctx.Set(sessionContextKey, sess)
			return next(ctx)
		}
	}
}

// updateSession applies fn to the context session and saves it.
func updateSession(ctx echo.Context, store session.Store, fn func(s *session.Session) error) (session.Session, error) {
	sess, err := getContextSession(ctx)
	if err != nil {
		return session.Session{}, err
	}
	sess, err = store.Update(ctx.Request().Context(), sess.ID, fn)
	if err != nil {
		return session.Session{}, err
	}
	ctx.Set(sessionContextKey, sess)
	return sess, nil
}

// sessionUser returns the signed in user, nil when signed out.
func sessionUser(sess session.Session) *user.User {
	if usr, ok := sess.User(); ok {
		return &usr
	}
	return nil
}
