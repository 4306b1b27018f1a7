package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/assistant"
	"github.com/trezcool/gateway/core/dashboard"
	"github.com/trezcool/gateway/core/deferred"
	"github.com/trezcool/gateway/core/finance"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/core/nav"
	"github.com/trezcool/gateway/core/planner"
	"github.com/trezcool/gateway/core/schedule"
	"github.com/trezcool/gateway/core/session"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "session not authenticated")
	errHttpNotFound  = echo.NewHTTPError(http.StatusNotFound, "not found")
	errInvalidID     = echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	errMissingUpload = echo.NewHTTPError(http.StatusBadRequest, "file is required")

	// domain errors reported to the client as-is
	errorCodes = map[error]int{
		session.ErrNotFound:               http.StatusUnauthorized,
		nav.ErrUnknownView:                http.StatusBadRequest,
		assistant.ErrEmptyQuestion:        http.StatusBadRequest,
		grade.ErrCourseNotFound:           http.StatusNotFound,
		planner.ErrNotFound:               http.StatusNotFound,
		planner.ErrNotPlanned:             http.StatusNotFound,
		schedule.ErrHoldNotFound:          http.StatusNotFound,
		schedule.ErrEnrollmentNotFound:    http.StatusNotFound,
		dashboard.ErrAnnouncementNotFound: http.StatusNotFound,
		dashboard.ErrTodoNotFound:         http.StatusNotFound,
		planner.ErrCourseFull:             http.StatusConflict,
		planner.ErrAlreadyPlanned:         http.StatusConflict,
		finance.ErrPaymentInProgress:      http.StatusConflict,
		assistant.ErrReplyPending:         http.StatusConflict,
		deferred.ErrInFlight:              http.StatusConflict,
		session.ErrConflict:               http.StatusConflict,
	}
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		origErr := errors.Cause(err)
		if c, ok := errorCodes[origErr]; ok {
			code = c
			message = origErr.Error()
		} else {
			switch origErr := origErr.(type) {
			case *echo.HTTPError:
				if origErr == middleware.ErrJWTMissing {
					code = http.StatusUnauthorized
					message = origErr.Message
					break
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			case *core.ValidationError:
				if origErr.Fields != nil {
					message = origErr.FieldMap()
				} else {
					message = origErr.Error()
				}
				code = http.StatusBadRequest
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				var args []interface{}
				if sess, sErr := getContextSession(ctx); sErr == nil {
					if usr := sessionUser(sess); usr != nil {
						args = append(args, usr)
					}
				}
				logger.Error(msg, append([]interface{}{errors.Wrap(err, msg)}, args...)...)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
