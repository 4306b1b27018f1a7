package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/assistant"
	"github.com/trezcool/gateway/core/dashboard"
	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/finance"
	"github.com/trezcool/gateway/core/nav"
	"github.com/trezcool/gateway/core/planner"
	"github.com/trezcool/gateway/core/schedule"
	"github.com/trezcool/gateway/core/session"
)

type (
	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		MailSvc      core.EmailService
		Sessions     session.Store
		Nav          *nav.Machine
		DegreeSvc    *degree.Service
		PlannerSvc   *planner.Service
		ScheduleSvc  *schedule.Service
		DashboardSvc *dashboard.Service
		FinanceSvc   *finance.Service
		Assistant    *assistant.Assistant
		Validate     *validator.Validate
		Translator   ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		ServerDeps: deps,
		app:        echo.New(),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.Conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.Conf.Debug || s.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{s.Conf.FrontendBaseURL},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.signalShutdown)
	s.app.Debug = s.Conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(s.Conf))
	sess := sessionMiddleware(s.Sessions)

	registerSessionAPI(v1, jwt, sess, s.Conf, s.Sessions, s.Nav)
	registerGPAAPI(v1, jwt, sess, s.Sessions, s.Validate, s.Translator)
	registerDegreeAPI(v1, jwt, sess, s.DegreeSvc, s.MailSvc)
	registerPlannerAPI(v1, jwt, sess, s.Sessions, s.PlannerSvc)
	registerScheduleAPI(v1, jwt, s.ScheduleSvc)
	registerGatewayAPI(v1, jwt, sess, s.Sessions, s.DashboardSvc)
	registerFinanceAPI(v1, jwt, sess, s.FinanceSvc)
	registerAssistantAPI(v1, jwt, sess, s.Sessions, s.Assistant, s.Logger)
}

func (s *server) Start() {
	if err := s.app.Start(s.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.Conf.AppName+" API!")
}
