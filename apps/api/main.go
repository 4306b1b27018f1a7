package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	echoapi "github.com/trezcool/gateway/apps/api/echo"
	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/assistant"
	"github.com/trezcool/gateway/core/dashboard"
	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/finance"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/core/nav"
	"github.com/trezcool/gateway/core/planner"
	"github.com/trezcool/gateway/core/schedule"
	"github.com/trezcool/gateway/core/session"
	"github.com/trezcool/gateway/core/user"
	emailsvc "github.com/trezcool/gateway/services/email"
	logsvc "github.com/trezcool/gateway/services/logger"
	"github.com/trezcool/gateway/storage/inmem"
	"github.com/trezcool/gateway/storage/redisstore"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up data
	db, err := openDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading portal data: %v", err), err)
	}
	degreeRepo := inmem.NewDegreeRepository(db)

	sessions, closeSessions, err := newSessionStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up session store: %v", err), err)
	}
	defer func() {
		if err = closeSessions(); err != nil {
			logger.Error(fmt.Sprintf("closing session store: %v", err), err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator, conf.Portal.EmailDomains)
	grade.InitValidators(validate, translator)
	finance.InitValidators(validate, translator)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	degreeSvc := degree.NewService(degreeRepo)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("sessionStore").Set(conf.Session.Store)
	if st, ok := sessions.(*inmem.SessionStore); ok {
		expvar.Publish("sessions", expvar.Func(func() interface{} { return st.Len() }))
	}

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			MailSvc:      mailSvc,
			Sessions:     sessions,
			Nav:          nav.NewMachine(user.NewSimulatedProvider(validate, translator)),
			DegreeSvc:    degreeSvc,
			PlannerSvc:   planner.NewService(inmem.NewCatalog(db)),
			ScheduleSvc:  schedule.NewService(inmem.NewScheduleRepository(db)),
			DashboardSvc: dashboard.NewService(inmem.NewDashboardRepository(db), degreeRepo),
			FinanceSvc: finance.NewService(
				inmem.NewFinanceRepository(db), session.NewPaymentLedger(sessions), validate, translator, mailSvc, logger, conf.Portal.PaymentDelay,
			),
			Assistant:  assistant.New(degreeSvc, conf.Portal.AssistantDelay),
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func openDB(conf *core.Config) (*inmem.DB, error) {
	if conf.Portal.FixturesFile != "" {
		return inmem.OpenFile(conf.Portal.FixturesFile)
	}
	return inmem.Open()
}

// newSessionStore returns the configured session store and a func releasing it.
func newSessionStore(conf *core.Config) (session.Store, func() error, error) {
	switch conf.Session.Store {
	case "redis":
		client, err := redisstore.Connect(context.Background(), conf.Session)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSessionStore(client, conf.Session.TTL), client.Close, nil
	default:
		return inmem.NewSessionStore(conf.Session.TTL), func() error { return nil }, nil
	}
}
