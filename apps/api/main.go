package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"

	"github.com/mocnepiwko/uni-diary/apps/api/echo"
	"github.com/mocnepiwko/uni-diary/apps/shared"
	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/bot"
	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/reminder"
	"github.com/mocnepiwko/uni-diary/core/user"
	"github.com/mocnepiwko/uni-diary/services/logger"
	"github.com/mocnepiwko/uni-diary/services/notify"
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
	defer logger.Close()

	clock, err := core.NewClock(conf.Schedule)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up clock: %v", err), err)
	}

	// set up DB
	repos, err := shared.OpenRepositories(context.Background(), conf, logger, true /* migrate */)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = repos.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// set up services
	validate, translator := shared.NewValidator()
	notifier, replier := notifysvc.New(conf, logger)

	usrSvc := user.NewService(repos.Users, validate)
	lsnSvc := lesson.NewService(repos.Lessons, notifier, validate, logger)
	hwSvc := homework.NewService(repos.Homeworks, notifier, validate, logger)
	checker := reminder.NewChecker(lsnSvc, notifier, clock, conf.Schedule.Lookahead, logger)
	responder := bot.NewResponder(lsnSvc, replier, clock, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("engine").Set(conf.Database.Engine)

	// =========================================================================
	// Start Reminders

	if conf.Schedule.ReminderCron != "" {
		runner := reminder.NewRunner(checker, logger)
		if err = runner.Start(conf.Schedule.ReminderCron); err != nil {
			logger.Fatal(fmt.Sprintf("starting reminders: %v", err), err)
		}
		logger.Info(fmt.Sprintf("reminders scheduled : %q", conf.Schedule.ReminderCron))
		defer func() { <-runner.Stop().Done() }()
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:        conf,
		Logger:      logger,
		Validate:    validate,
		Translator:  translator,
		UserSvc:     usrSvc,
		LessonSvc:   lsnSvc,
		HomeworkSvc: hwSvc,
		Reminder:    checker,
		Responder:   responder,
	})

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

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
