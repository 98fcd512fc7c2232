package main

import (
	"context"
	"log"
	"os"

	"github.com/mocnepiwko/uni-diary/apps/shared"
	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/reminder"
	"github.com/mocnepiwko/uni-diary/core/user"
	"github.com/mocnepiwko/uni-diary/services/logger"
	"github.com/mocnepiwko/uni-diary/services/notify"
)

func main() {
	os.Exit(start())
}

func start() int {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	clock, err := core.NewClock(conf.Schedule)
	if err != nil {
		logger.Error("setting up clock: "+err.Error(), err)
		return 1
	}

	// set up DB; migrations are left to the `migrate` command
	repos, err := shared.OpenRepositories(context.Background(), conf, logger, false /* migrate */)
	if err != nil {
		logger.Error("setting up database: "+err.Error(), err)
		return 1
	}
	defer func() { _ = repos.Close() }()

	validate, _ := shared.NewValidator()
	notifier, _ := notifysvc.New(conf, logger)
	lsnSvc := lesson.NewService(repos.Lessons, notifier, validate, logger)

	// start CLI
	cli := commandLine{
		db:      repos.SQL,
		usrSvc:  user.NewService(repos.Users, validate),
		checker: reminder.NewChecker(lsnSvc, notifier, clock, conf.Schedule.Lookahead, logger),
		out:     os.Stdout,
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("error: "+err.Error(), err)
		}
		return 1
	}
	return 0
}
