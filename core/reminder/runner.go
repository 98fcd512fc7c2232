package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/mocnepiwko/uni-diary/core"
)

// Runner triggers checks in-process on a cron schedule, for deployments without an external trigger.
type Runner struct {
	cron    *cron.Cron
	checker *Checker
	logger  core.Logger
	timeout time.Duration
}

func NewRunner(checker *Checker, logger core.Logger) *Runner {
	return &Runner{
		cron:    cron.New(),
		checker: checker,
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

// Start schedules the check on spec (eg. "* * * * *") and starts the cron in its own goroutine.
func (r *Runner) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return errors.Wrap(err, fmt.Sprintf("scheduling reminder check %q", spec))
	}
	r.cron.Start()
	return nil
}

// Stop stops scheduling and returns a context done once the running check, if any, has returned.
func (r *Runner) Stop() context.Context {
	return r.cron.Stop()
}

func (r *Runner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	res, err := r.checker.Run(ctx)
	if err != nil {
		r.logger.Error(fmt.Sprintf("reminder check: %v", err), err)
		return
	}
	if res.Sent > 0 {
		r.logger.Info(fmt.Sprintf("reminder check sent %d reminders for %s %s", res.Sent, res.Day, res.Time))
	}
}
