// Package reminder warns the group chat about lessons that are about to start.
//
// A check is expected once per minute. It looks for lessons whose day and start time are
// byte-identical to the schedule wall time `lookahead` from now. Missed minutes are not caught up
// and running twice in the same minute sends the reminders twice.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/lesson"
)

var checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "uni_diary_reminder_checks_total",
	Help: "Reminder checks by outcome.",
}, []string{"status"})

// Lessons is the part of the schedule a check reads.
type Lessons interface {
	QueryStartingAt(ctx context.Context, day, hhmm string) ([]lesson.Lesson, error)
}

// Result describes one check.
type Result struct {
	Day  string `json:"day"`
	Time string `json:"time"`
	Sent int    `json:"sent"`
}

type Checker struct {
	lessons   Lessons
	notifier  core.Notifier
	clock     core.Clock
	lookahead time.Duration
	logger    core.Logger
}

func NewChecker(lessons Lessons, notifier core.Notifier, clock core.Clock, lookahead time.Duration, logger core.Logger) *Checker {
	return &Checker{
		lessons:   lessons,
		notifier:  notifier,
		clock:     clock,
		lookahead: lookahead,
		logger:    logger,
	}
}

// Target returns the day name & HH:MM a lesson must start at to be reminded of at now.
func (c *Checker) Target(now time.Time) (day, hhmm string) {
	target := c.clock.Local(now).Add(c.lookahead)
	return core.Weekday(target), core.HHMM(target)
}

// Run checks the current minute.
func (c *Checker) Run(ctx context.Context) (Result, error) {
	return c.Check(ctx, c.clock.Current())
}

// Check sends one reminder per lesson starting `lookahead` after now.
// A lesson whose message cannot be rendered is logged and skipped; the others are still sent.
func (c *Checker) Check(ctx context.Context, now time.Time) (Result, error) {
	day, hhmm := c.Target(now)
	res := Result{Day: day, Time: hhmm}
	c.logger.Info(fmt.Sprintf("checking reminders for: %s at %s", day, hhmm))

	lessons, err := c.lessons.QueryStartingAt(ctx, day, hhmm)
	if err != nil {
		checksTotal.WithLabelValues("error").Inc()
		return res, errors.Wrap(err, "querying lessons starting at target")
	}

	for _, l := range lessons {
		msg, err := lesson.ReminderMessage(l, c.lookahead)
		if err != nil {
			c.logger.Error(fmt.Sprintf("rendering reminder for lesson %s: %v", l.ID, err), err)
			continue
		}
		c.notifier.Send(ctx, msg)
		res.Sent++
	}
	checksTotal.WithLabelValues("ok").Inc()
	return res, nil
}
