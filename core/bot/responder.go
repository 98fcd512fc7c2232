// Package bot answers the commands sent to the bot in a chat.
package bot

import (
	"context"
	"fmt"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/lesson"
)

const (
	CmdID    = "/id"
	CmdToday = "/today"

	serverErrorReply = "⚠️ Ошибка сервера, попробуйте позже"
)

// Update is the part of an inbound chat message the responder reads.
type Update struct {
	ChatID int64
	Text   string
}

// Schedule is the part of the lesson service the responder reads.
type Schedule interface {
	QueryByDay(ctx context.Context, day string) ([]lesson.Lesson, error)
}

type Responder struct {
	schedule Schedule
	replier  core.Replier
	clock    core.Clock
	logger   core.Logger
}

func NewResponder(schedule Schedule, replier core.Replier, clock core.Clock, logger core.Logger) *Responder {
	return &Responder{
		schedule: schedule,
		replier:  replier,
		clock:    clock,
		logger:   logger,
	}
}

// Handle dispatches upd on its exact text. Anything but a known command is ignored.
func (r *Responder) Handle(ctx context.Context, upd Update) {
	switch upd.Text {
	case CmdID:
		r.replier.Reply(ctx, upd.ChatID, fmt.Sprintf("🆔 ID этого чата: <code>%d</code>", upd.ChatID))
	case CmdToday:
		r.today(ctx, upd.ChatID)
	}
}

func (r *Responder) today(ctx context.Context, chatID int64) {
	day := core.Weekday(r.clock.Today())

	lessons, err := r.schedule.QueryByDay(ctx, day)
	if err != nil {
		r.logger.Error(fmt.Sprintf("querying lessons of %s: %v", day, err), err)
		r.replier.Reply(ctx, chatID, serverErrorReply)
		return
	}

	msg, err := lesson.DayScheduleMessage(day, lessons)
	if err != nil {
		r.logger.Error(fmt.Sprintf("rendering schedule of %s: %v", day, err), err)
		r.replier.Reply(ctx, chatID, serverErrorReply)
		return
	}
	r.replier.Reply(ctx, chatID, msg)
}
