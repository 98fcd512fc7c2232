package notifysvc

import (
	"context"
	"fmt"

	"github.com/mocnepiwko/uni-diary/core"
)

const consoleChannel = "console"

// ConsoleNotifier stands in for the bot when it is not configured: messages are logged, never delivered.
type ConsoleNotifier struct {
	logger        core.Logger
	disableOutput bool
}

var (
	_ core.Notifier = (*ConsoleNotifier)(nil)
	_ core.Replier  = (*ConsoleNotifier)(nil)
)

func NewConsoleNotifier(logger core.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

// NewConsoleNotifierMock is a silent ConsoleNotifier.
func NewConsoleNotifierMock(logger core.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger, disableOutput: true}
}

func (n ConsoleNotifier) Send(_ context.Context, text string) {
	record(consoleChannel, statusSkipped)
	if !n.disableOutput {
		n.logger.Warn(fmt.Sprintf("telegram bot not configured, message not sent:\n%s", text))
	}
}

func (n ConsoleNotifier) Reply(_ context.Context, chatID int64, text string) {
	record(consoleChannel, statusSkipped)
	if !n.disableOutput {
		n.logger.Warn(fmt.Sprintf("telegram bot not configured, reply to %d not sent:\n%s", chatID, text))
	}
}
