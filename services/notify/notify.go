// Package notifysvc delivers the bot messages to the group chat.
package notifysvc

import (
	"github.com/mocnepiwko/uni-diary/core"
)

// New returns the notifier & replier for conf.
// Without a token or with a malformed chat id it falls back to the console; the Bot API itself is only reached on send.
func New(conf *core.Config, logger core.Logger) (core.Notifier, core.Replier) {
	var (
		notifier core.Notifier
		replier  core.Replier
	)

	tg, err := NewTelegramNotifier(conf.Telegram, logger)
	if err != nil {
		if err != ErrNotConfigured {
			logger.Error("telegram bot misconfigured, falling back to the console: "+err.Error(), err)
		}
		console := NewConsoleNotifier(logger)
		notifier, replier = console, console
	} else {
		notifier, replier = tg, tg
	}

	if conf.Sendgrid.APIKey != "" && conf.Sendgrid.ToEmail != "" {
		notifier = MultiNotifier{notifier, NewSendgridNotifier(conf, logger)}
	}
	return notifier, replier
}
