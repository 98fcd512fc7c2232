package notifysvc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/mocnepiwko/uni-diary/core"
)

const telegramChannel = "telegram"

var ErrNotConfigured = errors.New("telegram bot token is not set")

// TelegramNotifier posts HTML messages through the Bot API.
// Notifications go to the configured chat, either a numeric id or a public "@channel" name.
type TelegramNotifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	channel string
	logger  core.Logger
}

var (
	_ core.Notifier = (*TelegramNotifier)(nil)
	_ core.Replier  = (*TelegramNotifier)(nil)
)

// NewTelegramNotifier builds a notifier for conf without calling the Bot API,
// so an unreachable API at startup only fails the sends made while it is down.
func NewTelegramNotifier(conf core.TelegramConfig, logger core.Logger) (*TelegramNotifier, error) {
	if conf.Token == "" {
		return nil, ErrNotConfigured
	}
	endpoint := conf.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot := &tgbotapi.BotAPI{
		Token:  conf.Token,
		Client: &http.Client{Timeout: conf.Timeout},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(endpoint)

	n := &TelegramNotifier{bot: bot, logger: logger}
	chat := strings.TrimSpace(conf.ChatID)
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		n.chatID = id
	} else if strings.HasPrefix(chat, "@") {
		n.channel = chat
	} else if chat != "" {
		return nil, errors.Errorf("invalid telegram chat id %q", chat)
	}
	return n, nil
}

// Send posts text to the configured chat. Failures are logged.
func (n TelegramNotifier) Send(ctx context.Context, text string) {
	var msg tgbotapi.MessageConfig
	switch {
	case n.chatID != 0:
		msg = tgbotapi.NewMessage(n.chatID, text)
	case n.channel != "":
		msg = tgbotapi.NewMessageToChannel(n.channel, text)
	default:
		record(telegramChannel, statusSkipped)
		n.logger.Warn("telegram chat id not configured, message not sent")
		return
	}
	n.send(ctx, msg)
}

// Reply posts text to chatID. Failures are logged.
func (n TelegramNotifier) Reply(ctx context.Context, chatID int64, text string) {
	n.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (n TelegramNotifier) send(ctx context.Context, msg tgbotapi.MessageConfig) {
	if err := ctx.Err(); err != nil {
		record(telegramChannel, statusFailed)
		n.logger.Error(fmt.Sprintf("sending telegram message: %v", err), err)
		return
	}

	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		record(telegramChannel, statusFailed)
		n.logger.Error(fmt.Sprintf("sending telegram message: %v", err), err)
		return
	}
	record(telegramChannel, statusSent)
}
