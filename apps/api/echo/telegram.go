package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/bot"
)

type telegramApi struct {
	responder *bot.Responder
	logger    core.Logger
}

func registerTelegramAPI(g *echo.Group, responder *bot.Responder, logger core.Logger) {
	api := telegramApi{responder: responder, logger: logger}
	g.POST("/telegram", api.webhook)
}

// Handlers

// webhook receives the bot updates. Telegram redelivers anything not acknowledged with a 200,
// so every update is acknowledged, malformed ones included.
func (api *telegramApi) webhook(ctx echo.Context) error {
	ack := echo.Map{"ok": true}

	var upd tgbotapi.Update
	if err := json.NewDecoder(ctx.Request().Body).Decode(&upd); err != nil {
		api.logger.Warn(fmt.Sprintf("decoding telegram update: %v", err))
		return ctx.JSON(http.StatusOK, ack)
	}
	if upd.Message == nil || upd.Message.Chat == nil || upd.Message.Text == "" {
		return ctx.JSON(http.StatusOK, ack)
	}

	api.responder.Handle(ctx.Request().Context(), bot.Update{
		ChatID: upd.Message.Chat.ID,
		Text:   upd.Message.Text,
	})
	return ctx.JSON(http.StatusOK, ack)
}
