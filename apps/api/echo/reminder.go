package echoapi

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/reminder"
)

type reminderApi struct {
	secret  []byte
	checker *reminder.Checker
	logger  core.Logger
}

func registerReminderAPI(g *echo.Group, secret string, checker *reminder.Checker, logger core.Logger) {
	api := reminderApi{
		secret:  []byte(secret),
		checker: checker,
		logger:  logger,
	}
	g.GET("/reminders", api.check)
}

// Handlers

// check runs one reminder check. It is meant to be hit once a minute by an external scheduler
// holding the shared secret in `?key=`.
func (api *reminderApi) check(ctx echo.Context) error {
	key := []byte(ctx.QueryParam("key"))
	if len(api.secret) == 0 || subtle.ConstantTimeCompare(key, api.secret) != 1 {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	res, err := api.checker.Run(ctx.Request().Context())
	if err != nil {
		api.logger.Error(fmt.Sprintf("reminder check: %v", err), err)
		return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Error"})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"ok": true, "sent": res.Sent})
}
