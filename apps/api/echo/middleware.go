package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/mocnepiwko/uni-diary/core/user"
)

// roleMiddleware only lets through session users holding one of roles.
// Roles are read from the store, so a demotion applies to live sessions.
func roleMiddleware(svc *user.Service, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return err
			}
			if usr.HasAnyRole(roles...) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
