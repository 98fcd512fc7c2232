package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/user"
)

type lessonApi struct {
	svc    *lesson.Service
	logger core.Logger
}

func registerLessonAPI(g *echo.Group, jwt echo.MiddlewareFunc, usrSvc *user.Service, svc *lesson.Service, logger core.Logger) {
	api := lessonApi{svc: svc, logger: logger}

	lg := g.Group("/lessons", jwt)
	lg.GET("", api.query)
	lg.POST("", api.create, roleMiddleware(usrSvc, user.RoleAdmin))
	lg.DELETE("/:id", api.destroy, roleMiddleware(usrSvc, user.RoleAdmin))
}

// Handlers

// query lists the week, or a single day with `?day=`. A store failure yields an empty schedule.
func (api *lessonApi) query(ctx echo.Context) error {
	var filter lesson.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []lesson.Lesson{})
	}
	filter.Day = core.CleanString(filter.Day)

	var (
		lessons []lesson.Lesson
		err     error
	)
	if filter.Day == "" {
		lessons, err = api.svc.QueryAll(ctx.Request().Context())
	} else {
		lessons, err = api.svc.QueryByDay(ctx.Request().Context(), filter.Day)
	}
	if err != nil {
		api.logger.Error(fmt.Sprintf("querying lessons: %v", err), err)
		lessons = nil
	}
	if lessons == nil {
		lessons = []lesson.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *lessonApi) create(ctx echo.Context) error {
	var data lesson.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}

	l, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *lessonApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}
