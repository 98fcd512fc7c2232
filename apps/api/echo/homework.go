package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/core/user"
)

type homeworkApi struct {
	usrSvc   *user.Service
	svc      *homework.Service
	validate *validator.Validate
	logger   core.Logger
}

func registerHomeworkAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	usrSvc *user.Service,
	svc *homework.Service,
	validate *validator.Validate,
	logger core.Logger,
) {
	api := homeworkApi{
		usrSvc:   usrSvc,
		svc:      svc,
		validate: validate,
		logger:   logger,
	}

	hg := g.Group("/homeworks", jwt)
	hg.GET("", api.query)
	hg.POST("", api.create, roleMiddleware(usrSvc, user.RoleTeacher, user.RoleAdmin))
	hg.DELETE("/:id", api.destroy, roleMiddleware(usrSvc, user.RoleTeacher, user.RoleAdmin))
}

// Handlers

// query lists the homework of `?subject=`, soonest deadline first. A store failure yields an empty list.
func (api *homeworkApi) query(ctx echo.Context) error {
	var filter HomeworkQuery
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to HomeworkQuery")
	}
	if err := filter.Validate(api.validate); err != nil {
		return err
	}

	hws, err := api.svc.QueryBySubject(ctx.Request().Context(), filter.Subject)
	if err != nil {
		api.logger.Error(fmt.Sprintf("querying homeworks: %v", err), err)
		hws = nil
	}
	if hws == nil {
		hws = []homework.Homework{}
	}
	return ctx.JSON(http.StatusOK, hws)
}

// create records the homework on behalf of the session user.
func (api *homeworkApi) create(ctx echo.Context) error {
	var data homework.NewHomework
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHomework")
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	hw, err := api.svc.Create(ctx.Request().Context(), data, usr.Name)
	if err != nil {
		return errors.Wrap(err, "creating homework")
	}
	return ctx.JSON(http.StatusCreated, hw)
}

func (api *homeworkApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type HomeworkQuery struct {
	Subject string `query:"subject" json:"subject" validate:"notblank"`
}

func (q *HomeworkQuery) Validate(validate *validator.Validate) error {
	q.Subject = core.CleanString(q.Subject)
	return validate.Struct(q)
}
