package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/lesson"
	"github.com/edutrack/edutrack/core/profile"
)

type lessonApi struct {
	svc        *lesson.Service
	profileSvc *profile.Service
}

func registerLessonAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := lessonApi{
		svc:        deps.LessonSvc,
		profileSvc: deps.ProfileSvc,
	}

	lg := g.Group("/lessons", jwt)
	lg.GET("", api.query)
	lg.POST("", api.create, adminMiddleware())
	lg.GET("/:id", api.retrieve)
	lg.DELETE("/:id", api.destroy, adminMiddleware())
}

// Handlers

func (api *lessonApi) query(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	lessons, err := api.svc.QueryMonth(ctx.Request().Context(), caller, ctx.QueryParam("month"))
	if err != nil {
		return err
	}
	if lessons == nil {
		lessons = []lesson.Lesson{}
	}
	return ctx.JSON(http.StatusOK, LessonListResponse{Lessons: lessons})
}

func (api *lessonApi) create(ctx echo.Context) error {
	var data lesson.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	l, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return insertFailed(err)
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *lessonApi) retrieve(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	l, err := api.svc.GetOwned(ctx.Request().Context(), caller, ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case lesson.ErrNotFound:
			return errNotFound
		case core.ErrPermissionDenied:
			return errForbidden
		}
		return errors.Wrap(err, "finding lesson by ID")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errNotFound
		}
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type LessonListResponse struct {
	Lessons []lesson.Lesson `json:"lessons"`
}
