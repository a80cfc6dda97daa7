package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/profile"
)

type gradeApi struct {
	svc        *grade.Service
	profileSvc *profile.Service
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := gradeApi{
		svc:        deps.GradeSvc,
		profileSvc: deps.ProfileSvc,
	}

	g.POST("/grades", api.record, jwt)
}

func (api *gradeApi) record(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	g, err := api.svc.Record(ctx.Request().Context(), caller, data)
	if err != nil {
		return mapStudentErr(err)
	}
	return ctx.JSON(http.StatusCreated, g)
}
