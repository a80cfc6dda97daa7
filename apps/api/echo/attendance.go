package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/profile"
)

type attendanceApi struct {
	svc        *attendance.Service
	profileSvc *profile.Service
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := attendanceApi{
		svc:        deps.AttendanceSvc,
		profileSvc: deps.ProfileSvc,
	}

	g.POST("/attendances", api.upsert, jwt)
}

// upsert records attendance for (student_id, lesson_date), replacing the
// existing row's status/memo when one exists. Both outcomes return 200 with
// the stored row.
func (api *attendanceApi) upsert(ctx echo.Context) error {
	var data attendance.UpsertAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertAttendance")
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	att, err := api.svc.Upsert(ctx.Request().Context(), caller, data)
	if err != nil {
		return mapStudentErr(err)
	}
	return ctx.JSON(http.StatusOK, att)
}
