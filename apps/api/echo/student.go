package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/feedback"
	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

type studentApi struct {
	svc           *student.Service
	profileSvc    *profile.Service
	attendanceSvc *attendance.Service
	gradeSvc      *grade.Service
	feedbackSvc   *feedback.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := studentApi{
		svc:           deps.StudentSvc,
		profileSvc:    deps.ProfileSvc,
		attendanceSvc: deps.AttendanceSvc,
		gradeSvc:      deps.GradeSvc,
		feedbackSvc:   deps.FeedbackSvc,
	}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create, adminMiddleware())
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update, adminMiddleware())

	// per-student record histories, most recent first
	sg.GET("/:id/attendances", api.queryAttendances)
	sg.GET("/:id/grades", api.queryGrades)
	sg.GET("/:id/feedbacks", api.queryFeedbacks)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	students, err := api.svc.QueryForProfile(ctx.Request().Context(), caller)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return insertFailed(err)
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	s, err := api.svc.GetOwned(ctx.Request().Context(), caller, ctx.Param("id"))
	if err != nil {
		return mapStudentErr(err)
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	orig, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return mapStudentErr(err)
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(orig, validate); err != nil {
		return err
	}

	s, err := api.svc.Update(ctx.Request().Context(), orig, data)
	if err != nil {
		return updateFailed(err)
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) queryAttendances(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	atts, err := api.attendanceSvc.QueryByStudent(ctx.Request().Context(), caller, ctx.Param("id"))
	if err != nil {
		return mapStudentErr(err)
	}
	if atts == nil {
		atts = []attendance.Attendance{}
	}
	return ctx.JSON(http.StatusOK, atts)
}

func (api *studentApi) queryGrades(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	grades, err := api.gradeSvc.QueryByStudent(ctx.Request().Context(), caller, ctx.Param("id"))
	if err != nil {
		return mapStudentErr(err)
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *studentApi) queryFeedbacks(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	fbs, err := api.feedbackSvc.QueryByStudent(ctx.Request().Context(), caller, ctx.Param("id"))
	if err != nil {
		return mapStudentErr(err)
	}
	if fbs == nil {
		fbs = []feedback.Feedback{}
	}
	return ctx.JSON(http.StatusOK, fbs)
}
