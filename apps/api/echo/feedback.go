package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/feedback"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

type feedbackApi struct {
	svc        *feedback.Service
	profileSvc *profile.Service
}

func registerFeedbackAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := feedbackApi{
		svc:        deps.FeedbackSvc,
		profileSvc: deps.ProfileSvc,
	}

	fg := g.Group("/feedback", jwt)
	fg.POST("", api.save)
	fg.POST("/generate", api.generate)
	fg.POST("/:id/send", api.send)
}

// Handlers

func (api *feedbackApi) save(ctx echo.Context) error {
	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	fb, err := api.svc.Save(ctx.Request().Context(), caller, data)
	if err != nil {
		return mapStudentErr(err)
	}
	return ctx.JSON(http.StatusCreated, FeedbackCreatedResponse{ID: fb.ID})
}

func (api *feedbackApi) generate(ctx echo.Context) error {
	var data feedback.GenerateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	content, err := api.svc.Generate(ctx.Request().Context(), caller, data.StudentID)
	if err != nil {
		switch errors.Cause(err) {
		case student.ErrNotFound:
			return &apiError{Status: http.StatusNotFound, Code: "STUDENT_NOT_FOUND", Message: "student not found"}
		case core.ErrPermissionDenied:
			return errForbidden
		}
		return &apiError{Status: http.StatusInternalServerError, Code: "GENERATION_FAILED", Message: "feedback generation failed", cause: err}
	}
	return ctx.JSON(http.StatusOK, GeneratedFeedbackResponse{Content: content})
}

func (api *feedbackApi) send(ctx echo.Context) error {
	caller, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	if err := api.svc.Send(ctx.Request().Context(), caller, ctx.Param("id")); err != nil {
		switch errors.Cause(err) {
		case feedback.ErrNotFound:
			return &apiError{Status: http.StatusNotFound, Code: "FEEDBACK_NOT_FOUND", Message: "feedback not found"}
		case student.ErrNotFound:
			return &apiError{Status: http.StatusNotFound, Code: "STUDENT_NOT_FOUND", Message: "student not found"}
		case core.ErrPermissionDenied:
			return errForbidden
		case feedback.ErrNoParentEmail:
			return &apiError{Status: http.StatusBadRequest, Code: "NO_PARENT_EMAIL", Message: "the student record has no parent email"}
		}
		return &apiError{Status: http.StatusInternalServerError, Code: "SEND_FAILED", Message: "the feedback email could not be sent", cause: err}
	}
	return ctx.JSON(http.StatusOK, SendFeedbackResponse{OK: true})
}

type (
	FeedbackCreatedResponse struct {
		ID string `json:"id"`
	}

	GeneratedFeedbackResponse struct {
		Content string `json:"content"`
	}

	SendFeedbackResponse struct {
		OK bool `json:"ok"`
	}
)
