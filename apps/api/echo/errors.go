package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

// apiError is the closed error taxonomy rendered to API callers as
// {"error":{"code","message","fields"?}}.
type apiError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`

	cause error
}

func (e *apiError) Error() string { return e.Message }

type errorResponse struct {
	Error *apiError `json:"error"`
}

var (
	errUnauthorized = &apiError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "authentication required"}
	errForbidden    = &apiError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "permission denied"}
	errNotFound     = &apiError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "not found"}

	errRefreshExpired = &apiError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: "refresh has expired"}
)

func insertFailed(err error) error {
	return &apiError{Status: http.StatusInternalServerError, Code: "INSERT_FAILED", Message: "the record could not be saved", cause: err}
}

func updateFailed(err error) error {
	return &apiError{Status: http.StatusInternalServerError, Code: "UPDATE_FAILED", Message: "the record could not be updated", cause: err}
}

// mapStudentErr translates the student service's authorization sentinels.
// The not-found check wins over the ownership check: an absent target is
// NOT_FOUND even for callers that would not have owned it.
func mapStudentErr(err error) error {
	switch errors.Cause(err) {
	case student.ErrNotFound:
		return errNotFound
	case core.ErrPermissionDenied:
		return errForbidden
	}
	return err
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var resp *apiError

		switch origErr := errors.Cause(err).(type) {
		case *apiError:
			resp = origErr
			if resp.Status >= http.StatusInternalServerError && resp.cause != nil {
				logger.Error(resp.Message, errors.Wrap(resp.cause, resp.Message))
			}
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				resp = errUnauthorized
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			if origErr.Code == http.StatusUnauthorized {
				resp = errUnauthorized
				break
			}
			resp = &apiError{
				Status:  origErr.Code,
				Code:    codeForStatus(origErr.Code),
				Message: messageOf(origErr.Message),
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			resp = &apiError{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "invalid input", Fields: fldErrs}
		case *core.ValidationError:
			resp = &apiError{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: "invalid input"}
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				resp.Fields = fldErrs
			} else if msg := origErr.Error(); msg != "" {
				resp.Message = msg
			}
		default: // any other error is a server error
			resp = &apiError{
				Status:  http.StatusInternalServerError,
				Code:    "SERVER_ERROR",
				Message: http.StatusText(http.StatusInternalServerError),
			}

			var prof profile.Profile
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				prof.ID = claims.Subject
				prof.Name = claims.Name
				prof.Email = claims.Email
			}
			logger.Error(resp.Message, errors.Wrap(err, resp.Message), prof)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(resp.Status)
			} else {
				err = ctx.JSON(resp.Status, errorResponse{Error: resp})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusNotFound:
		return "NOT_FOUND"
	}
	if status >= http.StatusInternalServerError {
		return "SERVER_ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

func messageOf(msg interface{}) string {
	if s, ok := msg.(string); ok {
		return s
	}
	if err, ok := msg.(error); ok {
		return err.Error()
	}
	return http.StatusText(http.StatusInternalServerError)
}
