package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/feedback"
	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/lesson"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

// shared by handlers and the error handler; set in NewServer
var (
	validate   *validator.Validate
	translator ut.Translator
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		ProfileSvc    *profile.Service
		StudentSvc    *student.Service
		AttendanceSvc *attendance.Service
		GradeSvc      *grade.Service
		LessonSvc     *lesson.Service
		FeedbackSvc   *feedback.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	appJWTConfig.SigningKey = []byte(deps.Conf.SecretKey)
	validate = deps.Validate
	translator = deps.Translator

	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerProfileAPI(v1, jwt, &s.deps)
	registerStudentAPI(v1, jwt, &s.deps)
	registerAttendanceAPI(v1, jwt, &s.deps)
	registerGradeAPI(v1, jwt, &s.deps)
	registerLessonAPI(v1, jwt, &s.deps)
	registerFeedbackAPI(v1, jwt, &s.deps)
}

func (s *server) Start() {
	s.errs <- s.app.Start(s.deps.Conf.Server.Addr())
}

func (s *server) Errors() <-chan error { return s.errs }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to EduTrack API!")
}
