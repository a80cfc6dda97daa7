package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/edutrack/edutrack/apps/api/echo"
	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/feedback"
	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/lesson"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
	emailsvc "github.com/edutrack/edutrack/services/email"
	sendgridmail "github.com/edutrack/edutrack/services/email/sendgrid"
	logsvc "github.com/edutrack/edutrack/services/logger"
	geminitext "github.com/edutrack/edutrack/services/textgen/gemini"
	"github.com/edutrack/edutrack/storage/database"
	sqlxrepos "github.com/edutrack/edutrack/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = sendgridmail.NewService(conf)
	}

	profileRepo := sqlxrepos.NewProfileRepository(db)
	studentRepo := sqlxrepos.NewStudentRepository(db)
	attendanceRepo := sqlxrepos.NewAttendanceRepository(db)
	gradeRepo := sqlxrepos.NewGradeRepository(db)
	lessonRepo := sqlxrepos.NewLessonRepository(db)
	feedbackRepo := sqlxrepos.NewFeedbackRepository(db)

	profileSvc := profile.NewService(profileRepo)
	studentSvc := student.NewService(studentRepo)
	attendanceSvc := attendance.NewService(attendanceRepo, studentSvc)
	gradeSvc := grade.NewService(gradeRepo, studentSvc)
	lessonSvc := lesson.NewService(lessonRepo)
	feedbackSvc := feedback.NewService(
		feedbackRepo, studentSvc, attendanceRepo, gradeRepo,
		geminitext.NewService(conf), mailSvc, conf,
	)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			ProfileSvc:    profileSvc,
			StudentSvc:    studentSvc,
			AttendanceSvc: attendanceSvc,
			GradeSvc:      gradeSvc,
			LessonSvc:     lessonSvc,
			FeedbackSvc:   feedbackSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
