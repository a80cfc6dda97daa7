package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/feedback"
	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/lesson"
	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
	dummymail "github.com/edutrack/edutrack/services/email/dummy"
	logsvc "github.com/edutrack/edutrack/services/logger"
	dummytext "github.com/edutrack/edutrack/services/textgen/dummy"
	dummydb "github.com/edutrack/edutrack/storage/database/dummy"
)

var (
	conf *core.Config

	profileRepo    profile.Repository
	studentRepo    student.Repository
	attendanceRepo attendance.Repository
	gradeRepo      grade.Repository
	lessonRepo     lesson.Repository
	feedbackRepo   feedback.Repository

	profileSvc *profile.Service
	studentSvc *student.Service

	mailSvc *dummymail.Service
	textSvc *dummytext.Service

	errMissingToken = httpErr{Error: errBody{Code: "UNAUTHORIZED", Message: "authentication required"}}
	errNoPerms      = httpErr{Error: errBody{Code: "FORBIDDEN", Message: "permission denied"}}
)

func setup(t *testing.T) Server {
	conf = &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "EduTrack",
		SecretKey: "o0p^$gh1=+a7mufm0)o95m^3vyh&0s(6p3-3=2l&fm3ne$-e#t",
		DefaultFromEmail: mail.Address{
			Name:    "EduTrack",
			Address: "noreply@localhost",
		},
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	profileRepo = dummydb.NewProfileRepository(db)
	studentRepo = dummydb.NewStudentRepository(db)
	attendanceRepo = dummydb.NewAttendanceRepository(db)
	gradeRepo = dummydb.NewGradeRepository(db)
	lessonRepo = dummydb.NewLessonRepository(db)
	feedbackRepo = dummydb.NewFeedbackRepository(db)

	// set up services
	mailSvc = dummymail.NewService()
	textSvc = dummytext.NewService()

	profileSvc = profile.NewService(profileRepo)
	studentSvc = student.NewService(studentRepo)
	attendanceSvc := attendance.NewService(attendanceRepo, studentSvc)
	gradeSvc := grade.NewService(gradeRepo, studentSvc)
	lessonSvc := lesson.NewService(lessonRepo)
	feedbackSvc := feedback.NewService(
		feedbackRepo, studentSvc, attendanceRepo, gradeRepo, textSvc, mailSvc, conf,
	)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	v := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")
	core.InitValidators(v, trans)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         logger,
			DisableReqLogs: true,
			ProfileSvc:     profileSvc,
			StudentSvc:     studentSvc,
			AttendanceSvc:  attendanceSvc,
			GradeSvc:       gradeSvc,
			LessonSvc:      lessonSvc,
			FeedbackSvc:    feedbackSvc,
			Validate:       v,
			Translator:     trans,
		},
	)
}

type (
	errBody struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	}

	httpErr struct {
		Error errBody `json:"error"`
	}

	httpTest struct {
		name     string
		method   string
		path     string
		body     []byte
		token    string
		wantCode int
		wantData []byte
		extra    interface{}
	}
)

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, prof profile.Profile) string {
	claims := GetProfileClaims(conf, prof)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func createProfile(t *testing.T, name, email string, role profile.Role) profile.Profile {
	p := profile.Profile{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := p.SetPassword("Pa$$word123"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	p, err := profileRepo.CreateProfile(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return p
}

// createStudent registers a student; teacherID and parentEmail are optional
// ("" leaves the column null).
func createStudent(t *testing.T, name, teacherID, parentEmail string) student.Student {
	s := student.Student{
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if teacherID != "" {
		s.TeacherID = &teacherID
	}
	if parentEmail != "" {
		s.ParentEmail = &parentEmail
	}
	s, err := studentRepo.CreateStudent(context.Background(), s)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
