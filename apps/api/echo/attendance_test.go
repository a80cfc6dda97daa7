package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack/edutrack/core/attendance"
	"github.com/edutrack/edutrack/core/profile"
)

func TestAttendanceAPI_upsert(t *testing.T) {
	server := setup(t)
	path := "/v1/attendances"

	teacher := createProfile(t, "Teacher One", "t1@test.cd", profile.RoleTeacher)
	other := createProfile(t, "Teacher Two", "t2@test.cd", profile.RoleTeacher)
	admin := createProfile(t, "Admin", "admin@test.cd", profile.RoleAdmin)
	std := createStudent(t, "Student One", teacher.ID, "")

	teacherToken := getToken(t, teacher)
	otherToken := getToken(t, other)
	adminToken := getToken(t, admin)

	body := func(studentID, date, status, memo string) []byte {
		return marchallObj(t, attendance.UpsertAttendance{
			StudentID:  studentID,
			LessonDate: date,
			Status:     status,
			Memo:       memo,
		})
	}

	t.Run("missing token", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, body(std.ID, "2024-05-01", "present", ""))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("ambiguous lesson date rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, teacherToken, body(std.ID, "05/01/2024", "present", ""))
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp httpErr
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "must be a calendar date in YYYY-MM-DD format", resp.Error.Fields["lesson_date"])
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, teacherToken, body(std.ID, "2024-05-01", "skipped", ""))
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp httpErr
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Contains(t, resp.Error.Fields, "status")

		// a rejected write creates no partial state
		atts, err := attendanceRepo.QueryAttendancesByStudent(context.Background(), std.ID)
		assert.NoError(t, err)
		assert.Empty(t, atts)
	})

	t.Run("unknown student is not found", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, teacherToken, body("nope", "2024-05-01", "present", ""))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: errBody{Code: "NOT_FOUND", Message: "not found"}}),
		}, rec)
	})

	t.Run("non-owning teacher is forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, otherToken, body(std.ID, "2024-05-01", "present", ""))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errNoPerms)}, rec)
	})

	t.Run("owning teacher inserts then updates in place", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, teacherToken, body(std.ID, "2024-05-01", "present", ""))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var first attendance.Attendance
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
		assert.NotEmpty(t, first.ID)
		assert.Equal(t, attendance.StatusPresent, first.Status)

		// same natural key, new status: last write wins, identity preserved
		req, rec = newAuthRequest(http.MethodPost, path, teacherToken, body(std.ID, "2024-05-01", "late", "arrived 10m late"))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var second attendance.Attendance
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, attendance.StatusLate, second.Status)
		if assert.NotNil(t, second.Memo) {
			assert.Equal(t, "arrived 10m late", *second.Memo)
		}
		assert.Equal(t, first.CreatedAt, second.CreatedAt)

		atts, err := attendanceRepo.QueryAttendancesByStudent(context.Background(), std.ID)
		assert.NoError(t, err)
		assert.Len(t, atts, 1)
		assert.Equal(t, attendance.StatusLate, atts[0].Status)
	})

	t.Run("admin may record for any student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, adminToken, body(std.ID, "2024-05-02", "absent", ""))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		atts, err := attendanceRepo.QueryAttendancesByStudent(context.Background(), std.ID)
		assert.NoError(t, err)
		assert.Len(t, atts, 2)
		// most recent lesson date first
		assert.Equal(t, "2024-05-02", atts[0].LessonDate)
	})
}
