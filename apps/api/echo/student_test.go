package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack/edutrack/core/profile"
	"github.com/edutrack/edutrack/core/student"
)

func TestStudentAPI(t *testing.T) {
	server := setup(t)

	teacher := createProfile(t, "Teacher One", "t1@test.cd", profile.RoleTeacher)
	other := createProfile(t, "Teacher Two", "t2@test.cd", profile.RoleTeacher)
	admin := createProfile(t, "Admin", "admin@test.cd", profile.RoleAdmin)

	owned := createStudent(t, "Student One", teacher.ID, "parent1@test.cd")
	foreign := createStudent(t, "Student Two", other.ID, "")
	unassigned := createStudent(t, "Student Three", "", "")

	teacherToken := getToken(t, teacher)
	adminToken := getToken(t, admin)

	t.Run("create is admin-only", func(t *testing.T) {
		body := marchallObj(t, student.NewStudent{Name: "Student Four", TeacherID: teacher.ID})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", teacherToken, body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errNoPerms)}, rec)
	})

	t.Run("admin creates a student", func(t *testing.T) {
		body := marchallObj(t, student.NewStudent{
			Name:        "Student Four",
			GradeLevel:  "5th",
			TeacherID:   teacher.ID,
			ParentEmail: "parent4@test.cd",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", adminToken, body)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var s student.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
		assert.NotEmpty(t, s.ID)
		if assert.NotNil(t, s.TeacherID) {
			assert.Equal(t, teacher.ID, *s.TeacherID)
		}
	})

	t.Run("invalid parent email rejected", func(t *testing.T) {
		body := marchallObj(t, student.NewStudent{Name: "Student Five", ParentEmail: "not-an-email"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/students", adminToken, body)
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp httpErr
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error.Fields, "parent_email")
	})

	t.Run("teacher lists only assigned students", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students", teacherToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var students []student.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		for _, s := range students {
			if assert.NotNil(t, s.TeacherID) {
				assert.Equal(t, teacher.ID, *s.TeacherID)
			}
		}
		assert.Len(t, students, 2) // owned + the one created above
	})

	t.Run("admin lists all students", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students", adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var students []student.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		assert.Len(t, students, 4)
	})

	t.Run("teacher retrieves an owned student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/"+owned.ID, teacherToken)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, owned)}, rec)
	})

	t.Run("teacher cannot retrieve a foreign student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/"+foreign.ID, teacherToken)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errNoPerms)}, rec)
	})

	t.Run("unassigned students are admin-only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/"+unassigned.ID, teacherToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/students/"+unassigned.ID, adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("absent student is not found before the guard", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/nope", teacherToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("admin re-assigns a student", func(t *testing.T) {
		body := marchallObj(t, student.UpdateStudent{TeacherID: other.ID, Memo: "moved classes"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+owned.ID, adminToken, body)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var s student.Student
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
		if assert.NotNil(t, s.TeacherID) {
			assert.Equal(t, other.ID, *s.TeacherID)
		}
		assert.Equal(t, owned.Name, s.Name) // untouched fields keep their value

		// the previous owner lost access
		req, rec = newAuthRequest(http.MethodGet, "/v1/students/"+owned.ID, teacherToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("update is admin-only", func(t *testing.T) {
		body := marchallObj(t, student.UpdateStudent{Memo: "mine now"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+foreign.ID, teacherToken, body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errNoPerms)}, rec)
	})
}
