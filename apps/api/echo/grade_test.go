package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack/edutrack/core/grade"
	"github.com/edutrack/edutrack/core/profile"
)

func TestGradeAPI_record(t *testing.T) {
	server := setup(t)
	path := "/v1/grades"

	teacher := createProfile(t, "Teacher One", "t1@test.cd", profile.RoleTeacher)
	other := createProfile(t, "Teacher Two", "t2@test.cd", profile.RoleTeacher)
	admin := createProfile(t, "Admin", "admin@test.cd", profile.RoleAdmin)
	std := createStudent(t, "Student One", teacher.ID, "")

	teacherToken := getToken(t, teacher)
	otherToken := getToken(t, other)
	adminToken := getToken(t, admin)

	body := func(score, maxScore int) []byte {
		return marchallObj(t, grade.NewGrade{
			StudentID: std.ID,
			TestName:  "Quiz 1",
			Score:     score,
			MaxScore:  maxScore,
			TestDate:  "2024-05-01",
		})
	}

	t.Run("missing token", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, body(80, 100))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	// the score invariant: 0 <= score <= max_score, max_score > 0
	invariantTests := []struct {
		name       string
		score      int
		maxScore   int
		badField   string
	}{
		{name: "score above max", score: 120, maxScore: 100, badField: "score"},
		{name: "negative score", score: -1, maxScore: 100, badField: "score"},
		{name: "zero max score", score: 0, maxScore: 0, badField: "max_score"},
		{name: "negative max score", score: 0, maxScore: -5, badField: "max_score"},
	}
	for _, tt := range invariantTests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, path, teacherToken, body(tt.score, tt.maxScore))
			server.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp httpErr
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			assert.Contains(t, resp.Error.Fields, tt.badField)
		})
	}

	t.Run("missing test name rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, teacherToken, marchallObj(t, grade.NewGrade{
			StudentID: std.ID,
			Score:     80,
			MaxScore:  100,
			TestDate:  "2024-05-01",
		}))
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp httpErr
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error.Fields, "test_name")
	})

	t.Run("non-owning teacher is forbidden", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, otherToken, body(80, 100))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errNoPerms)}, rec)
	})

	t.Run("owning teacher records a grade", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, teacherToken, body(80, 100))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var g grade.Grade
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
		assert.NotEmpty(t, g.ID)
		assert.Equal(t, 80, g.Score)
		assert.Equal(t, 100, g.MaxScore)
	})

	t.Run("grades are append-only: duplicate entries allowed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, adminToken, body(90, 100))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		grades, err := gradeRepo.QueryGradesByStudent(context.Background(), std.ID)
		assert.NoError(t, err)
		assert.Len(t, grades, 2)
	})
}
