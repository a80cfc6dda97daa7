package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack/edutrack/core/profile"
)

func TestProfileAPI_auth(t *testing.T) {
	server := setup(t)

	t.Run("signup creates a teacher and logs it in", func(t *testing.T) {
		body := marchallObj(t, profile.NewProfile{
			Name:            "New Teacher",
			Email:           "NEW@test.cd",
			Password:        "Pa$$word123",
			PasswordConfirm: "Pa$$word123",
		})
		req, rec := newRequest(http.MethodPost, "/v1/auth/signup", body)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		// email is lowercased; role is never caller-controlled
		prof, err := profileSvc.GetByEmail(req.Context(), "new@test.cd")
		assert.NoError(t, err)
		assert.Equal(t, profile.RoleTeacher, prof.Role)
	})

	t.Run("signup rejects a duplicate email", func(t *testing.T) {
		body := marchallObj(t, profile.NewProfile{
			Name:            "Copycat",
			Email:           "new@test.cd",
			Password:        "Pa$$word123",
			PasswordConfirm: "Pa$$word123",
		})
		req, rec := newRequest(http.MethodPost, "/v1/auth/signup", body)
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp httpErr
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Contains(t, resp.Error.Fields, "email")
	})

	t.Run("signup rejects a password mismatch", func(t *testing.T) {
		body := marchallObj(t, profile.NewProfile{
			Name:            "Typo",
			Email:           "typo@test.cd",
			Password:        "Pa$$word123",
			PasswordConfirm: "Pa$$word124",
		})
		req, rec := newRequest(http.MethodPost, "/v1/auth/signup", body)
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp httpErr
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error.Fields, "password_confirm")
	})

	t.Run("login", func(t *testing.T) {
		body := marchallObj(t, LoginRequest{Email: "new@test.cd", Password: "Pa$$word123"})
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("login does not reveal which part was wrong", func(t *testing.T) {
		want := marchallObj(t, httpErr{Error: errBody{Code: "VALIDATION_ERROR", Message: "invalid credentials"}})

		body := marchallObj(t, LoginRequest{Email: "ghost@test.cd", Password: "Pa$$word123"})
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: want}, rec)

		body = marchallObj(t, LoginRequest{Email: "new@test.cd", Password: "wrong"})
		req, rec = newRequest(http.MethodPost, "/v1/auth/login", body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: want}, rec)
	})

	t.Run("token refresh", func(t *testing.T) {
		prof, err := profileSvc.GetByEmail(context.Background(), "new@test.cd")
		assert.NoError(t, err)

		req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", getToken(t, prof))
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("token refresh requires a token", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/token-refresh")
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})
}

func TestProfileAPI_profiles(t *testing.T) {
	server := setup(t)

	teacher := createProfile(t, "Teacher One", "t1@test.cd", profile.RoleTeacher)
	admin := createProfile(t, "Admin", "admin@test.cd", profile.RoleAdmin)

	teacherToken := getToken(t, teacher)
	adminToken := getToken(t, admin)

	t.Run("me returns the caller's profile", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profiles/me", teacherToken)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, teacher)}, rec)
	})

	t.Run("me never exposes the password hash", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profiles/me", teacherToken)
		server.ServeHTTP(rec, req)

		var raw map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "password_hash")
	})

	t.Run("listing is admin-only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profiles", teacherToken)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errNoPerms)}, rec)
	})

	t.Run("admin lists profiles", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profiles", adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var profiles []profile.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
		assert.Len(t, profiles, 2)
	})

	t.Run("admin filters by role", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/profiles?role=teacher", adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var profiles []profile.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
		if assert.Len(t, profiles, 1) {
			assert.Equal(t, teacher.ID, profiles[0].ID)
		}
	})
}
