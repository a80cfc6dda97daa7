package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edutrack/edutrack/core"
	"github.com/edutrack/edutrack/core/profile"
)

type profileApi struct {
	svc  *profile.Service
	conf *core.Config
}

func registerProfileAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := profileApi{
		svc:  deps.ProfileSvc,
		conf: deps.Conf,
	}

	// un-authed endpoints
	ag := g.Group("/auth")
	ag.POST("/signup", api.signup)
	ag.POST("/login", api.login)
	ag.POST("/token-refresh", api.refreshToken, jwt)

	// authed endpoints
	pg := g.Group("/profiles", jwt)
	pg.GET("/me", api.me)
	pg.GET("", api.query, adminMiddleware())
}

// Handlers

// signup registers a new teacher account and logs it in. Admin accounts are
// created through the management CLI, never through the API.
func (api *profileApi) signup(ctx echo.Context) error {
	var data profile.NewProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfile")
	}
	if err := data.Validate(ctx.Request().Context(), validate, api.svc); err != nil {
		return err
	}

	prof, err := api.svc.Create(ctx.Request().Context(), data, profile.RoleTeacher)
	if err != nil {
		return insertFailed(err)
	}

	token, err := GenerateToken(GetProfileClaims(api.conf, prof))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, LoginResponse{Token: token})
}

func (api *profileApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data.Email, data.Password, api.svc, api.conf)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *profileApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc, api.conf)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *profileApi) me(ctx echo.Context) error {
	prof, err := getContextProfile(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	return ctx.JSON(http.StatusOK, prof)
}

func (api *profileApi) query(ctx echo.Context) error {
	filter := new(profile.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []profile.Profile{})
	}

	profiles, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying profiles")
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	return ctx.JSON(http.StatusOK, profiles)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
