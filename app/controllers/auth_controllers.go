package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/cuisineai/app/repositories"
	"github.com/shashiranjanraj/cuisineai/app/services"
	"github.com/shashiranjanraj/cuisineai/pkg/auth"
	"github.com/shashiranjanraj/cuisineai/pkg/ctx"
)

// Response bodies of the authentication endpoints.
const (
	MsgSuccess        = "success"
	MsgNoUser         = "no user data found"
	MsgWrongPassword  = "incorrect password"
	MsgEmailExists    = "Email already exists"
	MsgEmailAvailable = "Email available"
)

type LoginInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CheckEmailInput struct {
	Email string `json:"email" validate:"required"`
}

type AuthController struct {
	service      *services.AuthService
	cookieSecure bool
	statuses
}

func NewAuthController(service *services.AuthService, strict, cookieSecure bool) *AuthController {
	return &AuthController{
		service:      service,
		cookieSecure: cookieSecure,
		statuses:     statuses{strict: strict},
	}
}

// Home is reachable only through the session middleware.
func (a *AuthController) Home(c *ctx.Context) {
	c.JSON(http.StatusOK, MsgSuccess)
}

func (a *AuthController) Login(c *ctx.Context) {
	var in LoginInput
	if !c.BindJSON(&in) {
		return
	}

	token, err := a.service.Login(c.Context(), in.Email, in.Password)
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		c.JSON(a.pick(http.StatusNotFound), MsgNoUser)
	case errors.Is(err, services.ErrIncorrectPassword):
		c.JSON(a.pick(http.StatusUnauthorized), MsgWrongPassword)
	case err != nil:
		a.fault(c, "login failed", err)
	default:
		c.SetCookie(auth.CookieName, token, a.service.TokenTTL(), "/", "", a.cookieSecure, true)
		c.JSON(http.StatusOK, MsgSuccess)
	}
}

func (a *AuthController) Register(c *ctx.Context) {
	var in RegisterInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := a.service.Register(c.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		a.fault(c, "register failed", err)
		return
	}
	c.JSON(a.pick(http.StatusCreated), user)
}

func (a *AuthController) CheckEmail(c *ctx.Context) {
	var in CheckEmailInput
	if !c.BindJSON(&in) {
		return
	}

	exists, err := a.service.EmailExists(c.Context(), in.Email)
	switch {
	case err != nil:
		a.fault(c, "check email failed", err)
	case exists:
		c.JSON(http.StatusOK, MsgEmailExists)
	default:
		c.JSON(http.StatusOK, MsgEmailAvailable)
	}
}
