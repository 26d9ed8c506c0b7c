package controllers

import (
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

type credentialsInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type emailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type passwordInput struct {
	Password string `json:"password" validate:"required,min=6"`
}

type AuthController struct {
	gw       auth.Gateway
	profiles *services.ProfileService
}

func NewAuthController(gw auth.Gateway, profiles *services.ProfileService) *AuthController {
	return &AuthController{gw: gw, profiles: profiles}
}

// SignUp POST /api/auth/signup
func (a *AuthController) SignUp(c *ctx.Context) {
	var in credentialsInput
	if !c.BindJSON(&in) {
		return
	}
	s, err := a.gw.SignUp(c.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if s.AccessToken == "" {
		c.Log().Info("auth: sign-up awaiting email confirmation", "user_id", s.User.UserID)
	}
	c.Created(s)
}

// SignIn POST /api/auth/signin
func (a *AuthController) SignIn(c *ctx.Context) {
	var in credentialsInput
	if !c.BindJSON(&in) {
		return
	}
	s, err := a.gw.SignIn(c.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(s)
}

// ResetPassword POST /api/auth/reset-password
func (a *AuthController) ResetPassword(c *ctx.Context) {
	var in emailInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.gw.ResetPassword(c.Context(), in.Email); err != nil {
		fail(c, err)
		return
	}
	c.Message("If the address is registered, a reset link is on its way.")
}

// ResendVerification POST /api/auth/resend-verification
func (a *AuthController) ResendVerification(c *ctx.Context) {
	var in emailInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.gw.ResendVerification(c.Context(), in.Email); err != nil {
		fail(c, err)
		return
	}
	c.Message("Verification email sent.")
}

// UpdatePassword PUT /api/auth/password
func (a *AuthController) UpdatePassword(c *ctx.Context) {
	var in passwordInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.gw.UpdatePassword(c.Context(), c.Token(), in.Password); err != nil {
		fail(c, err)
		return
	}
	c.Message("Password updated.")
}

// UpdateEmail PUT /api/auth/email
func (a *AuthController) UpdateEmail(c *ctx.Context) {
	var in emailInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.gw.UpdateEmail(c.Context(), c.Token(), in.Email); err != nil {
		fail(c, err)
		return
	}
	c.Message("Email update requested.")
}

// Me GET /api/auth/me
func (a *AuthController) Me(c *ctx.Context) {
	id, _ := c.Identity()
	p, err := a.profiles.Get(c.Context(), id.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{"user": id, "profile": p})
}
