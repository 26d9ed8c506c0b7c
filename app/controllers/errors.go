// Package controllers adapts HTTP requests to the services. Handlers are
// ctx.HandlerFunc methods registered in app/routes.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
)

// fail maps a service error onto the response envelope.
func fail(c *ctx.Context, err error) {
	var verr *services.ValidationError
	var gerr *auth.GatewayError

	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrInsufficientBalance):
		c.Error(http.StatusPaymentRequired, err.Error())
	case errors.Is(err, services.ErrBelowMinimumDeposit),
		errors.Is(err, services.ErrTrackingRequired),
		errors.Is(err, services.ErrEmptyCart):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		c.Unauthorized(err.Error())
	case errors.Is(err, auth.ErrEmailNotVerified):
		c.Forbidden(err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		c.Error(http.StatusConflict, err.Error())
	case errors.As(err, &gerr):
		c.Log().Error("auth gateway failure", "status", gerr.Status, "error", gerr.Message)
		c.Error(http.StatusBadGateway, "Authentication service unavailable")
	default:
		c.Log().Error("request failed", "method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}
