// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "clouddoctor/internal/delivery/context"
	"clouddoctor/internal/delivery/http/response"
	"clouddoctor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// loginRequest is the login payload.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// refreshRequest is the token refresh payload.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Login handles the user login request. The User-Agent header is bound into
// the minted access token and checked again on every validation.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username:        req.Username,
		Password:        req.Password,
		ClientSignature: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Logout handles the user logout request. It runs behind the auth middleware,
// so the username comes from the validated token, never from the payload.
func (h *AuthHandler) Logout(c echo.Context) error {
	username := deliverycontext.GetUsername(c)

	if err := h.uc.Logout(c.Request().Context(), username); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Refresh handles the token refresh request.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{
		RefreshToken:    req.RefreshToken,
		ClientSignature: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}
