package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "clouddoctor/internal/delivery/context"
	"clouddoctor/internal/delivery/http/response"
	"clouddoctor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// changePasswordRequest is the password rotation payload.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// startAuditRequest is the audit kick-off payload.
type startAuditRequest struct {
	AccountID  string   `json:"accountId" validate:"required"`
	RoleName   string   `json:"roleName" validate:"required"`
	ExternalID string   `json:"externalId" validate:"required"`
	Checks     []string `json:"checks"`
}

// checklistRequest is the checklist create/update payload.
type checklistRequest struct {
	ResultName string         `json:"resultName" validate:"required"`
	Answers    map[string]any `json:"answers"`
}

// UserHandler holds dependencies for handlers operating on the caller's own account.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetMyInfo returns the caller's sanitized account record.
func (h *UserHandler) GetMyInfo(c echo.Context) error {
	info, err := h.uc.GetMyInfo(c.Request().Context(), deliverycontext.GetUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, info, "")
}

// GetMyExternalID returns the external id the caller must place on their AWS role.
func (h *UserHandler) GetMyExternalID(c echo.Context) error {
	externalID, err := h.uc.GetMyExternalID(c.Request().Context(), deliverycontext.GetUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"externalId": externalID}, "")
}

// ChangePassword rotates the caller's password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ChangePassword(c.Request().Context(), deliverycontext.GetUsername(c), &usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// StartAudit forwards an audit request to the audit engine and relays its
// response verbatim.
func (h *UserHandler) StartAudit(c echo.Context) error {
	var req startAuditRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid audit input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.StartAudit(c.Request().Context(), deliverycontext.GetUsername(c), &usecase.StartAuditInput{
		AccountID:  req.AccountID,
		RoleName:   req.RoleName,
		ExternalID: req.ExternalID,
		Checks:     req.Checks,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Audit started")
}

// SaveChecklist records a completed checklist for the caller.
func (h *UserHandler) SaveChecklist(c echo.Context) error {
	var req checklistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checklist input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.SaveChecklist(c.Request().Context(), deliverycontext.GetUsername(c), &usecase.SaveChecklistInput{
		ResultName: req.ResultName,
		Answers:    req.Answers,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result, "Checklist saved")
}

// GetMyChecklists lists the caller's checklist results.
func (h *UserHandler) GetMyChecklists(c echo.Context) error {
	results, err := h.uc.GetMyChecklists(c.Request().Context(), deliverycontext.GetUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, results, "")
}

// GetChecklist returns a single checklist result owned by the caller.
func (h *UserHandler) GetChecklist(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid checklist id")
	}

	result, err := h.uc.GetChecklist(c.Request().Context(), deliverycontext.GetUsername(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "")
}

// UpdateChecklist overwrites a checklist result owned by the caller.
func (h *UserHandler) UpdateChecklist(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid checklist id")
	}

	var req checklistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checklist input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.UpdateChecklist(c.Request().Context(), deliverycontext.GetUsername(c), id, &usecase.SaveChecklistInput{
		ResultName: req.ResultName,
		Answers:    req.Answers,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Checklist updated")
}
