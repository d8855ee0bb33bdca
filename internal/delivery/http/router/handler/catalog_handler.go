package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"clouddoctor/internal/delivery/http/response"
	"clouddoctor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for the read-only listing handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListUsers returns every account, sanitized.
func (h *CatalogHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// ListProviders returns the active cloud providers.
func (h *CatalogHandler) ListProviders(c echo.Context) error {
	providers, err := h.uc.ListProviders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, providers, "")
}

// ListResources returns every discovered resource.
func (h *CatalogHandler) ListResources(c echo.Context) error {
	resources, err := h.uc.ListResources(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, resources, "")
}

// ListResourcesByUser returns the resources tied to one account.
func (h *CatalogHandler) ListResourcesByUser(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	resources, err := h.uc.ListResourcesByUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, resources, "")
}
