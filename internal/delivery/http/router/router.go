// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"clouddoctor/internal/delivery/http/middleware"
	"clouddoctor/internal/delivery/http/router/handler"
	"clouddoctor/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	catalogHandler *handler.CatalogHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		catalogHandler: params.CatalogHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session routes. Login and refresh are open; logout needs a valid token
	// so the username comes from the token, not the caller.
	authGroup := e.Group("/api/v1/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	// Catalog listings for the dashboard. User enumeration is admin-only.
	catalogGroup := e.Group("/api/v1")
	catalogGroup.Use(r.authMiddleware.Authenticate)
	{
		catalogGroup.GET("/users", r.catalogHandler.ListUsers, r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
		catalogGroup.GET("/providers", r.catalogHandler.ListProviders)
		catalogGroup.GET("/resources", r.catalogHandler.ListResources)
		catalogGroup.GET("/resources/user/:id", r.catalogHandler.ListResourcesByUser)
	}

	// Routes operating on the caller's own account.
	userGroup := e.Group("/api/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetMyInfo)
		userGroup.GET("/uuid", r.userHandler.GetMyExternalID)
		userGroup.POST("/change-password", r.userHandler.ChangePassword)
		userGroup.POST("/audit/start", r.userHandler.StartAudit)

		userGroup.POST("/checklist", r.userHandler.SaveChecklist)
		userGroup.GET("/checklists", r.userHandler.GetMyChecklists)
		userGroup.GET("/checklist/:id", r.userHandler.GetChecklist)
		userGroup.PUT("/checklist/:id", r.userHandler.UpdateChecklist)
	}
}
