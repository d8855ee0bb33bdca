package middleware

import (
	"net/http"
	"strings"

	deliverycontext "clouddoctor/internal/delivery/context"
	"clouddoctor/internal/delivery/http/response"
	"clouddoctor/internal/domain/service"
	"clouddoctor/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes behind a valid access token. A token passes
// only when it is unexpired, matches the cached token for its subject and was
// minted under the caller's User-Agent.
type AuthMiddleware struct {
	authUC   usecase.AuthUsecase
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase, tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC, tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "TOKEN_MALFORMED", "Invalid token format, must be Bearer token")
		}

		ctx := c.Request().Context()
		if !m.authUC.Validate(ctx, tokenString, c.Request().UserAgent()) {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid or expired token")
		}

		// Validate already verified the signature; this parse cannot fail.
		claims, err := m.tokenSvc.ParseClaims(tokenString)
		if err != nil {
			return response.Unauthorized(c, "TOKEN_INVALID", "Failed to parse token claims")
		}

		deliverycontext.SetUsername(c, claims.Subject)
		deliverycontext.SetRole(c, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := deliverycontext.GetRole(c)
			if role == "" {
				return response.Error(c, http.StatusForbidden, "FORBIDDEN", "Permission denied: role information missing", "")
			}

			if role != requiredRole {
				return response.Error(c, http.StatusForbidden, "FORBIDDEN", "Permission denied: require '"+requiredRole+"' role", "")
			}

			return next(c)
		}
	}
}
