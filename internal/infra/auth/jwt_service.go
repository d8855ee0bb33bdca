// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"clouddoctor/config"
	"clouddoctor/internal/domain/entity"
	domainerrors "clouddoctor/internal/domain/errors"
	"clouddoctor/internal/domain/service"
)

// Access-token claim keys. These match the wire format the frontend and the
// audit integration already consume.
const (
	claimRole      = "role"
	claimFullName  = "fullName"
	claimUserAgent = "userAgent"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The signing key is derived once from configuration and reused for the
// process lifetime.
type jwtService struct {
	secret     []byte        // Symmetric HMAC key for signing and verification.
	accessTTL  time.Duration // Time-to-live for access tokens.
	refreshTTL time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     []byte(cfg.JWT.Secret),
		accessTTL:  cfg.JWT.AccessTokenTTL,
		refreshTTL: cfg.JWT.RefreshTokenTTL,
	}, nil
}

// CreateAccessToken mints a short-lived access token carrying the user's role,
// display name and the caller's opaque client signature.
func (s *jwtService) CreateAccessToken(user *entity.User, clientSignature string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":          user.Username,
		claimRole:      user.Role.String(),
		claimFullName:  user.FullName,
		claimUserAgent: clientSignature,
		"iat":          now.Unix(),
		"exp":          now.Add(s.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// CreateRefreshToken mints a longer-lived token carrying only the subject and
// expiry. No client-signature claim: refresh tokens are not device-bound.
func (s *jwtService) CreateRefreshToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign refresh token")
	}

	return signed, nil
}

// ParseClaims verifies the signature and decodes the claim set without
// enforcing expiry. Expiry is a separate, explicit check (IsExpired) so that
// callers can distinguish "expired" from "tampered".
func (s *jwtService) ParseClaims(tokenString string) (*service.TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("failed to parse token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected claims type")
	}

	subject, err := mapClaims.GetSubject()
	if err != nil || subject == "" {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("subject claim missing")
	}

	expiresAt, err := mapClaims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("expiry claim missing")
	}

	claims := &service.TokenClaims{
		Subject:   subject,
		ExpiresAt: expiresAt.Time,
	}

	if issuedAt, err := mapClaims.GetIssuedAt(); err == nil && issuedAt != nil {
		claims.IssuedAt = issuedAt.Time
	}
	if role, ok := mapClaims[claimRole].(string); ok {
		claims.Role = role
	}
	if fullName, ok := mapClaims[claimFullName].(string); ok {
		claims.FullName = fullName
	}
	if userAgent, ok := mapClaims[claimUserAgent].(string); ok {
		claims.ClientSignature = userAgent
	}

	return claims, nil
}

// ExtractSubject verifies the token and returns the username it was issued for.
func (s *jwtService) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.ParseClaims(tokenString)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// IsExpired compares the token's expiry claim to the current time.
func (s *jwtService) IsExpired(tokenString string) (bool, error) {
	claims, err := s.ParseClaims(tokenString)
	if err != nil {
		return false, err
	}

	return claims.ExpiresAt.Before(time.Now()), nil
}

// AccessTokenTTL returns the configured validity window for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}
