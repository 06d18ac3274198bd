package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const userContextKey = "user"

var (
	errMissingHeader = echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	errBadHeader     = echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	errInvalidToken  = echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	errNoClaims      = echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
)

// AuthConfig configures token verification. Firebase is optional; when set,
// tokens that are not local JWTs are verified as Firebase ID tokens and
// mapped to a directory user.
type AuthConfig struct {
	Secret   string
	Firebase IDTokenVerifier
	Users    repositories.UserRepository
}

// Authenticate verifies a bearer token and returns its claims.
func (cfg AuthConfig) Authenticate(ctx context.Context, token string) (*models.JwtCustomClaims, error) {
	claims, err := ParseToken(cfg.Secret, token)
	if err == nil {
		return claims, nil
	}
	if cfg.Firebase == nil || cfg.Users == nil {
		return nil, err
	}
	return verifyFirebaseToken(ctx, cfg.Firebase, cfg.Users, token)
}

// UserID is Authenticate reduced to the user id, as the websocket handler needs it.
func (cfg AuthConfig) UserID(ctx context.Context, token string) (uint, error) {
	claims, err := cfg.Authenticate(ctx, token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// JWTAuthMiddleware checks for a valid bearer token and stores its claims
// in the context.
func JWTAuthMiddleware(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return errMissingHeader
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return errBadHeader
			}

			claims, err := cfg.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return errInvalidToken.WithInternal(err)
			}

			c.Set(userContextKey, claims)
			return next(c)
		}
	}
}

// ParseToken validates an HS256 token signed with secret.
func ParseToken(secret, tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateToken issues an HS256 token for user valid for ttl.
func GenerateToken(secret string, user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// UserFromContext returns the claims stored by JWTAuthMiddleware
func UserFromContext(c echo.Context) (*models.JwtCustomClaims, error) {
	claims, ok := c.Get(userContextKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return nil, errNoClaims
	}
	return claims, nil
}

// RequireRoles rejects callers whose role is not one of roles.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := UserFromContext(c)
			if err != nil {
				return err
			}
			if !claims.HasRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "permission denied")
			}
			return next(c)
		}
	}
}
