package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories/memory"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type fakeVerifier map[string]string

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := f[idToken]
	if !ok {
		return nil, errors.New("not a firebase token")
	}
	return &auth.Token{UID: uid}, nil
}

func serve(mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, *models.JwtCustomClaims, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *models.JwtCustomClaims
	err := mw(func(c echo.Context) error {
		claims, err := UserFromContext(c)
		got = claims
		return err
	})(c)
	return rec, got, err
}

func TestJWTAuthMiddleware(t *testing.T) {
	alice := models.User{ID: 7, FullName: "Alice", Email: "alice@example.com", Role: models.RoleStudent}
	valid, err := GenerateToken(secret, alice, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(secret, alice, -time.Minute)
	require.NoError(t, err)
	foreign, err := GenerateToken("other-secret", alice, time.Hour)
	require.NoError(t, err)

	mw := JWTAuthMiddleware(AuthConfig{Secret: secret})

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, claims, err := serve(mw, tt.header)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, uint(7), claims.UserID)
				assert.Equal(t, models.RoleStudent, claims.Role)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantCode, he.Code)
		})
	}
}

func TestFirebaseFallback(t *testing.T) {
	uid := "fb-123"
	users := memory.NewUserRepository()
	bob := users.AddUser(models.User{FullName: "Bob", Role: models.RoleFaculty, FirebaseUID: &uid})

	cfg := AuthConfig{
		Secret:   secret,
		Firebase: fakeVerifier{"id-token": uid, "orphan": "fb-unknown"},
		Users:    users,
	}

	claims, err := cfg.Authenticate(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, claims.UserID)
	assert.Equal(t, models.RoleFaculty, claims.Role)

	_, err = cfg.Authenticate(context.Background(), "orphan")
	assert.Error(t, err)

	_, err = cfg.Authenticate(context.Background(), "nope")
	assert.Error(t, err)
}

func TestRequireRoles(t *testing.T) {
	student, err := GenerateToken(secret, models.User{ID: 1, Role: models.RoleStudent}, time.Hour)
	require.NoError(t, err)
	faculty, err := GenerateToken(secret, models.User{ID: 2, Role: models.RoleFaculty}, time.Hour)
	require.NoError(t, err)

	authMW := JWTAuthMiddleware(AuthConfig{Secret: secret})
	roles := RequireRoles(models.RoleFaculty, models.RoleAdmin)
	chain := func(next echo.HandlerFunc) echo.HandlerFunc { return authMW(roles(next)) }

	_, _, err = serve(chain, "Bearer "+student)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	_, claims, err := serve(chain, "Bearer "+faculty)
	require.NoError(t, err)
	assert.Equal(t, uint(2), claims.UserID)
}
