package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/anonto42/project-showcase/backend/internal/repositories"
	"github.com/pkg/errors"
)

// IDTokenVerifier is satisfied by *auth.Client
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// verifyFirebaseToken verifies a Firebase ID token and maps its UID to a
// directory user.
func verifyFirebaseToken(ctx context.Context, verifier IDTokenVerifier, users repositories.UserRepository, idToken string) (*models.JwtCustomClaims, error) {
	token, err := verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "verify firebase id token")
	}

	user, err := users.GetUserByFirebaseUID(ctx, token.UID)
	if err != nil {
		return nil, errors.Wrapf(err, "firebase uid %s", token.UID)
	}
	return &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
