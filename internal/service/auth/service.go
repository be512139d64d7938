package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/gestipresence/presence-backend-go/internal/domain/auth"
	"github.com/gestipresence/presence-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single administrator account configured for the facility.
type Credentials struct {
	Username       string
	PassphraseHash string
}

type AuthServiceImpl struct {
	credentials Credentials
	jwt.Service
}

func NewAuthService(credentials Credentials, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		credentials: credentials,
		Service:     jwtService,
	}
}

// Login implements auth.AuthService. A wrong username and a wrong passphrase
// return the same error.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(loginReq.Username), []byte(a.credentials.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(a.credentials.PassphraseHash), []byte(loginReq.Passphrase))
	if !userOK || passErr != nil {
		slog.Warn("Rejected admin login", "username", loginReq.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.GenerateAccessToken(a.credentials.Username, true)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("Admin logged in", "username", a.credentials.Username)
	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
