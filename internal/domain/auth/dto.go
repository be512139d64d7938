package auth

import "github.com/gestipresence/presence-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Username   string `json:"username"`
	Passphrase string `json:"passphrase"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Passphrase) {
		errs = append(errs, validator.ValidationError{
			Field:   "passphrase",
			Message: "passphrase is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}
