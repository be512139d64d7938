package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid passphrase")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenExpired           = errors.New("token has expired")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
