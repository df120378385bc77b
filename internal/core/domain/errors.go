package domain

import "errors"

// Sentinel errors. The central HTTP error handler maps each of these to a
// deterministic status code; repeating the same bad input always yields the
// same error kind and status.
var (
	// 401: authentication failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrMalformedHeader    = errors.New("malformed authorization header")

	// 403: authenticated but not allowed.
	ErrForbidden = errors.New("access forbidden")

	// 404.
	ErrUserNotFound    = errors.New("user not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrProjectNotFound = errors.New("project not found")

	// 409.
	ErrUserExists = errors.New("user already exists")

	// 400.
	ErrValidation = errors.New("validation failed")
)
