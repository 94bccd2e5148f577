// Package common defines shared sentinel errors used across the portal
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Registration validation errors, raised before any store round trip.
	ErrPasswordMismatch = errors.New("passwords differ")
	ErrPasswordTooShort = errors.New("password too short")
	ErrUsernameTaken    = errors.New("username taken")

	// ErrInvalidCredentials covers both unknown username and wrong password.
	// The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
)
