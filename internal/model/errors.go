package model

import "errors"

// Store-level errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Authentication error taxonomy. The auth service translates every
// store/hasher/issuer failure into one of these; callers never see the
// underlying cause.
var (
	ErrEmailTaken           = errors.New("email is already registered")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrLoginFailed          = errors.New("login failed")
	ErrBiometricKeyNotFound = errors.New("biometric key not found")
	ErrBiometricLoginFailed = errors.New("biometric login failed")
)
