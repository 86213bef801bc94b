// Package service contains the authentication business logic. Auth is the
// sole translation boundary: every store, hasher, or issuer failure is
// logged here and converted into the model error taxonomy before it can
// reach a caller.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mkazantsev/authgate/internal/logger"
	"github.com/mkazantsev/authgate/internal/model"
)

// RegistrationConfirmation is returned on successful registration. No
// token is issued at registration; the caller must log in afterwards.
const RegistrationConfirmation = "Registration successful! Please login with your email and password."

// dummyDigest is a well-formed bcrypt digest verified when a login email
// has no account, so the unknown-email and wrong-password paths cost
// roughly the same. It never matches a submitted password: the user's
// absence is checked independently of the comparison result.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Auth orchestrates registration, password login, and biometric login.
// It holds no state between calls; the user store is the only shared
// mutable resource.
//
// The biometric key is a standalone credential: possession of it grants a
// token with no second factor. Keys are server-generated UUIDs and never
// chosen by clients, but a leaked key is equivalent to a password.
type Auth struct {
	users  model.UserStore
	hasher model.PasswordHasher
	tokens model.TokenManager
	logger *logger.Logger
}

// NewAuth constructs an Auth service from its collaborators.
func NewAuth(users model.UserStore, hasher model.PasswordHasher, tokens model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account with a hashed password and a fresh
// biometric key. A pre-existing email yields ErrEmailTaken; anything else
// that goes wrong yields ErrRegistrationFailed.
func (a *Auth) Register(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: starting registration", "email", email)

	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already registered", "email", email)
		return "", model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", model.ErrRegistrationFailed
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return "", model.ErrRegistrationFailed
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: digest,
		BiometricKey: uuid.NewString(),
	}

	if _, err := a.users.Create(ctx, user); err != nil {
		// The unique constraint is the authority on races: a concurrent
		// registration that won the insert surfaces here as a duplicate.
		if errors.Is(err, model.ErrDuplicateKey) {
			a.logger.Info("Auth service: lost creation race", "email", email)
			return "", model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return "", model.ErrRegistrationFailed
	}

	a.logger.Info("Auth service: registration completed", "email", email)

	return RegistrationConfirmation, nil
}

// Login verifies the password and issues a bearer token. An unknown email
// and a wrong password both yield ErrInvalidCredentials so a caller cannot
// tell whether the account exists.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: starting login", "email", email)

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Burn a comparison so this path costs about the same as a
			// wrong password against a real digest.
			a.hasher.Verify(password, dummyDigest)
			return "", model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", model.ErrLoginFailed
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return "", model.ErrInvalidCredentials
	}

	signed, err := a.tokens.Issue(model.TokenClaims{Email: user.Email, UserID: user.ID})
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", email,
			"error", err.Error())
		return "", model.ErrLoginFailed
	}

	a.logger.Info("Auth service: login completed", "email", email)

	return signed, nil
}

// BiometricLogin authenticates by biometric key alone and issues a bearer
// token. An unknown key yields ErrBiometricKeyNotFound.
func (a *Auth) BiometricLogin(ctx context.Context, biometricKey string) (string, error) {
	a.logger.Debug("Auth service: starting biometric login")

	user, err := a.users.GetByBiometricKey(ctx, biometricKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrBiometricKeyNotFound
		}
		a.logger.Error("Auth service: failed to get user by biometric key",
			"error", err.Error())
		return "", model.ErrBiometricLoginFailed
	}

	signed, err := a.tokens.Issue(model.TokenClaims{Email: user.Email, UserID: user.ID})
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", user.Email,
			"error", err.Error())
		return "", model.ErrBiometricLoginFailed
	}

	a.logger.Info("Auth service: biometric login completed", "email", user.Email)

	return signed, nil
}
