package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkazantsev/authgate/internal/mocks"
	"github.com/mkazantsev/authgate/internal/model"
	"github.com/mkazantsev/authgate/internal/testutil"
)

func newAuthWithMocks(t *testing.T) (*Auth, *mocks.UserStore, *mocks.PasswordHasher, *mocks.TokenManager) {
	t.Helper()
	users := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}
	tokens := &mocks.TokenManager{}
	return NewAuth(users, hasher, tokens, testutil.MakeNoopLogger()), users, hasher, tokens
}

func TestAuth_Register_NewUser(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, _ := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "password123").Return("$2a$10$digest", nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "new@example.com" &&
			u.PasswordHash == "$2a$10$digest" &&
			u.BiometricKey != "" &&
			u.ID != uuid.Nil
	})).Return(model.User{ID: uuid.New()}, nil)

	msg, err := a.Register(ctx, "new@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, RegistrationConfirmation, msg)
	users.AssertExpectations(t)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	a, users, _, _ := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "existing@example.com").Return(model.User{ID: uuid.New()}, nil)

	_, err := a.Register(ctx, "existing@example.com", "password123")
	require.ErrorIs(t, err, model.ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Register_LostCreationRace(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, _ := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "racer@example.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "password123").Return("$2a$10$digest", nil)
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrDuplicateKey)

	_, err := a.Register(ctx, "racer@example.com", "password123")
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Register_StoreFailure(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, _ := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "password123").Return("$2a$10$digest", nil)
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, assert.AnError)

	_, err := a.Register(ctx, "new@example.com", "password123")
	require.ErrorIs(t, err, model.ErrRegistrationFailed)
	assert.NotErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Register_LookupFailure(t *testing.T) {
	ctx := context.Background()
	a, users, _, _ := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(model.User{}, assert.AnError)

	_, err := a.Register(ctx, "new@example.com", "password123")
	require.ErrorIs(t, err, model.ErrRegistrationFailed)
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, tokens := newAuthWithMocks(t)

	userID := uuid.New()
	users.On("GetByEmail", mock.Anything, "user@example.com").Return(model.User{
		ID:           userID,
		Email:        "user@example.com",
		PasswordHash: "$2a$10$digest",
	}, nil)
	hasher.On("Verify", "password123", "$2a$10$digest").Return(true)
	tokens.On("Issue", model.TokenClaims{Email: "user@example.com", UserID: userID}).Return("signed-token", nil)

	got, err := a.Login(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", got)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, tokens := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "$2a$10$digest",
	}, nil)
	hasher.On("Verify", "wrong", "$2a$10$digest").Return(false)

	_, err := a.Login(ctx, "user@example.com", "wrong")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, tokens := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Verify", "password123", dummyDigest).Return(false)

	_, err := a.Login(ctx, "nobody@example.com", "password123")

	// Same error kind as the wrong-password case.
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
	hasher.AssertCalled(t, "Verify", "password123", dummyDigest)
	tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuth_Login_StoreFailure(t *testing.T) {
	ctx := context.Background()
	a, users, _, _ := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(model.User{}, assert.AnError)

	_, err := a.Login(ctx, "user@example.com", "password123")
	require.ErrorIs(t, err, model.ErrLoginFailed)
	assert.NotErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_IssueFailure(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, tokens := newAuthWithMocks(t)

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "$2a$10$digest",
	}, nil)
	hasher.On("Verify", "password123", "$2a$10$digest").Return(true)
	tokens.On("Issue", mock.Anything).Return("", assert.AnError)

	_, err := a.Login(ctx, "user@example.com", "password123")
	require.ErrorIs(t, err, model.ErrLoginFailed)
}

func TestAuth_BiometricLogin_Success(t *testing.T) {
	ctx := context.Background()
	a, users, _, tokens := newAuthWithMocks(t)

	userID := uuid.New()
	users.On("GetByBiometricKey", mock.Anything, "bio-key").Return(model.User{
		ID:    userID,
		Email: "user@example.com",
	}, nil)
	tokens.On("Issue", model.TokenClaims{Email: "user@example.com", UserID: userID}).Return("signed-token", nil)

	got, err := a.BiometricLogin(ctx, "bio-key")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", got)
}

func TestAuth_BiometricLogin_UnknownKey(t *testing.T) {
	ctx := context.Background()
	a, users, _, tokens := newAuthWithMocks(t)

	users.On("GetByBiometricKey", mock.Anything, "missing").Return(model.User{}, model.ErrNotFound)

	_, err := a.BiometricLogin(ctx, "missing")
	require.ErrorIs(t, err, model.ErrBiometricKeyNotFound)
	tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuth_BiometricLogin_StoreFailure(t *testing.T) {
	ctx := context.Background()
	a, users, _, _ := newAuthWithMocks(t)

	users.On("GetByBiometricKey", mock.Anything, "bio-key").Return(model.User{}, assert.AnError)

	_, err := a.BiometricLogin(ctx, "bio-key")
	require.ErrorIs(t, err, model.ErrBiometricLoginFailed)
}

func TestAuth_Register_FreshBiometricKeyPerAttempt(t *testing.T) {
	ctx := context.Background()
	a, users, hasher, _ := newAuthWithMocks(t)

	var keys []string
	users.On("GetByEmail", mock.Anything, mock.Anything).Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", mock.Anything).Return("$2a$10$digest", nil)
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		keys = append(keys, args.Get(1).(model.User).BiometricKey)
	}).Return(model.User{}, nil)

	_, err := a.Register(ctx, "first@example.com", "password123")
	require.NoError(t, err)
	_, err = a.Register(ctx, "second@example.com", "password123")
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
	assert.NotEmpty(t, keys[0])
}
