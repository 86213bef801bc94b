package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	httpctx "github.com/mkazantsev/authgate/internal/api/http/context"
	"github.com/mkazantsev/authgate/internal/mocks"
	"github.com/mkazantsev/authgate/internal/model"
	"github.com/mkazantsev/authgate/internal/testutil"
)

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := &mocks.TokenManager{}
	ctxMgr := httpctx.NewManager()
	m := NewAuthenticate(tokens, ctxMgr, testutil.MakeNoopLogger())

	userID := uuid.New()
	tokens.On("Parse", "valid-token").Return(model.TokenClaims{Email: "user@example.com", UserID: userID}, nil)

	var gotID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = ctxMgr.GetUserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	m := NewAuthenticate(&mocks.TokenManager{}, httpctx.NewManager(), testutil.MakeNoopLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	t.Parallel()

	tokens := &mocks.TokenManager{}
	m := NewAuthenticate(tokens, httpctx.NewManager(), testutil.MakeNoopLogger())

	tokens.On("Parse", "bad-token").Return(model.TokenClaims{}, assert.AnError)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
