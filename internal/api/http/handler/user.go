package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkazantsev/authgate/internal/logger"
	"github.com/mkazantsev/authgate/internal/model"
)

// UserProvider resolves user records for authenticated requests.
type UserProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// User handles HTTP endpoints for the authenticated user.
type User struct {
	users          UserProvider
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(users UserProvider, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

// meResponse exposes the account's public fields only. The password hash
// and biometric key never leave the server.
type meResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Me handles GET /api/me.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("User handler: failed to get user",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
