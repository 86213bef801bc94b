package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/mkazantsev/authgate/internal/logger"
)

// AuthService defines the authentication operations exposed over HTTP.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	BiometricLogin(ctx context.Context, biometricKey string) (string, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type biometricLoginRequest struct {
	BiometricKey string `json:"biometricKey"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Register handles POST /api/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "email must be a valid address")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	msg, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed", "email", req.Email)

	writeJSON(w, http.StatusCreated, messageResponse{Message: msg})
}

// Login handles POST /api/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	accessToken, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed", "email", req.Email)

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: accessToken})
}

// BiometricLogin handles POST /api/biometric-login.
func (h *Auth) BiometricLogin(w http.ResponseWriter, r *http.Request) {
	var req biometricLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BiometricKey == "" {
		writeError(w, http.StatusBadRequest, "biometric key is required")
		return
	}

	accessToken, err := h.authService.BiometricLogin(r.Context(), req.BiometricKey)
	if err != nil {
		h.logger.Error("Auth handler: biometric login failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: biometric login completed")

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: accessToken})
}

// Ping handles GET /ping.
func (h *Auth) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "pong"})
}
