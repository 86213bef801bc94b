// Package router assembles the HTTP routes and middleware chain.
package router

import (
	"net/http"

	"github.com/mkazantsev/authgate/internal/api/http/handler"
	"github.com/mkazantsev/authgate/internal/api/http/middleware"
	"github.com/mkazantsev/authgate/internal/logger"
	"github.com/mkazantsev/authgate/internal/model"
)

// Router wires handlers and middleware into a single http.Handler.
type Router struct {
	authService    handler.AuthService
	users          handler.UserProvider
	tokens         model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	users handler.UserProvider,
	tokens model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		users:          users,
		tokens:         tokens,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register registers all routes and middleware. Authentication guards only
// the routes that need an identity; the auth endpoints themselves are open.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.users, r.contextManager, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/biometric-login", authHandler.BiometricLogin)
	mux.Handle("GET /api/me", authenticate.Handle(http.HandlerFunc(userHandler.Me)))
	mux.HandleFunc("GET /ping", authHandler.Ping)

	return logging.Handle(mux)
}
