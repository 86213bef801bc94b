package model

import "github.com/google/uuid"

// TokenClaims is the identity embedded into a bearer token. It is built
// per successful authentication and discarded after signing.
type TokenClaims struct {
	Email  string
	UserID uuid.UUID
}

// TokenManager signs identity claims into bearer tokens and parses them
// back. Parse is consumed by the transport guard only; the auth service
// never decodes tokens.
type TokenManager interface {
	Issue(claims TokenClaims) (string, error)
	Parse(token string) (TokenClaims, error)
}
