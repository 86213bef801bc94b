package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkazantsev/authgate/internal/model"
)

// ErrEmptySecret is returned when constructing a JWT manager without a
// signing secret. This is a configuration fault, not a request error.
var ErrEmptySecret = errors.New("jwt secret is empty")

// Claims represents JWT claims carrying the authenticated identity. The
// user ID travels in the registered subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWT creates a JWT token manager with the provided secret key and
// token lifetime. An empty secret is rejected.
func NewJWT(secretKey string, tokenTTL time.Duration) (*JWT, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	return &JWT{secretKey: secretKey, tokenTTL: tokenTTL}, nil
}

// Issue signs the claims plus issuance and expiry timestamps into a
// bearer token.
func (j *JWT) Issue(claims model.TokenClaims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
		Email: claims.Email,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a bearer token and extracts the identity claims.
func (j *JWT) Parse(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return model.TokenClaims{}, fmt.Errorf("token is invalid")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse token subject: %w", err)
	}

	return model.TokenClaims{Email: claims.Email, UserID: userID}, nil
}
