package auth

import (
	"errors"
	"time"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUsername  = errors.New("missing username in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// SessionClaims are the claims carried by an admin session token.
// The registered ID (jti) identifies the session for revocation.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// SessionTokenService issues and validates signed session tokens
type SessionTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewSessionTokenService creates a new session token service
func NewSessionTokenService(cfg config.AuthConfig) *SessionTokenService {
	return &SessionTokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.SessionTTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue signs a new session token for the given username
func (s *SessionTokenService) Issue(username string) (string, *SessionClaims, error) {
	now := s.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   username,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Validate verifies the signature, lifetime, issuer and audience of a session token
func (s *SessionTokenService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.ID == "" {
		return nil, ErrInvalidClaims
	}
	if claims.Username == "" {
		return nil, ErrMissingUsername
	}

	return claims, nil
}

// TTL returns the lifetime of newly issued tokens
func (s *SessionTokenService) TTL() time.Duration {
	return s.ttl
}

// ExpiresAtTime returns the token's expiration time
func (c *SessionClaims) ExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// RemainingTTL returns the remaining time until the token expires
func (c *SessionClaims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
