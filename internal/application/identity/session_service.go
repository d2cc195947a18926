package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/edusite/backend/internal/domain/identity"
	"github.com/edusite/backend/internal/domain/shared"
	"github.com/edusite/backend/internal/infrastructure/auth"
	"github.com/edusite/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrNoSession is returned when a request carries no usable session
var ErrNoSession = shared.NewDomainError(shared.CodeUnauthorized, "Sign in to continue")

// Session is an authenticated admin session
type Session struct {
	ID        string
	Username  string
	Token     string
	ExpiresAt time.Time
}

// LoginInput contains the credentials submitted by the login form
type LoginInput struct {
	Username string
	Password string
}

// SessionService signs the admin in and out.
// Sessions are looked up per request from the token the client presents;
// nothing is cached between requests.
type SessionService struct {
	admin     *identity.AdminAccount
	tokens    *auth.SessionTokenService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	admin *identity.AdminAccount,
	tokens *auth.SessionTokenService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		admin:     admin,
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Login verifies the admin credentials and issues a session
func (s *SessionService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := s.admin.Authenticate(input.Username, input.Password); err != nil {
		s.log(ctx).Warn("Admin sign-in rejected", zap.String("username", input.Username))
		return nil, err
	}

	token, claims, err := s.tokens.Issue(s.admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.log(ctx).Info("Admin signed in", zap.String("session_id", claims.ID))

	return &Session{
		ID:        claims.ID,
		Username:  claims.Username,
		Token:     token,
		ExpiresAt: claims.ExpiresAtTime(),
	}, nil
}

// Lookup resolves the session behind a token.
// Expired, malformed and revoked tokens all yield ErrNoSession, wrapping the token error.
func (s *SessionService) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		s.log(ctx).Debug("Session token rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: %w", ErrNoSession, auth.ErrTokenBlacklisted)
	}

	return &Session{
		ID:        claims.ID,
		Username:  claims.Username,
		Token:     token,
		ExpiresAt: claims.ExpiresAtTime(),
	}, nil
}

// Logout revokes the session behind a token for the rest of its lifetime.
// A missing or already invalid token has nothing to revoke and is not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.log(ctx).Info("Admin signed out", zap.String("session_id", claims.ID))
	return nil
}

func (s *SessionService) log(ctx context.Context) *zap.Logger {
	return logger.LOr(ctx, s.logger)
}
