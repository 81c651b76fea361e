package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ittyan/family-outings/internal/domain"
	"github.com/ittyan/family-outings/internal/identity"
)

// TokenVerifier checks a provider id_token and returns the stable user ID it
// identifies. *identity.AppleVerifier satisfies this interface.
type TokenVerifier interface {
	Verify(ctx context.Context, token, nonce string) (string, error)
}

// Session is the result of a successful sign-in.
type Session struct {
	UserID       string
	SessionToken string
	IsAdmin      bool
}

// AuthService exchanges a provider id_token for a session.
type AuthService struct {
	apple TokenVerifier
}

// NewAuthService constructs an AuthService that verifies Apple tokens with apple.
func NewAuthService(apple TokenVerifier) *AuthService {
	return &AuthService{apple: apple}
}

// Verify validates token for provider and issues a session token.
// Returns domain.ErrValidation for an unsupported provider or empty token.
// Returns an error wrapping identity.ErrInvalidToken when verification fails.
func (s *AuthService) Verify(ctx context.Context, provider, token, nonce string) (Session, error) {
	if !strings.EqualFold(strings.TrimSpace(provider), "apple") {
		return Session{}, fmt.Errorf("service.AuthService.Verify: %w: unsupported provider %q", domain.ErrValidation, provider)
	}
	if strings.TrimSpace(token) == "" {
		return Session{}, fmt.Errorf("service.AuthService.Verify: %w: token is required", domain.ErrValidation)
	}
	userID, err := s.apple.Verify(ctx, token, nonce)
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Verify: %w", err)
	}
	return Session{
		UserID:       userID,
		SessionToken: identity.NewSessionToken(userID),
	}, nil
}
