// Package auth implements credentials sign-in with first-use provisioning and
// JWT session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"promptfeed/internal/domain"
)

// Session is the result of a successful sign-in.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

type Service struct {
	users  domain.UserRepository
	hasher *PasswordHasher
	tokens *TokenIssuer
}

func NewService(users domain.UserRepository, hasher *PasswordHasher, tokens *TokenIssuer) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// SignIn looks the user up by email. Unknown emails are provisioned on the spot
// with the supplied password; known ones must match the stored hash.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, &domain.ValidationError{Field: "email", Kind: domain.KindMissing, Message: "Email and password are required"}
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.provision(ctx, email, password)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("lookup user: %w", err)
	default:
		if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
			return nil, domain.ErrInvalidCredentials
		}
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expires, User: user}, nil
}

func (s *Service) provision(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         domain.EmailLocalPart(email),
		PasswordHash: hash,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// another first sign-in for this email won the insert
		return s.verifyExisting(ctx, email, password)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Service) verifyExisting(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(raw string) (*SessionClaims, error) {
	if s == nil || s.tokens == nil {
		return nil, ErrInvalidToken
	}
	return s.tokens.Parse(raw)
}
