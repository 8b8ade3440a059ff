package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/cuisineai/app/models"
	"github.com/shashiranjanraj/cuisineai/app/repositories"
	"github.com/shashiranjanraj/cuisineai/pkg/auth"
)

// ErrIncorrectPassword is returned by Login when the user exists but the
// password does not match.
var ErrIncorrectPassword = errors.New("incorrect password")

// AuthService implements login, registration and the email availability
// check on top of a UserStore.
type AuthService struct {
	users    repositories.UserStore
	sessions *auth.Sessions

	hash  func(plain string) (string, error)
	check func(hash, plain string) (bool, error)
}

func NewAuthService(users repositories.UserStore, sessions *auth.Sessions) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hash:     auth.HashPassword,
		check:    auth.CheckPassword,
	}
}

// Login returns a fresh session token for a matching email/password pair.
// Errors: repositories.ErrUserNotFound, ErrIncorrectPassword, or a wrapped
// store/credential fault.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	ok, err := s.check(user.Password, password)
	if err != nil {
		return "", fmt.Errorf("login %s: %w", email, err)
	}
	if !ok {
		return "", ErrIncorrectPassword
	}

	return s.sessions.Issue(user.Email)
}

// Register stores a new user with a hashed password. Duplicate emails are
// not rejected here; callers check availability first.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hashed, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, Password: hashed}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EmailExists reports whether any user is registered under email.
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

// TokenTTL is the lifetime of tokens issued by Login.
func (s *AuthService) TokenTTL() int { return int(s.sessions.TTL().Seconds()) }
