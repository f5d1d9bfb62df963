package auth

import (
	"context"
	"errors"
	"log"

	"carremote/auth-service/internal/models"
	"carremote/auth-service/internal/store"
	"carremote/auth-service/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// Service implements registration and login on top of the credential store
// and mints session tokens. It holds no mutable state of its own; every
// request is independent.
type Service struct {
	store  store.Store
	tokens *token.Manager
}

func NewService(store store.Store, tokens *token.Manager) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates a user for email and returns it with a fresh session
// token. There is no separate existence check before the insert; the store's
// unique constraint decides, so two concurrent registrations for the same
// email cannot both succeed.
func (s *Service) Register(ctx context.Context, email, password string) (models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	user, err := s.store.CreateUser(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return models.User{}, "", ErrAlreadyExists
		}
		return models.User{}, "", storeFailure("create user", err)
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, signed, nil
}

// Login verifies the email/password pair and returns the user with a fresh
// session token.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, string, error) {
	cred, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same error as a wrong password so callers cannot probe
			// which emails are registered.
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", storeFailure("get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(cred.User)
	if err != nil {
		return models.User{}, "", err
	}
	return cred.User, signed, nil
}

// VerifyToken validates a previously issued session token.
func (s *Service) VerifyToken(raw string) (token.Claims, error) {
	return s.tokens.Verify(raw)
}

// storeFailure logs the storage detail server-side and surfaces only the
// transient-unavailable sentinel to callers.
func storeFailure(op string, err error) error {
	log.Printf("store error op=%q err=%v", op, err)
	return ErrUnavailable
}
