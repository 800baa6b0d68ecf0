// Package service provides sign-in and sign-up business logic,
// delegating persistence to a CredentialRepository.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/GophForms/internal/models"
	"github.com/atinyakov/GophForms/internal/validate"
	"go.uber.org/zap"
)

// Messages produced by the store checks.
const (
	MsgAccountNotFound   = "Account does not exist"
	MsgIncorrectPassword = "Incorrect password"
	MsgEmailTaken        = "Email already registered"
	MsgPasswordMismatch  = "Passwords do not match"
)

// CredentialRepository defines the persistence operations
// required by the authentication service.
type CredentialRepository interface {
	// FindByEmail returns the credential stored under email,
	// or models.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (models.Credential, error)
	// Insert appends a credential, or returns models.ErrAlreadyExists
	// without changing the store when the email is taken.
	Insert(ctx context.Context, cred models.Credential) error
}

// AuthService runs the sign-in and sign-up checks against a CredentialRepository.
type AuthService struct {
	// repo performs the data-layer operations.
	repo CredentialRepository
	log  *zap.Logger
}

// NewAuthService constructs a new AuthService using the provided repository.
// A nil logger is replaced with a no-op one.
func NewAuthService(repo CredentialRepository, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{repo: repo, log: log}
}

// SignIn checks, in order: email present, email well-formed, account exists,
// password policy, password matches. The first failing check is returned as a
// field error and later checks are skipped. The error return is reserved for
// repository faults.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (models.Result, error) {
	if msg := validate.Email(email); msg != "" {
		return models.Fail(models.FieldEmail, msg), nil
	}

	cred, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		s.log.Debug("sign-in for unknown account", zap.String("email", email))
		return models.Fail(models.FieldEmail, MsgAccountNotFound), nil
	}
	if err != nil {
		s.log.Error("failed to look up credential", zap.String("email", email), zap.Error(err))
		return models.Result{}, fmt.Errorf("sign in: %w", err)
	}

	if msg := validate.Password(password); msg != "" {
		return models.Fail(models.FieldPassword, msg), nil
	}
	if cred.Password != password {
		s.log.Info("sign-in rejected", zap.String("email", email), zap.String("reason", "incorrect password"))
		return models.Fail(models.FieldPassword, MsgIncorrectPassword), nil
	}

	s.log.Info("signed in", zap.String("email", email))
	return models.Result{Email: email}, nil
}

// SignUp checks, in order: email present, email well-formed, email not yet
// registered, password policy, confirmation matches. Only when every check
// passes is the credential inserted. Losing an insert race to another
// registration of the same email is reported like any taken email.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirm string) (models.Result, error) {
	if msg := validate.Email(email); msg != "" {
		return models.Fail(models.FieldEmail, msg), nil
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return models.Fail(models.FieldEmail, MsgEmailTaken), nil
	case !errors.Is(err, models.ErrNotFound):
		s.log.Error("failed to look up credential", zap.String("email", email), zap.Error(err))
		return models.Result{}, fmt.Errorf("sign up: %w", err)
	}

	if msg := validate.Password(password); msg != "" {
		return models.Fail(models.FieldPassword, msg), nil
	}
	if password != confirm {
		return models.Fail(models.FieldConfirmPassword, MsgPasswordMismatch), nil
	}

	err = s.repo.Insert(ctx, models.Credential{Email: email, Password: password})
	if errors.Is(err, models.ErrAlreadyExists) {
		s.log.Warn("concurrent registration lost", zap.String("email", email))
		return models.Fail(models.FieldEmail, MsgEmailTaken), nil
	}
	if err != nil {
		s.log.Error("failed to save credential", zap.String("email", email), zap.Error(err))
		return models.Result{}, fmt.Errorf("sign up: %w", err)
	}

	s.log.Info("registered", zap.String("email", email))
	return models.Result{Email: email}, nil
}
