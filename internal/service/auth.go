package service

// AuthService is the account logic:
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                               ↘ auth.CredentialVerifier
//
// There is no token or session. Login returns the account and nothing
// else; the client keeps it.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/auth"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

// invalidCredentials is the single message for every failed login.
const invalidCredentials = "invalid credentials"

// RegisterInput is a sign-up request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

// AuthService registers, authenticates and edits accounts.
type AuthService struct {
	users    repository.UserRepository
	verifier auth.CredentialVerifier
	mode     UpdateMode
	logger   *slog.Logger

	// decoy is a stored-form password checked when the email is unknown,
	// so both failure paths cost one Verify.
	decoyOnce sync.Once
	decoy     string
}

func NewAuthService(
	users repository.UserRepository,
	verifier auth.CredentialVerifier,
	mode UpdateMode,
	logger *slog.Logger,
) *AuthService {
	if mode == "" {
		mode = UpdateOverwrite
	}
	return &AuthService{
		users:    users,
		verifier: verifier,
		mode:     mode,
		logger:   logger,
	}
}

// Register creates an account with the "user" role. An email that is
// already registered is a Conflict and the existing row is left untouched.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	switch {
	case in.Email == "":
		return nil, apperror.ValidationFailed("email", "email is required")
	case in.Password == "":
		return nil, apperror.ValidationFailed("password", "password is required")
	case in.Name == "":
		return nil, apperror.ValidationFailed("name", "name is required")
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperror.Conflict("user", "email", in.Email)
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("checking email: %w", err)
	}

	stored, err := s.verifier.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Email:    in.Email,
		Password: stored,
		Name:     in.Name,
		Phone:    in.Phone,
		Role:     model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("id", user.ID))
	return user, nil
}

// Authenticate returns the account whose email and password match. An
// unknown email and a wrong password produce the same Unauthorized error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("email", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("looking up user: %w", err)
		}
		_ = s.verifier.Verify(s.decoyPassword(), password)
		s.logger.Info("login rejected", slog.String("reason", "unknown email"))
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	if err := s.verifier.Verify(user.Password, password); err != nil {
		if !errors.Is(err, auth.ErrMismatch) {
			s.logger.Error("stored credential unreadable",
				slog.Int64("id", user.ID),
				slog.String("error", err.Error()),
			)
		} else {
			s.logger.Info("login rejected", slog.String("reason", "password mismatch"))
		}
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	s.logger.Info("user logged in", slog.Int64("id", user.ID))
	return user, nil
}

// UpdateProfile changes name, email and phone. Password and role cannot be
// changed here.
//
// In UpdateOverwrite mode absent fields become NULL and an unknown id is
// not an error. In UpdateMerge mode absent fields keep their value and an
// unknown id is NotFound.
func (s *AuthService) UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "user id is required")
	}
	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		if trimmed == "" {
			return apperror.ValidationFailed("email", "email must not be empty")
		}
		patch.Email = &trimmed
	}

	if s.mode == UpdateMerge {
		existing, err := s.users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Name == nil {
			patch.Name = &existing.Name
		}
		if patch.Email == nil {
			patch.Email = &existing.Email
		}
		if patch.Phone == nil {
			patch.Phone = existing.Phone
		}
	}

	matched, err := s.users.UpdateProfile(ctx, id, patch)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return err
		}
		s.logger.Error("failed to update profile", slog.Int64("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("updating profile: %w", err)
	}
	if !matched {
		if s.mode == UpdateMerge {
			return apperror.NotFound("user", id)
		}
		s.logger.Debug("profile update matched no user", slog.Int64("id", id))
		return nil
	}

	s.logger.Info("profile updated", slog.Int64("id", id))
	return nil
}

// decoyPassword lazily stores a throwaway password in the verifier's
// format. bcrypt hashing is slow, so it happens on first use only.
func (s *AuthService) decoyPassword() string {
	s.decoyOnce.Do(func() {
		decoy, err := s.verifier.Hash("decoy-password-never-matches")
		if err != nil {
			decoy = ""
		}
		s.decoy = decoy
	})
	return s.decoy
}
