package service

import (
	"context"
	"errors"

	"taskhub_backend/internal/domain"
	"taskhub_backend/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService covers registration, login and the account confirmation /
// password reset token flows.
type UserService struct {
	users  UserRepository
	mailer Mailer
}

func NewUserService(users UserRepository, mailer Mailer) *UserService {
	return &UserService{users: users, mailer: mailer}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unconfirmed account and sends the confirmation email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return domain.Invalid("name, email and password are required")
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return domain.Invalid("user already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Token:    uuid.NewString(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}

	s.mailer.SendConfirmation(u.Email, u.Name, u.Token)
	return nil
}

// Login verifies the credential and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.Invalid("user does not exist, sign up to log in")
		}
		return nil, "", err
	}

	if !u.Confirmed {
		return nil, "", domain.Invalid("confirm your account to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", domain.Invalid("incorrect password")
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Confirm activates the account behind a one-time token and clears it.
func (s *UserService) Confirm(ctx context.Context, token string) error {
	u, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("invalid token")
		}
		return err
	}

	u.Confirmed = true
	u.Token = ""
	return s.users.Update(ctx, u)
}

// ForgotPassword re-issues the one-time token and sends the reset email.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("user does not exist")
		}
		return err
	}

	u.Token = uuid.NewString()
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.mailer.SendPasswordReset(u.Email, u.Name, u.Token)
	return nil
}

// CheckResetToken reports whether a reset token is still live.
func (s *UserService) CheckResetToken(ctx context.Context, token string) error {
	if _, err := s.users.GetByToken(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("token is invalid or has expired")
		}
		return err
	}
	return nil
}

// ResetPassword sets a new credential behind a live reset token and clears
// the token.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return domain.Invalid("password is required")
	}

	u, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("invalid token")
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hash)
	u.Token = ""
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	logger.Info("password reset", "user_id", u.ID)
	return nil
}

// Profile returns the public projection of the authenticated user.
func (s *UserService) Profile(ctx context.Context, userID int64) (domain.UserRef, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserRef{}, domain.NotFound("user not found")
		}
		return domain.UserRef{}, err
	}
	return u.Ref(), nil
}
