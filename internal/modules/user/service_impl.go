package user

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.New(apperr.Validation, "invalid email")
	}
	if len(password) < 6 {
		return nil, apperr.New(apperr.Validation, "password must be at least 6 characters")
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.BusinessRule, "email already registered")
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to check email")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to hash password")
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Type:         TypeCustomer,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create user")
	}
	return user, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, name, email string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email != "" && email != user.Email {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperr.New(apperr.Validation, "invalid email")
		}
		if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
			return nil, apperr.New(apperr.BusinessRule, "email already registered")
		} else if !apperr.IsKind(err, apperr.NotFound) {
			return nil, apperr.Wrap(apperr.Internal, err, "failed to check email")
		}
		user.Email = email
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to update user")
	}
	return user, nil
}
