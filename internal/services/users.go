package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/models"
	"github.com/freshchat-app/freshchat-backend/internal/store"
)

// UserService is the user registry: registration with duplicate protection
// and listing.
type UserService struct {
	users  store.UserStore
	mailer Mailer

	Now func() time.Time
}

func NewUserService(users store.UserStore, mailer Mailer) *UserService {
	return &UserService{users: users, mailer: mailer, Now: time.Now}
}

// Register persists a new user and returns the stored form. Fails with
// ErrConflict when the (normalized) email is already registered. The welcome
// email is best-effort and only logged on failure.
func (s *UserService) Register(ctx context.Context, in *models.User) (*models.User, error) {
	email := NormalizeEmail(in.Email)
	if in.Name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup user: %v", ErrDependency, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
	}

	user := models.NewUser(in.Name, email, s.Now())
	user.Avatar = in.Avatar
	user.About = in.About
	user.Phone = in.Phone

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrDependency, err)
	}

	go func(to, name string) {
		if err := s.mailer.SendWelcomeEmail(to, name); err != nil {
			log.Printf("failed to send welcome email to %s: %v", to, err)
		}
	}(user.Email, user.Name)

	return user, nil
}

// List returns all known users in storage order, optionally filtered by a
// case-insensitive substring match on name or email. No pagination.
func (s *UserService) List(ctx context.Context, search string) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrDependency, err)
	}
	return users, nil
}
