package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/book-tracker-be/internal/auth"
	"github.com/isdelr/book-tracker-be/internal/models"
	"github.com/isdelr/book-tracker-be/internal/storage"
	"github.com/rs/zerolog/log"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, username, email, password string) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides registration and credential checks.
type UserService struct {
	users storage.UserRepository
	cost  int
}

// NewUserService creates a new UserService hashing at auth.PasswordCost.
func NewUserService(users storage.UserRepository) *UserService {
	return &UserService{users: users, cost: auth.PasswordCost}
}

// WithPasswordCost overrides the bcrypt cost.
func (s *UserService) WithPasswordCost(cost int) *UserService {
	s.cost = cost
	return s
}

// CreateUser registers a new account. The username and email must both be unused.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, validationError("username, email, password required")
	}
	if len(password) > auth.MaxPasswordBytes {
		return models.User{}, errPasswordTooLong
	}

	_, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return models.User{}, errUserExists
	case !errors.Is(err, storage.ErrNotFound):
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password, s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// Lost a race with a concurrent registration.
			return models.User{}, errUserExists
		}
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// AuthenticateUser verifies a user's credentials. Unknown emails and wrong
// passwords fail identically.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, validationError("email, password required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Ctx(ctx).Info().Str("email", email).Msg("Login for unknown email")
			return models.User{}, errInvalidCredentials
		}
		return models.User{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		log.Ctx(ctx).Info().Str("user_id", user.ID).Msg("Login with wrong password")
		return models.User{}, errInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, errNotFound
		}
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
