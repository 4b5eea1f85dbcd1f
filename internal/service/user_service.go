package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"quotes-api/internal/domain"
	"quotes-api/internal/repository"
)

// ErrInvalidCredentials indicates that provided login credentials are
// incorrect. Unknown usernames and wrong passwords both map here so the
// response cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

const maxUsernameLength = 150

// UserService describes identity operations: signup, login and token
// subject resolution.
type UserService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Signup validates the input, hashes the password and persists the user.
// Validation failures come back as *ValidationError with per-field
// messages; a duplicate username is reported the same way.
func (s *userService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	verr := &ValidationError{}
	if username == "" {
		verr.add("username", "username is required")
	} else if len(username) > maxUsernameLength {
		verr.add("username", "username must be at most 150 characters")
	}
	validatePassword(username, password, verr)
	if verr.hasErrors() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			verr.add("username", "username already taken")
			return nil, verr
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Authenticate verifies the password against the stored bcrypt hash and
// returns the matching user. Any failure is ErrInvalidCredentials.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
