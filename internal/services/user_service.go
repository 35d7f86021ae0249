package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/auth"
	"github.com/edu2job/edu2job-server/internal/models"
	"github.com/edu2job/edu2job-server/internal/repositories/users"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, input RegisterInput) (models.User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	College  string `json:"college" validate:"required"`
	Gender   string `json:"gender" validate:"required"`
	Degree   string `json:"degree" validate:"required"`
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  models.User
}

// TokenIssuer is satisfied by *auth.TokenService.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// UserService provides business logic for registration and login.
type UserService struct {
	repo   users.Repository
	hasher *auth.PasswordHasher
	tokens TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(repo users.Repository, hasher *auth.PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, hasher: hasher, tokens: tokens}
}

// Messages returned to clients for rejected auth input.
const (
	MsgAllFieldsRequired     = "All fields are required"
	MsgEmailPasswordRequired = "Email and password are required"
)

// Register creates a new account. An existing email is rejected without
// looking at the password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	if err := validateStruct(input, MsgAllFieldsRequired); err != nil {
		return models.User{}, err
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return models.User{}, ErrEmailInUse
	case !errors.Is(err, users.ErrNotFound):
		return models.User{}, fmt.Errorf("failed to look up email: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		College:      input.College,
		Gender:       input.Gender,
		Degree:       input.Degree,
	}

	// The store re-checks atomically; a concurrent registration lands here.
	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return models.User{}, ErrEmailInUse
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, &ValidationError{Message: MsgEmailPasswordRequired}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, users.ErrNotFound) {
		s.hasher.VerifyDummy(password)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to verify password for user %s: %w", user.ID, err)
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return LoginResult{Token: token, User: user}, nil
}

var _ UserServiceProvider = (*UserService)(nil)
