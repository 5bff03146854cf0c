package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/interviewprep/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines methods for user data access
type UserRepository interface {
	// Create inserts a new user.
	//
	// Returns models.ErrConflict if the username or email is taken.
	Create(ctx context.Context, user *models.User) error
	// GetByEmailOrUsername retrieves a user by email or username.
	//
	// Returns models.ErrNotFound if no user matches.
	GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error)
	// GetByID retrieves a user by ID.
	//
	// Returns models.ErrNotFound if no user has the ID.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// ExistsByEmail checks if a user exists with the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByUsername checks if a user exists with the given username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// TokenIssuer issues bearer tokens for authenticated users
type TokenIssuer interface {
	// GenerateToken creates a signed access token carrying the user ID.
	GenerateToken(userID int) (string, error)
}

// authService implements registration, login, and identity echo
type authService struct {
	userRepo UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokens TokenIssuer, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+$`)

// Register creates a new user account and returns a token for it
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" {
		return nil, fmt.Errorf("username is required: %w", models.ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email address: %w", models.ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", models.ErrInvalidInput)
	}

	// Check both before inserting for a precise message; the unique
	// constraints still back this up under concurrency.
	if taken, err := s.userRepo.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email already registered: %w", models.ErrConflict)
	}
	if taken, err := s.userRepo.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("username already taken: %w", models.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err), zap.Int("user_id", user.ID))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login exchanges credentials for a token. The login value may be an email
// or a username.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmailOrUsername(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("failed to generate token", zap.Error(err), zap.Int("user_id", user.ID))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// GetUser returns the user for an already-authenticated identity
func (s *authService) GetUser(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
