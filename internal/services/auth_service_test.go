package services

import (
	"context"
	"errors"
	"testing"

	"github.com/interviewprep/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user                   *models.User
	getErr                 error
	createErr              error
	existsByEmailResult    bool
	existsByEmailError     error
	existsByUsernameResult bool
	existsByUsernameError  error
	created                *models.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmailResult, m.existsByEmailError
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.existsByUsernameResult, m.existsByUsernameError
}

// mockTokenIssuer is a mock implementation of TokenIssuer
type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) GenerateToken(userID int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func TestAuthService_Register(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name          string
		req           *models.RegisterRequest
		userRepo      *mockUserRepository
		expectedError error
	}{
		{
			name: "success",
			req: &models.RegisterRequest{
				Username: "testuser",
				Email:    "Test@Example.com",
				Password: "secret123",
			},
			userRepo: &mockUserRepository{},
		},
		{
			name: "invalid email",
			req: &models.RegisterRequest{
				Username: "testuser",
				Email:    "not-an-email",
				Password: "secret123",
			},
			userRepo:      &mockUserRepository{},
			expectedError: models.ErrInvalidInput,
		},
		{
			name: "password too short",
			req: &models.RegisterRequest{
				Username: "testuser",
				Email:    "test@example.com",
				Password: "short",
			},
			userRepo:      &mockUserRepository{},
			expectedError: models.ErrInvalidInput,
		},
		{
			name: "email already registered",
			req: &models.RegisterRequest{
				Username: "testuser",
				Email:    "taken@example.com",
				Password: "secret123",
			},
			userRepo:      &mockUserRepository{existsByEmailResult: true},
			expectedError: models.ErrConflict,
		},
		{
			name: "username already taken",
			req: &models.RegisterRequest{
				Username: "takenuser",
				Email:    "test@example.com",
				Password: "secret123",
			},
			userRepo:      &mockUserRepository{existsByUsernameResult: true},
			expectedError: models.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.userRepo, &mockTokenIssuer{token: "signed-token"}, logger)

			resp, err := svc.Register(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed-token", resp.Token)
			assert.Equal(t, 1, resp.User.ID)
			// Email is normalized to lowercase before storage
			assert.Equal(t, "test@example.com", resp.User.Email)
			// The hash must verify against the original password
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tt.userRepo.created.PasswordHash), []byte(tt.req.Password)))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	logger := zap.NewNop()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           1,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name          string
		req           *models.LoginRequest
		userRepo      *mockUserRepository
		expectedError error
	}{
		{
			name:     "success with email",
			req:      &models.LoginRequest{Login: "test@example.com", Password: "secret123"},
			userRepo: &mockUserRepository{user: storedUser},
		},
		{
			name:     "success with username",
			req:      &models.LoginRequest{Login: "testuser", Password: "secret123"},
			userRepo: &mockUserRepository{user: storedUser},
		},
		{
			name:          "wrong password",
			req:           &models.LoginRequest{Login: "testuser", Password: "wrong"},
			userRepo:      &mockUserRepository{user: storedUser},
			expectedError: models.ErrUnauthorized,
		},
		{
			name:          "unknown user",
			req:           &models.LoginRequest{Login: "nobody", Password: "secret123"},
			userRepo:      &mockUserRepository{getErr: models.ErrNotFound},
			expectedError: models.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.userRepo, &mockTokenIssuer{token: "signed-token"}, logger)

			resp, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "signed-token", resp.Token)
			assert.Equal(t, storedUser.ID, resp.User.ID)
		})
	}
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{getErr: errors.New("database error")}, &mockTokenIssuer{token: "t"}, zap.NewNop())

	_, err := svc.Login(context.Background(), &models.LoginRequest{Login: "testuser", Password: "secret123"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrUnauthorized)
}
