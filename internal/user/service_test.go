package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockTokenStore is an in-process stand-in for the redis-backed store
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Issue(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Redeem(ctx context.Context, token string) (uint, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint), args.Error(1)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("SECRET_KEY", "test-secret")

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenStore))

		mockRepo.On("Create", ctx, "new@example.com", mock.AnythingOfType("string"), "USER").
			Return(&User{ID: 1, Email: "new@example.com", Role: RoleUser, CreatedAt: time.Now()}, nil).Once()

		token, u, err := svc.Register(ctx, "new@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenStore))

		mockRepo.On("Create", ctx, "taken@example.com", mock.AnythingOfType("string"), "USER").
			Return(nil, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)).Once()

		_, _, err := svc.Register(ctx, "taken@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("SECRET_KEY", "test-secret")

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	stored := &User{ID: 1, Email: "user@example.com", Password: hash, Role: RoleUser}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenStore))

		mockRepo.On("FindByEmail", ctx, "user@example.com").Return(stored, nil).Once()

		token, u, err := svc.Login(ctx, "user@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenStore))

		mockRepo.On("FindByEmail", ctx, "user@example.com").Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, "user@example.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email gets the same error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenStore))

		mockRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Issues a token for a known account", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockTokens := new(MockTokenStore)
		svc := NewService(mockRepo, mockTokens)

		mockRepo.On("FindByEmail", ctx, "user@example.com").
			Return(&User{ID: 7, Email: "user@example.com"}, nil).Once()
		mockTokens.On("Issue", ctx, uint(7)).Return("reset-token", nil).Once()

		token, err := svc.RequestPasswordReset(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "reset-token", token)
	})

	t.Run("Unknown account", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockTokens := new(MockTokenStore)
		svc := NewService(mockRepo, mockTokens)

		mockRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, err := svc.RequestPasswordReset(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
		mockTokens.AssertNotCalled(t, "Issue")
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockTokens := new(MockTokenStore)
		svc := NewService(mockRepo, mockTokens)

		mockTokens.On("Redeem", ctx, "reset-token").Return(uint(7), nil).Once()
		mockRepo.On("UpdatePassword", ctx, uint(7), mock.AnythingOfType("string")).Return(nil).Once()

		err := svc.ResetPassword(ctx, "reset-token", "new-s3cret")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Expired or reused token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockTokens := new(MockTokenStore)
		svc := NewService(mockRepo, mockTokens)

		mockTokens.On("Redeem", ctx, "stale-token").Return(uint(0), ErrInvalidResetToken).Once()

		err := svc.ResetPassword(ctx, "stale-token", "new-s3cret")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
		mockRepo.AssertNotCalled(t, "UpdatePassword")
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, new(MockTokenStore))

	mockRepo.On("FindByID", ctx, uint(99)).Return(nil, nil).Once()

	_, err := svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
