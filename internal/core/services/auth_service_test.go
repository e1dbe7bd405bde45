package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:    "test_success@baseline.app",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, input.Email, user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		input := RegisterInput{Email: "not-an-email", Password: "pass"}

		user, err := service.Register(context.Background(), input)

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		input := RegisterInput{Email: "valid@email.com", Password: "short"}

		user, err := service.Register(context.Background(), input)

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)

		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{Email: "duplicate@email.com", Password: "StrongPassword123!"}

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)

		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	newStoredUser := func(t *testing.T, email, password string) *domain.User {
		t.Helper()
		user, err := domain.NewUser("user-1", email)
		assert.NoError(t, err)
		assert.NoError(t, user.SetPassword(password))
		return user
	}

	t.Run("Success: Should login with correct credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		stored := newStoredUser(t, "login@baseline.app", "CorrectHorse1!")
		mockRepo.On("GetByEmail", ctx, "login@baseline.app").Return(stored, nil)

		user, err := service.Login(ctx, "login@baseline.app", "CorrectHorse1!")

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("Success: Should normalize email casing and spacing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		stored := newStoredUser(t, "login@baseline.app", "CorrectHorse1!")
		mockRepo.On("GetByEmail", ctx, "login@baseline.app").Return(stored, nil)

		user, err := service.Login(ctx, "  LOGIN@Baseline.App  ", "CorrectHorse1!")

		assert.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("Fail: Unknown email reports invalid credentials, not not-found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("GetByEmail", ctx, "ghost@baseline.app").Return(nil, domain.ErrUserNotFound)

		user, err := service.Login(ctx, "ghost@baseline.app", "whatever123")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("Fail: Wrong password reports invalid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		stored := newStoredUser(t, "login@baseline.app", "CorrectHorse1!")
		mockRepo.On("GetByEmail", ctx, "login@baseline.app").Return(stored, nil)

		user, err := service.Login(ctx, "login@baseline.app", "WrongHorse1!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}
