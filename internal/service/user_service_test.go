package service_test

import (
	"auth-web-server/internal/model"
	"auth-web-server/internal/repository"
	"auth-web-server/internal/security"
	"auth-web-server/internal/service"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockCacheRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)

	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
		return user.Email == "new@example.com" &&
			user.Role == "user" &&
			user.Active &&
			security.CheckPassword("Strong1pass", user.PasswordHash)
	})).Return(&model.User{ID: 7, Email: "new@example.com", Role: "user", Active: true}, nil)

	userService := service.NewUserService(userRepo, cacheRepo)
	created, err := userService.Register(context.Background(), "new@example.com", "Петр Петров", "Strong1pass")

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	userRepo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)

	userRepo.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, repository.ErrEmailTaken)

	userService := service.NewUserService(userRepo, cacheRepo)
	_, err := userService.Register(context.Background(), "taken@example.com", "", "Strong1pass")

	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestRegister_WeakPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)

	userService := service.NewUserService(userRepo, cacheRepo)

	testCases := []struct {
		name     string
		password string
	}{
		{"слишком короткий", "Ab1"},
		{"один регистр", "alllower1pass"},
		{"без цифр", "NoDigitsHere"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := userService.Register(context.Background(), "new@example.com", "", tc.password)
			assert.Error(t, err)
		})
	}

	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestGetUser_CacheHit(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)

	cached := &model.User{ID: 1, Email: "user@example.com", Active: true}
	cacheRepo.On("GetUser", mock.Anything, int64(1)).Return(cached, nil)

	userService := service.NewUserService(userRepo, cacheRepo)
	user, err := userService.GetUser(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, cached, user)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetUser_CacheMiss(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)

	fromDB := &model.User{ID: 1, Email: "user@example.com", Active: true}
	cacheRepo.On("GetUser", mock.Anything, int64(1)).Return(nil, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(fromDB, nil)
	cacheRepo.On("SetUser", mock.Anything, fromDB).Return(nil)

	userService := service.NewUserService(userRepo, cacheRepo)
	user, err := userService.GetUser(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, fromDB, user)
	cacheRepo.AssertExpectations(t)
}

func TestGetUser_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)

	cacheRepo.On("GetUser", mock.Anything, int64(42)).Return(nil, nil)
	userRepo.On("FindByID", mock.Anything, int64(42)).
		Return(nil, repository.ErrUserNotFound)

	userService := service.NewUserService(userRepo, cacheRepo)
	_, err := userService.GetUser(context.Background(), 42)

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
