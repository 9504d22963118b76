package services_test

import (
	"context"
	"testing"

	"restaurant_backend/internal/mocks"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	t.Run("hashes password and lowercases email", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := services.NewUserService(repo, nil)
		repo.On("CreateUser", mock.Anything, mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		u, err := svc.CreateUser(context.Background(), services.CreateUserRequest{
			FirstName: "Grace", LastName: "Hopper", Email: " Grace@Example.COM ", Password: "cobol-1959", Role: models.RoleEditor,
		})
		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", u.Email)
		assert.True(t, u.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("cobol-1959")))
	})

	t.Run("short password", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := services.NewUserService(repo, nil)

		_, err := svc.CreateUser(context.Background(), services.CreateUserRequest{
			FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "short",
		})
		assert.ErrorIs(t, err, services.ErrValidation)
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := services.NewUserService(new(mocks.MockUserRepository), nil)
		_, err := svc.CreateUser(context.Background(), services.CreateUserRequest{
			FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "cobol-1959", Role: "owner",
		})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := services.NewUserService(repo, nil)
		repo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrDuplicateKey)

		_, err := svc.CreateUser(context.Background(), services.CreateUserRequest{
			FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "cobol-1959",
		})
		assert.ErrorIs(t, err, services.ErrEmailExists)
		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestUpdateUserPasswordOnlyWhenGiven(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	svc := services.NewUserService(repo, nil)

	repo.On("GetUserByID", mock.Anything, "u-1").Return(&models.User{
		ID: "u-1", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", PasswordHash: "keep-me", Role: models.RoleAdmin, IsActive: true,
	}, nil)
	repo.On("UpdateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.PasswordHash == "keep-me" && u.Role == models.RoleEditor
	})).Return(nil)

	_, err := svc.UpdateUser(context.Background(), "u-1", services.UpdateUserRequest{Role: strPtr(models.RoleEditor), Password: strPtr("")})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := services.NewUserService(repo, nil)

		err := svc.DeleteUser(context.Background(), "u-1", "u-1")
		assert.ErrorIs(t, err, services.ErrCannotDeleteSelf)
		repo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := services.NewUserService(repo, nil)
		repo.On("DeleteUser", mock.Anything, mock.Anything, "u-2").Return(nil)

		require.NoError(t, svc.DeleteUser(context.Background(), "u-1", "u-2"))
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := services.NewUserService(repo, nil)
		repo.On("DeleteUser", mock.Anything, mock.Anything, "u-9").Return(repositories.ErrNotFound)

		assert.ErrorIs(t, svc.DeleteUser(context.Background(), "u-1", "u-9"), services.ErrUserNotFound)
	})
}
