package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to every password set through the API.
const MinPasswordLength = 8

var (
	ErrUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailExists      = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrCannotDeleteSelf = fmt.Errorf("%w: you cannot delete your own account", ErrValidation)
)

// --- User DTOs ---

type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"` // Only changes the password when non-empty
	Role      *string `json:"role"`
	IsActive  *bool   `json:"is_active"`
}

// --- UserService Interface ---
type UserService interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
}

type userService struct {
	userRepo repositories.UserRepository
	db       *database.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo repositories.UserRepository, db *database.DB) UserService {
	return &userService{userRepo: repo, db: db}
}

func hashPassword(password string) (string, error) {
	if !utils.IsValidPasswordLength(password, MinPasswordLength) {
		return "", validationError("password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return "", validationError("email format is invalid")
	}
	return email, nil
}

func (s *userService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	u := &models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      strings.TrimSpace(req.Role),
		IsActive:  true,
	}
	if u.FirstName == "" || u.LastName == "" {
		return nil, validationError("first_name and last_name are required")
	}
	if u.Role == "" {
		u.Role = models.RoleAdmin
	}
	if !models.IsValidRole(u.Role) {
		return nil, validationError("role must be one of %s, %s", models.RoleAdmin, models.RoleEditor)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	u.Email = email

	if u.PasswordHash, err = hashPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateUser(ctx, s.db, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if u.FirstName = strings.TrimSpace(*req.FirstName); u.FirstName == "" {
			return nil, validationError("first_name cannot be empty")
		}
	}
	if req.LastName != nil {
		if u.LastName = strings.TrimSpace(*req.LastName); u.LastName == "" {
			return nil, validationError("last_name cannot be empty")
		}
	}
	if req.Email != nil {
		if u.Email, err = normalizeEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			return nil, validationError("role must be one of %s, %s", models.RoleAdmin, models.RoleEditor)
		}
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if u.PasswordHash, err = hashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateUser(ctx, s.db, u); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrEmailExists
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.userRepo.DeleteUser(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
