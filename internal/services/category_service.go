package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/storage"
	"restaurant_backend/pkg/utils"
)

var (
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", ErrNotFound)
)

// CategoryInUseError is returned when menu items still reference a category.
type CategoryInUseError struct {
	MenuItems int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category is used by %d menu item(s)", e.MenuItems)
}

// Is makes CategoryInUseError match ErrConflict.
func (e *CategoryInUseError) Is(target error) bool {
	return target == ErrConflict
}

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const defaultColor = "#000000"

// --- Category DTOs ---

// CategoryRequest is bound from JSON or multipart form fields. Nil fields are left unchanged on update.
type CategoryRequest struct {
	Name         *string `json:"name" form:"name"`
	Description  *string `json:"description" form:"description"`
	Color        *string `json:"color" form:"color"`
	Icon         *string `json:"icon" form:"icon"`
	DisplayOrder *int    `json:"display_order" form:"display_order"`
}

// --- CategoryService Interface ---
type CategoryService interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, req CategoryRequest, image *multipart.FileHeader) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req CategoryRequest, image *multipart.FileHeader) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	images       ImageProcessor
	db           *database.DB
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, images ImageProcessor, db *database.DB) CategoryService {
	return &categoryService{categoryRepo: repo, images: images, db: db}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	cat, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return cat, nil
}

// applyCategoryRequest merges req into cat and validates the result.
func applyCategoryRequest(cat *models.Category, req CategoryRequest) error {
	if req.Name != nil {
		cat.Name = strings.TrimSpace(*req.Name)
	}
	if cat.Name == "" {
		return validationError("name is required")
	}
	if req.Description != nil {
		cat.Description = utils.NewNullString(*req.Description)
	}
	if req.Color != nil {
		color := strings.TrimSpace(*req.Color)
		if color == "" {
			color = defaultColor
		}
		if !hexColorRegex.MatchString(color) {
			return validationError("color must be a hex value like #a1b2c3")
		}
		cat.Color = color
	}
	if cat.Color == "" {
		cat.Color = defaultColor
	}
	if req.Icon != nil {
		cat.Icon = utils.NewNullString(*req.Icon)
	}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req CategoryRequest, image *multipart.FileHeader) (*models.Category, error) {
	cat := &models.Category{}
	if err := applyCategoryRequest(cat, req); err != nil {
		return nil, err
	}

	if image != nil {
		stored, err := processImage(ctx, s.images, image, storage.ProfileCategories)
		if err != nil {
			return nil, err
		}
		cat.ImagePath = &stored.Path
	}

	if err := s.categoryRepo.CreateCategory(ctx, s.db, cat); err != nil {
		removeImage(ctx, s.images, cat.ImagePath)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return cat, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req CategoryRequest, image *multipart.FileHeader) (*models.Category, error) {
	cat, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCategoryRequest(cat, req); err != nil {
		return nil, err
	}

	oldImage := cat.ImagePath
	if image != nil {
		stored, err := processImage(ctx, s.images, image, storage.ProfileCategories)
		if err != nil {
			return nil, err
		}
		cat.ImagePath = &stored.Path
	}

	if err := s.categoryRepo.UpdateCategory(ctx, s.db, cat); err != nil {
		if image != nil {
			removeImage(ctx, s.images, cat.ImagePath)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if image != nil {
		removeImage(ctx, s.images, oldImage)
	}
	return cat, nil
}

// DeleteCategory refuses while menu items reference the category. The foreign key
// catches items added between the count and the delete.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	cat, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.categoryRepo.CountMenuItems(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count category menu items: %w", err)
	}
	if count > 0 {
		return &CategoryInUseError{MenuItems: count}
	}

	if err := s.categoryRepo.DeleteCategory(ctx, s.db, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repositories.ErrForeignKey):
			count, countErr := s.categoryRepo.CountMenuItems(ctx, id)
			if countErr != nil || count == 0 {
				count = 1
			}
			return &CategoryInUseError{MenuItems: count}
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	removeImage(ctx, s.images, cat.ImagePath)
	return nil
}
