package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/storage"
	"restaurant_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	ErrMenuItemNotFound = fmt.Errorf("%w: menu item not found", ErrNotFound)
	ErrUnknownCategory  = fmt.Errorf("%w: category does not exist", ErrValidation)
)

// --- Menu Item DTOs ---

// MenuItemRequest is bound from multipart form fields. An empty category_id clears the category.
type MenuItemRequest struct {
	Name        *string          `form:"name" json:"name"`
	Description *string          `form:"description" json:"description"`
	Price       *decimal.Decimal `form:"price" json:"price"`
	CategoryID  *string          `form:"category_id" json:"category_id"`
	Available   *bool            `form:"available" json:"available"`
	Featured    *bool            `form:"featured" json:"featured"`
}

// --- MenuService Interface ---
type MenuService interface {
	GetMenuItems(ctx context.Context, filters models.MenuItemFilters) ([]models.MenuItem, error)
	GetMenuItemByID(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, req MenuItemRequest, image *multipart.FileHeader) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, req MenuItemRequest, image *multipart.FileHeader) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

type menuService struct {
	menuRepo repositories.MenuItemRepository
	images   ImageProcessor
	db       *database.DB
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(repo repositories.MenuItemRepository, images ImageProcessor, db *database.DB) MenuService {
	return &menuService{menuRepo: repo, images: images, db: db}
}

func (s *menuService) GetMenuItems(ctx context.Context, filters models.MenuItemFilters) ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetMenuItems(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return items, nil
}

func (s *menuService) GetMenuItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func applyMenuItemRequest(item *models.MenuItem, req MenuItemRequest, isCreate bool) error {
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if item.Name == "" {
		return validationError("name is required")
	}
	if req.Price != nil {
		item.Price = models.RoundMoney(*req.Price)
	} else if isCreate {
		return validationError("price is required")
	}
	if item.Price.IsNegative() {
		return validationError("price cannot be negative")
	}
	if req.Description != nil {
		item.Description = utils.NewNullString(*req.Description)
	}
	if req.CategoryID != nil {
		categoryID, err := optionalID("category_id", *req.CategoryID)
		if err != nil {
			return err
		}
		item.CategoryID = categoryID
		item.CategoryName = nil
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}
	return nil
}

// mapMenuWriteError turns storage failures on insert/update into service errors.
func mapMenuWriteError(err error, action string) error {
	switch {
	case errors.Is(err, repositories.ErrForeignKey):
		return ErrUnknownCategory
	case errors.Is(err, repositories.ErrNotFound) && action == "update":
		return ErrMenuItemNotFound
	}
	return fmt.Errorf("failed to %s menu item: %w", action, err)
}

func (s *menuService) CreateMenuItem(ctx context.Context, req MenuItemRequest, image *multipart.FileHeader) (*models.MenuItem, error) {
	item := &models.MenuItem{Available: true}
	if err := applyMenuItemRequest(item, req, true); err != nil {
		return nil, err
	}

	if image != nil {
		stored, err := processImage(ctx, s.images, image, storage.ProfileMenu)
		if err != nil {
			return nil, err
		}
		item.ImagePath = &stored.Path
	}

	if err := s.menuRepo.CreateMenuItem(ctx, s.db, item); err != nil {
		removeImage(ctx, s.images, item.ImagePath)
		return nil, mapMenuWriteError(err, "create")
	}
	return s.reload(ctx, item), nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id string, req MenuItemRequest, image *multipart.FileHeader) (*models.MenuItem, error) {
	item, err := s.GetMenuItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyMenuItemRequest(item, req, false); err != nil {
		return nil, err
	}

	oldImage := item.ImagePath
	if image != nil {
		stored, err := processImage(ctx, s.images, image, storage.ProfileMenu)
		if err != nil {
			return nil, err
		}
		item.ImagePath = &stored.Path
	}

	if err := s.menuRepo.UpdateMenuItem(ctx, s.db, item); err != nil {
		if image != nil {
			removeImage(ctx, s.images, item.ImagePath)
		}
		return nil, mapMenuWriteError(err, "update")
	}
	if image != nil {
		removeImage(ctx, s.images, oldImage)
	}
	return s.reload(ctx, item), nil
}

// reload fetches the joined row so the response carries the category name.
func (s *menuService) reload(ctx context.Context, item *models.MenuItem) *models.MenuItem {
	fresh, err := s.menuRepo.GetMenuItemByID(ctx, item.ID)
	if err != nil {
		utils.LogWarn(err, "Failed to reload menu item after write", map[string]interface{}{"id": item.ID})
		return item
	}
	return fresh
}

func (s *menuService) DeleteMenuItem(ctx context.Context, id string) error {
	imagePath, err := s.menuRepo.DeleteMenuItem(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	removeImage(ctx, s.images, imagePath)
	return nil
}
