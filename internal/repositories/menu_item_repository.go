package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"

	"github.com/google/uuid"
)

// MenuItemRepository defines the interface for menu item database operations.
type MenuItemRepository interface {
	GetMenuItems(ctx context.Context, filters models.MenuItemFilters) ([]models.MenuItem, error)
	GetMenuItemByID(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, executor SQLExecutor, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, executor SQLExecutor, item *models.MenuItem) error
	// DeleteMenuItem returns the image path of the deleted row so the file can be removed.
	DeleteMenuItem(ctx context.Context, executor SQLExecutor, id string) (*string, error)
}

type menuItemRepository struct {
	db *database.DB
}

// NewMenuItemRepository creates a new instance of MenuItemRepository.
func NewMenuItemRepository(db *database.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

const menuItemSelect = `SELECT mi.id, mi.name, mi.description, mi.price, mi.category_id, c.name,
	       mi.image_path, mi.available, mi.featured, mi.created_at, mi.updated_at
	FROM menu_items mi
	LEFT JOIN categories c ON c.id = mi.category_id`

func scanMenuItem(row scanner) (*models.MenuItem, error) {
	var item models.MenuItem
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID, &item.CategoryName,
		&item.ImagePath, &item.Available, &item.Featured, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMenuItems lists menu items, newest first, narrowed by the optional filters.
func (r *menuItemRepository) GetMenuItems(ctx context.Context, filters models.MenuItemFilters) ([]models.MenuItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(menuItemSelect)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("mi.category_id = $%d", argCount))
		args = append(args, *filters.CategoryID)
		argCount++
	}
	if filters.Available != nil {
		conditions = append(conditions, fmt.Sprintf("mi.available = $%d", argCount))
		args = append(args, *filters.Available)
		argCount++
	}
	if filters.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("mi.featured = $%d", argCount))
		args = append(args, *filters.Featured)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY mi.created_at DESC")

	rows, err := r.db.Execute(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, classify(err, "listing menu items")
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, classify(err, "scanning menu item")
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterating menu items")
	}
	return items, nil
}

// GetMenuItemByID retrieves a menu item with its category name.
func (r *menuItemRepository) GetMenuItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := scanMenuItem(r.db.QueryRowContext(ctx, menuItemSelect+` WHERE mi.id = $1`, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("getting menu item %s", id))
	}
	return item, nil
}

// CreateMenuItem inserts a menu item. A missing category surfaces as ErrForeignKey.
func (r *menuItemRepository) CreateMenuItem(ctx context.Context, executor SQLExecutor, item *models.MenuItem) error {
	query := `INSERT INTO menu_items (id, name, description, price, category_id, image_path, available, featured, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          RETURNING created_at, updated_at`

	item.ID = uuid.NewString()
	err := executor.QueryRowContext(ctx, query,
		item.ID, item.Name, item.Description, item.Price, item.CategoryID, item.ImagePath,
		item.Available, item.Featured, time.Now(),
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return classify(err, "creating menu item")
	}
	return nil
}

// UpdateMenuItem overwrites the mutable columns of a menu item.
func (r *menuItemRepository) UpdateMenuItem(ctx context.Context, executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items SET name = $1, description = $2, price = $3, category_id = $4, image_path = $5,
	          available = $6, featured = $7, updated_at = $8
	          WHERE id = $9
	          RETURNING created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		item.Name, item.Description, item.Price, item.CategoryID, item.ImagePath,
		item.Available, item.Featured, time.Now(), item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return classify(err, fmt.Sprintf("updating menu item %s", item.ID))
	}
	return nil
}

// DeleteMenuItem removes a menu item.
func (r *menuItemRepository) DeleteMenuItem(ctx context.Context, executor SQLExecutor, id string) (*string, error) {
	var imagePath *string
	err := executor.QueryRowContext(ctx, `DELETE FROM menu_items WHERE id = $1 RETURNING image_path`, id).Scan(&imagePath)
	if err != nil {
		return nil, classify(err, fmt.Sprintf("deleting menu item %s", id))
	}
	return imagePath, nil
}
