package repositories

import (
	"context"
	"fmt"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for menu category database operations.
type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, executor SQLExecutor, category *models.Category) error
	UpdateCategory(ctx context.Context, executor SQLExecutor, category *models.Category) error
	DeleteCategory(ctx context.Context, executor SQLExecutor, id string) error
	CountMenuItems(ctx context.Context, categoryID string) (int, error)
}

type categoryRepository struct {
	db *database.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *database.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, name, description, color, icon, image_path, display_order, created_at, updated_at`

func scanCategory(row scanner) (*models.Category, error) {
	var cat models.Category
	err := row.Scan(
		&cat.ID, &cat.Name, &cat.Description, &cat.Color, &cat.Icon, &cat.ImagePath,
		&cat.DisplayOrder, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetCategories returns categories in display order.
func (r *categoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Execute(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY display_order, created_at`)
	if err != nil {
		return nil, classify(err, "listing categories")
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, classify(err, "scanning category")
		}
		categories = append(categories, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterating categories")
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by its ID.
func (r *categoryRepository) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	cat, err := scanCategory(row)
	if err != nil {
		return nil, classify(err, fmt.Sprintf("getting category %s", id))
	}
	return cat, nil
}

// CreateCategory inserts a category and fills in its ID and timestamps.
func (r *categoryRepository) CreateCategory(ctx context.Context, executor SQLExecutor, cat *models.Category) error {
	query := `INSERT INTO categories (id, name, description, color, icon, image_path, display_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	          RETURNING created_at, updated_at`

	cat.ID = uuid.NewString()
	err := executor.QueryRowContext(ctx, query,
		cat.ID, cat.Name, cat.Description, cat.Color, cat.Icon, cat.ImagePath, cat.DisplayOrder, time.Now(),
	).Scan(&cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return classify(err, "creating category")
	}
	return nil
}

// UpdateCategory overwrites the mutable columns of an existing category.
func (r *categoryRepository) UpdateCategory(ctx context.Context, executor SQLExecutor, cat *models.Category) error {
	query := `UPDATE categories SET name = $1, description = $2, color = $3, icon = $4, image_path = $5,
	          display_order = $6, updated_at = $7
	          WHERE id = $8
	          RETURNING created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		cat.Name, cat.Description, cat.Color, cat.Icon, cat.ImagePath, cat.DisplayOrder, time.Now(), cat.ID,
	).Scan(&cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return classify(err, fmt.Sprintf("updating category %s", cat.ID))
	}
	return nil
}

// DeleteCategory removes a category. Referencing menu items make it fail with ErrForeignKey.
func (r *categoryRepository) DeleteCategory(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return classify(err, fmt.Sprintf("deleting category %s", id))
	}
	return requireAffected(res, "deleting category")
}

// CountMenuItems counts menu items referencing the category.
func (r *categoryRepository) CountMenuItems(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, classify(err, "counting category menu items")
	}
	return count, nil
}
