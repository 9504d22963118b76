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

// GalleryRepository defines the interface for gallery image database operations.
type GalleryRepository interface {
	GetGalleryImages(ctx context.Context, filters models.GalleryFilters) ([]models.GalleryImage, error)
	GetGalleryImageByID(ctx context.Context, id string) (*models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, executor SQLExecutor, img *models.GalleryImage) error
	UpdateGalleryImage(ctx context.Context, executor SQLExecutor, img *models.GalleryImage) error
	// DeleteGalleryImage returns the image path of the deleted row.
	DeleteGalleryImage(ctx context.Context, executor SQLExecutor, id string) (string, error)
}

type galleryRepository struct {
	db *database.DB
}

// NewGalleryRepository creates a new instance of GalleryRepository.
func NewGalleryRepository(db *database.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

const galleryColumns = `id, title, description, image_path, type, featured, file_size, created_at, updated_at`

func scanGalleryImage(row scanner) (*models.GalleryImage, error) {
	var img models.GalleryImage
	err := row.Scan(
		&img.ID, &img.Title, &img.Description, &img.ImagePath, &img.Type,
		&img.Featured, &img.FileSize, &img.CreatedAt, &img.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// GetGalleryImages lists gallery images, newest first.
func (r *galleryRepository) GetGalleryImages(ctx context.Context, filters models.GalleryFilters) ([]models.GalleryImage, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + galleryColumns + ` FROM gallery_images`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argCount))
		args = append(args, *filters.Type)
		argCount++
	}
	if filters.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("featured = $%d", argCount))
		args = append(args, *filters.Featured)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Execute(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, classify(err, "listing gallery images")
	}
	defer rows.Close()

	images := []models.GalleryImage{}
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, classify(err, "scanning gallery image")
		}
		images = append(images, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterating gallery images")
	}
	return images, nil
}

// GetGalleryImageByID retrieves one gallery image.
func (r *galleryRepository) GetGalleryImageByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	img, err := scanGalleryImage(r.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM gallery_images WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("getting gallery image %s", id))
	}
	return img, nil
}

// CreateGalleryImage inserts one gallery row. Batch uploads call it inside a transaction.
func (r *galleryRepository) CreateGalleryImage(ctx context.Context, executor SQLExecutor, img *models.GalleryImage) error {
	query := `INSERT INTO gallery_images (id, title, description, image_path, type, featured, file_size, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	          RETURNING created_at, updated_at`

	img.ID = uuid.NewString()
	err := executor.QueryRowContext(ctx, query,
		img.ID, img.Title, img.Description, img.ImagePath, img.Type, img.Featured, img.FileSize, time.Now(),
	).Scan(&img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return classify(err, "creating gallery image")
	}
	return nil
}

// UpdateGalleryImage overwrites the mutable columns of a gallery image.
func (r *galleryRepository) UpdateGalleryImage(ctx context.Context, executor SQLExecutor, img *models.GalleryImage) error {
	query := `UPDATE gallery_images SET title = $1, description = $2, image_path = $3, type = $4, featured = $5,
	          file_size = $6, updated_at = $7
	          WHERE id = $8
	          RETURNING created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		img.Title, img.Description, img.ImagePath, img.Type, img.Featured, img.FileSize, time.Now(), img.ID,
	).Scan(&img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return classify(err, fmt.Sprintf("updating gallery image %s", img.ID))
	}
	return nil
}

// DeleteGalleryImage removes a gallery row.
func (r *galleryRepository) DeleteGalleryImage(ctx context.Context, executor SQLExecutor, id string) (string, error) {
	var imagePath string
	err := executor.QueryRowContext(ctx, `DELETE FROM gallery_images WHERE id = $1 RETURNING image_path`, id).Scan(&imagePath)
	if err != nil {
		return "", classify(err, fmt.Sprintf("deleting gallery image %s", id))
	}
	return imagePath, nil
}
