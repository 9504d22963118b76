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
)

// MaxGalleryBatch is the most files accepted by one gallery upload.
const MaxGalleryBatch = 10

var ErrGalleryImageNotFound = fmt.Errorf("%w: gallery image not found", ErrNotFound)

// --- Gallery DTOs ---

// GalleryUploadRequest carries the per-file metadata of a batch upload.
// Titles and descriptions are matched to files by position.
type GalleryUploadRequest struct {
	Files        []*multipart.FileHeader
	Titles       []string
	Descriptions []string
	Type         string
	Featured     bool
}

// GalleryUpdateRequest edits one gallery row. Nil fields are left unchanged.
type GalleryUpdateRequest struct {
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
	Type        *string `form:"type" json:"type"`
	Featured    *bool   `form:"featured" json:"featured"`
}

// --- GalleryService Interface ---
type GalleryService interface {
	GetGalleryImages(ctx context.Context, filters models.GalleryFilters) ([]models.GalleryImage, error)
	GetGalleryImageByID(ctx context.Context, id string) (*models.GalleryImage, error)
	UploadGalleryImages(ctx context.Context, req GalleryUploadRequest) ([]models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, id string, req GalleryUpdateRequest, image *multipart.FileHeader) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id string) error
}

type galleryService struct {
	galleryRepo repositories.GalleryRepository
	images      ImageProcessor
	db          *database.DB
}

// NewGalleryService creates a new instance of GalleryService.
func NewGalleryService(repo repositories.GalleryRepository, images ImageProcessor, db *database.DB) GalleryService {
	return &galleryService{galleryRepo: repo, images: images, db: db}
}

func (s *galleryService) GetGalleryImages(ctx context.Context, filters models.GalleryFilters) ([]models.GalleryImage, error) {
	images, err := s.galleryRepo.GetGalleryImages(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery images: %w", err)
	}
	return images, nil
}

func (s *galleryService) GetGalleryImageByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	img, err := s.galleryRepo.GetGalleryImageByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGalleryImageNotFound
		}
		return nil, fmt.Errorf("failed to get gallery image: %w", err)
	}
	return img, nil
}

func at(values []string, i int) *string {
	if i < len(values) {
		return utils.NewNullString(values[i])
	}
	return nil
}

// UploadGalleryImages processes every file before touching the database, then
// inserts all rows in one transaction. On any failure no rows remain and every
// processed file is removed.
func (s *galleryService) UploadGalleryImages(ctx context.Context, req GalleryUploadRequest) ([]models.GalleryImage, error) {
	if len(req.Files) == 0 {
		return nil, validationError("at least one image is required")
	}
	if len(req.Files) > MaxGalleryBatch {
		return nil, validationError("at most %d images can be uploaded at once", MaxGalleryBatch)
	}
	imgType := strings.TrimSpace(req.Type)
	if imgType == "" {
		imgType = models.DefaultGalleryType
	}

	images := make([]models.GalleryImage, 0, len(req.Files))
	cleanup := func() {
		for _, img := range images {
			s.images.Remove(ctx, img.ImagePath)
		}
	}

	for i, fh := range req.Files {
		stored, err := processImage(ctx, s.images, fh, storage.ProfileGallery)
		if err != nil {
			cleanup()
			return nil, err
		}
		images = append(images, models.GalleryImage{
			Title:       at(req.Titles, i),
			Description: at(req.Descriptions, i),
			ImagePath:   stored.Path,
			Type:        imgType,
			Featured:    req.Featured,
			FileSize:    stored.Size,
		})
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to begin gallery transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range images {
		if err := s.galleryRepo.CreateGalleryImage(ctx, tx, &images[i]); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to create gallery image: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to commit gallery images: %w", err)
	}

	utils.LogInfo("Gallery images uploaded", map[string]interface{}{"count": len(images), "type": imgType})
	return images, nil
}

func (s *galleryService) UpdateGalleryImage(ctx context.Context, id string, req GalleryUpdateRequest, image *multipart.FileHeader) (*models.GalleryImage, error) {
	img, err := s.GetGalleryImageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		img.Title = utils.NewNullString(*req.Title)
	}
	if req.Description != nil {
		img.Description = utils.NewNullString(*req.Description)
	}
	if req.Type != nil {
		img.Type = strings.TrimSpace(*req.Type)
		if img.Type == "" {
			img.Type = models.DefaultGalleryType
		}
	}
	if req.Featured != nil {
		img.Featured = *req.Featured
	}

	oldImage := img.ImagePath
	if image != nil {
		stored, err := processImage(ctx, s.images, image, storage.ProfileGallery)
		if err != nil {
			return nil, err
		}
		img.ImagePath = stored.Path
		img.FileSize = stored.Size
	}

	if err := s.galleryRepo.UpdateGalleryImage(ctx, s.db, img); err != nil {
		if image != nil {
			s.images.Remove(ctx, img.ImagePath)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGalleryImageNotFound
		}
		return nil, fmt.Errorf("failed to update gallery image: %w", err)
	}
	if image != nil {
		s.images.Remove(ctx, oldImage)
	}
	return img, nil
}

func (s *galleryService) DeleteGalleryImage(ctx context.Context, id string) error {
	imagePath, err := s.galleryRepo.DeleteGalleryImage(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGalleryImageNotFound
		}
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}
	s.images.Remove(ctx, imagePath)
	return nil
}
