package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"restaurant_backend/internal/storage"

	"github.com/google/uuid"
)

// Base service errors. Resource-specific errors wrap one of these so handlers
// can map them to a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrUploadFailed    = errors.New("upload failed")
	ErrDispatch        = errors.New("notification dispatch failed")
	ErrRateLimited     = errors.New("too many requests")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// optionalID validates a reference sent by a client. Blank means "no reference".
func optionalID(field, v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return nil, validationError("%s is not a valid id", field)
	}
	return &v, nil
}

// ImageProcessor is the part of the image store the services depend on.
type ImageProcessor interface {
	Process(ctx context.Context, fh *multipart.FileHeader, profile storage.Profile) (*storage.StoredImage, error)
	Remove(ctx context.Context, publicPath string)
}

// processImage runs the pipeline and maps client-caused failures to ErrUploadFailed.
func processImage(ctx context.Context, images ImageProcessor, fh *multipart.FileHeader, profile storage.Profile) (*storage.StoredImage, error) {
	stored, err := images.Process(ctx, fh, profile)
	if err != nil {
		if errors.Is(err, storage.ErrImageTooLarge) || errors.Is(err, storage.ErrUnsupportedImage) || errors.Is(err, storage.ErrImageDecode) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUploadFailed, fh.Filename, err)
		}
		return nil, fmt.Errorf("processing upload %s: %w", fh.Filename, err)
	}
	return stored, nil
}

// removeImage deletes a previously stored image if there is one.
func removeImage(ctx context.Context, images ImageProcessor, path *string) {
	if path != nil && *path != "" {
		images.Remove(ctx, *path)
	}
}
