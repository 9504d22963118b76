package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"restaurant_backend/pkg/utils"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrImageTooLarge    = errors.New("image exceeds the maximum upload size")
	ErrUnsupportedImage = errors.New("unsupported file type, only JPEG, PNG and GIF images are accepted")
	ErrImageDecode      = errors.New("image could not be decoded")
)

// PublicPrefix is the URL prefix under which the upload root is served.
const PublicPrefix = "/uploads"

// Profile is a target size and quality for one upload destination.
type Profile struct {
	Dir     string
	Width   int
	Height  int
	Quality int
}

var (
	ProfileCategories = Profile{Dir: "categories", Width: 400, Height: 300, Quality: 80}
	ProfileMenu       = Profile{Dir: "menu", Width: 600, Height: 400, Quality: 85}
	ProfileGallery    = Profile{Dir: "gallery", Width: 800, Height: 600, Quality: 90}
)

// PublicProfiles are the directories served under PublicPrefix. The tmp staging
// directory is never served.
var PublicProfiles = []Profile{ProfileCategories, ProfileMenu, ProfileGallery}

var allowedMIME = []string{"image/jpeg", "image/png", "image/gif"}

// StoredImage describes a processed file on disk.
type StoredImage struct {
	Path string // public path, e.g. /uploads/menu/<id>.jpg
	Size int64
}

// Mirror receives copies of processed files. Failures never fail an upload.
type Mirror interface {
	Put(ctx context.Context, key string, filePath string) error
	Delete(ctx context.Context, key string) error
}

// ImageStore owns the uploads directory.
type ImageStore struct {
	root     string
	maxBytes int64
	mirror   Mirror
}

// NewImageStore creates the upload root and its profile directories.
// mirror may be nil.
func NewImageStore(root string, maxBytes int64, mirror Mirror) (*ImageStore, error) {
	for _, dir := range []string{"tmp", ProfileCategories.Dir, ProfileMenu.Dir, ProfileGallery.Dir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
		}
	}
	return &ImageStore{root: root, maxBytes: maxBytes, mirror: mirror}, nil
}

// Root returns the upload root. Only the PublicProfiles directories below it are served.
func (s *ImageStore) Root() string {
	return s.root
}

// Process validates, crops to fill the profile size, re-encodes as JPEG and
// writes the result under a fresh name. The temporary copy of the upload is
// always removed.
func (s *ImageStore) Process(ctx context.Context, fh *multipart.FileHeader, p Profile) (*StoredImage, error) {
	if fh.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrImageTooLarge, fh.Filename, fh.Size, s.maxBytes)
	}

	tmpPath, err := s.saveTemp(fh)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			utils.LogWarn(err, "Failed to remove temporary upload", map[string]interface{}{"path": tmpPath})
		}
	}()

	mt, err := mimetype.DetectFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("detecting upload type: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIME...) {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedImage, mt.String())
	}

	img, err := imaging.Open(tmpPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	resized := imaging.Fill(img, p.Width, p.Height, imaging.Center, imaging.Lanczos)

	name := uuid.NewString() + ".jpg"
	dst := filepath.Join(s.root, p.Dir, name)
	if err := imaging.Save(resized, dst, imaging.JPEGQuality(p.Quality)); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("writing processed image: %w", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("stat processed image: %w", err)
	}

	key := path.Join(p.Dir, name)
	if s.mirror != nil {
		if err := s.mirror.Put(ctx, key, dst); err != nil {
			utils.LogWarn(err, "Failed to mirror processed image", map[string]interface{}{"key": key})
		}
	}

	utils.LogDebug("Image processed", map[string]interface{}{
		"source": fh.Filename, "path": dst, "width": p.Width, "height": p.Height, "bytes": info.Size(),
	})
	return &StoredImage{Path: path.Join(PublicPrefix, key), Size: info.Size()}, nil
}

// Remove deletes a previously stored image. Failures are logged and swallowed.
func (s *ImageStore) Remove(ctx context.Context, publicPath string) {
	key, ok := s.keyFor(publicPath)
	if !ok {
		utils.LogWarn(nil, "Refusing to remove file outside upload root", map[string]interface{}{"path": publicPath})
		return
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key))); err != nil && !errors.Is(err, os.ErrNotExist) {
		utils.LogWarn(err, "Failed to remove stored image", map[string]interface{}{"path": publicPath})
	}
	if s.mirror != nil {
		if err := s.mirror.Delete(ctx, key); err != nil {
			utils.LogWarn(err, "Failed to remove mirrored image", map[string]interface{}{"key": key})
		}
	}
}

// keyFor maps /uploads/<dir>/<name> to <dir>/<name>, rejecting traversal.
func (s *ImageStore) keyFor(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, PublicPrefix+"/") {
		return "", false
	}
	key := path.Clean(strings.TrimPrefix(publicPath, PublicPrefix+"/"))
	if key == "." || strings.HasPrefix(key, "..") || path.IsAbs(key) {
		return "", false
	}
	return key, true
}

func (s *ImageStore) saveTemp(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	tmpPath := filepath.Join(s.root, "tmp", uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("creating temporary upload: %w", err)
	}
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1)); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("saving temporary upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("saving temporary upload: %w", err)
	}
	return tmpPath, nil
}
