package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMirror struct {
	puts    []string
	deletes []string
	fail    bool
}

func (m *recordingMirror) Put(_ context.Context, key string, _ string) error {
	m.puts = append(m.puts, key)
	if m.fail {
		return errors.New("bucket unavailable")
	}
	return nil
}

func (m *recordingMirror) Delete(_ context.Context, key string) error {
	m.deletes = append(m.deletes, key)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fileHeader builds a real multipart.FileHeader the way gin receives one.
func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func newStore(t *testing.T, mirror Mirror) *ImageStore {
	t.Helper()
	store, err := NewImageStore(t.TempDir(), 5<<20, mirror)
	require.NoError(t, err)
	return store
}

func tmpEntries(t *testing.T, store *ImageStore) []os.DirEntry {
	entries, err := os.ReadDir(filepath.Join(store.Root(), "tmp"))
	require.NoError(t, err)
	return entries
}

func TestProcessCropsToProfileAndRemovesTemp(t *testing.T) {
	for _, p := range []Profile{ProfileCategories, ProfileMenu, ProfileGallery} {
		t.Run(p.Dir, func(t *testing.T) {
			store := newStore(t, nil)
			// A square source forces cropping rather than letterboxing.
			fh := fileHeader(t, "image", "dish.png", pngBytes(t, 1000, 1000))

			stored, err := store.Process(context.Background(), fh, p)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(stored.Path, "/uploads/"+p.Dir+"/"))
			assert.True(t, strings.HasSuffix(stored.Path, ".jpg"))

			diskPath := filepath.Join(store.Root(), filepath.FromSlash(strings.TrimPrefix(stored.Path, "/uploads/")))
			info, err := os.Stat(diskPath)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
			assert.Equal(t, info.Size(), stored.Size)

			out, err := imaging.Open(diskPath)
			require.NoError(t, err)
			assert.Equal(t, p.Width, out.Bounds().Dx())
			assert.Equal(t, p.Height, out.Bounds().Dy())

			assert.Empty(t, tmpEntries(t, store), "temporary upload must be removed")
		})
	}
}

func TestProcessGivesEachUploadAFreshName(t *testing.T) {
	store := newStore(t, nil)
	content := pngBytes(t, 50, 50)

	a, err := store.Process(context.Background(), fileHeader(t, "image", "same.png", content), ProfileGallery)
	require.NoError(t, err)
	b, err := store.Process(context.Background(), fileHeader(t, "image", "same.png", content), ProfileGallery)
	require.NoError(t, err)

	assert.NotEqual(t, a.Path, b.Path)
}

func TestProcessRejectsNonImages(t *testing.T) {
	store := newStore(t, nil)
	fh := fileHeader(t, "image", "menu.png", []byte("%PDF-1.4 definitely not an image"))

	_, err := store.Process(context.Background(), fh, ProfileMenu)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Empty(t, tmpEntries(t, store))

	entries, err := os.ReadDir(filepath.Join(store.Root(), ProfileMenu.Dir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessRejectsOversizedUploads(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 100, nil)
	require.NoError(t, err)

	_, err = store.Process(context.Background(), fileHeader(t, "image", "big.png", pngBytes(t, 64, 64)), ProfileMenu)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestProcessRejectsCorruptImage(t *testing.T) {
	store := newStore(t, nil)
	data := pngBytes(t, 40, 40)
	// Keep the PNG signature so sniffing passes but decoding fails.
	corrupt := append([]byte{}, data[:16]...)
	corrupt = append(corrupt, bytes.Repeat([]byte{0xff}, 64)...)

	_, err := store.Process(context.Background(), fileHeader(t, "image", "broken.png", corrupt), ProfileMenu)
	assert.ErrorIs(t, err, ErrImageDecode)
	assert.Empty(t, tmpEntries(t, store))
}

func TestMirrorFailureDoesNotFailUpload(t *testing.T) {
	mirror := &recordingMirror{fail: true}
	store := newStore(t, mirror)

	stored, err := store.Process(context.Background(), fileHeader(t, "image", "a.png", pngBytes(t, 30, 30)), ProfileMenu)
	require.NoError(t, err)
	require.Len(t, mirror.puts, 1)
	assert.Equal(t, strings.TrimPrefix(stored.Path, "/uploads/"), mirror.puts[0])

	store.Remove(context.Background(), stored.Path)
	assert.Equal(t, mirror.puts, mirror.deletes)
}

func TestRemove(t *testing.T) {
	store := newStore(t, nil)
	stored, err := store.Process(context.Background(), fileHeader(t, "image", "a.png", pngBytes(t, 30, 30)), ProfileMenu)
	require.NoError(t, err)

	store.Remove(context.Background(), stored.Path)
	_, err = os.Stat(filepath.Join(store.Root(), filepath.FromSlash(strings.TrimPrefix(stored.Path, "/uploads/"))))
	assert.True(t, os.IsNotExist(err))

	// Missing files and paths outside the root are ignored.
	store.Remove(context.Background(), stored.Path)
	store.Remove(context.Background(), "/uploads/../../etc/passwd")
	store.Remove(context.Background(), "/etc/passwd")
}

func TestKeyFor(t *testing.T) {
	store := &ImageStore{root: "uploads"}
	key, ok := store.keyFor("/uploads/menu/a.jpg")
	assert.True(t, ok)
	assert.Equal(t, "menu/a.jpg", key)

	_, ok = store.keyFor("/uploads/../secret")
	assert.False(t, ok)
	_, ok = store.keyFor("menu/a.jpg")
	assert.False(t, ok)
}
