// Package storage provides disk storage for uploaded parent images.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/google/uuid"
)

// ImageStore writes uploaded images under a base directory, one file per
// image with a generated name. Stored references are paths relative to the
// base directory; the directory itself is served over HTTP by the router.
type ImageStore struct {
	baseDir string
}

// NewImageStore creates the base directory if needed and returns a store.
func NewImageStore(baseDir string) (*ImageStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory cannot be empty")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &ImageStore{baseDir: baseDir}, nil
}

// DecodeFormat reports the image format of data ("jpeg", "png", "gif",
// "webp") or an error if it is not decodable as an image.
func DecodeFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return format, nil
}

// Save writes data under a fresh uuid filename with the given extension and
// returns the stored reference.
func (s *ImageStore) Save(data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data cannot be empty")
	}
	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

func (s *ImageStore) path(name string) string {
	return filepath.Join(s.baseDir, name)
}
