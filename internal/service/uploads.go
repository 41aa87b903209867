package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrInvalidFileType  = errors.New("invalid file format. only .jpg, .jpeg, .png images are allowed")
	ErrFileSizeExceeded = errors.New("file size exceeds the 5 MB limit")
)

// MaxUploadSize caps product images at 5 MiB.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
var allowedImageMIMEs = map[string]bool{"image/jpeg": true, "image/png": true}

// ImageStore validates and persists uploaded product images into a
// single content directory served read-only at /uploads.
type ImageStore struct {
	dir string
}

// NewImageStore ensures the content directory exists.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %s: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save validates the uploaded file and writes it under a time-based
// filename, returning that filename. Both the extension and the sniffed
// content type must be jpeg or png; validation failures happen before
// anything touches disk.
func (s *ImageStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", ErrFileSizeExceeded
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return "", ErrInvalidFileType
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Sniff the actual content, not just the client-supplied name.
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !allowedImageMIMEs[mtype.String()] {
		return "", ErrInvalidFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	fileName := strconv.FormatInt(time.Now().UnixMilli(), 10) + ext
	dst, err := os.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		return "", fmt.Errorf("failed to create file on server: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Sync(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to flush file: %w", err)
	}

	return fileName, nil
}
