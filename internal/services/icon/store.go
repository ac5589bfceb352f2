package icon

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog/log"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrObjectExists    = errors.New("object already exists")
)

const (
	// MaxFileSize is the upload ceiling for icon assets.
	MaxFileSize   = 5 * 1024 * 1024
	MaxFileSizeMB = MaxFileSize / (1024 * 1024)
)

// allowedTypes is the fixed allow-list of icon media types.
var allowedTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// extensionByType maps a declared media type to the stored file extension.
// The object key never uses the user-supplied original filename.
var extensionByType = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

const defaultExtension = "png"

// ValidateFile decides admissibility of a candidate icon before any upload
// attempt. Pure; no side effects on failure.
func ValidateFile(contentType string, size int64) error {
	if !allowedTypes[contentType] {
		return ErrInvalidFileType
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// InvalidFileTypeMessage is the user-facing reason for a type rejection.
const InvalidFileTypeMessage = "Please upload a valid image file (PNG, JPEG, JPG, WebP, or SVG)."

// FileTooLargeMessage is the user-facing reason for a size rejection, with
// the offending size in MB at one decimal.
func FileTooLargeMessage(size int64) string {
	return fmt.Sprintf("File size (%.1fMB) exceeds the maximum limit of %dMB. Please compress your image.",
		float64(size)/(1024*1024), MaxFileSizeMB)
}

func extensionForType(contentType string) string {
	if ext, ok := extensionByType[contentType]; ok {
		return ext
	}
	return defaultExtension
}

const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomKeySuffix(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal; fall back to nanotime
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	for i := range buf {
		buf[i] = keyAlphabet[buf[i]%byte(len(keyAlphabet))]
	}
	return string(buf)
}

// newObjectKey builds a collision-resistant storage key namespaced by owner:
// <ownerID>/<unixMillis>-<random>.<ext>.
func newObjectKey(ownerID uuid.UUID, contentType string) string {
	return fmt.Sprintf("%s/%d-%s.%s",
		ownerID.String(), time.Now().UnixMilli(), randomKeySuffix(13), extensionForType(contentType))
}

// Store uploads and removes icon assets in the public icons bucket.
type Store struct {
	minio         *minio.Client
	bucket        string
	publicBaseURL string
}

func NewStore(client *minio.Client, bucket, publicBaseURL string) *Store {
	return &Store{
		minio:         client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
	}
}

type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Upload stores a validated icon under a per-owner key and returns the
// storage path (authoritative) plus a public URL snapshot. The file is
// re-validated here even when callers already ran the gate. An existing
// object at the generated key is never overwritten.
func (s *Store) Upload(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (*UploadResult, error) {
	if err := ValidateFile(contentType, int64(len(data))); err != nil {
		return nil, err
	}

	objectKey := newObjectKey(ownerID, contentType)

	// The generated key makes a collision vanishingly unlikely, but refuse to
	// clobber one if it happens.
	if _, err := s.minio.StatObject(ctx, s.bucket, objectKey, minio.StatObjectOptions{}); err == nil {
		return nil, ErrObjectExists
	} else if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" {
		return nil, fmt.Errorf("failed to check object %s: %w", objectKey, err)
	}

	_, err := s.minio.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "max-age=3600",
		})
	if err != nil {
		return nil, fmt.Errorf("failed to upload icon: %w", err)
	}

	return &UploadResult{
		Path: objectKey,
		URL:  s.PublicURL(objectKey),
	}, nil
}

// Delete removes an icon object. Failures are logged and reported as false,
// never propagated.
func (s *Store) Delete(ctx context.Context, path string) bool {
	if err := s.minio.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to delete icon")
		return false
	}
	return true
}

// PublicURL derives the public URL for a storage path. Pure function of the
// configured endpoint and bucket; callers should prefer re-deriving from the
// path over trusting stored URL snapshots.
func (s *Store) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, path)
}
