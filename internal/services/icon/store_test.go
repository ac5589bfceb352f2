package icon

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     error
	}{
		{name: "png ok", contentType: "image/png", size: 1024},
		{name: "jpeg ok", contentType: "image/jpeg", size: 1024},
		{name: "jpg ok", contentType: "image/jpg", size: 1024},
		{name: "webp ok", contentType: "image/webp", size: 1024},
		{name: "svg ok", contentType: "image/svg+xml", size: 1024},
		{name: "exactly at limit", contentType: "image/png", size: MaxFileSize},
		{name: "one byte over", contentType: "image/png", size: MaxFileSize + 1, wantErr: ErrFileTooLarge},
		{name: "gif rejected", contentType: "image/gif", size: 1024, wantErr: ErrInvalidFileType},
		{name: "pdf rejected", contentType: "application/pdf", size: 1024, wantErr: ErrInvalidFileType},
		{name: "octet-stream rejected", contentType: "application/octet-stream", size: 1024, wantErr: ErrInvalidFileType},
		{name: "empty type rejected", contentType: "", size: 1024, wantErr: ErrInvalidFileType},
		{name: "type checked before size", contentType: "image/gif", size: MaxFileSize + 1, wantErr: ErrInvalidFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.contentType, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileTooLargeMessage(t *testing.T) {
	msg := FileTooLargeMessage(6 * 1024 * 1024)
	assert.Contains(t, msg, "6.0MB")
	assert.Contains(t, msg, "5MB")
	assert.Contains(t, msg, "compress")
}

func TestExtensionForType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{contentType: "image/png", want: "png"},
		{contentType: "image/jpeg", want: "jpg"},
		{contentType: "image/jpg", want: "jpg"},
		{contentType: "image/webp", want: "webp"},
		{contentType: "image/svg+xml", want: "svg"},
		{contentType: "image/unknown", want: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, extensionForType(tt.contentType))
		})
	}
}

func TestNewObjectKey(t *testing.T) {
	owner := uuid.New()

	key := newObjectKey(owner, "image/jpeg")

	assert.True(t, strings.HasPrefix(key, owner.String()+"/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	// The portion after the owner prefix is <unixMillis>-<random>.<ext>
	rest := strings.TrimPrefix(key, owner.String()+"/")
	stamp, suffix, found := strings.Cut(rest, "-")
	require.True(t, found)
	assert.NotEmpty(t, stamp)
	assert.Len(t, strings.TrimSuffix(suffix, ".jpg"), 13)
}

func TestNewObjectKeyUnique(t *testing.T) {
	owner := uuid.New()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key := newObjectKey(owner, "image/png")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestPublicURL(t *testing.T) {
	s := NewStore(nil, "icons", "http://localhost:9000")
	assert.Equal(t, "http://localhost:9000/icons/abc/123-xyz.png", s.PublicURL("abc/123-xyz.png"))
}
