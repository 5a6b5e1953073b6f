package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	uploader := NewLocalUploader(filepath.Join(dir, "uploads"), "/uploads")

	url, publicID, err := uploader.Upload(context.Background(), "машина.jpg", "image/jpeg", []byte("payload"))
	require.NoError(t, err)
	assert.Empty(t, publicID)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	// The file lands on disk under the generated name.
	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, "uploads", name))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}
