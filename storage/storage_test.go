package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := NewBreakerWithClock(5*time.Minute, func() time.Time { return now })

	assert.False(t, breaker.Open())

	breaker.Trip()
	assert.True(t, breaker.Open())

	now = now.Add(4 * time.Minute)
	assert.True(t, breaker.Open())

	now = now.Add(time.Minute + time.Second)
	assert.False(t, breaker.Open())

	// A new failure restarts the window.
	breaker.Trip()
	assert.True(t, breaker.Open())
}

func TestExtensionFor(t *testing.T) {
	cases := []struct {
		fileName    string
		contentType string
		want        string
	}{
		{"photo.PNG", "image/png", ".png"},
		{"photo.jpeg", "image/jpeg", ".jpeg"},
		{"photo", "image/webp", ".webp"},
		{"archive.exe", "image/gif", ".gif"},
		{"unknown", "application/octet-stream", ".jpg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extensionFor(tc.fileName, tc.contentType), "%s %s", tc.fileName, tc.contentType)
	}
}
