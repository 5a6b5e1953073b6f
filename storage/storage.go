package storage

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Uploader stores an image blob and returns its public URL plus the storage
// identifier assigned by the backend (empty when the backend has none).
type Uploader interface {
	Upload(ctx context.Context, fileName string, contentType string, data []byte) (url string, publicID string, err error)
}

// Breaker suppresses upstream attempts for a cooldown window after a failure.
// The clock is injectable so the window is testable.
type Breaker struct {
	mu            sync.Mutex
	disabledUntil time.Time
	cooldown      time.Duration
	now           func() time.Time
}

func NewBreaker(cooldown time.Duration) *Breaker {
	return &Breaker{cooldown: cooldown, now: time.Now}
}

func NewBreakerWithClock(cooldown time.Duration, now func() time.Time) *Breaker {
	return &Breaker{cooldown: cooldown, now: now}
}

// Open reports whether upstream calls are currently suppressed.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now().Before(b.disabledUntil)
}

// Trip starts (or restarts) the cooldown window.
func (b *Breaker) Trip() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabledUntil = b.now().Add(b.cooldown)
}

func extensionFor(fileName, contentType string) string {
	allowed := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
		".gif": true, ".avif": true, ".ico": true,
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); allowed[ext] {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		for _, ext := range exts {
			if allowed[ext] {
				return ext
			}
		}
	}
	return ".jpg"
}
