package services

import (
	"context"
	"errors"

	"auto-market/models"
	"auto-market/storage"

	"go.uber.org/zap"
)

type UploadService interface {
	UploadImage(ctx context.Context, fileName, contentType string, data []byte) (*models.UploadResult, error)
}

type uploadService struct {
	upstream storage.Uploader
	local    storage.Uploader
	breaker  *storage.Breaker
	logger   *zap.Logger
}

// NewUploadService wires the upstream image host with its local-disk
// fallback. upstream may be nil when the host is not configured.
func NewUploadService(upstream, local storage.Uploader, breaker *storage.Breaker, logger *zap.Logger) UploadService {
	return &uploadService{upstream: upstream, local: local, breaker: breaker, logger: logger}
}

func (s *uploadService) UploadImage(ctx context.Context, fileName, contentType string, data []byte) (*models.UploadResult, error) {
	if s.upstream == nil || s.breaker.Open() {
		return s.saveLocal(ctx, fileName, contentType, data)
	}

	url, publicID, err := s.upstream.Upload(ctx, fileName, contentType, data)
	if err == nil {
		return &models.UploadResult{URL: url, PublicID: &publicID, Storage: "upstream"}, nil
	}

	// A single upstream failure disables further attempts for the cooldown
	// window; the request itself still succeeds via local storage.
	s.breaker.Trip()
	s.logger.Warn("upstream upload failed, falling back to local storage", zap.Error(err))

	result, localErr := s.saveLocal(ctx, fileName, contentType, data)
	if localErr != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.ErrorUpstreamTimeout{Message: "image upload timed out"}
		}
		return nil, localErr
	}
	return result, nil
}

func (s *uploadService) saveLocal(ctx context.Context, fileName, contentType string, data []byte) (*models.UploadResult, error) {
	url, _, err := s.local.Upload(ctx, fileName, contentType, data)
	if err != nil {
		return nil, err
	}
	return &models.UploadResult{URL: url, PublicID: nil, Storage: "local"}, nil
}
