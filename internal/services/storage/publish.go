package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phambaophuc/image-thumb/internal/metrics"
	"github.com/phambaophuc/image-thumb/internal/models"
	"go.uber.org/zap"
)

// Describe builds the index entry for a derived image written at outputPath.
func Describe(req models.ProcessingRequest, outputPath string) (models.DerivedImage, error) {
	info, err := os.Stat(outputPath)
	if err != nil {
		return models.DerivedImage{}, fmt.Errorf("failed to stat derived image: %w", err)
	}

	return models.DerivedImage{
		Key:         filepath.Base(outputPath),
		Source:      req.Filename,
		Path:        outputPath,
		Width:       req.Width,
		Height:      req.Height,
		FileSize:    info.Size(),
		ProcessedAt: info.ModTime().UTC().Truncate(time.Second),
	}, nil
}

// Publish mirrors and indexes freshly generated images, filling in each
// URL when the mirror accepted it. Failures are logged and never returned:
// the local file is already the source of truth.
func (s *StorageService) Publish(ctx context.Context, images []models.DerivedImage) {
	if len(images) == 0 || (!s.IndexEnabled() && !s.MirrorEnabled()) {
		return
	}

	if s.MirrorEnabled() {
		paths := make([]string, len(images))
		for i, image := range images {
			paths[i] = image.Path
		}

		urls, err := s.MirrorAll(ctx, paths)
		if err != nil {
			s.logger.Warn("Failed to mirror derived images", zap.Error(err))
		}
		for i, url := range urls {
			if url == "" {
				metrics.MirrorUploadsTotal.WithLabelValues("failed").Inc()
				continue
			}
			metrics.MirrorUploadsTotal.WithLabelValues("success").Inc()
			images[i].URL = url
		}
	}

	for _, image := range images {
		if err := s.RecordDerived(ctx, image); err != nil {
			s.logger.Warn("Failed to index derived image",
				zap.String("key", image.Key),
				zap.Error(err))
		}
	}
}
