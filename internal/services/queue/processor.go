package queue

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/phambaophuc/image-thumb/internal/services/storage"
	"go.uber.org/zap"
)

// processJob derives every requested size. Sizes are independent: one
// failure does not stop the rest, but fails the job.
func (q *QueueService) processJob(ctx context.Context, job *models.WarmupJob) ([]models.WarmupJobResult, error) {
	if len(job.Sizes) == 0 {
		return nil, fmt.Errorf("job %s has no sizes", job.ID)
	}

	results := make([]models.WarmupJobResult, 0, len(job.Sizes))
	var generated []models.DerivedImage
	var generatedIdx []int
	failed := 0

	for _, size := range job.Sizes {
		req := models.ProcessingRequest{Filename: job.Filename, Width: size.Width, Height: size.Height}
		result := q.processor.ProcessImage(req)

		results = append(results, models.WarmupJobResult{
			Width:      size.Width,
			Height:     size.Height,
			OutputPath: result.OutputPath,
			Cached:     result.Cached,
			Error:      result.Error,
		})

		if !result.Success {
			failed++
			continue
		}
		if result.Cached {
			continue
		}

		image, err := storage.Describe(req, result.OutputPath)
		if err != nil {
			q.logger.Warn("Failed to describe derived image",
				zap.String("path", result.OutputPath),
				zap.Error(err))
			continue
		}
		generated = append(generated, image)
		generatedIdx = append(generatedIdx, len(results)-1)
	}

	q.storage.Publish(ctx, generated)
	for i, image := range generated {
		results[generatedIdx[i]].URL = image.URL
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d sizes failed", failed, len(job.Sizes))
	}
	return results, nil
}
