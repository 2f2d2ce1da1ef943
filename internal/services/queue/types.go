package queue

import (
	"context"

	"github.com/phambaophuc/image-thumb/internal/models"
)

// ImageProcessor is the part of the processor the workers need.
type ImageProcessor interface {
	ProcessImage(req models.ProcessingRequest) models.ProcessingResult
}

// DerivedStore mirrors and indexes images produced by warm-up jobs and
// keeps each job's latest state.
type DerivedStore interface {
	Publish(ctx context.Context, images []models.DerivedImage)
	SaveJob(ctx context.Context, job *models.WarmupJob) error
}
