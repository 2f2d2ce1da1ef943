package processor

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Resizer writes a width x height rendition of inputPath to outputPath.
// Implementations must leave no file at outputPath when they fail.
type Resizer interface {
	Resize(inputPath, outputPath string, width, height int) error
}

// JPEGResizer cover-fits the source into the target box, cropping the
// overflow around the centre, and encodes the result as JPEG. Pixels are
// used in stored order; EXIF orientation tags are not applied.
type JPEGResizer struct {
	quality int
}

func NewJPEGResizer(quality int) *JPEGResizer {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &JPEGResizer{quality: quality}
}

func (r *JPEGResizer) Resize(inputPath, outputPath string, width, height int) error {
	src, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	dst := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)

	return writeJPEG(outputPath, dst, r.quality)
}
