package processor

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// writeJPEG encodes into a temp file beside outputPath and renames it into
// place, so readers only ever see a complete file.
func writeJPEG(outputPath string, img image.Image, quality int) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".tmp-*.jpg")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = imaging.Encode(tmp, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err = os.Rename(tmp.Name(), outputPath); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}

	return nil
}
