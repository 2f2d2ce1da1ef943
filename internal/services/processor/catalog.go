package processor

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// ListAvailable returns the supported images directly inside the input
// directory. A missing or unreadable directory yields an empty list.
// Order follows directory enumeration and is not guaranteed.
func (p *ImageProcessor) ListAvailable() []string {
	entries, err := os.ReadDir(p.inputDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("Error reading images directory",
				zap.String("dir", p.inputDir),
				zap.Error(err),
			)
		}
		return []string{}
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsSupported(entry.Name()) {
			images = append(images, entry.Name())
		}
	}

	return images
}
