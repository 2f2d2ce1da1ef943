package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

// InputError reports a filename Invalidate refuses to act on.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// Invalidate removes every derived image of filename, whatever its size,
// and returns the removed base names. Derived images are never refreshed
// automatically when a source changes; this is the explicit way to do it.
func (p *ImageProcessor) Invalidate(filename string) ([]string, error) {
	if filename == "" {
		return nil, &InputError{MsgFilenameRequired}
	}
	if !IsSupported(filename) {
		return nil, &InputError{MsgUnsupportedFormat}
	}
	if err := validateFilename(filename); err != nil {
		return nil, &InputError{MsgInvalidFilename}
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(stem(filename)) + `_\d+x\d+\.jpg$`)

	entries, err := os.ReadDir(p.outputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	removed := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(p.outputDir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed = append(removed, entry.Name())
	}

	if len(removed) > 0 {
		p.logger.Info("Invalidated derived images",
			zap.String("filename", filename),
			zap.Int("count", len(removed)),
		)
	}

	return removed, nil
}
