package processor

import (
	"image/color"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	require.NoError(t, imaging.Save(img, path))
	return path
}

func newTestProcessor(t *testing.T, opts ...Option) (*ImageProcessor, string, string) {
	t.Helper()

	root := t.TempDir()
	inputDir := filepath.Join(root, "images")
	outputDir := filepath.Join(inputDir, "thumb")

	p, err := NewImageProcessor(inputDir, outputDir, opts...)
	require.NoError(t, err)
	return p, inputDir, outputDir
}

// countingResizer wraps the real engine and counts invocations.
type countingResizer struct {
	next  Resizer
	delay time.Duration
	calls atomic.Int32
}

func (r *countingResizer) Resize(inputPath, outputPath string, width, height int) error {
	r.calls.Add(1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	return r.next.Resize(inputPath, outputPath, width, height)
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveResize(result models.ProcessingResult, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, result.Outcome())
}
