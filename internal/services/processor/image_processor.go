package processor

import (
	"fmt"
	"os"
	"time"

	"github.com/phambaophuc/image-thumb/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultQuality      = 90
	DefaultMaxDimension = 5000
)

// Failure messages returned to callers verbatim.
const (
	MsgFilenameRequired  = "Filename is required"
	MsgUnsupportedFormat = "Only JPG images are supported"
	MsgInvalidDimensions = "Width and height must be positive numbers"
	MsgInvalidFilename   = "Invalid filename"
)

// Observer receives one call per ProcessImage invocation.
type Observer interface {
	ObserveResize(result models.ProcessingResult, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveResize(models.ProcessingResult, time.Duration) {}

// ImageProcessor derives resized JPEGs from the input directory into the
// output directory. A derived file's existence is its cache entry.
type ImageProcessor struct {
	inputDir     string
	outputDir    string
	maxDimension int

	resizer  Resizer
	observer Observer
	logger   *zap.Logger
	inflight singleflight.Group
}

type Option func(*ImageProcessor)

func WithLogger(logger *zap.Logger) Option {
	return func(p *ImageProcessor) { p.logger = logger }
}

func WithResizer(r Resizer) Option {
	return func(p *ImageProcessor) { p.resizer = r }
}

func WithObserver(o Observer) Option {
	return func(p *ImageProcessor) { p.observer = o }
}

// WithMaxDimension caps width and height. Zero disables the cap.
func WithMaxDimension(max int) Option {
	return func(p *ImageProcessor) { p.maxDimension = max }
}

func WithQuality(quality int) Option {
	return func(p *ImageProcessor) { p.resizer = NewJPEGResizer(quality) }
}

// NewImageProcessor creates the output directory (recursively) before
// returning, so later writes never race on its creation.
func NewImageProcessor(inputDir, outputDir string, opts ...Option) (*ImageProcessor, error) {
	p := &ImageProcessor{
		inputDir:     inputDir,
		outputDir:    outputDir,
		maxDimension: DefaultMaxDimension,
		resizer:      NewJPEGResizer(DefaultQuality),
		observer:     nopObserver{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	return p, nil
}

func (p *ImageProcessor) InputDir() string  { return p.inputDir }
func (p *ImageProcessor) OutputDir() string { return p.outputDir }

// ProcessImage validates the request, then returns the cached derived image
// or generates it. It never panics or returns an error; failures are
// reported in the result.
func (p *ImageProcessor) ProcessImage(req models.ProcessingRequest) models.ProcessingResult {
	start := time.Now()
	result := p.processImage(req)
	p.observer.ObserveResize(result, time.Since(start))
	return result
}

func (p *ImageProcessor) processImage(req models.ProcessingRequest) models.ProcessingResult {
	if req.Filename == "" {
		return models.Failed(models.KindInput, MsgFilenameRequired)
	}

	if !IsSupported(req.Filename) {
		return models.Failed(models.KindInput, MsgUnsupportedFormat)
	}

	if req.Width <= 0 || req.Height <= 0 {
		return models.Failed(models.KindInput, MsgInvalidDimensions)
	}

	if p.maxDimension > 0 && (req.Width > p.maxDimension || req.Height > p.maxDimension) {
		return models.Failed(models.KindInput,
			fmt.Sprintf("Width and height must not exceed %d pixels", p.maxDimension))
	}

	if err := validateFilename(req.Filename); err != nil {
		p.logger.Warn("Rejected filename", zap.String("filename", req.Filename), zap.Error(err))
		return models.Failed(models.KindInput, MsgInvalidFilename)
	}

	inputPath := p.InputPath(req.Filename)
	if !exists(inputPath) {
		return models.Failed(models.KindNotFound, fmt.Sprintf("Image '%s' not found", req.Filename))
	}

	outputPath := p.OutputPath(req.Filename, req.Width, req.Height)
	if exists(outputPath) {
		return models.Succeeded(outputPath, true)
	}

	// Concurrent requests for the same output share one resize. Only the
	// caller whose function ran reports a generation; the rest see a hit.
	generated := false
	_, err, _ := p.inflight.Do(outputPath, func() (interface{}, error) {
		if exists(outputPath) {
			return nil, nil
		}
		generated = true
		return nil, p.resizer.Resize(inputPath, outputPath, req.Width, req.Height)
	})
	if err != nil {
		p.logger.Error("Error processing image",
			zap.String("filename", req.Filename),
			zap.Int("width", req.Width),
			zap.Int("height", req.Height),
			zap.Error(err),
		)
		return models.Failed(models.KindProcessing, err.Error())
	}

	return models.Succeeded(outputPath, !generated)
}
