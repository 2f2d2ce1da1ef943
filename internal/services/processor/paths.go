package processor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var errUnsafeFilename = errors.New("filename must be a plain file name")

// InputPath joins the input directory with filename.
func (p *ImageProcessor) InputPath(filename string) string {
	return filepath.Join(p.inputDir, filename)
}

// OutputPath returns the canonical derived image path:
// {outputDir}/{name}_{width}x{height}.jpg.
func (p *ImageProcessor) OutputPath(filename string, width, height int) string {
	return filepath.Join(p.outputDir, DerivedName(filename, width, height))
}

// DerivedName is the base name of a derived image. The extension is always
// .jpg whatever the source extension or its casing.
func DerivedName(filename string, width, height int) string {
	return fmt.Sprintf("%s_%dx%d.jpg", stem(filename), width, height)
}

// ext returns the extension of the last path element. A leading dot does
// not start an extension, so ".jpg" has none.
func ext(filename string) string {
	base := filepath.Base(filename)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 {
		return ""
	}
	return base[idx:]
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, ext(base))
}

func validateFilename(filename string) error {
	if filepath.IsAbs(filename) || strings.ContainsAny(filename, `/\`) {
		return errUnsafeFilename
	}
	if filename == "." || filename == ".." {
		return errUnsafeFilename
	}
	return nil
}
