package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAvailable_MissingDirectory(t *testing.T) {
	p, err := NewImageProcessor(filepath.Join(t.TempDir(), "nonexistent"), filepath.Join(t.TempDir(), "output"))
	require.NoError(t, err)

	images := p.ListAvailable()

	require.NotNil(t, images)
	assert.Empty(t, images)
}

func TestListAvailable_FiltersSupported(t *testing.T) {
	p, inputDir, _ := newTestProcessor(t)

	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "notes.txt", ".jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(inputDir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(inputDir, "album.jpg"), 0o755))

	images := p.ListAvailable()

	assert.ElementsMatch(t, []string{"a.jpg", "b.JPEG"}, images)
}

func TestListAvailable_DoesNotRecurse(t *testing.T) {
	p, inputDir, outputDir := newTestProcessor(t)
	writeFixture(t, inputDir, "top.jpg", 8, 8)
	writeFixture(t, outputDir, "top_4x4.jpg", 4, 4)

	assert.Equal(t, []string{"top.jpg"}, p.ListAvailable())
}
