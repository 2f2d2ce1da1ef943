package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	storage_go "github.com/supabase-community/storage-go"
)

const mirrorPrefix = "thumb"

var ErrMirrorDisabled = errors.New("remote storage not configured")

// MirrorKey is the object key of a derived image in the bucket. Keys are
// deterministic so a re-upload replaces the previous object.
func MirrorKey(derivedName string) string {
	return path.Join(mirrorPrefix, derivedName)
}

// Mirror uploads the derived image at localPath and returns its public URL.
func (s *StorageService) Mirror(ctx context.Context, localPath string) (string, error) {
	if !s.MirrorEnabled() {
		return "", ErrMirrorDisabled
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer file.Close()

	key := MirrorKey(filepath.Base(localPath))
	contentType := "image/jpeg"
	upsert := true

	_, err = s.sbClient.UploadFile(s.bucket, key, file, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}

// RemoveMirrored deletes mirrored copies of the given derived images.
func (s *StorageService) RemoveMirrored(ctx context.Context, derivedNames []string) error {
	if !s.MirrorEnabled() || len(derivedNames) == 0 {
		return nil
	}

	keys := make([]string, len(derivedNames))
	for i, name := range derivedNames {
		keys[i] = MirrorKey(name)
	}

	if _, err := s.sbClient.RemoveFile(s.bucket, keys); err != nil {
		return fmt.Errorf("failed to remove from supabase: %w", err)
	}
	return nil
}
