package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/phambaophuc/image-thumb/internal/config"
	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIndexedService(t *testing.T) (*StorageService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &StorageService{
		redisClient:   client,
		cacheDuration: time.Hour,
		logger:        zap.NewNop(),
	}, mr
}

func TestNewStorageService_Disabled(t *testing.T) {
	s, err := NewStorageService(&config.Config{}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, s.IndexEnabled())
	assert.False(t, s.MirrorEnabled())
	assert.NoError(t, s.Close())
}

func TestRecordDerived_RoundTrip(t *testing.T) {
	s, mr := newIndexedService(t)
	ctx := context.Background()

	image := models.DerivedImage{
		Key:         "photo_200x300.jpg",
		Source:      "photo.jpg",
		Path:        "images/thumb/photo_200x300.jpg",
		Width:       200,
		Height:      300,
		FileSize:    1234,
		ProcessedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.RecordDerived(ctx, image))

	got, err := s.GetDerived(ctx, "photo_200x300.jpg")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, image, *got)
	assert.Equal(t, time.Hour, mr.TTL(CacheKey("photo_200x300.jpg")))
}

func TestGetDerived_Miss(t *testing.T) {
	s, _ := newIndexedService(t)

	got, err := s.GetDerived(context.Background(), "absent_1x1.jpg")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestForget(t *testing.T) {
	s, mr := newIndexedService(t)
	ctx := context.Background()

	require.NoError(t, s.RecordDerived(ctx, models.DerivedImage{Key: "a_1x1.jpg"}))
	require.NoError(t, s.RecordDerived(ctx, models.DerivedImage{Key: "a_2x2.jpg"}))

	require.NoError(t, s.Forget(ctx, "a_1x1.jpg", "a_2x2.jpg"))

	assert.False(t, mr.Exists(CacheKey("a_1x1.jpg")))
	assert.False(t, mr.Exists(CacheKey("a_2x2.jpg")))
}

func TestGetCacheStats(t *testing.T) {
	s, _ := newIndexedService(t)
	ctx := context.Background()

	require.NoError(t, s.RecordDerived(ctx, models.DerivedImage{Key: "a_1x1.jpg"}))
	require.NoError(t, s.RecordHit(ctx))
	require.NoError(t, s.RecordHit(ctx))

	stats, err := s.GetCacheStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats["hits"])
	assert.Equal(t, int64(1), stats["generated"])
	// One derived entry plus the stats hash.
	assert.Equal(t, int64(2), stats["db_keys"])
}

func TestHealthCheck(t *testing.T) {
	s, mr := newIndexedService(t)
	ctx := context.Background()

	status := s.HealthCheck(ctx)
	assert.Equal(t, models.HealthHealthy, status["redis"])
	assert.Equal(t, models.HealthNotConfigured, status["supabase"])

	mr.SetError("ERR simulated outage")

	status = s.HealthCheck(ctx)
	assert.True(t, strings.HasPrefix(status["redis"], models.HealthUnhealthy))
}

func TestNilService_IsDisabled(t *testing.T) {
	var s *StorageService
	ctx := context.Background()

	assert.NoError(t, s.RecordDerived(ctx, models.DerivedImage{Key: "a_1x1.jpg"}))
	assert.NoError(t, s.RecordHit(ctx))
	assert.NoError(t, s.Forget(ctx, "a_1x1.jpg"))
	assert.NoError(t, s.RemoveMirrored(ctx, []string{"a_1x1.jpg"}))

	got, err := s.GetDerived(ctx, "a_1x1.jpg")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = s.Mirror(ctx, "images/thumb/a_1x1.jpg")
	assert.ErrorIs(t, err, ErrMirrorDisabled)

	stats, err := s.GetCacheStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "not configured", stats["status"])

	status := s.HealthCheck(ctx)
	assert.Equal(t, models.HealthNotConfigured, status["redis"])
	assert.Equal(t, models.HealthNotConfigured, status["supabase"])
}

func TestMirrorAll_ReportsFailures(t *testing.T) {
	var s *StorageService

	urls, err := s.MirrorAll(context.Background(), []string{"a_1x1.jpg", "b_1x1.jpg"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to mirror 2 files")
	assert.Equal(t, []string{"", ""}, urls)
}

func TestMirrorKey(t *testing.T) {
	assert.Equal(t, "thumb/photo_200x300.jpg", MirrorKey("photo_200x300.jpg"))
}

func TestDescribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo_20x10.jpg")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	image, err := Describe(models.ProcessingRequest{Filename: "photo.jpg", Width: 20, Height: 10}, path)
	require.NoError(t, err)

	assert.Equal(t, "photo_20x10.jpg", image.Key)
	assert.Equal(t, "photo.jpg", image.Source)
	assert.Equal(t, int64(10), image.FileSize)
	assert.False(t, image.ProcessedAt.IsZero())

	_, err = Describe(models.ProcessingRequest{Filename: "photo.jpg"}, filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestPublish_IndexesWithoutMirror(t *testing.T) {
	s, _ := newIndexedService(t)
	ctx := context.Background()

	images := []models.DerivedImage{
		{Key: "a_1x1.jpg", Source: "a.jpg", Width: 1, Height: 1},
		{Key: "a_2x2.jpg", Source: "a.jpg", Width: 2, Height: 2},
	}
	s.Publish(ctx, images)

	for _, image := range images {
		got, err := s.GetDerived(ctx, image.Key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.URL)
	}

	stats, err := s.GetCacheStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats["generated"])
}

func TestPublish_NilServiceIsNoop(t *testing.T) {
	var s *StorageService
	s.Publish(context.Background(), []models.DerivedImage{{Key: "a_1x1.jpg"}})
}

func TestSaveJob_RoundTrip(t *testing.T) {
	s, mr := newIndexedService(t)
	ctx := context.Background()

	job := &models.WarmupJob{
		ID:       "job-1",
		Filename: "fjord.jpg",
		Sizes:    []models.WarmupSize{{Width: 100, Height: 50}},
		Status:   models.StatusPending,
	}
	require.NoError(t, s.SaveJob(ctx, job))
	assert.Equal(t, time.Hour, mr.TTL(JobKey("job-1")))

	job.Status = models.StatusCompleted
	job.Results = []models.WarmupJobResult{{Width: 100, Height: 50, OutputPath: "images/thumb/fjord_100x50.jpg"}}
	require.NoError(t, s.SaveJob(ctx, job))

	got, err := s.GetJob(ctx, "job-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, job.Results, got.Results)
}

func TestGetJob_Unknown(t *testing.T) {
	s, _ := newIndexedService(t)

	got, err := s.GetJob(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetJob_Disabled(t *testing.T) {
	var s *StorageService

	assert.NoError(t, s.SaveJob(context.Background(), &models.WarmupJob{ID: "job-1"}))

	_, err := s.GetJob(context.Background(), "job-1")
	assert.ErrorIs(t, err, ErrJobTrackingDisabled)
}
