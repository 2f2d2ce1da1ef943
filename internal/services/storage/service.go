package storage

import (
	"time"

	"github.com/phambaophuc/image-thumb/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// StorageService keeps a Redis index of derived images and mirrors them to
// a Supabase bucket. Either backend may be disabled; the corresponding
// methods then do nothing. A nil *StorageService is valid and fully disabled.
type StorageService struct {
	sbClient      *storage_go.Client
	redisClient   *redis.Client
	bucket        string
	cacheDuration time.Duration
	logger        *zap.Logger
}

func NewStorageService(cfg *config.Config, logger *zap.Logger) (*StorageService, error) {
	s := &StorageService{
		bucket:        cfg.Supabase.BUCKET,
		cacheDuration: cfg.Redis.CacheDuration,
		logger:        logger,
	}

	if cfg.Supabase.Enabled() {
		s.sbClient = storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)
	}

	if cfg.Redis.Enabled {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}

	return s, nil
}

func (s *StorageService) IndexEnabled() bool {
	return s != nil && s.redisClient != nil
}

func (s *StorageService) MirrorEnabled() bool {
	return s != nil && s.sbClient != nil
}

func (s *StorageService) Close() error {
	if s.IndexEnabled() {
		return s.redisClient.Close()
	}
	return nil
}
