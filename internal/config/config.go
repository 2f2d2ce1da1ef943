package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Images   ImagesConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ImagesConfig holds the source and derived image locations.
type ImagesConfig struct {
	InputDir     string
	OutputDir    string
	JPEGQuality  int
	MaxDimension int
}

type SupabaseConfig struct {
	URL    string
	KEY    string
	BUCKET string
}

// Enabled reports whether derived images should be mirrored to Supabase.
func (c SupabaseConfig) Enabled() bool {
	return c.URL != "" && c.BUCKET != ""
}

type RedisConfig struct {
	Enabled       bool
	Addr          string
	Password      string
	DB            int
	CacheDuration time.Duration
}

type RabbitMQConfig struct {
	URL       string
	QueueName string
	Workers   int
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			ReadTimeout:     getDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDuration("WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Images: ImagesConfig{
			InputDir:     getEnv("IMAGES_INPUT_DIR", "images"),
			OutputDir:    getEnv("IMAGES_OUTPUT_DIR", "images/thumb"),
			JPEGQuality:  getEnvAsInt("JPEG_QUALITY", 90),
			MaxDimension: getEnvAsInt("MAX_DIMENSION", 5000),
		},
		Supabase: SupabaseConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			KEY:    getEnv("SUPABASE_KEY", ""),
			BUCKET: getEnv("SUPABASE_BUCKET", ""),
		},
		Redis: RedisConfig{
			Enabled:       getEnvAsBool("REDIS_ENABLED", false),
			Addr:          getEnv("REDIS_ADDR", "localhost:6379"),
			Password:      getEnv("REDIS_PASSWORD", ""),
			DB:            getEnvAsInt("REDIS_DB", 0),
			CacheDuration: getDuration("CACHE_DURATION", 24*time.Hour),
		},
		RabbitMQ: RabbitMQConfig{
			URL:       getEnv("RABBITMQ_URL", ""),
			QueueName: getEnv("QUEUE_NAME", "image_warmup"),
			Workers:   getEnvAsInt("QUEUE_WORKERS", 2),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
		},
	}

	if cfg.Images.JPEGQuality < 1 || cfg.Images.JPEGQuality > 100 {
		cfg.Images.JPEGQuality = 90
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}
