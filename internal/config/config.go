package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables the bearer check entirely.
	APIKey string

	// Directories
	UploadDir string
	ImageDir  string

	// Persistence. Empty disables the relational store.
	DBPath string

	// Diagram extraction
	Zoom           float64
	MinDiagramArea float64 // original-page units², scaled by zoom² at filter time
	JPEGQuality    int
	PageWorkers    int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Structuring
	DefaultSubject string

	// PDF text fallback
	PDFFallbackLedongthuc bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("API_KEY"),

		UploadDir: envOr("UPLOAD_DIR", "uploads"),
		ImageDir:  envOr("IMAGE_DIR", "images"),

		DBPath: os.Getenv("DB_PATH"),

		Zoom:           envFloat("ZOOM", 3),
		MinDiagramArea: envFloat("MIN_DIAGRAM_AREA", 111.11), // 1000 px² at the default 3x zoom
		JPEGQuality:    envInt("JPEG_QUALITY", 90),
		PageWorkers:    envInt("PAGE_WORKERS", runtime.NumCPU()),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		DefaultSubject: envOr("DEFAULT_SUBJECT", "Mathematics"),

		PDFFallbackLedongthuc: envBool("PDF_FALLBACK_LEDONGTHUC", true),
	}

	if cfg.Zoom < 1 {
		cfg.Zoom = 3
	}
	if cfg.MinDiagramArea <= 0 {
		cfg.MinDiagramArea = 111.11
	}
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = 90
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = runtime.NumCPU()
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if c.ImageDir == "" {
		return fmt.Errorf("IMAGE_DIR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
