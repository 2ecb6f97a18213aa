package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/blocksearch/internal/classifier"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Embedding backend
	OllamaURL      string
	EmbedModel     string
	EmbedBatchSize int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Persistence
	DataDir string

	// Job state
	JobTTL time.Duration

	// Retrieval
	OverfetchFactor int
	DefaultK        int

	// Classifier cutoffs (corpus-tuned; see classifier.DefaultConfig).
	Classifier classifier.Config
}

func Load() Config {
	cls := classifier.DefaultConfig()
	cls.MinChars = envInt("CLASSIFIER_MIN_CHARS", cls.MinChars)
	cls.BoilerplateMaxChars = envInt("CLASSIFIER_BOILERPLATE_MAX_CHARS", cls.BoilerplateMaxChars)
	cls.MaxHeadingChars = envInt("CLASSIFIER_MAX_HEADING_CHARS", cls.MaxHeadingChars)
	cls.H1Percentile = envFloat("CLASSIFIER_H1_PERCENTILE", cls.H1Percentile)
	cls.H2Percentile = envFloat("CLASSIFIER_H2_PERCENTILE", cls.H2Percentile)
	cls.H3Percentile = envFloat("CLASSIFIER_H3_PERCENTILE", cls.H3Percentile)
	if v := os.Getenv("CLASSIFIER_SKIP_PATTERNS"); v != "" {
		cls.SkipPatterns = splitPatterns(v)
	}

	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("BLOCKSEARCH_API_KEY"),

		OllamaURL:      envOr("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel:     envOr("EMBED_MODEL", "all-minilm"),
		EmbedBatchSize: envInt("EMBED_BATCH_SIZE", 32),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DataDir: envOr("DATA_DIR", "data"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		OverfetchFactor: envInt("OVERFETCH_FACTOR", 3),
		DefaultK:        envInt("DEFAULT_K", 10),

		Classifier: cls,
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
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
	if cfg.OverfetchFactor < 1 {
		cfg.OverfetchFactor = 3
	}
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = 10
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("BLOCKSEARCH_API_KEY is required")
	}
	if c.EmbedModel == "" {
		return fmt.Errorf("EMBED_MODEL is required")
	}
	return nil
}

func splitPatterns(v string) []string {
	var patterns []string
	for _, p := range strings.Split(v, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
