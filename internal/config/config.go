package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StoreConfig selects and parameterizes the document store backend.
type StoreConfig struct {
	// Backend is "fs" (local directory tree) or "s3" (MinIO-compatible).
	Backend string
	// DataDir is the root holding per-category document dirs and ledger blobs.
	DataDir string
}

// ReviewConfig holds the review-domain settings.
type ReviewConfig struct {
	// Categories is the fixed set of document categories. Unknown categories
	// are rejected at the API boundary, never auto-created.
	Categories []string
	// DefaultState is where a record for a previously unrecorded document
	// lands on save: "unreviewed" or "reviewed".
	DefaultState string
}

// MinIOConfig holds object storage settings for the s3 backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Store   StoreConfig
	Review  ReviewConfig
	MinIO   MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Store: StoreConfig{
			Backend: getEnv("STORAGE_BACKEND", "fs"),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Review: ReviewConfig{
			Categories:   getEnvList("REVIEW_CATEGORIES", []string{"loan", "payroll"}),
			DefaultState: getEnv("REVIEW_DEFAULT_STATE", "unreviewed"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if cfg.Store.Backend != "fs" && cfg.Store.Backend != "s3" {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: want fs or s3", cfg.Store.Backend)
	}
	if len(cfg.Review.Categories) == 0 {
		return nil, fmt.Errorf("REVIEW_CATEGORIES must name at least one category")
	}
	if s := cfg.Review.DefaultState; s != "unreviewed" && s != "reviewed" {
		return nil, fmt.Errorf("invalid REVIEW_DEFAULT_STATE %q: want unreviewed or reviewed", s)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

// getEnvList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
