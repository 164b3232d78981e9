package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "redis" or "firestore"
	UseMockLLM     bool   // true = use mock even on GCP
	UseMockDocAI   bool

	RedisAddr     string
	RedisPassword string

	DocAIEndpoint string

	CatalogDBPath   string // sqlite file for the plan catalog
	CatalogSeedPath string // optional JSON seed, hot-reloaded when it changes
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads .env (if present) plus env vars and builds the config.
func Load() *Config {
	_ = godotenv.Load()

	modeStr := getEnv("BRIKI_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("BRIKI_PORT", "8080"),

		GCPProjectID: getEnv("BRIKI_GCP_PROJECT", ""),
		GCPLocation:  getEnv("BRIKI_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("BRIKI_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("BRIKI_STORAGE_BACKEND", "memory"),
		UseMockLLM:     getBoolEnv("BRIKI_USE_MOCK_LLM", mode == ModeLocal),
		UseMockDocAI:   getBoolEnv("BRIKI_USE_MOCK_DOCAI", mode == ModeLocal),

		RedisAddr:     getEnv("BRIKI_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("BRIKI_REDIS_PASSWORD", ""),

		DocAIEndpoint: getEnv("BRIKI_DOCAI_ENDPOINT", ""),

		CatalogDBPath:   getEnv("BRIKI_CATALOG_DB", "briki.db"),
		CatalogSeedPath: getEnv("BRIKI_CATALOG_SEED", ""),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("BRIKI_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
