package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Ai         AIConfig
	Generation GenerationConfig
	Summary    SummaryConfig
	Artifact   ArtifactConfig
	Auth       AuthConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "gemini"
	LLMModel      string // e.g. "llama3", "gemini-2.5-flash"
	OllamaBaseURL string
	GeminiAPIKey  string
	Temperature   float64
	MaxTokens     int
}

type GenerationConfig struct {
	MaxWorkers         int
	AllocationStrategy string // "product" or "nested"
	AuditTopic         string // watermill topic for audit records
}

type SummaryConfig struct {
	Backend          string // "llm" or "retrieval"
	RetrievalBaseURL string
	CacheTTL         time.Duration // zero disables caching
}

type ArtifactConfig struct {
	Sink        string // "filesystem", "redis" or "none"
	Dir         string
	RedisPrefix string
	RedisTTL    time.Duration
}

type AuthConfig struct {
	JWTSecret  string // enables Bearer auth on generation routes
	APIKeyHash string // bcrypt hash; enables X-API-Key auth
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiAPIKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 10000),
		},
		Generation: GenerationConfig{
			MaxWorkers:         getEnvAsInt("GENERATION_MAX_WORKERS", 3),
			AllocationStrategy: getEnv("ALLOCATION_STRATEGY", "product"),
			AuditTopic:         getEnv("AUDIT_TOPIC", "QUESTION_GENERATION_AUDIT"),
		},
		Summary: SummaryConfig{
			Backend:          getEnv("SUMMARY_BACKEND", "llm"),
			RetrievalBaseURL: getEnv("RETRIEVAL_BASE_URL", "http://localhost:8080"),
			CacheTTL:         getEnvAsDuration("SUMMARY_CACHE_TTL", 30*time.Minute),
		},
		Artifact: ArtifactConfig{
			Sink:        getEnv("ARTIFACT_SINK", "filesystem"),
			Dir:         getEnv("ARTIFACT_DIR", "artifacts"),
			RedisPrefix: getEnv("ARTIFACT_REDIS_PREFIX", "question-bank:artifact:"),
			RedisTTL:    getEnvAsDuration("ARTIFACT_REDIS_TTL", 0),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			APIKeyHash: getEnv("API_KEY_HASH", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
