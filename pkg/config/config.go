package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported generation providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Events   EventsConfig
	Email    EmailConfig
	Auth     AuthConfig
	AI       AIConfig
	Analysis AnalysisConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int
	MinConns       int
	AutoMigrate    bool
	ConnectTimeout time.Duration
}

// RedisConfig holds Redis configuration. An empty Host selects the in-memory cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration used for archiving
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// EventsConfig holds NATS configuration. An empty URL disables publishing.
type EventsConfig struct {
	URL           string
	SubjectPrefix string
}

// EmailConfig holds transactional email configuration
type EmailConfig struct {
	ResendAPIKey string
	From         string
	SiteURL      string
	HookSecret   string
}

// AuthConfig holds bearer token verification settings
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	// Required rejects project requests without a bearer token
	Required bool
}

// AIConfig selects and configures the text generation providers
type AIConfig struct {
	AnalysisProvider string        `envconfig:"AI_ANALYSIS_PROVIDER" default:"gemini"`
	ChatProvider     string        `envconfig:"AI_CHAT_PROVIDER" default:"gemini"`
	CleanupProvider  string        `envconfig:"AI_CLEANUP_PROVIDER" default:"openai"`
	RequestTimeout   time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"120s"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-exp"`
	GeminiBaseURL string `envconfig:"GEMINI_API_URL" default:"https://generativelanguage.googleapis.com"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_API_URL" default:"https://api.openai.com"`

	GroqAPIKey  string `envconfig:"GROQ_API_KEY"`
	GroqModel   string `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	GroqBaseURL string `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`

	AssemblyAIAPIKey string `envconfig:"ASSEMBLYAI_API_KEY"`
}

// AnalysisConfig holds the excluded speaker (the interviewer) and result caching
type AnalysisConfig struct {
	ExcludedSpeakerName string        `envconfig:"EXCLUDED_SPEAKER_NAME" default:"Jamie Horton"`
	ExtraAliases        []string      `envconfig:"EXCLUDED_SPEAKER_ALIASES" default:"interviewer,researcher"`
	CacheTTL            time.Duration `envconfig:"ANALYSIS_CACHE_TTL" default:"10m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "transcript_iq"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:       getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate:    getEnvAsBool("DB_AUTO_MIGRATE", true),
			ConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", "30s"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "transcript-iq"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Events: EventsConfig{
			URL:           getEnv("NATS_URL", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "transcriptiq"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", "TranscriptIQ <no-reply@castfromclay.co.uk>"),
			SiteURL:      getEnv("SITE_URL", "http://localhost:5173"),
			HookSecret:   getEnv("AUTH_HOOK_SECRET", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", ""),
			Required:  getEnvAsBool("AUTH_REQUIRED", false),
		},
	}

	if err := envconfig.Process("", &config.AI); err != nil {
		return nil, fmt.Errorf("failed to load AI config: %w", err)
	}
	if err := envconfig.Process("", &config.Analysis); err != nil {
		return nil, fmt.Errorf("failed to load analysis config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, p := range []string{c.AI.AnalysisProvider, c.AI.ChatProvider, c.AI.CleanupProvider} {
		if _, err := c.AI.APIKey(p); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Analysis.ExcludedSpeakerName) == "" {
		return fmt.Errorf("EXCLUDED_SPEAKER_NAME is required")
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is set")
	}
	return nil
}

// APIKey returns the key configured for a provider
func (a *AIConfig) APIKey(provider string) (string, error) {
	var key, name string
	switch provider {
	case ProviderGemini:
		key, name = a.GeminiAPIKey, "GEMINI_API_KEY"
	case ProviderOpenAI:
		key, name = a.OpenAIAPIKey, "OPENAI_API_KEY"
	case ProviderGroq:
		key, name = a.GroqAPIKey, "GROQ_API_KEY"
	default:
		return "", fmt.Errorf("unsupported AI provider %q", provider)
	}
	if key == "" {
		return "", fmt.Errorf("%s is required for provider %s", name, provider)
	}
	return key, nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
