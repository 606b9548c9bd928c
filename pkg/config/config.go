package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage driver identifiers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverFile     = "file"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
	Storage   StorageConfig
	OpenAI    OpenAIConfig
	Feed      FeedConfig
	Limits    LimitsConfig
	Analytics AnalyticsConfig
	Exports   ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig carries the shared secrets and session lifetime.
// Secrets may be plaintext or bcrypt hashes; an empty student secret
// disables the authentication gate entirely.
type AuthConfig struct {
	StudentPassword   string
	ProfessorPassword string
	SessionTTL        time.Duration
	SweepInterval     time.Duration
}

// RateLimitConfig tunes the fixed-window throttle applied to /api traffic.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig selects the persistence backend for notes, resources
// and order records.
type StorageConfig struct {
	Driver   string
	FilePath string
}

// OpenAIConfig configures the upstream AI proxy.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	SpeechModel    string
	SpeechVoice    string
	RequestTimeout time.Duration
}

// FeedConfig bounds the RSS listing endpoint.
type FeedConfig struct {
	MaxItems     int
	FetchTimeout time.Duration
}

// LimitsConfig caps user-supplied payload fields.
type LimitsConfig struct {
	MaxContentLength     int
	MaxPodcastTextLength int
	MaxPasswordLength    int
	MaxURLLength         int
	MaxTitleLength       int
}

// AnalyticsConfig toggles access-event recording and reporting.
type AnalyticsConfig struct {
	Enabled    bool
	QueueSize  int
	MaxRetries int
}

// ExportsConfig gates the notes export endpoint.
type ExportsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		StudentPassword:   strings.TrimSpace(v.GetString("APP_PASSWORD")),
		ProfessorPassword: strings.TrimSpace(v.GetString("PROF_PASSWORD")),
		SessionTTL:        parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
		SweepInterval:     parseDuration(v.GetString("SESSION_SWEEP_INTERVAL"), time.Minute),
	}

	cfg.RateLimit = RateLimitConfig{
		Window:      parseDuration(v.GetString("RATE_LIMIT_WINDOW"), time.Minute),
		MaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Storage = StorageConfig{
		Driver:   v.GetString("STORAGE_DRIVER"),
		FilePath: v.GetString("STORAGE_FILE"),
	}

	cfg.OpenAI = OpenAIConfig{
		APIKey:         v.GetString("OPENAI_API_KEY"),
		BaseURL:        v.GetString("OPENAI_BASE_URL"),
		ChatModel:      v.GetString("OPENAI_CHAT_MODEL"),
		SpeechModel:    v.GetString("OPENAI_SPEECH_MODEL"),
		SpeechVoice:    v.GetString("OPENAI_SPEECH_VOICE"),
		RequestTimeout: parseDuration(v.GetString("OPENAI_TIMEOUT"), 60*time.Second),
	}

	cfg.Feed = FeedConfig{
		MaxItems:     v.GetInt("FEED_MAX_ITEMS"),
		FetchTimeout: parseDuration(v.GetString("FEED_FETCH_TIMEOUT"), 10*time.Second),
	}

	cfg.Limits = LimitsConfig{
		MaxContentLength:     v.GetInt("MAX_CONTENT_LENGTH"),
		MaxPodcastTextLength: v.GetInt("MAX_PODCAST_TEXT_LENGTH"),
		MaxPasswordLength:    v.GetInt("MAX_PASSWORD_LENGTH"),
		MaxURLLength:         v.GetInt("MAX_URL_LENGTH"),
		MaxTitleLength:       v.GetInt("MAX_TITLE_LENGTH"),
	}

	cfg.Analytics = AnalyticsConfig{
		Enabled:    v.GetBool("ENABLE_ACCESS_ANALYTICS"),
		QueueSize:  v.GetInt("ACCESS_ANALYTICS_QUEUE_SIZE"),
		MaxRetries: v.GetInt("ACCESS_ANALYTICS_MAX_RETRIES"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8787)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "course_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("APP_PASSWORD", "")
	v.SetDefault("PROF_PASSWORD", "")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1m")

	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 30)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STORAGE_DRIVER", StorageDriverFile)
	v.SetDefault("STORAGE_FILE", "./data/app-data.json")

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_SPEECH_MODEL", "gpt-4o-mini-tts")
	v.SetDefault("OPENAI_SPEECH_VOICE", "alloy")
	v.SetDefault("OPENAI_TIMEOUT", "60s")

	v.SetDefault("FEED_MAX_ITEMS", 20)
	v.SetDefault("FEED_FETCH_TIMEOUT", "10s")

	v.SetDefault("MAX_CONTENT_LENGTH", 12000)
	v.SetDefault("MAX_PODCAST_TEXT_LENGTH", 8000)
	v.SetDefault("MAX_PASSWORD_LENGTH", 256)
	v.SetDefault("MAX_URL_LENGTH", 20000)
	v.SetDefault("MAX_TITLE_LENGTH", 180)

	v.SetDefault("ENABLE_ACCESS_ANALYTICS", false)
	v.SetDefault("ACCESS_ANALYTICS_QUEUE_SIZE", 256)
	v.SetDefault("ACCESS_ANALYTICS_MAX_RETRIES", 3)

	v.SetDefault("ENABLE_EXPORTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
