package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Redis     RedisConfig
	AI        AIConfig
	Messenger MessengerConfig
	Booking   BookingConfig
	Security  SecurityConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	TemplatesFile string
	RateLimit     int // requests per minute per client IP
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	Store string // memory | redis
	TTL   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	ParseTimeout time.Duration
}

type MessengerConfig struct {
	APIURL           string
	OperatorBotToken string
	DirectBotToken   string
	RatePerSecond    float64
	Timeout          time.Duration
}

type BookingConfig struct {
	Timezone      *time.Location
	ContactMethod string
	StoreTimeout  time.Duration
}

type SecurityConfig struct {
	WebhookSecretHash string
	AdminTokenHash    string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_NAME", "restaurant-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("RATE_LIMIT_PER_MIN", 120)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("PARSE_TIMEOUT_SEC", 10)
	viper.SetDefault("MESSENGER_API_URL", "https://api.telegram.org")
	viper.SetDefault("MESSENGER_RATE_PER_SEC", 20)
	viper.SetDefault("TRANSPORT_TIMEOUT_SEC", 10)
	viper.SetDefault("STORE_TIMEOUT_SEC", 5)
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("CONTACT_METHOD", "telegram")

	// .env is optional; plain environment is enough in containers.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	viper.AutomaticEnv()

	loc, err := time.LoadLocation(viper.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", viper.GetString("TIMEZONE"), err)
	}

	sessionStore := viper.GetString("SESSION_STORE")
	if sessionStore != "memory" && sessionStore != "redis" {
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", sessionStore)
	}

	config := &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Port:          viper.GetString("PORT"),
			Debug:         viper.GetBool("DEBUG"),
			LogPath:       viper.GetString("LOG_PATH"),
			TemplatesFile: viper.GetString("TEMPLATES_FILE"),
			RateLimit:     viper.GetInt("RATE_LIMIT_PER_MIN"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			Store: sessionStore,
			TTL:   time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		AI: AIConfig{
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
			GeminiModel:  viper.GetString("GEMINI_MODEL"),
			ParseTimeout: time.Duration(viper.GetInt("PARSE_TIMEOUT_SEC")) * time.Second,
		},
		Messenger: MessengerConfig{
			APIURL:           viper.GetString("MESSENGER_API_URL"),
			OperatorBotToken: viper.GetString("OPERATOR_BOT_TOKEN"),
			DirectBotToken:   viper.GetString("DIRECT_BOT_TOKEN"),
			RatePerSecond:    viper.GetFloat64("MESSENGER_RATE_PER_SEC"),
			Timeout:          time.Duration(viper.GetInt("TRANSPORT_TIMEOUT_SEC")) * time.Second,
		},
		Booking: BookingConfig{
			Timezone:      loc,
			ContactMethod: viper.GetString("CONTACT_METHOD"),
			StoreTimeout:  time.Duration(viper.GetInt("STORE_TIMEOUT_SEC")) * time.Second,
		},
		Security: SecurityConfig{
			WebhookSecretHash: viper.GetString("WEBHOOK_SECRET_HASH"),
			AdminTokenHash:    viper.GetString("ADMIN_TOKEN_HASH"),
		},
	}

	return config, nil
}
