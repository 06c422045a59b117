package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents an app config.
type Config struct {
	Telegram   Telegram
	PostgreSQL PostgreSQL
	Logger     Logger
}

// Telegram represents a telegram bot configuration.
type Telegram struct {
	BotToken string `env:"BOT_TOKEN"`
	// UpdatesType represents a way we'll receive updates from Telegram. (webhook | polling)
	UpdatesType   string `env:"TELEGRAM_UPDATES_TYPE" env-default:"polling"`
	ServerAddress string `env:"SERVER_ADDRESS" env-default:":8443"`
	WebhookURL    string `env:"WEBHOOK_URL"`
	// AllowedUserIDs restricts the bot to the listed telegram user ids.
	// An empty list allows everyone.
	AllowedUserIDs []int64 `env:"ALLOWED_USER_IDS" env-separator:","`
}

// PostgreSQL represents a PostgreSQL database configuration.
type PostgreSQL struct {
	User     string `env:"POSTGRESQL_USER" env-default:"postgres"`
	Password string `env:"POSTGRESQL_PASSWORD" env-default:"postgres"`
	Database string `env:"POSTGRESQL_DATABASE" env-default:"kharj_bot"`
	Host     string `env:"POSTGRESQL_HOST" env-default:"localhost"`
	Port     string `env:"POSTGRESQL_PORT" env-default:"5432"`
	SSLMode  string `env:"POSTGRESQL_SSL_MODE" env-default:"disable"`
}

// Logger represents a logger configuration.
type Logger struct {
	LogLevel        string `env:"KB_LOGGER_LOG_LEVEL" env-default:"debug"`
	LogFilename     string `env:"KB_LOGGER_LOG_FILENAME" env-default:""`
	PrettyLogOutput bool   `env:"KB_LOGGER_PRETTY_LOG_OUTPUT" env-default:"false"`
}

var (
	config Config
	once   sync.Once
)

// Get returns a new config.
func Get() *Config {
	once.Do(func() {
		err := cleanenv.ReadEnv(&config)
		if err != nil {
			log.Fatalf("read env: %v", err)
		}
	})

	return &config
}
