// Package config loads application settings from environment variables,
// applies defaults, and validates everything on startup so a bad deployment
// fails before it serves a single request.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application settings.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Import   ImportConfig
	Digest   DigestConfig
	Telegram TelegramConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the per-request middleware timeout (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. Both DATABASE_PATH and DB_PATH
	// are accepted (default: event_notifier.db)
	Path string `env:"DATABASE_PATH" envAlt:"DB_PATH" default:"event_notifier.db"`
}

// ImportConfig holds dataset import settings.
type ImportConfig struct {
	// DataDir is the directory holding the JSON dataset files (default: data)
	DataDir string `env:"IMPORT_DATA_DIR" envAlt:"DATA_DIR" default:"data"`
}

// DigestConfig holds daily digest settings.
type DigestConfig struct {
	// Time is the local wall-clock time to send the digest, in HH:MM.
	// Empty disables the digest entirely.
	Time string `env:"DIGEST_TIME"`

	// WindowDays is how many days ahead the digest looks (default: 7)
	WindowDays int `env:"DIGEST_WINDOW_DAYS" default:"7"`

	// Timeout bounds a single digest run (default: 30s)
	Timeout time.Duration `env:"DIGEST_TIMEOUT" default:"30s"`
}

// Enabled reports whether a digest time has been configured.
func (c *DigestConfig) Enabled() bool {
	return c.Time != ""
}

// TelegramConfig holds delivery settings for the digest.
type TelegramConfig struct {
	// Token is the bot token. Both TELEGRAM_TOKEN and TELEGRAM_BOT_TOKEN
	// are accepted.
	Token string `env:"TELEGRAM_TOKEN" envAlt:"TELEGRAM_BOT_TOKEN"`

	// ChatID is the chat that receives the digest.
	ChatID int64 `env:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether both token and chat are configured.
func (c *TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
