package internal

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL,default=INFO"`
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8000"`
	GRPCPort int    `env:"GRPC_PORT,default=8001"`

	BadgerFilepath     string `env:"BADGER_FILEPATH,required=true"`
	LimitNotifications *int   `env:"LIMIT_NOTIFICATIONS"`

	BufferSize           int           `env:"BUFFER_SIZE,default=256"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	PongTimeout          time.Duration `env:"PONG_TIMEOUT,default=60s"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=65536"`
	AllowedOrigins       string        `env:"ALLOWED_ORIGINS,default=localhost"`

	PresenceDebounce  time.Duration `env:"PRESENCE_DEBOUNCE,default=0s"`
	FanoutBatchSize   int           `env:"FANOUT_BATCH_SIZE,default=100"`
	FanoutConcurrency int           `env:"FANOUT_CONCURRENCY,default=8"`

	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	StatsInterval   time.Duration `env:"STATS_INTERVAL,default=5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	CensoredWordsDir string `env:"CENSORED_WORDS_DIR"`
	CensoredChar     string `env:"CENSORED_CHAR,default=*"`

	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	return lo.Compact(lo.Map(strings.Split(c.AllowedOrigins, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

// CensoredRune is the replacement for censored characters.
func (c Config) CensoredRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CensoredChar)
	return r
}

func (c Config) Validate() error {
	if len(c.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be at least 32 bytes, got %d", len(c.AuthSecret))
	}
	if c.FanoutBatchSize <= 0 || c.FanoutConcurrency <= 0 {
		return fmt.Errorf("FANOUT_BATCH_SIZE and FANOUT_CONCURRENCY must be positive")
	}
	if utf8.RuneCountInString(c.CensoredChar) != 1 {
		return fmt.Errorf("CENSORED_CHAR must be a single character, got %q", c.CensoredChar)
	}
	if c.PresenceDebounce < 0 {
		return fmt.Errorf("PRESENCE_DEBOUNCE must not be negative, got %s", c.PresenceDebounce)
	}
	return nil
}
