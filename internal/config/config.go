// Package config loads the engine configuration from the environment,
// with an optional .env file for development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type NotifierKind string

const (
	NotifierDesktop  NotifierKind = "desktop"
	NotifierTelegram NotifierKind = "telegram"
	NotifierNone     NotifierKind = "none"
)

type DedupBackend string

const (
	DedupMemory DedupBackend = "memory"
	DedupSQLite DedupBackend = "sqlite"
	DedupRedis  DedupBackend = "redis"
)

type Config struct {
	StoreURL   string
	StoreToken string
	OwnerID    string

	Notifier       NotifierKind
	TelegramToken  string
	TelegramChatID int64

	Dedup         DedupBackend
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	HTTPAddr        string
	RefreshInterval time.Duration
}

func Default() Config {
	return Config{
		Notifier:        NotifierDesktop,
		Dedup:           DedupMemory,
		SQLitePath:      ".remindd_session.db",
		HTTPAddr:        ":8090",
		RefreshInterval: 5 * time.Minute,
	}
}

// Load reads the environment on top of the defaults. REMINDD_STORE_URL
// and REMINDD_OWNER_ID are required; everything else has a default.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(Default())
}

func FromEnv(base Config) (Config, error) {
	cfg := base

	cfg.StoreURL = strings.TrimSpace(os.Getenv("REMINDD_STORE_URL"))
	if cfg.StoreURL == "" {
		return Config{}, errors.New("config: REMINDD_STORE_URL is not set")
	}
	cfg.OwnerID = strings.TrimSpace(os.Getenv("REMINDD_OWNER_ID"))
	if cfg.OwnerID == "" {
		return Config{}, errors.New("config: REMINDD_OWNER_ID is not set")
	}
	cfg.StoreToken = os.Getenv("REMINDD_STORE_TOKEN")

	if v := strings.TrimSpace(strings.ToLower(os.Getenv("REMINDD_NOTIFIER"))); v != "" {
		switch NotifierKind(v) {
		case NotifierDesktop, NotifierTelegram, NotifierNone:
			cfg.Notifier = NotifierKind(v)
		default:
			return Config{}, fmt.Errorf("config: unknown notifier %q", v)
		}
	}
	cfg.TelegramToken = os.Getenv("REMINDD_TELEGRAM_TOKEN")
	if v, ok := getEnvInt64("REMINDD_TELEGRAM_CHAT_ID"); ok {
		cfg.TelegramChatID = v
	}
	if cfg.Notifier == NotifierTelegram && (cfg.TelegramToken == "" || cfg.TelegramChatID == 0) {
		return Config{}, errors.New("config: telegram notifier requires REMINDD_TELEGRAM_TOKEN and REMINDD_TELEGRAM_CHAT_ID")
	}

	if v := strings.TrimSpace(strings.ToLower(os.Getenv("REMINDD_DEDUP_BACKEND"))); v != "" {
		switch DedupBackend(v) {
		case DedupMemory, DedupSQLite, DedupRedis:
			cfg.Dedup = DedupBackend(v)
		default:
			return Config{}, fmt.Errorf("config: unknown dedup backend %q", v)
		}
	}
	if v := strings.TrimSpace(os.Getenv("REMINDD_SQLITE_PATH")); v != "" {
		cfg.SQLitePath = v
	}
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REMINDD_REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REMINDD_REDIS_PASSWORD")
	if v, ok := getEnvInt("REMINDD_REDIS_DB"); ok && v >= 0 {
		cfg.RedisDB = v
	}
	if cfg.Dedup == DedupRedis && cfg.RedisAddr == "" {
		return Config{}, errors.New("config: redis dedup backend requires REMINDD_REDIS_ADDR")
	}

	if v := strings.TrimSpace(os.Getenv("REMINDD_HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	if v, ok := getEnvInt("REMINDD_REFRESH_SECONDS"); ok && v > 0 {
		cfg.RefreshInterval = time.Duration(v) * time.Second
	}

	return cfg, nil
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvInt64(name string) (int64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
