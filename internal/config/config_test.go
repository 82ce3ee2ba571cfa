package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("REMINDD_STORE_URL", "http://localhost:8000")
	t.Setenv("REMINDD_OWNER_ID", "user-1")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Notifier != NotifierDesktop || cfg.Dedup != DedupMemory {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPAddr != ":8090" || cfg.RefreshInterval != 5*time.Minute {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnvRequiresStoreAndOwner(t *testing.T) {
	t.Setenv("REMINDD_STORE_URL", "")
	t.Setenv("REMINDD_OWNER_ID", "user-1")
	if _, err := FromEnv(Default()); err == nil || !strings.Contains(err.Error(), "REMINDD_STORE_URL") {
		t.Fatalf("expected missing store url error, got: %v", err)
	}

	t.Setenv("REMINDD_STORE_URL", "http://localhost:8000")
	t.Setenv("REMINDD_OWNER_ID", "")
	if _, err := FromEnv(Default()); err == nil || !strings.Contains(err.Error(), "REMINDD_OWNER_ID") {
		t.Fatalf("expected missing owner error, got: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REMINDD_NOTIFIER", "none")
	t.Setenv("REMINDD_DEDUP_BACKEND", "sqlite")
	t.Setenv("REMINDD_SQLITE_PATH", "state/session.db")
	t.Setenv("REMINDD_HTTP_ADDR", ":9100")
	t.Setenv("REMINDD_REFRESH_SECONDS", "30")

	cfg, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Notifier != NotifierNone || cfg.Dedup != DedupSQLite || cfg.SQLitePath != "state/session.db" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.HTTPAddr != ":9100" || cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestFromEnvRejectsUnknownKinds(t *testing.T) {
	setRequired(t)
	t.Setenv("REMINDD_NOTIFIER", "carrier-pigeon")
	if _, err := FromEnv(Default()); err == nil {
		t.Fatal("expected unknown notifier to fail")
	}

	t.Setenv("REMINDD_NOTIFIER", "desktop")
	t.Setenv("REMINDD_DEDUP_BACKEND", "scroll")
	if _, err := FromEnv(Default()); err == nil {
		t.Fatal("expected unknown dedup backend to fail")
	}
}

func TestFromEnvCrossFieldRequirements(t *testing.T) {
	setRequired(t)
	t.Setenv("REMINDD_NOTIFIER", "telegram")
	if _, err := FromEnv(Default()); err == nil {
		t.Fatal("telegram notifier without credentials must fail")
	}

	t.Setenv("REMINDD_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("REMINDD_TELEGRAM_CHAT_ID", "42")
	cfg, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TelegramChatID != 42 {
		t.Fatalf("unexpected chat id: %d", cfg.TelegramChatID)
	}

	t.Setenv("REMINDD_NOTIFIER", "desktop")
	t.Setenv("REMINDD_DEDUP_BACKEND", "redis")
	if _, err := FromEnv(Default()); err == nil {
		t.Fatal("redis backend without an address must fail")
	}
}
