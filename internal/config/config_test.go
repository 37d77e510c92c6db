package config

import "testing"

func TestGetEnv(t *testing.T) {
	if got := getEnv("GROUPBUY_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("unset key = %q, want fallback", got)
	}

	t.Setenv("GROUPBUY_TEST_SET", "value")
	if got := getEnv("GROUPBUY_TEST_SET", "fallback"); got != "value" {
		t.Errorf("set key = %q, want value", got)
	}

	t.Setenv("GROUPBUY_TEST_EMPTY", "")
	if got := getEnv("GROUPBUY_TEST_EMPTY", "fallback"); got != "" {
		t.Errorf("empty key = %q, want empty string", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("STORAGE_DSN", "memory:")
	t.Setenv("STATIC_PATH", "/srv/static")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.StorageDSN != "memory:" {
		t.Errorf("StorageDSN = %q", cfg.StorageDSN)
	}
	if cfg.StaticPath != "/srv/static" {
		t.Errorf("StaticPath = %q", cfg.StaticPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}
