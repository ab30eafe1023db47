package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}

	if cfg.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}

	if cfg.Delay != 500*time.Millisecond {
		t.Fatalf("delay = %v", cfg.Delay)
	}

	if cfg.MaxPages != 50 {
		t.Fatalf("max pages = %d", cfg.MaxPages)
	}

	if cfg.AIKey != "" {
		t.Fatalf("ai key = %q; want empty default", cfg.AIKey)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LLM_SEO_LOG_LEVEL", "debug")
	t.Setenv("LLM_SEO_WORKERS", "9")
	t.Setenv("LLM_SEO_AI_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}

	if cfg.Workers != 9 {
		t.Fatalf("workers = %d", cfg.Workers)
	}

	if cfg.AIKey != "sk-test" {
		t.Fatalf("ai key = %q", cfg.AIKey)
	}
}
