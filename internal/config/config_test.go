package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"tenability/internal/fed"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBPath != "app.db" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FED != fed.DefaultParams() {
		t.Fatalf("fed params = %+v", cfg.FED)
	}
	if cfg.Auth.TokenTTL != time.Hour || cfg.Replay != 200*time.Millisecond {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	yml := "port: \"9090\"\nfed:\n  threshold: 0.5\n  monitoring_height: 1.8\nimport:\n  paths: [\"/data/a\", \"/data/b\"]\n"
	if err := os.WriteFile(file, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TENABILITY_LOG_LEVEL", "DEBUG")

	v := New()
	if err := ReadFile(v, file); err != nil {
		t.Fatalf("read: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("monitoring-height", fed.DefaultMonitoringHeight, "")
	if err := BindFlags(v, fs, map[string]string{"monitoring-height": "fed.monitoring_height"}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := fs.Parse([]string{"--monitoring-height", "1.5"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.FED.Threshold != 0.5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.FED.MonitoringHeight != 1.5 {
		t.Fatalf("flag should win over file, got %v", cfg.FED.MonitoringHeight)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %q", cfg.LogLevel)
	}
	if len(cfg.Imports) != 2 || cfg.Imports[1] != "/data/b" {
		t.Fatalf("imports = %v", cfg.Imports)
	}
}

func TestShippedConfig_NoSigningKey(t *testing.T) {
	v := New()
	if err := ReadFile(v, filepath.Join("..", "..", "configs", "config.yml")); err != nil {
		t.Fatalf("read shipped config: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	if os.Getenv("TENABILITY_AUTH_SIGNING_KEY") == "" && cfg.Auth.SigningKey != "" {
		t.Fatalf("configs/config.yml ships a signing key %q", cfg.Auth.SigningKey)
	}
	if cfg.FED.Threshold != 0.3 || cfg.DBPath != "tenability.db" {
		t.Fatalf("unexpected shipped values: %+v", cfg)
	}
}

func TestReadFile_MissingDefaultIsFine(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := ReadFile(New(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ReadFile(New(), "does-not-exist.yml"); err == nil {
		t.Fatal("expected error for explicit missing file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	for _, tc := range []struct {
		key string
		val any
	}{
		{"fed.threshold", 0.0},
		{"fed.threshold", 1.2},
		{"fed.monitoring_height", -1.0},
		{"auth.token_ttl", time.Duration(0)},
		{"replay.interval", -time.Second},
	} {
		v := New()
		v.Set(tc.key, tc.val)
		if _, err := Load(v); err == nil {
			t.Fatalf("%s=%v: expected error", tc.key, tc.val)
		}
	}
}

func TestBindFlags_UnknownFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(New(), fs, map[string]string{"nope": "x"}); err == nil {
		t.Fatal("expected error")
	}
}
