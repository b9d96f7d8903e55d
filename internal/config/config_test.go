package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

const baseConfig = `
server:
  port: "8080"
  mode: debug
database:
  host: localhost
  port: 3306
jwt:
  secret: short
  expire_hours: 72
`

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, baseConfig)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.JWT.ExpireTime != 72*time.Hour {
		t.Errorf("expire = %v, want 72h", cfg.JWT.ExpireTime)
	}

	// Practice tuning falls back to sensible values when omitted.
	if cfg.Practice.HintThreshold != 3 {
		t.Errorf("hint threshold = %d, want 3", cfg.Practice.HintThreshold)
	}
	if cfg.Practice.AttemptTTLMinutes != 30 {
		t.Errorf("attempt ttl = %d, want 30", cfg.Practice.AttemptTTLMinutes)
	}
	if cfg.Practice.LeaderboardSize != 50 {
		t.Errorf("leaderboard size = %d, want 50", cfg.Practice.LeaderboardSize)
	}
}

func TestLoadConfigPracticeOverrides(t *testing.T) {
	dir := writeConfig(t, baseConfig+`
practice:
  hint_threshold: 5
  attempt_ttl_minutes: 10
  leaderboard_size: 20
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Practice.HintThreshold != 5 {
		t.Errorf("hint threshold = %d, want 5", cfg.Practice.HintThreshold)
	}
	if cfg.Practice.AttemptTTLMinutes != 10 {
		t.Errorf("attempt ttl = %d, want 10", cfg.Practice.AttemptTTLMinutes)
	}
	if cfg.Practice.LeaderboardSize != 20 {
		t.Errorf("leaderboard size = %d, want 20", cfg.Practice.LeaderboardSize)
	}
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: release
jwt:
  secret: short
  expire_hours: 72
`)

	if _, err := LoadConfig(dir); err == nil {
		t.Error("release mode accepted a short JWT secret")
	}
}
