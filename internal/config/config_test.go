package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Detection.Threshold != 0.8 {
		t.Errorf("threshold = %v, want 0.8", cfg.Detection.Threshold)
	}
	if cfg.Timing.WaitTimeout != 10*time.Second {
		t.Errorf("wait_timeout = %v, want 10s", cfg.Timing.WaitTimeout)
	}
	if cfg.Timing.MaxRetries != 3 {
		t.Errorf("max_retries = %d, want 3", cfg.Timing.MaxRetries)
	}
	if cfg.Detection.TemplateDir != "templates" {
		t.Errorf("template_dir = %q, want templates", cfg.Detection.TemplateDir)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
detection:
  threshold: 0.9
  template_dir: /opt/bot/templates
timing:
  wait_timeout: 30s
  retry_delay: 5s
launcher:
  path: /opt/launcher/bin/launcher
  args: ["--windowed"]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Detection.Threshold != 0.9 {
		t.Errorf("threshold = %v, want 0.9", cfg.Detection.Threshold)
	}
	if cfg.Timing.WaitTimeout != 30*time.Second {
		t.Errorf("wait_timeout = %v, want 30s", cfg.Timing.WaitTimeout)
	}
	if cfg.Timing.WaitInterval != time.Second {
		t.Errorf("wait_interval = %v, want default 1s", cfg.Timing.WaitInterval)
	}
	if cfg.Launcher.Path != "/opt/launcher/bin/launcher" {
		t.Errorf("launcher path = %q", cfg.Launcher.Path)
	}
	if len(cfg.Launcher.Args) != 1 || cfg.Launcher.Args[0] != "--windowed" {
		t.Errorf("launcher args = %v", cfg.Launcher.Args)
	}
}

func TestCredentialsFromEnvironment(t *testing.T) {
	t.Setenv("SPIRALBOT_USERNAME", "player1")
	t.Setenv("SPIRALBOT_PASSWORD", "hunter2")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Credentials.Username != "player1" {
		t.Errorf("username = %q, want player1", cfg.Credentials.Username)
	}
	if cfg.Credentials.Password != "hunter2" {
		t.Errorf("password = %q, want hunter2", cfg.Credentials.Password)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("detection:\n  threshold: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for threshold outside [0,1]")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
