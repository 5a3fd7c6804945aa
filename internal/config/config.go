// Package config loads bot settings from a YAML file plus SPIRALBOT_*
// environment variables. The result is a plain value handed to component
// constructors; nothing reads configuration through package state.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is the full bot configuration.
type Config struct {
	Detection   DetectionConfig   `mapstructure:"detection"`
	Timing      TimingConfig      `mapstructure:"timing"`
	Launcher    LauncherConfig    `mapstructure:"launcher"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	History     HistoryConfig     `mapstructure:"history"`
}

// DetectionConfig tunes the detection core.
type DetectionConfig struct {
	// TemplateDir is the root of the PNG template tree.
	TemplateDir string `mapstructure:"template_dir"`

	// Threshold is the default confidence floor for detection results.
	Threshold float64 `mapstructure:"threshold"`

	// OCRLanguage is the tesseract language code.
	OCRLanguage string `mapstructure:"ocr_language"`
}

// TimingConfig tunes the automation primitives.
type TimingConfig struct {
	WaitTimeout  time.Duration `mapstructure:"wait_timeout"`
	WaitInterval time.Duration `mapstructure:"wait_interval"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
	SettleDelay  time.Duration `mapstructure:"settle_delay"`

	// LoadTimeout bounds the launch and world-load waits, which run far
	// longer than ordinary element waits.
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

// LauncherConfig locates the target application.
type LauncherConfig struct {
	Path string   `mapstructure:"path"`
	Args []string `mapstructure:"args"`

	// ProcessName is matched against the process table to detect an
	// already-running client.
	ProcessName string `mapstructure:"process_name"`
}

// CredentialsConfig holds login credentials. Normally supplied through
// SPIRALBOT_USERNAME and SPIRALBOT_PASSWORD rather than the config file.
type CredentialsConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// HistoryConfig controls execution-history records.
type HistoryConfig struct {
	Dir     string `mapstructure:"dir"`
	Enabled bool   `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("detection.template_dir", "templates")
	v.SetDefault("detection.threshold", 0.8)
	v.SetDefault("detection.ocr_language", "eng")

	v.SetDefault("timing.wait_timeout", "10s")
	v.SetDefault("timing.wait_interval", "1s")
	v.SetDefault("timing.max_retries", 3)
	v.SetDefault("timing.retry_delay", "2s")
	v.SetDefault("timing.settle_delay", "500ms")
	v.SetDefault("timing.load_timeout", "120s")

	v.SetDefault("launcher.process_name", "WizardGraphicalClient")

	v.SetDefault("history.dir", defaultHistoryDir())
	v.SetDefault("history.enabled", true)
}

func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spiralbot/history"
	}
	return home + "/.spiralbot/history"
}

// Load reads configuration from path (optional, "" means defaults plus
// environment only) and returns the resulting value.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SPIRALBOT")
	v.AutomaticEnv()
	v.BindEnv("credentials.username", "SPIRALBOT_USERNAME")
	v.BindEnv("credentials.password", "SPIRALBOT_PASSWORD")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that would otherwise surface as confusing
// runtime behavior.
func (c Config) Validate() error {
	if c.Detection.Threshold < 0 || c.Detection.Threshold > 1 {
		return fmt.Errorf("detection.threshold %v outside [0,1]", c.Detection.Threshold)
	}
	if c.Timing.MaxRetries < 0 {
		return fmt.Errorf("timing.max_retries %d is negative", c.Timing.MaxRetries)
	}
	if c.Timing.WaitInterval <= 0 {
		return fmt.Errorf("timing.wait_interval must be positive")
	}
	return nil
}
