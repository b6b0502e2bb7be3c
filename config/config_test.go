package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Organization: "myorg",
		HTTP: HTTPConfig{
			Timeout:       60 * time.Second,
			SearchTimeout: 120 * time.Second,
			MaxRetries:    2,
			RetryWait:     2 * time.Second,
			MaxRetryWait:  30 * time.Second,
			PageLimit:     20,
			APIVersion:    "7.2-preview",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "Valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "Zero timeout",
			mutate:  func(cfg *Config) { cfg.HTTP.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "Zero search timeout",
			mutate:  func(cfg *Config) { cfg.HTTP.SearchTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "Negative retries",
			mutate:  func(cfg *Config) { cfg.HTTP.MaxRetries = -1 },
			wantErr: true,
		},
		{
			name:    "Zero retries is allowed",
			mutate:  func(cfg *Config) { cfg.HTTP.MaxRetries = 0 },
			wantErr: false,
		},
		{
			name:    "Zero page limit",
			mutate:  func(cfg *Config) { cfg.HTTP.PageLimit = 0 },
			wantErr: true,
		},
		{
			name:    "Invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "Invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// No config file anywhere near the temp working directory
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Timeout != 60*time.Second {
		t.Errorf("default http.timeout = %v, want 60s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.SearchTimeout != 120*time.Second {
		t.Errorf("default http.search_timeout = %v, want 120s", cfg.HTTP.SearchTimeout)
	}
	if cfg.HTTP.MaxRetries != 2 {
		t.Errorf("default http.max_retries = %d, want 2", cfg.HTTP.MaxRetries)
	}
	if cfg.HTTP.PageLimit != 20 {
		t.Errorf("default http.page_limit = %d, want 20", cfg.HTTP.PageLimit)
	}
	if cfg.HTTP.APIVersion != "7.2-preview" {
		t.Errorf("default http.api_version = %q, want 7.2-preview", cfg.HTTP.APIVersion)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("default logging = %q/%q, want info/console", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Organization != "" {
		t.Errorf("default organization = %q, want empty", cfg.Organization)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `organization: contoso
http:
  timeout: 10s
  max_retries: 5
filter:
  presets:
    active: 'status == "active"'
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Organization != "contoso" {
		t.Errorf("organization = %q, want contoso", cfg.Organization)
	}
	if cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("http.timeout = %v, want 10s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxRetries != 5 {
		t.Errorf("http.max_retries = %d, want 5", cfg.HTTP.MaxRetries)
	}
	// Defaults still fill the gaps
	if cfg.HTTP.SearchTimeout != 120*time.Second {
		t.Errorf("http.search_timeout = %v, want default 120s", cfg.HTTP.SearchTimeout)
	}
	if got := cfg.Filter.Presets["active"]; got != `status == "active"` {
		t.Errorf("filter preset = %q", got)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %q/%q, want debug/json", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() with missing explicit config file should fail")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	t.Setenv("ADOQ_ORG", "envorg")
	t.Setenv("ADOQ_CACHE_DIR", "/tmp/adoq-test-cache")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Organization != "envorg" {
		t.Errorf("organization = %q, want envorg from ADOQ_ORG", cfg.Organization)
	}
	if cfg.Auth.CacheDir != "/tmp/adoq-test-cache" {
		t.Errorf("auth.cache_dir = %q, want value from ADOQ_CACHE_DIR", cfg.Auth.CacheDir)
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return func() { os.Chdir(old) }
}
