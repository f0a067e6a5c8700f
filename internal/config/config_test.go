package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("BACKOFFICE_API_BASE", "")

	cfg, err := load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.APIBase != "" {
		t.Errorf("api base = %q, want empty", cfg.APIBase)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("page size = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
}

func TestLoadReadsFile(t *testing.T) {
	t.Setenv("BACKOFFICE_API_BASE", "")
	path := writeConfig(t, "api_base: http://backend:8881/balaji-finance\ntimeout: 10s\npage_size: 25\n")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBase != "http://backend:8881/balaji-finance" {
		t.Errorf("api base = %q", cfg.APIBase)
	}
	if cfg.PageSize != 25 {
		t.Errorf("page size = %d, want 25", cfg.PageSize)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.RequestTimeout())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("BACKOFFICE_API_BASE", "http://env-wins:9000/api")
	path := writeConfig(t, "api_base: http://file:8881/api\n")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBase != "http://env-wins:9000/api" {
		t.Errorf("api base = %q, want env value", cfg.APIBase)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := writeConfig(t, "api_base: [not: valid\n")

	if _, err := load(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestLoadClampsPageSize(t *testing.T) {
	t.Setenv("BACKOFFICE_API_BASE", "")
	path := writeConfig(t, "page_size: -3\n")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("page size = %d, want default", cfg.PageSize)
	}
}

func TestRequestTimeoutFallsBack(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", defaultTimeout},
		{"bogus", defaultTimeout},
		{"-5s", defaultTimeout},
		{"45s", 45 * time.Second},
		{"2m", 2 * time.Minute},
	}
	for _, tt := range tests {
		cfg := Config{Timeout: tt.in}
		if got := cfg.RequestTimeout(); got != tt.want {
			t.Errorf("timeout %q = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPathPrefersEnv(t *testing.T) {
	t.Setenv("BACKOFFICE_CONFIG", "/tmp/custom.yaml")
	if got := Path(); got != "/tmp/custom.yaml" {
		t.Errorf("path = %q", got)
	}
}
