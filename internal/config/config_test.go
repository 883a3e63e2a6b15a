package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3001" {
		t.Errorf("expected default port 3001, got %q", cfg.Port)
	}
	if cfg.GroqAPIBase != "https://api.groq.com/openai/v1" {
		t.Errorf("unexpected default api base %q", cfg.GroqAPIBase)
	}
	if cfg.MaxToolIterations != 10 {
		t.Errorf("expected 10 tool iterations, got %d", cfg.MaxToolIterations)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Port != "3001" {
		t.Errorf("expected defaults, got port %q", cfg.Port)
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "port: \"9000\"\nmcpServerUrl: http://tools.internal:5050\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.MCPServerURL != "http://tools.internal:5050" {
		t.Errorf("unexpected mcp url %q", cfg.MCPServerURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "port: \"9000\"\n")
	t.Setenv("EXCELAI_PORT", "7777")
	t.Setenv("EXCELAI_MCP_URL", "http://tools.env:5050")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7777" {
		t.Errorf("expected env port 7777, got %q", cfg.Port)
	}
	if cfg.MCPServerURL != "http://tools.env:5050" {
		t.Errorf("expected env mcp url, got %q", cfg.MCPServerURL)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "port: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_MissingMCPURL(t *testing.T) {
	cfg := Default()
	cfg.GroqAPIKey = "gsk_test"

	err := cfg.Validate()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := Default()
	cfg.MCPServerURL = "http://tools.internal:5050"

	err := cfg.Validate()
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := Default()
	cfg.MCPServerURL = "http://tools.internal:5050"
	cfg.GroqAPIKey = "gsk_test"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMCPEndpoint(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"http://tools.internal:5050", "http://tools.internal:5050/mcp"},
		{"http://tools.internal:5050/", "http://tools.internal:5050/mcp"},
		{"http://tools.internal:5050/mcp", "http://tools.internal:5050/mcp"},
		{"http://tools.internal:5050/rpc/v2", "http://tools.internal:5050/rpc/v2"},
	}
	for _, tc := range cases {
		cfg := Default()
		cfg.MCPServerURL = tc.in
		if got := cfg.MCPEndpoint(); got != tc.want {
			t.Errorf("MCPEndpoint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
