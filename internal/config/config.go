// Package config defines the excelaipro configuration: one explicit struct
// resolved at startup from an optional YAML file overlaid by environment
// variables, with named, validated fields. Required fields fail fast instead
// of falling back to hardcoded addresses.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfiguration marks a missing or invalid required configuration field.
// It aborts the request (or server startup) before any network call.
var ErrConfiguration = errors.New("configuration error")

// Config holds every tunable of the server.
type Config struct {
	// Server
	Port string `yaml:"port"`

	// Tool server (MCP over streamable HTTP). Required.
	MCPServerURL string `yaml:"mcpServerUrl"`

	// Groq
	GroqAPIKey  string `yaml:"groqApiKey"`
	GroqAPIBase string `yaml:"groqApiBase"`

	// TTS
	TTSModel string `yaml:"ttsModel"`
	TTSVoice string `yaml:"ttsVoice"`

	// Uploads
	UploadDir string `yaml:"uploadDir"`

	// Chat
	MaxToolIterations int `yaml:"maxToolIterations"`

	// Maintenance schedules (robfig/cron five-field specs; empty disables).
	ProbeSchedule       string `yaml:"probeSchedule"`
	UsageReportSchedule string `yaml:"usageReportSchedule"`

	// Logging
	LogLevel string `yaml:"logLevel"`
}

// Default returns the configuration defaults applied before file and env
// overlays.
func Default() Config {
	return Config{
		Port:                "3001",
		GroqAPIBase:         "https://api.groq.com/openai/v1",
		TTSModel:            "playai-tts",
		TTSVoice:            "Aaliyah-PlayAI",
		UploadDir:           "fileUploads",
		MaxToolIterations:   10,
		ProbeSchedule:       "*/5 * * * *",
		UsageReportSchedule: "0 * * * *",
		LogLevel:            "info",
	}
}

// Load resolves the configuration: defaults, then the YAML file at path (when
// path is non-empty and the file exists), then environment variables.
// Validation is a separate step so commands that do not need the full server
// config can still load partial configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// No overlay file; env-only configuration.
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("EXCELAI_PORT", c.Port)
	c.MCPServerURL = getEnv("EXCELAI_MCP_URL", c.MCPServerURL)
	c.GroqAPIKey = getEnv("GROQ_API_KEY", c.GroqAPIKey)
	c.GroqAPIBase = getEnv("GROQ_API_BASE", c.GroqAPIBase)
	c.TTSModel = getEnv("EXCELAI_TTS_MODEL", c.TTSModel)
	c.TTSVoice = getEnv("EXCELAI_TTS_VOICE", c.TTSVoice)
	c.UploadDir = getEnv("EXCELAI_UPLOAD_DIR", c.UploadDir)
	c.MaxToolIterations = getEnvInt("EXCELAI_MAX_TOOL_ITERATIONS", c.MaxToolIterations)
	c.ProbeSchedule = getEnv("EXCELAI_PROBE_SCHEDULE", c.ProbeSchedule)
	c.UsageReportSchedule = getEnv("EXCELAI_USAGE_REPORT_SCHEDULE", c.UsageReportSchedule)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks the fields the server cannot run without.
func (c *Config) Validate() error {
	if c.MCPServerURL == "" {
		return fmt.Errorf("%w: EXCELAI_MCP_URL is not set", ErrConfiguration)
	}
	if _, err := url.Parse(c.MCPServerURL); err != nil {
		return fmt.Errorf("%w: EXCELAI_MCP_URL: %v", ErrConfiguration, err)
	}
	if c.GroqAPIKey == "" {
		return fmt.Errorf("%w: GROQ_API_KEY is not set", ErrConfiguration)
	}
	if c.MaxToolIterations <= 0 {
		return fmt.Errorf("%w: maxToolIterations must be positive", ErrConfiguration)
	}
	return nil
}

// MCPEndpoint returns the full MCP endpoint URL. The configured value names
// the tool server's base URL; the /mcp path is appended when absent.
func (c *Config) MCPEndpoint() string {
	base := strings.TrimRight(c.MCPServerURL, "/")
	if u, err := url.Parse(base); err == nil && u.Path != "" {
		return base
	}
	return base + "/mcp"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
