// Package config provides configuration types and defaults for petsense.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/paths"
	"github.com/zjrosen/petsense/internal/tracing"
)

// DefaultEndpoint is the upload route of a locally running classification service.
const DefaultEndpoint = "http://localhost:8000/upload-photo/"

// Config holds all configuration options for petsense.
type Config struct {
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Workflow   WorkflowConfig   `mapstructure:"workflow"`
	Source     SourceConfig     `mapstructure:"source"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	UI         UIConfig         `mapstructure:"ui"`
}

// ClassifierConfig points at the remote classification service.
type ClassifierConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	FieldName string `mapstructure:"field_name"` // multipart field carrying the photo

	// CacheTTL keeps results for identical photos for this long within a
	// session. Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// WorkflowConfig tunes the readiness gate.
type WorkflowConfig struct {
	Gate          time.Duration `mapstructure:"gate"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

// SourceConfig configures where photos come from.
type SourceConfig struct {
	LibraryDir string       `mapstructure:"library_dir"`
	Camera     CameraConfig `mapstructure:"camera"`
}

// CameraConfig selects how the camera source captures a photo. Command takes
// precedence; with neither set the camera is unavailable.
type CameraConfig struct {
	// Command is run with {output} replaced by the file to write.
	Command string `mapstructure:"command"`
	// WatchDir is watched for the next image file to appear.
	WatchDir string `mapstructure:"watch_dir"`
}

// TracingConfig holds OpenTelemetry settings for classification requests.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/petsense/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowTip        bool `mapstructure:"show_tip"`
	ShowDisclaimer bool `mapstructure:"show_disclaimer"`
}

// Provider converts the settings to a tracing provider configuration,
// filling in the default trace file when none is set.
func (t TracingConfig) Provider() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	if t.Exporter != "" {
		cfg.Exporter = t.Exporter
	}
	cfg.FilePath = t.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	if t.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = t.OTLPEndpoint
	}
	if t.SampleRate > 0 {
		cfg.SampleRate = t.SampleRate
	}
	return cfg
}

// DefaultTracesFilePath returns ~/.config/petsense/traces/traces.jsonl, or
// an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	return paths.TracesFile()
}

// DefaultLibraryDir returns ~/Pictures, falling back to the working directory.
func DefaultLibraryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Classifier: ClassifierConfig{
			Endpoint:  DefaultEndpoint,
			FieldName: "file",
		},
		Workflow: WorkflowConfig{
			Gate:          3 * time.Second,
			FrameInterval: 50 * time.Millisecond,
		},
		Source: SourceConfig{
			LibraryDir: DefaultLibraryDir(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     tracing.ExporterFile,
			FilePath:     "", // derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		UI: UIConfig{
			ShowTip:        true,
			ShowDisclaimer: true,
		},
	}
}

// Validate checks the whole configuration and returns the first problem found.
func Validate(c Config) error {
	if err := ValidateClassifier(c.Classifier); err != nil {
		return err
	}
	if err := ValidateWorkflow(c.Workflow); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateClassifier requires an absolute http(s) endpoint.
func ValidateClassifier(c ClassifierConfig) error {
	if c.Endpoint == "" {
		return fmt.Errorf("classifier.endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("classifier.endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("classifier.endpoint must be an absolute http(s) URL, got %q", c.Endpoint)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("classifier.cache_ttl must not be negative, got %v", c.CacheTTL)
	}
	return nil
}

// ValidateWorkflow requires positive durations.
func ValidateWorkflow(w WorkflowConfig) error {
	if w.Gate <= 0 {
		return fmt.Errorf("workflow.gate must be positive, got %v", w.Gate)
	}
	if w.FrameInterval <= 0 {
		return fmt.Errorf("workflow.frame_interval must be positive, got %v", w.FrameInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	if !tracing.ValidExporter(t.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# PetSense Configuration

classifier:
  # Upload route of the classification service
  endpoint: ` + DefaultEndpoint + `
  # Multipart field name carrying the photo
  field_name: file
  # Reuse results for identical photos within a session (0s disables)
  cache_ttl: 0s

workflow:
  # How long a chosen photo is shown before it can be submitted
  gate: 3s
  # Progress bar refresh rate
  frame_interval: 50ms

source:
  # Directory the photo library picker opens in
  library_dir: ~/Pictures
  camera:
    # Capture command; {output} is replaced by the file to write
    # command: "fswebcam --no-banner {output}"
    command: ""
    # Alternatively, wait for a new photo to appear in this directory
    watch_dir: ""

# OpenTelemetry tracing for classification requests
tracing:
  enabled: false
  # none | file | stdout | otlp
  exporter: file
  # file_path: ~/.config/petsense/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

ui:
  # Show the photo tip under the preview
  show_tip: true
  # Show "PetSense AI can make mistakes" under results
  show_disclaimer: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
