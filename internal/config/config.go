// Package config defines the application configuration and its loading from
// files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete configuration for the itemlens application. It
// covers all commands (analyze, batch, serve) and supports layering from
// configuration files, environment variables, and flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Analysis pipeline thresholds
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis" json:"analysis"`

	// OCR collaborator settings
	OCR OCRConfig `mapstructure:"ocr" yaml:"ocr" json:"ocr"`

	// Image labeler collaborator settings
	Labeler LabelerConfig `mapstructure:"labeler" yaml:"labeler" json:"labeler"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// AnalysisConfig contains the orchestrator thresholds.
type AnalysisConfig struct {
	MinTextLength        int     `mapstructure:"min_text_length" yaml:"min_text_length" json:"min_text_length"`
	LabelConfidenceFloor float64 `mapstructure:"label_confidence_floor" yaml:"label_confidence_floor" json:"label_confidence_floor"`
}

// OCRConfig contains tesseract settings.
type OCRConfig struct {
	Binary   string `mapstructure:"binary" yaml:"binary" json:"binary"`
	Language string `mapstructure:"language" yaml:"language" json:"language"`
	PSM      int    `mapstructure:"psm" yaml:"psm" json:"psm"`
}

// LabelerConfig contains image-labeling settings.
type LabelerConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Endpoint       string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	Model          string `mapstructure:"model" yaml:"model" json:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxLabels      int    `mapstructure:"max_labels" yaml:"max_labels" json:"max_labels"`
}

// OutputConfig contains result output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty" json:"pretty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host" json:"host"`
	Port            int           `mapstructure:"port" yaml:"port" json:"port"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxUploadMB     int           `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	CORSOrigin      string        `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	// RequestsPerMinute enables per-client rate limiting when positive.
	RequestsPerMinute int `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" json:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
	ContinueOnError bool     `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Analysis: AnalysisConfig{
			MinTextLength:        10,
			LabelConfidenceFloor: 0.65,
		},
		OCR: OCRConfig{
			Binary:   "tesseract",
			Language: "eng",
			PSM:      6,
		},
		Labeler: LabelerConfig{
			Enabled:        false,
			Endpoint:       "http://localhost:11434",
			Model:          "llava",
			TimeoutSeconds: 60,
			MaxLabels:      20,
		},
		Output: OutputConfig{
			Format: "json",
			Pretty: true,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadMB:     20,
			CORSOrigin:      "*",
		},
		Batch: BatchConfig{
			Workers:         4,
			Recursive:       false,
			ContinueOnError: true,
		},
	}
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

var validOutputFormats = []string{"json", "csv", "text"}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level %q (valid: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Analysis.MinTextLength < 0 {
		return fmt.Errorf("analysis.min_text_length must not be negative")
	}
	if c.Analysis.LabelConfidenceFloor < 0 || c.Analysis.LabelConfidenceFloor > 1 {
		return fmt.Errorf("analysis.label_confidence_floor must be in [0,1], got %v", c.Analysis.LabelConfidenceFloor)
	}
	if c.OCR.Binary == "" {
		return fmt.Errorf("ocr.binary must not be empty")
	}
	if c.OCR.PSM < 0 || c.OCR.PSM > 13 {
		return fmt.Errorf("ocr.psm must be in [0,13], got %d", c.OCR.PSM)
	}
	if c.Labeler.Enabled && c.Labeler.Endpoint == "" {
		return fmt.Errorf("labeler.endpoint must be set when the labeler is enabled")
	}
	if !contains(validOutputFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("invalid output format %q (valid: %s)", c.Output.Format, strings.Join(validOutputFormats, ", "))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.RequestsPerMinute < 0 {
		return fmt.Errorf("server.requests_per_minute must not be negative, got %d", c.Server.RequestsPerMinute)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
