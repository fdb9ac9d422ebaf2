package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds pdfconv configuration.
// Stored at: {home}/config.yaml
type Config struct {
	OutputDir string     `mapstructure:"output_dir" yaml:"output_dir"`
	Formats   []string   `mapstructure:"formats" yaml:"formats"`
	Extract   ExtractCfg `mapstructure:"extract" yaml:"extract"`
	OCR       OCRCfg     `mapstructure:"ocr" yaml:"ocr"`
	Render    RenderCfg  `mapstructure:"render" yaml:"render"`
	Watch     WatchCfg   `mapstructure:"watch" yaml:"watch"`
}

// ExtractCfg controls the direct-text versus OCR decision.
type ExtractCfg struct {
	MinTextChars int `mapstructure:"min_text_chars" yaml:"min_text_chars"` // below this, fall back to OCR
	Workers      int `mapstructure:"workers" yaml:"workers"`               // concurrent OCR pages
}

// OCRCfg configures the OCR engine.
type OCRCfg struct {
	Engine        string        `mapstructure:"engine" yaml:"engine"`                 // "tesseract" or "gosseract"
	Language      string        `mapstructure:"language" yaml:"language"`             // tesseract language, e.g. "eng" or "spa+eng"
	TesseractPath string        `mapstructure:"tesseract_path" yaml:"tesseract_path"` // binary path or name in PATH
	PageSegMode   int           `mapstructure:"page_seg_mode" yaml:"page_seg_mode"`   // 0 leaves the engine default
	MaxRetries    int           `mapstructure:"max_retries" yaml:"max_retries"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"` // "500ms" in files and env
}

// RenderCfg configures page rasterization.
type RenderCfg struct {
	PdftoppmPath string  `mapstructure:"pdftoppm_path" yaml:"pdftoppm_path"`
	Zoom         float64 `mapstructure:"zoom" yaml:"zoom"` // 1.0 = 72 DPI
}

// WatchCfg configures the directory watcher.
type WatchCfg struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "converted",
		Formats:   []string{"docx", "xlsx"},
		Extract: ExtractCfg{
			MinTextChars: 50,
			Workers:      1,
		},
		OCR: OCRCfg{
			Engine:        "tesseract",
			Language:      "eng",
			TesseractPath: "tesseract",
			MaxRetries:    1,
			RetryDelay:    500 * time.Millisecond,
		},
		Render: RenderCfg{
			PdftoppmPath: "pdftoppm",
			Zoom:         2.0,
		},
		Watch: WatchCfg{
			Debounce: time.Second,
		},
	}
}

var (
	knownFormats = map[string]bool{"docx": true, "xlsx": true}
	knownEngines = map[string]bool{"tesseract": true, "gosseract": true}
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	for _, f := range c.Formats {
		if !knownFormats[strings.ToLower(f)] {
			errs = append(errs, fmt.Errorf("formats: unknown format %q", f))
		}
	}
	if c.Extract.MinTextChars <= 0 {
		errs = append(errs, fmt.Errorf("extract.min_text_chars must be positive, got %d", c.Extract.MinTextChars))
	}
	if c.Extract.Workers < 1 {
		errs = append(errs, fmt.Errorf("extract.workers must be at least 1, got %d", c.Extract.Workers))
	}
	if !knownEngines[c.OCR.Engine] {
		errs = append(errs, fmt.Errorf("ocr.engine: unknown engine %q", c.OCR.Engine))
	}
	if strings.TrimSpace(c.OCR.Language) == "" {
		errs = append(errs, errors.New("ocr.language must not be empty"))
	}
	if c.OCR.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("ocr.max_retries must not be negative, got %d", c.OCR.MaxRetries))
	}
	if c.OCR.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("ocr.retry_delay must not be negative, got %s", c.OCR.RetryDelay))
	}
	if c.Render.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("render.zoom must be positive, got %v", c.Render.Zoom))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce))
	}

	return errors.Join(errs...)
}
