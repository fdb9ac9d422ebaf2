package config

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// Entry is a documented configuration key and its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every configuration key with its default.
// These are registered as viper defaults so each key can also be set
// through a PDFCONV_ environment variable. Durations are given in
// time.ParseDuration form.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "output_dir",
			Value:       d.OutputDir,
			Description: "Directory converted documents are written to",
		},
		{
			Key:         "formats",
			Value:       d.Formats,
			Description: "Output formats to produce (docx, xlsx)",
		},

		// Extraction
		{
			Key:         "extract.min_text_chars",
			Value:       d.Extract.MinTextChars,
			Description: "Text layers shorter than this (after trimming) fall back to OCR",
		},
		{
			Key:         "extract.workers",
			Value:       d.Extract.Workers,
			Description: "Pages rendered and recognized concurrently during OCR",
		},

		// OCR
		{
			Key:         "ocr.engine",
			Value:       d.OCR.Engine,
			Description: "OCR engine: tesseract (CLI) or gosseract (requires the ocr build tag)",
		},
		{
			Key:         "ocr.language",
			Value:       d.OCR.Language,
			Description: "Tesseract language code, e.g. eng or spa+eng",
		},
		{
			Key:         "ocr.tesseract_path",
			Value:       d.OCR.TesseractPath,
			Description: "Path to the tesseract executable",
		},
		{
			Key:         "ocr.page_seg_mode",
			Value:       d.OCR.PageSegMode,
			Description: "Tesseract page segmentation mode (0 keeps the engine default)",
		},
		{
			Key:         "ocr.max_retries",
			Value:       d.OCR.MaxRetries,
			Description: "Extra recognition attempts for a page that fails",
		},
		{
			Key:         "ocr.retry_delay",
			Value:       d.OCR.RetryDelay.String(),
			Description: "Delay between recognition attempts",
		},

		// Rendering
		{
			Key:         "render.pdftoppm_path",
			Value:       d.Render.PdftoppmPath,
			Description: "Path to the pdftoppm executable",
		},
		{
			Key:         "render.zoom",
			Value:       d.Render.Zoom,
			Description: "Render scale for OCR pages (1.0 = 72 DPI)",
		},

		// Watching
		{
			Key:         "watch.debounce",
			Value:       d.Watch.Debounce.String(),
			Description: "How long a new PDF must stay unchanged before it is converted",
		},
	}
}

// GetDefault returns the default entry for a key, or nil if none exists.
func GetDefault(key string) *Entry {
	for _, e := range DefaultEntries() {
		if e.Key == key {
			return &e
		}
	}
	return nil
}

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)

// ValidateKey checks that key is well formed and known.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid config key %q: use lower-case dotted names", key)
	}
	if GetDefault(key) == nil {
		return fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return nil
}
