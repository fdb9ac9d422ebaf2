// Package ocr recognizes text in rendered page images.
//
// Two engines are provided. "tesseract" shells out to the tesseract binary
// and needs only the executable (apt-get install tesseract-ocr, or
// brew install tesseract). "gosseract" links libtesseract through cgo and is
// only compiled in with the "ocr" build tag:
//
//	go build -tags ocr ./...
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

const (
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"

	// DefaultLanguage is the tesseract language code used when none is configured.
	DefaultLanguage = "eng"
)

// Engine recognizes text in an image.
type Engine interface {
	// Name returns the engine identifier (e.g., "tesseract").
	Name() string

	// Available reports whether the engine can run at all. It returns an
	// OCREngineUnavailable or MissingDependency failure when it cannot.
	Available() error

	// Recognize returns the text found in img with surrounding whitespace
	// trimmed. An image without text yields "" and no error.
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Config selects and configures an engine.
type Config struct {
	Engine        string // "tesseract" (default) or "gosseract"
	Language      string // tesseract language code(s), e.g. "eng" or "spa+eng"
	TesseractPath string // tesseract executable for the CLI engine
	PageSegMode   int    // tesseract --psm value, zero leaves the engine default
}

// New returns the engine named by cfg.Engine.
func New(cfg Config) (Engine, error) {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	switch cfg.Engine {
	case "", EngineTesseract:
		return NewTesseract(cfg), nil
	case EngineGosseract:
		return newGosseract(cfg), nil
	default:
		return nil, failure.New(failure.OCREngineUnavailable, "select ocr engine", "", fmt.Errorf("unknown engine %q", cfg.Engine))
	}
}

// encodePNG is the lossless intermediate handed to the engines.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
