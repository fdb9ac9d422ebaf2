package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/CarlosRamz1/pdf-converter/internal/config"
	"github.com/CarlosRamz1/pdf-converter/internal/convert"
	"github.com/CarlosRamz1/pdf-converter/internal/extract"
	"github.com/CarlosRamz1/pdf-converter/internal/home"
	"github.com/CarlosRamz1/pdf-converter/internal/ocr"
	"github.com/CarlosRamz1/pdf-converter/internal/progress"
	"github.com/CarlosRamz1/pdf-converter/internal/render"
)

// newLogger writes to stderr so stdout stays parseable YAML/JSON.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig resolves the home directory and loads configuration from
// --config, ./config.yaml or the home directory.
func loadConfig() (*home.Dir, *config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	mgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, nil, err
	}
	return h, mgr, nil
}

// newService wires the extraction pipeline and exporters from cfg. Pipeline
// events are logged and also sent to every reporter in extra.
func newService(cfg *config.Config, h *home.Dir, logger *slog.Logger, extra ...progress.Reporter) (*convert.Service, error) {
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}

	engine, err := ocr.New(ocr.Config{
		Engine:        cfg.OCR.Engine,
		Language:      cfg.OCR.Language,
		TesseractPath: cfg.OCR.TesseractPath,
		PageSegMode:   cfg.OCR.PageSegMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}

	renderer := render.New(render.Config{
		Binary:     cfg.Render.PdftoppmPath,
		Zoom:       cfg.Render.Zoom,
		ScratchDir: h.ScratchPath(),
	})

	reporter := progress.Multi(append([]progress.Reporter{progress.NewLogger(logger)}, extra...)...)
	extractor := extract.New(extract.Options{
		Renderer:     renderer,
		Recognizer:   engine,
		Reporter:     reporter,
		Logger:       logger,
		MinTextChars: cfg.Extract.MinTextChars,
		Workers:      cfg.Extract.Workers,
		MaxRetries:   cfg.OCR.MaxRetries,
		RetryDelay:   cfg.OCR.RetryDelay,
	})

	return convert.NewService(extractor, reporter, logger), nil
}
