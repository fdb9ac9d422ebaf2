// Package render rasterizes PDF pages to images with pdftoppm (poppler-utils).
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

const (
	// DefaultZoom scales both axes by two, giving four times the pixel area
	// of a 72 DPI rendering.
	DefaultZoom = 2.0

	// DefaultBinary is looked up on PATH when no explicit path is configured.
	DefaultBinary = "pdftoppm"

	baseDPI = 72.0
)

// Config configures the pdftoppm renderer.
type Config struct {
	// Binary is the pdftoppm executable, either a path or a name on PATH.
	Binary string
	// Zoom is the scale factor relative to 72 DPI.
	Zoom float64
	// ScratchDir holds intermediate PNG files. Defaults to os.TempDir().
	ScratchDir string
}

// Pdftoppm renders single pages by invoking pdftoppm.
type Pdftoppm struct {
	binary     string
	zoom       float64
	scratchDir string
}

// New creates a renderer from cfg, filling in defaults.
func New(cfg Config) *Pdftoppm {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Zoom <= 0 {
		cfg.Zoom = DefaultZoom
	}
	return &Pdftoppm{
		binary:     cfg.Binary,
		zoom:       cfg.Zoom,
		scratchDir: cfg.ScratchDir,
	}
}

// DPI returns the render resolution passed to pdftoppm.
func (r *Pdftoppm) DPI() int {
	return int(baseDPI*r.zoom + 0.5)
}

// Available reports MissingDependency when the pdftoppm binary cannot be found.
func (r *Pdftoppm) Available() error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return failure.New(failure.MissingDependency, "locate pdftoppm", r.binary, err)
	}
	return nil
}

// RenderPage renders the 1-indexed page of pdfPath and returns the decoded image.
// Any failure is reported as RenderFailed.
func (r *Pdftoppm) RenderPage(ctx context.Context, pdfPath string, page int) (image.Image, error) {
	op := fmt.Sprintf("render page %d", page)

	tmpDir, err := os.MkdirTemp(r.scratchDir, "pdfconv-page-*")
	if err != nil {
		return nil, failure.New(failure.RenderFailed, op, pdfPath, fmt.Errorf("failed to create temp dir: %w", err))
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")

	cmd := exec.CommandContext(ctx, r.binary, r.args(pdfPath, page, outputPrefix)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, failure.New(failure.Canceled, op, pdfPath, ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, failure.New(failure.MissingDependency, op, r.binary, err)
		}
		return nil, failure.New(failure.RenderFailed, op, pdfPath, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output)))
	}

	// pdftoppm with -singlefile creates: <prefix>.png
	f, err := os.Open(outputPrefix + ".png")
	if err != nil {
		return nil, failure.New(failure.RenderFailed, op, pdfPath, fmt.Errorf("pdftoppm did not create expected output: %w", err))
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, failure.New(failure.RenderFailed, op, pdfPath, fmt.Errorf("failed to decode rendered page: %w", err))
	}
	return img, nil
}

// args builds the pdftoppm command line.
//
//	-png: output PNG format
//	-f N -l N: render only page N
//	-r DPI: resolution
//	-singlefile: don't add page number suffix
func (r *Pdftoppm) args(pdfPath string, page int, outputPrefix string) []string {
	pageStr := strconv.Itoa(page)
	return []string{
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(r.DPI()),
		"-singlefile",
		pdfPath,
		outputPrefix,
	}
}
