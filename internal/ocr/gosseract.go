//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

// Gosseract wraps libtesseract via gosseract. A fresh client is used per
// page so concurrent workers never share one.
type Gosseract struct {
	language    string
	pageSegMode int
}

func newGosseract(cfg Config) Engine {
	return &Gosseract{language: cfg.Language, pageSegMode: cfg.PageSegMode}
}

func (g *Gosseract) Name() string { return EngineGosseract }

func (g *Gosseract) Available() error {
	c := gosseract.NewClient()
	defer c.Close()
	if err := c.SetLanguage(g.language); err != nil {
		return failure.New(failure.OCREngineUnavailable, "init gosseract", "", err)
	}
	return nil
}

func (g *Gosseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", failure.New(failure.Canceled, "gosseract", "", err)
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	c := gosseract.NewClient()
	defer c.Close()

	if err := c.SetLanguage(g.language); err != nil {
		return "", failure.New(failure.OCREngineUnavailable, "gosseract", "", err)
	}
	if g.pageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(g.pageSegMode)); err != nil {
			return "", fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		// Initialization errors mean the traineddata is missing, which will
		// not fix itself on the next page.
		if strings.Contains(err.Error(), "TessBaseAPI") {
			return "", failure.New(failure.OCREngineUnavailable, "gosseract", "", err)
		}
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
