//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"image"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

// ErrOCRNotEnabled is returned when the gosseract engine is selected but
// the binary was built without the "ocr" tag.
var ErrOCRNotEnabled = errors.New("gosseract support not enabled; rebuild with -tags ocr")

// Gosseract is a stub that reports MissingDependency for every call.
type Gosseract struct{}

func newGosseract(Config) Engine {
	return &Gosseract{}
}

func (g *Gosseract) Name() string { return EngineGosseract }

func (g *Gosseract) Available() error {
	return failure.New(failure.MissingDependency, "init gosseract", "", ErrOCRNotEnabled)
}

func (g *Gosseract) Recognize(context.Context, image.Image) (string, error) {
	return "", g.Available()
}
