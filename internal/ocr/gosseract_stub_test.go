//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

func TestGosseractStub(t *testing.T) {
	eng, err := New(Config{Engine: EngineGosseract})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = eng.Available()
	if !failure.Is(err, failure.MissingDependency) {
		t.Fatalf("expected MissingDependency, got %v", err)
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled in chain, got %v", err)
	}

	if _, err := eng.Recognize(context.Background(), textImage("x")); !failure.Is(err, failure.MissingDependency) {
		t.Errorf("expected MissingDependency from Recognize, got %v", err)
	}
}
