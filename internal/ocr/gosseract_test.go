//go:build ocr

package ocr

import (
	"context"
	"strings"
	"testing"
)

func TestGosseract_Recognize(t *testing.T) {
	eng, err := New(Config{Engine: EngineGosseract})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := eng.Available(); err != nil {
		t.Skipf("gosseract unavailable: %v", err)
	}

	text, err := eng.Recognize(context.Background(), textImage("Hello PDF"))
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if !strings.Contains(strings.ToLower(text), "hello") {
		t.Errorf("expected recognized text to contain hello, got %q", text)
	}
}
