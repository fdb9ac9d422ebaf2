package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"strings"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
)

// Tesseract runs the tesseract command-line tool, feeding a PNG on stdin and
// reading text from stdout.
type Tesseract struct {
	binary      string
	language    string
	pageSegMode int
}

// NewTesseract creates a CLI-backed engine. An empty TesseractPath means
// "tesseract" on PATH.
func NewTesseract(cfg Config) *Tesseract {
	binary := cfg.TesseractPath
	if binary == "" {
		binary = EngineTesseract
	}
	lang := cfg.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Tesseract{binary: binary, language: lang, pageSegMode: cfg.PageSegMode}
}

func (t *Tesseract) Name() string { return EngineTesseract }

// Language returns the configured recognition language.
func (t *Tesseract) Language() string { return t.language }

func (t *Tesseract) Available() error {
	if _, err := exec.LookPath(t.binary); err != nil {
		return failure.New(failure.OCREngineUnavailable, "locate tesseract", t.binary, err)
	}
	return nil
}

func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, t.args()...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", failure.New(failure.Canceled, "tesseract", "", ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", failure.New(failure.OCREngineUnavailable, "tesseract", t.binary, err)
		}
		msg := strings.TrimSpace(stderr.String())
		// Missing traineddata fails every page the same way.
		if strings.Contains(msg, "Failed loading language") {
			return "", failure.New(failure.OCREngineUnavailable, "tesseract", t.binary, fmt.Errorf("language %q: %s", t.language, msg))
		}
		return "", fmt.Errorf("tesseract failed: %w (output: %s)", err, msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (t *Tesseract) args() []string {
	args := []string{"stdin", "stdout", "-l", t.language}
	if t.pageSegMode > 0 {
		args = append(args, "--psm", strconv.Itoa(t.pageSegMode))
	}
	return args
}
