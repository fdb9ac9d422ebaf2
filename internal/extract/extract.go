// Package extract turns a PDF into plain text. It reads the text layer
// first and falls back to rendering and OCRing every page when the text
// layer is too thin to be real content.
package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/errgroup"

	"github.com/CarlosRamz1/pdf-converter/internal/failure"
	"github.com/CarlosRamz1/pdf-converter/internal/pdftext"
	"github.com/CarlosRamz1/pdf-converter/internal/progress"
)

// DefaultMinTextChars is the stripped text length below which a document is
// treated as image-only.
const DefaultMinTextChars = 50

// Source records which path produced a Text.
type Source string

const (
	SourceDirect Source = "direct"
	SourceOCR    Source = "ocr"
)

// Text is the result of one extraction. It is not modified after Extract
// returns.
type Text struct {
	Content string
	Source  Source
	Pages   int
}

// Lines splits the content into lines in reading order.
func (t *Text) Lines() []string {
	return strings.Split(t.Content, "\n")
}

// PageRenderer rasterizes a single PDF page.
type PageRenderer interface {
	Available() error
	RenderPage(ctx context.Context, pdfPath string, page int) (image.Image, error)
}

// Recognizer runs OCR on a rendered page.
type Recognizer interface {
	Available() error
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Options configures an Extractor. Opener is required. Renderer and
// Recognizer are only needed for documents that fall back to OCR.
type Options struct {
	Opener     pdftext.Opener
	Renderer   PageRenderer
	Recognizer Recognizer
	Reporter   progress.Reporter
	Logger     *slog.Logger

	MinTextChars int           // default DefaultMinTextChars
	Workers      int           // concurrent OCR pages, default 1
	MaxRetries   int           // extra OCR attempts per page, default 0
	RetryDelay   time.Duration // delay between OCR attempts
}

// Extractor runs the direct-then-OCR extraction pipeline.
type Extractor struct {
	opener       pdftext.Opener
	renderer     PageRenderer
	recognizer   Recognizer
	reporter     progress.Reporter
	logger       *slog.Logger
	minTextChars int
	workers      int
	maxRetries   int
	retryDelay   time.Duration
}

// New creates an Extractor from opts, filling in defaults.
func New(opts Options) *Extractor {
	if opts.Opener == nil {
		opts.Opener = pdftext.NewReader()
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MinTextChars <= 0 {
		opts.MinTextChars = DefaultMinTextChars
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Extractor{
		opener:       opts.Opener,
		renderer:     opts.Renderer,
		recognizer:   opts.Recognizer,
		reporter:     opts.Reporter,
		logger:       opts.Logger,
		minTextChars: opts.MinTextChars,
		workers:      opts.Workers,
		maxRetries:   opts.MaxRetries,
		retryDelay:   opts.RetryDelay,
	}
}

// Extract returns the text of the PDF at path.
func (e *Extractor) Extract(ctx context.Context, path string) (*Text, error) {
	doc, err := e.opener.Open(path)
	if err != nil {
		return nil, err
	}

	direct, pages, err := e.extractDirect(ctx, path, doc)
	doc.Close()
	if err != nil {
		return nil, err
	}

	stripped := strings.TrimSpace(direct)
	if n := utf8.RuneCountInString(stripped); n >= e.minTextChars {
		e.logger.Debug("using text layer", "path", path, "pages", pages, "chars", n)
		return &Text{Content: direct, Source: SourceDirect, Pages: pages}, nil
	}

	e.logger.Info("text layer too small, falling back to OCR",
		"path", path, "chars", utf8.RuneCountInString(stripped), "threshold", e.minTextChars)

	ocrText, err := e.extractOCR(ctx, path, pages)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(ocrText) == "" {
		return nil, failure.New(failure.ExtractionFailed, "extract", path, errors.New("no text found by direct extraction or OCR"))
	}
	return &Text{Content: ocrText, Source: SourceOCR, Pages: pages}, nil
}

// extractDirect reads the text layer of every page. A page that fails to
// yield text is treated as empty.
func (e *Extractor) extractDirect(ctx context.Context, path string, doc pdftext.Document) (string, int, error) {
	pages := doc.NumPages()
	var sb strings.Builder

	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return "", 0, failure.New(failure.Canceled, "extract text", path, err)
		}

		text, err := doc.PageText(page)
		if err != nil {
			e.logger.Debug("page text unavailable", "path", path, "page", page, "error", err)
			text = ""
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
		e.reporter.Report(progress.Event{Stage: progress.StageExtractPage, Path: path, Page: page, Total: pages})
	}

	return sb.String(), pages, nil
}

// extractOCR renders and recognizes every page. Output keeps page order
// regardless of how many workers run.
func (e *Extractor) extractOCR(ctx context.Context, path string, pages int) (string, error) {
	if e.renderer == nil {
		return "", failure.New(failure.MissingDependency, "ocr fallback", path, errors.New("no page renderer configured"))
	}
	if e.recognizer == nil {
		return "", failure.New(failure.OCREngineUnavailable, "ocr fallback", path, errors.New("no OCR engine configured"))
	}
	if err := e.renderer.Available(); err != nil {
		return "", err
	}
	if err := e.recognizer.Available(); err != nil {
		return "", err
	}

	e.reporter.Report(progress.Event{Stage: progress.StageOCRStart, Path: path, Total: pages})

	results := make([]string, pages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for page := 1; page <= pages; page++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			text, err := e.ocrPage(gctx, path, page, pages)
			if err != nil {
				return err
			}
			results[page-1] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", failure.New(failure.Canceled, "ocr", path, err)
	}

	var sb strings.Builder
	for _, text := range results {
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// ocrPage renders and recognizes one page. Render failures and exhausted
// recognition retries leave the page empty. Only cancellation and a missing
// engine or renderer are returned as errors, and they stop the whole run.
func (e *Extractor) ocrPage(ctx context.Context, path string, page, pages int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", failure.New(failure.Canceled, "ocr", path, err)
	}

	img, err := e.renderer.RenderPage(ctx, path, page)
	if err != nil {
		if fatal(err) {
			return "", err
		}
		e.reporter.Report(progress.Event{Stage: progress.StageRenderFailed, Path: path, Page: page, Total: pages, Err: err})
		return "", nil
	}

	var text string
	err = retry.Do(
		func() error {
			var rerr error
			text, rerr = e.recognizer.Recognize(ctx, img)
			return rerr
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries)+1),
		retry.Delay(e.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return !fatal(err) }),
	)
	if err != nil {
		if fatal(err) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", failure.New(failure.Canceled, "ocr", path, ctx.Err())
		}
		e.reporter.Report(progress.Event{
			Stage: progress.StageOCRFailed, Path: path, Page: page, Total: pages,
			Err: fmt.Errorf("page %d: %w", page, err),
		})
		return "", nil
	}

	e.reporter.Report(progress.Event{Stage: progress.StageOCRPage, Path: path, Page: page, Total: pages})
	return text, nil
}

// fatal reports whether err should abort the whole OCR fallback instead of
// costing a single page.
func fatal(err error) bool {
	switch failure.KindOf(err) {
	case failure.OCREngineUnavailable, failure.MissingDependency, failure.Canceled:
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
