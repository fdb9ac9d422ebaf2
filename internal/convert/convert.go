// Package convert runs a PDF through extraction once and exports the text
// to every requested format.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CarlosRamz1/pdf-converter/internal/classify"
	"github.com/CarlosRamz1/pdf-converter/internal/export"
	"github.com/CarlosRamz1/pdf-converter/internal/extract"
	"github.com/CarlosRamz1/pdf-converter/internal/failure"
	"github.com/CarlosRamz1/pdf-converter/internal/progress"
)

// Format is an output document format.
type Format string

const (
	FormatDocx Format = "docx"
	FormatXlsx Format = "xlsx"
)

// AllFormats lists every supported format in export order.
var AllFormats = []Format{FormatDocx, FormatXlsx}

// ParseFormats parses format names, dropping duplicates. An empty list
// selects every format.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return append([]Format(nil), AllFormats...), nil
	}
	seen := make(map[Format]bool)
	var out []Format
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")))
		switch f {
		case FormatDocx, FormatXlsx:
		default:
			return nil, fmt.Errorf("unknown format %q (supported: docx, xlsx)", name)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Result describes one export of one input.
type Result struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Input      string         `json:"input" yaml:"input"`
	Format     Format         `json:"format" yaml:"format"`
	OutputPath string         `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Success    bool           `json:"success" yaml:"success"`
	Kind       string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Error      string         `json:"error,omitempty" yaml:"error,omitempty"`
	Source     extract.Source `json:"source,omitempty" yaml:"source,omitempty"`
	Lines      int            `json:"lines" yaml:"lines"`
	Seconds    float64        `json:"seconds" yaml:"seconds"`
}

// Extractor produces text from a PDF.
type Extractor interface {
	Extract(ctx context.Context, path string) (*extract.Text, error)
}

// Service converts PDFs into office documents.
type Service struct {
	extractor Extractor
	reporter  progress.Reporter
	logger    *slog.Logger
}

// NewService creates a Service. reporter and logger may be nil.
func NewService(extractor Extractor, reporter progress.Reporter, logger *slog.Logger) *Service {
	if reporter == nil {
		reporter = progress.Nop
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{extractor: extractor, reporter: reporter, logger: logger}
}

// Convert extracts pdfPath once and writes one file per format into outDir.
// It always returns one Result per format. A failing format does not stop
// the others.
func (s *Service) Convert(ctx context.Context, pdfPath, outDir string, formats []Format) []Result {
	runID := uuid.New().String()
	log := s.logger.With("run_id", runID, "input", pdfPath)
	start := time.Now()

	if len(formats) == 0 {
		formats = AllFormats
	}

	log.Info("starting conversion", "formats", formats, "out", outDir)

	text, err := s.extractor.Extract(ctx, pdfPath)
	if err != nil {
		log.Error("extraction failed", "error", err)
		results := make([]Result, 0, len(formats))
		for _, f := range formats {
			results = append(results, failed(Result{RunID: runID, Input: pdfPath, Format: f}, err, start))
		}
		return results
	}
	log.Debug("text extracted", "source", text.Source, "pages", text.Pages)

	results := make([]Result, 0, len(formats))
	for _, f := range formats {
		r := Result{
			RunID:      runID,
			Input:      pdfPath,
			Format:     f,
			OutputPath: export.OutputPath(outDir, pdfPath, string(f)),
			Source:     text.Source,
		}

		if err := ctx.Err(); err != nil {
			results = append(results, failed(r, failure.New(failure.Canceled, "export", pdfPath, err), start))
			continue
		}

		n, err := s.export(r.OutputPath, f, text)
		if err != nil {
			log.Error("export failed", "format", f, "error", err)
			s.reporter.Report(progress.Event{Stage: progress.StageExportFailed, Path: r.OutputPath, Err: err})
			results = append(results, failed(r, err, start))
			continue
		}

		r.Success = true
		r.Lines = n
		r.Seconds = elapsed(start)
		s.reporter.Report(progress.Event{Stage: progress.StageExportDone, Path: r.OutputPath})
		log.Info("export complete", "format", f, "output", r.OutputPath, "lines", n)
		results = append(results, r)
	}
	return results
}

// ConvertAll converts each path in order and concatenates the results.
func (s *Service) ConvertAll(ctx context.Context, pdfPaths []string, outDir string, formats []Format) []Result {
	var all []Result
	for _, p := range pdfPaths {
		all = append(all, s.Convert(ctx, p, outDir, formats)...)
	}
	return all
}

// export writes one format and returns the number of lines or rows written.
func (s *Service) export(path string, f Format, text *extract.Text) (int, error) {
	switch f {
	case FormatDocx:
		lines := text.Lines()
		return len(lines), export.WriteDocx(path, lines)
	case FormatXlsx:
		rows := classify.Lines(text.Content)
		return len(rows), export.WriteXlsx(path, rows)
	}
	return 0, fmt.Errorf("unknown format %q", f)
}

func failed(r Result, err error, start time.Time) Result {
	r.Success = false
	r.Kind = failure.KindOf(err).String()
	r.Error = err.Error()
	r.Seconds = elapsed(start)
	return r
}

func elapsed(start time.Time) float64 {
	return time.Since(start).Round(time.Millisecond).Seconds()
}

// Succeeded reports whether every result succeeded.
func Succeeded(results []Result) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}
