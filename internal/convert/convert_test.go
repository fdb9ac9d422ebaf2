package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/CarlosRamz1/pdf-converter/internal/export"
	"github.com/CarlosRamz1/pdf-converter/internal/extract"
	"github.com/CarlosRamz1/pdf-converter/internal/failure"
	"github.com/CarlosRamz1/pdf-converter/internal/progress"
	"github.com/CarlosRamz1/pdf-converter/internal/testutil"
)

type stubExtractor struct {
	text  *extract.Text
	err   error
	calls int
}

func (s *stubExtractor) Extract(context.Context, string) (*extract.Text, error) {
	s.calls++
	return s.text, s.err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []Format
		wantErr bool
	}{
		{"empty selects all", nil, []Format{FormatDocx, FormatXlsx}, false},
		{"single", []string{"xlsx"}, []Format{FormatXlsx}, false},
		{"normalized", []string{" .DOCX ", "docx"}, []Format{FormatDocx}, false},
		{"unknown", []string{"pdf"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFormats = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvert_BothFormats(t *testing.T) {
	out := t.TempDir()
	ext := &stubExtractor{text: &extract.Text{
		Content: "REPORT\n\nSome body text that is long enough.\n",
		Source:  extract.SourceDirect,
		Pages:   1,
	}}
	rec := &progress.Recorder{}
	svc := NewService(ext, rec, nil)

	results := svc.Convert(context.Background(), "/in/report.pdf", out, nil)

	if ext.calls != 1 {
		t.Errorf("expected a single extraction, got %d", ext.calls)
	}
	if len(results) != 2 || !Succeeded(results) {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].RunID == "" || results[0].RunID != results[1].RunID {
		t.Error("results of one conversion should share a run ID")
	}

	docx := results[0]
	if docx.Format != FormatDocx || docx.OutputPath != filepath.Join(out, "report.docx") {
		t.Errorf("unexpected docx result %+v", docx)
	}
	paragraphs, err := export.ReadDocx(docx.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"REPORT", "", "Some body text that is long enough.", ""}
	if !reflect.DeepEqual(paragraphs, want) {
		t.Errorf("paragraphs = %q, want %q", paragraphs, want)
	}

	xlsx := results[1]
	if xlsx.Lines != 2 {
		t.Errorf("expected 2 classified rows, got %d", xlsx.Lines)
	}
	rows, err := export.ReadXlsx(xlsx.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][0] != "Title" || rows[1][0] != "Paragraph" {
		t.Errorf("unexpected rows %q", rows)
	}

	if rec.Count(progress.StageExportDone) != 2 {
		t.Errorf("expected 2 export.done events, got %+v", rec.Events())
	}
}

func TestConvert_ExtractionFailure(t *testing.T) {
	ext := &stubExtractor{err: failure.New(failure.FileNotFound, "open pdf", "gone.pdf", os.ErrNotExist)}
	svc := NewService(ext, nil, nil)

	results := svc.Convert(context.Background(), "gone.pdf", t.TempDir(), []Format{FormatDocx, FormatXlsx})

	if len(results) != 2 {
		t.Fatalf("expected one result per format, got %d", len(results))
	}
	for _, r := range results {
		if r.Success || r.Kind != "file_not_found" || r.Error == "" {
			t.Errorf("unexpected result %+v", r)
		}
	}
}

func TestConvert_ExportFailureIsPerFormat(t *testing.T) {
	out := t.TempDir()
	// Occupy the docx output path with a non-empty directory.
	if err := os.MkdirAll(filepath.Join(out, "doc.docx", "x"), 0755); err != nil {
		t.Fatal(err)
	}
	ext := &stubExtractor{text: &extract.Text{Content: "HELLO\n", Source: extract.SourceOCR}}
	rec := &progress.Recorder{}
	svc := NewService(ext, rec, nil)

	results := svc.Convert(context.Background(), "doc.pdf", out, nil)

	if results[0].Success || results[0].Kind != "write_failed" {
		t.Errorf("expected docx write failure, got %+v", results[0])
	}
	if !results[1].Success {
		t.Errorf("xlsx export should still succeed, got %+v", results[1])
	}
	if results[1].Source != extract.SourceOCR {
		t.Errorf("expected source to be recorded, got %s", results[1].Source)
	}
	if rec.Count(progress.StageExportFailed) != 1 {
		t.Errorf("expected one export.failed event, got %+v", rec.Events())
	}
}

func TestConvert_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ext := &stubExtractor{text: &extract.Text{Content: "HELLO\n"}}

	results := NewService(ext, nil, nil).Convert(ctx, "doc.pdf", t.TempDir(), []Format{FormatXlsx})
	if len(results) != 1 || results[0].Kind != "canceled" {
		t.Errorf("expected canceled result, got %+v", results)
	}
}

func TestConvertAll(t *testing.T) {
	ext := &stubExtractor{err: errors.New("boom")}
	results := NewService(ext, nil, nil).ConvertAll(context.Background(), []string{"a.pdf", "b.pdf"}, t.TempDir(), []Format{FormatDocx})
	if len(results) != 2 || results[0].Input != "a.pdf" || results[1].Input != "b.pdf" {
		t.Errorf("unexpected results %+v", results)
	}
	if results[0].Kind != "unknown" {
		t.Errorf("untyped errors should map to unknown, got %s", results[0].Kind)
	}
}

func TestConvert_RealPDF(t *testing.T) {
	dir := t.TempDir()
	pdfPath := testutil.WritePDF(t, dir, "letter.pdf",
		"DEAR READER\nQuarterly Update\nThank you for reading this generated test document today.")
	svc := NewService(extract.New(extract.Options{}), nil, nil)

	results := svc.Convert(context.Background(), pdfPath, filepath.Join(dir, "converted"), nil)
	if !Succeeded(results) {
		t.Fatalf("conversion failed: %+v", results)
	}
	for _, r := range results {
		if r.Source != extract.SourceDirect {
			t.Errorf("expected direct source, got %s", r.Source)
		}
	}

	paragraphs, err := export.ReadDocx(results[0].OutputPath)
	if err != nil {
		t.Fatalf("ReadDocx failed: %v", err)
	}
	wantParagraphs := []string{
		"DEAR READER",
		"Quarterly Update",
		"Thank you for reading this generated test document today.",
		"",
	}
	if !reflect.DeepEqual(paragraphs, wantParagraphs) {
		t.Errorf("docx paragraphs = %q, want %q", paragraphs, wantParagraphs)
	}

	rows, err := export.ReadXlsx(results[1].OutputPath)
	if err != nil {
		t.Fatalf("ReadXlsx failed: %v", err)
	}
	wantRows := [][]string{
		{"Title", "DEAR READER", "1"},
		{"Subtitle", "Quarterly Update", "2"},
		{"Paragraph", "Thank you for reading this generated test document today.", "3"},
	}
	if !reflect.DeepEqual(rows, wantRows) {
		t.Errorf("xlsx rows = %q, want %q", rows, wantRows)
	}
}
