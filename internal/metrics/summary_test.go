package metrics

import (
	"reflect"
	"testing"

	"github.com/CarlosRamz1/pdf-converter/internal/convert"
	"github.com/CarlosRamz1/pdf-converter/internal/extract"
	"github.com/CarlosRamz1/pdf-converter/internal/progress"
)

func TestSummarize(t *testing.T) {
	results := []convert.Result{
		{RunID: "a", Input: "a.pdf", Format: convert.FormatDocx, Success: true, Source: extract.SourceDirect, Seconds: 1},
		{RunID: "a", Input: "a.pdf", Format: convert.FormatXlsx, Success: true, Source: extract.SourceDirect, Seconds: 2},
		{RunID: "b", Input: "b.pdf", Format: convert.FormatDocx, Success: true, Source: extract.SourceOCR, Seconds: 4},
		{RunID: "b", Input: "b.pdf", Format: convert.FormatXlsx, Kind: "write_failed", Source: extract.SourceOCR, Seconds: 4},
		{RunID: "c", Input: "c.pdf", Format: convert.FormatDocx, Kind: "file_not_found"},
	}

	s := Summarize(results)

	if s.Inputs != 3 || s.Count != 5 {
		t.Errorf("inputs/count = %d/%d, want 3/5", s.Inputs, s.Count)
	}
	if s.SuccessCount != 3 || s.ErrorCount != 2 {
		t.Errorf("success/error = %d/%d, want 3/2", s.SuccessCount, s.ErrorCount)
	}
	if s.TotalSeconds != 6 || s.AvgSeconds != 2 {
		t.Errorf("seconds total/avg = %v/%v, want 6/2", s.TotalSeconds, s.AvgSeconds)
	}
	if !reflect.DeepEqual(s.BySource, map[string]int{"direct": 1, "ocr": 1}) {
		t.Errorf("unexpected by_source %v", s.BySource)
	}
	if !reflect.DeepEqual(s.ByKind, map[string]int{"write_failed": 1, "file_not_found": 1}) {
		t.Errorf("unexpected by_kind %v", s.ByKind)
	}
	if !reflect.DeepEqual(s.Failed, []string{"b.pdf", "c.pdf"}) {
		t.Errorf("unexpected failed %v", s.Failed)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.Inputs != 0 || s.AvgSeconds != 0 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestCountPages(t *testing.T) {
	rec := &progress.Recorder{}
	for _, stage := range []progress.Stage{
		progress.StageExtractPage, progress.StageExtractPage,
		progress.StageOCRStart,
		progress.StageOCRPage, progress.StageOCRPage,
		progress.StageRenderFailed, progress.StageOCRFailed,
		progress.StageExportDone,
	} {
		rec.Report(progress.Event{Stage: stage})
	}

	got := CountPages(rec)
	want := &PageStats{Extracted: 2, OCR: 2, Failed: 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountPages = %+v, want %+v", got, want)
	}
}
