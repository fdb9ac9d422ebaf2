package progress

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.Report(Event{Stage: StageExtractPage, Page: 1, Total: 2})
	rec.Report(Event{Stage: StageExtractPage, Page: 2, Total: 2})
	rec.Report(Event{Stage: StageOCRStart})

	if got := rec.Count(StageExtractPage); got != 2 {
		t.Errorf("expected 2 extract events, got %d", got)
	}
	if got := rec.Count(StageOCRPage); got != 0 {
		t.Errorf("expected 0 ocr events, got %d", got)
	}

	events := rec.Events()
	events[0].Page = 99
	if rec.Events()[0].Page != 1 {
		t.Error("Events() must return a copy")
	}
}

func TestMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	r := Multi(a, nil, b)
	r.Report(Event{Stage: StageExportDone})

	if a.Count(StageExportDone) != 1 || b.Count(StageExportDone) != 1 {
		t.Error("expected event delivered to both recorders")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewLogger(l)

	r.Report(Event{Stage: StageOCRPage, Path: "scan.pdf", Page: 1, Total: 3})
	r.Report(Event{Stage: StageRenderFailed, Path: "scan.pdf", Page: 2, Total: 3, Err: errors.New("bad page")})

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "stage=ocr.page") {
		t.Errorf("expected debug page line, got:\n%s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "error=\"bad page\"") {
		t.Errorf("expected warn failure line, got:\n%s", out)
	}
}
