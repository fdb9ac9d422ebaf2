// Package progress carries per-page and per-stage status events out of the
// conversion pipeline so callers can render them however they like.
package progress

import (
	"log/slog"
	"sync"
)

// Stage identifies the pipeline step an Event belongs to.
type Stage string

const (
	StageExtractPage  Stage = "extract.page"
	StageOCRStart     Stage = "ocr.start"
	StageOCRPage      Stage = "ocr.page"
	StageRenderFailed Stage = "render.failed"
	StageOCRFailed    Stage = "ocr.failed"
	StageExportDone   Stage = "export.done"
	StageExportFailed Stage = "export.failed"
)

// Event is a single status update.
type Event struct {
	Stage Stage
	Path  string // input PDF or output file
	Page  int    // 1-indexed, zero when not page-scoped
	Total int    // total pages, zero when not page-scoped
	Err   error
}

// Reporter receives pipeline events. Implementations must be safe for
// concurrent use when OCR runs with more than one worker.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) { f(e) }

// Nop discards all events.
var Nop Reporter = ReporterFunc(func(Event) {})

// Logger forwards events to a slog.Logger. Failures log at Warn.
type Logger struct {
	log *slog.Logger
}

// NewLogger returns a Reporter that logs through l (slog.Default if nil).
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{log: l}
}

func (r *Logger) Report(e Event) {
	attrs := []any{"stage", string(e.Stage), "path", e.Path}
	if e.Total > 0 {
		attrs = append(attrs, "page", e.Page, "of", e.Total)
	}
	if e.Err != nil {
		r.log.Warn("conversion event", append(attrs, "error", e.Err)...)
		return
	}
	switch e.Stage {
	case StageExtractPage, StageOCRPage:
		r.log.Debug("page processed", attrs...)
	default:
		r.log.Info("conversion event", attrs...)
	}
}

// Recorder stores events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of the given stage were recorded.
func (r *Recorder) Count(stage Stage) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Stage == stage {
			n++
		}
	}
	return n
}

// Multi fans events out to several reporters.
func Multi(reporters ...Reporter) Reporter {
	return ReporterFunc(func(e Event) {
		for _, r := range reporters {
			if r != nil {
				r.Report(e)
			}
		}
	})
}
