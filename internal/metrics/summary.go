// Package metrics aggregates conversion results.
package metrics

import (
	"sort"

	"github.com/CarlosRamz1/pdf-converter/internal/convert"
	"github.com/CarlosRamz1/pdf-converter/internal/progress"
)

// Summary provides a summary of a batch of conversion results.
type Summary struct {
	Inputs       int            `json:"inputs" yaml:"inputs"`
	Count        int            `json:"count" yaml:"count"`
	SuccessCount int            `json:"success_count" yaml:"success_count"`
	ErrorCount   int            `json:"error_count" yaml:"error_count"`
	TotalSeconds float64        `json:"total_seconds" yaml:"total_seconds"`
	AvgSeconds   float64        `json:"avg_seconds" yaml:"avg_seconds"`
	BySource     map[string]int `json:"by_source,omitempty" yaml:"by_source,omitempty"`
	ByKind       map[string]int `json:"by_kind,omitempty" yaml:"by_kind,omitempty"`
	Failed       []string       `json:"failed,omitempty" yaml:"failed,omitempty"`
	Pages        *PageStats     `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// PageStats counts page-level pipeline events across a batch.
type PageStats struct {
	Extracted int `json:"extracted" yaml:"extracted"`
	OCR       int `json:"ocr" yaml:"ocr"`
	Failed    int `json:"failed" yaml:"failed"`
}

// CountPages tallies the page events held by rec. Pages that could not be
// rendered or recognized count as Failed.
func CountPages(rec *progress.Recorder) *PageStats {
	return &PageStats{
		Extracted: rec.Count(progress.StageExtractPage),
		OCR:       rec.Count(progress.StageOCRPage),
		Failed:    rec.Count(progress.StageRenderFailed) + rec.Count(progress.StageOCRFailed),
	}
}

// Summarize aggregates results. Time is counted once per run since every
// format of one input shares its extraction.
func Summarize(results []convert.Result) *Summary {
	s := &Summary{
		Count:    len(results),
		BySource: make(map[string]int),
		ByKind:   make(map[string]int),
	}

	runSeconds := make(map[string]float64)
	runSource := make(map[string]string)
	failed := make(map[string]bool)

	for _, r := range results {
		if r.Seconds > runSeconds[r.RunID] {
			runSeconds[r.RunID] = r.Seconds
		}
		if r.Source != "" {
			runSource[r.RunID] = string(r.Source)
		}
		if r.Success {
			s.SuccessCount++
		} else {
			s.ErrorCount++
			s.ByKind[r.Kind]++
			failed[r.Input] = true
		}
	}

	s.Inputs = len(runSeconds)
	for _, sec := range runSeconds {
		s.TotalSeconds += sec
	}
	for _, src := range runSource {
		s.BySource[src]++
	}
	for input := range failed {
		s.Failed = append(s.Failed, input)
	}
	sort.Strings(s.Failed)

	if s.Inputs > 0 {
		s.AvgSeconds = s.TotalSeconds / float64(s.Inputs)
	}
	return s
}
