package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CarlosRamz1/pdf-converter/internal/catalog"
	"github.com/CarlosRamz1/pdf-converter/internal/config"
	"github.com/CarlosRamz1/pdf-converter/internal/convert"
	"github.com/CarlosRamz1/pdf-converter/internal/metrics"
	"github.com/CarlosRamz1/pdf-converter/internal/progress"
)

var (
	convertTo      []string
	convertOut     string
	convertLang    string
	convertEngine  string
	convertWorkers int
	convertSummary bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <pdf|dir>...",
	Short: "Convert PDFs to docx and xlsx",
	Long: `Convert one or more PDFs. Directories are expanded to the PDFs they
contain, ordered by numeric suffix (scan-1.pdf, scan-2.pdf, ...).

Each input is extracted once and written to every requested format.
One result is printed per input and format. The command fails if any
conversion failed.

Examples:
  pdfconv convert report.pdf
  pdfconv convert scans/ --to xlsx --out ./exports
  pdfconv convert scan.pdf --lang spa+eng --workers 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		h, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := applyConvertFlags(cmd, *mgr.Get())
		if err := cfg.Validate(); err != nil {
			return err
		}

		formats, err := convert.ParseFormats(cfg.Formats)
		if err != nil {
			return err
		}
		paths, err := catalog.Expand(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no PDFs found in %v", args)
		}

		pages := &progress.Recorder{}
		svc, err := newService(&cfg, h, logger, pages)
		if err != nil {
			return err
		}

		results := svc.ConvertAll(cmd.Context(), paths, cfg.OutputDir, formats)
		summary := metrics.Summarize(results)
		summary.Pages = metrics.CountPages(pages)
		logger.Info("conversion summary",
			"inputs", summary.Inputs, "succeeded", summary.SuccessCount,
			"failed", summary.ErrorCount, "seconds", summary.TotalSeconds,
			"pages_extracted", summary.Pages.Extracted, "pages_ocr", summary.Pages.OCR)

		var out any = results
		if convertSummary {
			out = summary
		}
		if err := printer.Print(out); err != nil {
			return err
		}

		if !convert.Succeeded(results) {
			return fmt.Errorf("%d of %d conversions failed", summary.ErrorCount, summary.Count)
		}
		return nil
	},
}

// applyConvertFlags overlays explicitly set flags onto cfg.
func applyConvertFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("to") {
		cfg.Formats = convertTo
	}
	if flags.Changed("out") {
		cfg.OutputDir = convertOut
	}
	if flags.Changed("lang") {
		cfg.OCR.Language = convertLang
	}
	if flags.Changed("engine") {
		cfg.OCR.Engine = convertEngine
	}
	if flags.Changed("workers") {
		cfg.Extract.Workers = convertWorkers
	}
	return cfg
}

func init() {
	convertCmd.Flags().StringSliceVar(&convertTo, "to", nil, "output formats: docx, xlsx (default from config)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output directory (default from config)")
	convertCmd.Flags().StringVar(&convertLang, "lang", "", "OCR language, e.g. eng or spa+eng")
	convertCmd.Flags().StringVar(&convertEngine, "engine", "", "OCR engine: tesseract or gosseract")
	convertCmd.Flags().IntVar(&convertWorkers, "workers", 0, "pages to OCR concurrently")
	convertCmd.Flags().BoolVar(&convertSummary, "summary", false, "print a summary instead of per-file results")
}
