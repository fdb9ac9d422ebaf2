package main

import (
	"context"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/CarlosRamz1/pdf-converter/internal/config"
	"github.com/CarlosRamz1/pdf-converter/internal/convert"
	"github.com/CarlosRamz1/pdf-converter/internal/watch"
)

var watchExisting bool

// watchState is swapped whole when the config file changes.
type watchState struct {
	cfg     *config.Config
	svc     *convert.Service
	formats []convert.Format
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Convert PDFs as they are added to a directory",
	Long: `Watch a directory and convert every PDF that is created or written
to it once the file has stopped changing. Results are printed as each
file completes. Edits to the config file take effect for the next PDF.

Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		h, mgr, err := loadConfig()
		if err != nil {
			return err
		}

		build := func(cfg *config.Config) (*watchState, error) {
			formats, err := convert.ParseFormats(cfg.Formats)
			if err != nil {
				return nil, err
			}
			svc, err := newService(cfg, h, logger)
			if err != nil {
				return nil, err
			}
			return &watchState{cfg: cfg, svc: svc, formats: formats}, nil
		}

		initial, err := build(mgr.Get())
		if err != nil {
			return err
		}
		var state atomic.Pointer[watchState]
		state.Store(initial)

		mgr.OnChange(func(cfg *config.Config) {
			next, err := build(cfg)
			if err != nil {
				logger.Warn("ignoring config change", "error", err)
				return
			}
			state.Store(next)
			logger.Info("config reloaded", "file", mgr.ConfigFileUsed())
		})
		if mgr.WatchConfig() {
			logger.Debug("watching config", "file", mgr.ConfigFileUsed())
		}

		w := watch.New(watch.Options{
			Dir:      dir,
			Debounce: initial.cfg.Watch.Debounce,
			Existing: watchExisting,
			Logger:   logger,
		}, func(ctx context.Context, path string) {
			s := state.Load()
			results := s.svc.Convert(ctx, path, s.cfg.OutputDir, s.formats)
			if err := printer.Print(results); err != nil {
				logger.Error("failed to print results", "error", err)
			}
		})
		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also convert PDFs already in the directory")
}
