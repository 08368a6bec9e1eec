// Package sysinfo implements the "toolbox sysinfo" command.
package sysinfo

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"toolbox/internal/report"
	"toolbox/internal/store"
	"toolbox/internal/sysinfo"
	"toolbox/pkg/config"
	"toolbox/pkg/logger"
)

// Options are the command-line overrides of the [sysinfo] config section.
type Options struct {
	Format string
	Save   bool
}

// Run prints a report of the local host to stdout.
func Run(ctx context.Context, configPath string, opts Options) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.General.LogLevel)
	return run(ctx, cfg, sysinfo.System{}, os.Stdout, log, opts)
}

func run(ctx context.Context, cfg *config.Config, src sysinfo.Source, out io.Writer, log zerolog.Logger, opts Options) error {
	format := opts.Format
	if format == "" {
		format = cfg.SysInfo.Format
	}
	if !slices.Contains(report.Formats, format) {
		return fmt.Errorf("unknown format %q (want one of %v)", format, report.Formats)
	}

	interval, err := cfg.SysInfo.ParseSampleInterval()
	if err != nil {
		return fmt.Errorf("parsing sample interval: %w", err)
	}

	snap, err := sysinfo.Collect(ctx, src, sysinfo.Options{SampleInterval: interval, Log: log})
	if err != nil {
		return fmt.Errorf("collecting host info: %w", err)
	}

	if err := report.Render(out, format, snap); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if !opts.Save {
		return nil
	}
	return save(cfg, snap, log)
}

func save(cfg *config.Config, snap *sysinfo.Snapshot, log zerolog.Logger) error {
	db, err := store.Open(cfg.SysInfo.HistoryDB, log)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer db.Close()

	id, err := db.Save(snap)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	if _, err := db.Prune(cfg.SysInfo.HistoryKeep); err != nil {
		log.Warn().Err(err).Msg("Failed to prune history")
	}

	log.Info().
		Uint64("id", id).
		Str("db_path", cfg.SysInfo.HistoryDB).
		Msg("Snapshot saved")
	return nil
}
