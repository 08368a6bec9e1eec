// Package history implements the "toolbox history" commands.
package history

import (
	"fmt"
	"io"
	"os"
	"strings"

	"toolbox/internal/report"
	"toolbox/internal/store"
	"toolbox/pkg/config"
	"toolbox/pkg/logger"
)

func open(configPath string) (*config.Config, store.File, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, store.File{}, fmt.Errorf("loading config: %w", err)
	}
	log := logger.Init(cfg.General.LogLevel)
	return cfg, store.File{Path: cfg.SysInfo.HistoryDB, Log: log}, nil
}

// List prints the newest limit saved snapshots. A limit <= 0 prints all.
func List(configPath string, limit int) error {
	_, db, err := open(configPath)
	if err != nil {
		return err
	}
	return list(db, os.Stdout, limit)
}

// Show prints one saved snapshot in format, or the configured format when empty.
func Show(configPath string, id uint64, format string) error {
	cfg, db, err := open(configPath)
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.SysInfo.Format
	}
	return show(db, os.Stdout, id, format)
}

type reader interface {
	List(limit int) ([]store.Record, error)
	Get(id uint64) (*store.Record, error)
}

func list(db reader, out io.Writer, limit int) error {
	records, err := db.List(limit)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No snapshots saved. Run 'toolbox sysinfo --save' first.")
		return nil
	}

	fmt.Fprintf(out, "  %-6s %-20s %-20s %-24s %-7s %-7s\n",
		"ID", "SAVED", "NODE", "SYSTEM", "CPU%", "MEM%")
	fmt.Fprintf(out, "  %s %s %s %s %s %s\n",
		strings.Repeat("─", 6), strings.Repeat("─", 20), strings.Repeat("─", 20),
		strings.Repeat("─", 24), strings.Repeat("─", 7), strings.Repeat("─", 7))

	for _, r := range records {
		snap := r.Snapshot
		system := strings.TrimSpace(snap.Platform.System + " " + snap.Platform.Release)
		fmt.Fprintf(out, "  %-6d %-20s %-20s %-24s %-7.1f %-7.1f\n",
			r.ID,
			r.SavedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(snap.Platform.Node, 20),
			truncate(system, 24),
			snap.CPU.Total,
			snap.Memory.Percent,
		)
	}
	return nil
}

func show(db reader, out io.Writer, id uint64, format string) error {
	r, err := db.Get(id)
	if err != nil {
		return err
	}
	return report.Render(out, format, r.Snapshot)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
