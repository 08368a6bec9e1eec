// Package serve implements the "toolbox serve" command.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"toolbox/internal/server"
	"toolbox/internal/store"
	"toolbox/internal/sysinfo"
	"toolbox/pkg/config"
	"toolbox/pkg/logger"
)

// Run serves metrics, snapshots and history until SIGINT or SIGTERM.
func Run(configPath, version string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.General.LogLevel)

	opts, err := Options(cfg, version, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("listen", cfg.Serve.Listen).
		Str("history_db", cfg.SysInfo.HistoryDB).
		Bool("auth", opts.AuthBcrypt != "").
		Msg("Starting exporter")

	return server.ListenAndServe(ctx, cfg.Serve.Listen, cfg.Serve.MaxConnections, server.NewHandler(opts), log)
}

// Options validates the [serve] section and builds the handler options.
func Options(cfg *config.Config, version string, log zerolog.Logger) (server.Options, error) {
	interval, err := cfg.Serve.ParseSampleInterval()
	if err != nil {
		return server.Options{}, fmt.Errorf("parsing sample interval: %w", err)
	}

	if cfg.Serve.AuthBcrypt != "" {
		if cfg.Serve.AuthUser == "" {
			return server.Options{}, fmt.Errorf("auth_user must be set when auth_bcrypt is")
		}
		if _, err := bcrypt.Cost([]byte(cfg.Serve.AuthBcrypt)); err != nil {
			return server.Options{}, fmt.Errorf("auth_bcrypt is not a bcrypt hash: %w", err)
		}
	}

	return server.Options{
		Source:         sysinfo.System{},
		History:        store.File{Path: cfg.SysInfo.HistoryDB, Log: log},
		SampleInterval: interval,
		AuthUser:       cfg.Serve.AuthUser,
		AuthBcrypt:     cfg.Serve.AuthBcrypt,
		Version:        version,
		Log:            log,
	}, nil
}
