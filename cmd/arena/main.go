// Package main is the entry point for the monster arena.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/monsterarena/internal/cli"
	"github.com/samdwyer/monsterarena/internal/config"
	"github.com/samdwyer/monsterarena/internal/game"
	"github.com/samdwyer/monsterarena/internal/gamedata"
	"github.com/samdwyer/monsterarena/internal/logging"
	"github.com/samdwyer/monsterarena/internal/telemetry"
	"github.com/samdwyer/monsterarena/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error, %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Not fatal: variables may be set directly.
	envErr := godotenv.Load()

	schema := flag.Bool("schema", false, "print the JSON schema of the configuration file and exit")
	tui := flag.Bool("tui", false, "run the full-screen terminal interface")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [debug] [seed]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *schema {
		out, err := gamedata.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ApplyArgs(flag.Args()); err != nil {
		return err
	}
	cfg.TUI = cfg.TUI || *tui

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Debug(".env file not loaded", zap.Error(envErr))
	}

	ctx := context.Background()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.TelemetryOptions())
		if err != nil {
			logger.Warn("telemetry setup failed, running without tracing", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	setup, err := loadSetup(cfg.DataFile)
	if err != nil {
		return err
	}
	logger.Info("arena ready",
		zap.Int("actions", setup.Catalog().ActionCount()),
		zap.Int("monsters", setup.Catalog().MonsterCount()),
		zap.Bool("debug", cfg.Debug),
		zap.Int64("seed", cfg.Seed),
	)

	shell := cli.NewShell(setup, cfg.Game(), cli.WithLogger(logger))
	if !cfg.TUI {
		return shell.Run(ctx, os.Stdin, os.Stdout, os.Stderr)
	}

	palette, err := ui.LoadPalette()
	if err != nil {
		return err
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()
	return ui.NewApp(screen, palette, shell).Run(ctx)
}

// newLogger silences logging in the full-screen interface, where stderr
// output would tear the display.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.TUI {
		return zap.NewNop(), nil
	}
	return logging.New(cfg.LogLevel)
}

func loadSetup(path string) (*game.Setup, error) {
	if path == "" {
		return game.DefaultSetup()
	}
	return game.LoadSetup(path)
}
