package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dreamvoid/internal/audio"
	"dreamvoid/internal/config"
	"dreamvoid/internal/dream"
	"dreamvoid/internal/oracle"
	"dreamvoid/internal/term"
	"dreamvoid/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	seedConcurrency = 4
	chimeVolume     = 0.4
)

func runFly(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := term.Options{TPS: cfg.Flight.TPS, Logger: logger}

	orc, err := oracle.Dial(ctx, cfg.Oracle.APIKey, oracleOptions())
	switch {
	case errors.Is(err, oracle.ErrSilent):
		logger.Info("oracle silent, whispers echo locally", zap.Error(err))
	case err != nil:
		return err
	default:
		opts.Oracle = orc
	}

	var initial []string
	if orc != nil && len(cfg.Oracle.Seeds) > 0 {
		initial = orc.SeedPool(ctx, cfg.Oracle.Seeds, seedConcurrency)
		logger.Info("text pool seeded", zap.Int("phrases", len(initial)))
	}

	d, err := dream.FromConfig(cfg, logger, initial...)
	if err != nil {
		return err
	}

	if cfg.Display.Sound {
		player := audio.NewPlayer(chimeVolume)
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", zap.Error(err))
		} else {
			defer player.Close()
			opts.Chimer = player
		}
	}

	reload, done := watchWorld(ctx, configPath)
	if reload != nil {
		opts.Reconfigure = reload
		defer func() {
			stop()
			<-done
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	return term.NewSession(screen, d, opts).Run(ctx)
}

// watchWorld feeds world sections of the config file to the host as they
// change. It returns nil channels when the file does not exist.
func watchWorld(ctx context.Context, path string) (<-chan world.Config, <-chan struct{}) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	reload := make(chan world.Config, 1)
	done, err := config.Watch(ctx, path, func(c *config.Config, err error) {
		if err != nil {
			logger.Warn("config reload rejected", zap.String("path", path), zap.Error(err))
			return
		}
		select {
		case reload <- c.World:
		default:
			logger.Debug("config reload dropped, host busy")
		}
	})
	if err != nil {
		logger.Warn("config watch unavailable", zap.String("path", path), zap.Error(err))
		return nil, nil
	}
	logger.Info("watching config", zap.String("path", path))
	return reload, done
}
