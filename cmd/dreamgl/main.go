//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dreamvoid/internal/app"
	"dreamvoid/internal/audio"
	"dreamvoid/internal/config"
	"dreamvoid/internal/dream"
	_ "dreamvoid/internal/flights/cruise"
	_ "dreamvoid/internal/flights/drift"
	_ "dreamvoid/internal/flights/warp"
	"dreamvoid/internal/logging"
	"dreamvoid/internal/oracle"
	"dreamvoid/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, JSON: cfg.Logging.JSON})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{
		Width:    cfg.Display.Width,
		Height:   cfg.Display.Height,
		HUDWidth: cfg.Display.HUDWidth,
		Seed:     cfg.Flight.Seed,
		Logger:   logger,
	}

	orc, err := oracle.Dial(ctx, cfg.Oracle.APIKey, oracle.Options{
		TextModel:  cfg.Oracle.TextModel,
		ImageModel: cfg.Oracle.ImageModel,
		Timeout:    cfg.OracleTimeout(),
		Logger:     logger,
	})
	switch {
	case errors.Is(err, oracle.ErrSilent):
		logger.Info("oracle silent, whispers echo locally")
	case err != nil:
		log.Fatal(err)
	default:
		opts.Oracle = orc
	}

	var initial []string
	if orc != nil && len(cfg.Oracle.Seeds) > 0 {
		initial = orc.SeedPool(ctx, cfg.Oracle.Seeds, 4)
	}
	d, err := dream.FromConfig(cfg, logger, initial...)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Display.Sound {
		player := audio.NewPlayer(0.4)
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", zap.Error(err))
		} else {
			defer player.Close()
			opts.Chimer = player
		}
	}

	if _, err := os.Stat(flags.Config); err == nil {
		reload := make(chan world.Config, 1)
		if _, err := config.Watch(ctx, flags.Config, func(c *config.Config, err error) {
			if err != nil {
				logger.Warn("config reload rejected", zap.Error(err))
				return
			}
			select {
			case reload <- c.World:
			default:
			}
		}); err != nil {
			logger.Warn("config watch unavailable", zap.Error(err))
		} else {
			opts.Reconfigure = reload
		}
	}

	game := app.New(ctx, d, opts)

	ebiten.SetWindowTitle("dreamvoid: " + d.Flight().Name())
	ebiten.SetTPS(cfg.Flight.TPS)
	ebiten.SetWindowSize((opts.Width+opts.HUDWidth)*cfg.Display.Scale, opts.Height*cfg.Display.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
