package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"spacerocks/game"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config overlay")
		seed       = flag.Int64("seed", 0, "RNG seed, 0 picks one from the clock")
		fullscreen = flag.Bool("fullscreen", false, "start fullscreen")
	)
	flag.Parse()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Info("starting",
		zap.Int64("seed", *seed),
		zap.Int("asteroid_cap", cfg.Asteroids.Capacity))

	ebiten.SetWindowSize(cfg.World.ScreenWidth, cfg.World.ScreenHeight)
	ebiten.SetWindowTitle("spacerocks")
	ebiten.SetFullscreen(*fullscreen)

	if err := ebiten.RunGame(game.New(cfg, log, *seed)); err != nil {
		log.Fatal("game loop", zap.Error(err))
	}
}

func newLogger(cfg game.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
