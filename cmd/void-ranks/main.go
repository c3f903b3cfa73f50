package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/void-ranks/asset"
	"github.com/lixenwraith/void-ranks/audio"
	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/event"
	"github.com/lixenwraith/void-ranks/input"
	"github.com/lixenwraith/void-ranks/level"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/sim"
	"github.com/lixenwraith/void-ranks/status"
	"github.com/lixenwraith/void-ranks/terminal"
)

var (
	debugFlag     = flag.Bool("debug", false, "Write debug logs to "+logDir+"/"+logFileName)
	levelsFlag    = flag.String("levels", "", "Level table TOML (default: "+level.DefaultConfigPath+" if present, else built-in)")
	keysFlag      = flag.String("keys", "", "Keymap TOML overriding the default bindings")
	warpSpawnFlag = flag.Bool("warp-spawn", parameter.WarpAroundSpawnsEnemy, "Spawn an enemy each time the ship wraps around")
	seedFlag      = flag.Int64("seed", 0, "Simulation seed (0: time based)")
	muteFlag      = flag.Bool("mute", false, "Start with sound muted")
)

func main() {
	flag.Parse()

	logger, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		fmt.Fprintf(os.Stderr, "void-ranks: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	designs, source, err := level.LoadAuto(*levelsFlag, asset.DefaultLevels, logger)
	if err != nil {
		return err
	}
	logger.Info("levels loaded", "source", string(source), "count", len(designs))

	keys := input.DefaultKeyTable()
	if *keysFlag != "" {
		overrides, err := input.LoadKeyConfig(*keysFlag)
		if err != nil {
			return err
		}
		keys = input.MergeKeyTable(keys, overrides)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	screen.HideCursor()
	screen.EnableFocus()
	restore := screen.Fini
	defer restore()

	// Panics past this point must restore the terminal before the trace prints
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r, restore)
		}
	}()

	renderer := terminal.NewRenderer(screen)
	width, height := renderer.Playfield()

	events := event.NewEventQueue()
	metrics := status.NewRegistry()
	s, err := sim.New(sim.Config{
		Designs:         designs,
		Width:           width,
		Height:          height,
		Seed:            seed,
		WarpSpawnsEnemy: *warpSpawnFlag,
		Events:          events,
		Metrics:         metrics,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}
	logger.Info("game start", "seed", seed, "width", width, "height", height, "warp_spawn", *warpSpawnFlag)

	player := audio.NewPlayer(logger)
	if err := player.Init(); err != nil {
		logger.Warn("audio unavailable, continuing silent", "error", err)
	}
	defer player.Close()
	player.SetMuted(*muteFlag)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	core.Go(restore, func() { player.Run(ctx, events) })

	in := terminal.NewInput(terminal.NewTranslator(keys))
	in.OnMute = func() { player.ToggleMute() }
	core.Go(restore, func() { in.Listen(screen) })

	return loop(s, in, renderer, player, metrics, logger)
}

func loop(s *sim.Simulation, in *terminal.Input, r *terminal.Renderer, player *audio.Player, metrics *status.Registry, logger *slog.Logger) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	runner := sim.NewRunner(s, sim.WallClock{}, in, r)
	kills := metrics.Ints.Get(status.KeyKills)

	for range ticker.C {
		if in.Resized() {
			r.Sync()
		}

		r.Begin()
		if err := runner.Frame(); err != nil {
			if errors.Is(err, level.ErrInvalidDesign) {
				return err
			}
			logger.Error("frame", "error", err)
		}

		ctrl := s.Controller()
		hud := terminal.HUD{
			Ordinal: ctrl.Ordinal(),
			Levels:  ctrl.LevelCount(),
			Name:    ctrl.Current().Name,
			State:   ctrl.StateName(),
			Kills:   kills.Load(),
			Live:    int64(s.Roster().Live()),
			Paused:  s.Paused(),
			Muted:   player.Muted(),
		}
		if s.Debug() {
			hud.Debug = metrics.Lines()
		}
		r.Present(hud)

		if in.Quit() {
			logger.Info("quit", "frame", s.Frame(), "level", ctrl.Ordinal())
			return nil
		}
	}
	return nil
}
