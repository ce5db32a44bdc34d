package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/horde-survivor/engine/ai"
	"github.com/1siamBot/horde-survivor/engine/assets"
	"github.com/1siamBot/horde-survivor/engine/config"
	"github.com/1siamBot/horde-survivor/engine/metrics"
	"github.com/1siamBot/horde-survivor/engine/render"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "survivor:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfig+")")
	demo := flag.Bool("demo", false, "let the autopilot play")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	log := cfg.Logger()

	// sprites are decoded before the clock starts and never on the hot path
	set := assets.LoadSet(assets.NewLoader(os.DirFS(cfg.Assets.Dir), log))

	tuning := cfg.Tuning()
	// collision boxes follow the sprites actually loaded
	tuning.PlayerSize = set.Player.Size()
	tuning.Entities.MonsterSize = set.Monsters[0].Size()
	tuning.Entities.BossSize = set.Boss.Size()
	tuning.Entities.LootSize = set.Chest.Size()

	s := sim.New(tuning, log)
	collector := metrics.New()
	collector.Subscribe(s.Bus())
	clock := sim.NewClock(s, sim.ClockConfig{TickRate: cfg.Sim.TickRate, Observer: collector.ObserveTick}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return clock.Run(ctx) })
	if addr := cfg.MetricsAddr(); addr != "" {
		eg.Go(func() error { return collector.Serve(ctx, addr, log) })
	}

	game := render.NewGame(ctx, clock, render.NewRenderer(set), tuning.Field)
	if *demo {
		pilot := ai.New(ai.ConfigFor(ai.DiffMedium), log)
		game.Autopilot = pilot.Decide
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Sim.TickRate)
	log.Info("window open", "width", cfg.Window.Width, "height", cfg.Window.Height, "demo", *demo)

	// ebiten owns the main thread; closing the window stops everything else
	runErr := ebiten.RunGame(game)
	cancel()
	if err := eg.Wait(); err != nil {
		return err
	}
	return runErr
}
