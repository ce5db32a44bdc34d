// Command headless runs the simulation without a window, driven by the
// autopilot, and prints a summary of the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/horde-survivor/engine/ai"
	"github.com/1siamBot/horde-survivor/engine/config"
	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/metrics"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

var difficulties = map[string]ai.Difficulty{
	"easy":   ai.DiffEasy,
	"medium": ai.DiffMedium,
	"hard":   ai.DiffHard,
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "headless:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfig+")")
	duration := flag.Duration("duration", 2*time.Minute, "simulated time to play")
	realtime := flag.Bool("realtime", false, "tick at wall-clock pace instead of as fast as possible")
	level := flag.String("difficulty", "medium", "autopilot difficulty: easy, medium or hard")
	flag.Parse()

	diff, ok := difficulties[*level]
	if !ok {
		return fmt.Errorf("unknown difficulty %q", *level)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	log := cfg.Logger()

	s := sim.New(cfg.Tuning(), log)
	collector := metrics.New()
	collector.Subscribe(s.Bus())
	clock := sim.NewClock(s, sim.ClockConfig{TickRate: cfg.Sim.TickRate, Observer: collector.ObserveTick}, log)
	pilot := ai.New(ai.ConfigFor(diff), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	if addr := cfg.MetricsAddr(); addr != "" {
		eg.Go(func() error { return collector.Serve(ctx, addr, log) })
	}

	var snap *sim.Snapshot
	if *realtime {
		eg.Go(func() error { return clock.Run(ctx) })
		eg.Go(func() error { return drive(ctx, clock, pilot, cfg.Sim.TickRate) })
		if err := eg.Wait(); err != nil {
			return err
		}
		snap = clock.Snapshot()
	} else {
		snap = fastForward(clock, pilot, *duration, cfg.Sim.TickRate)
		cancel()
		if err := eg.Wait(); err != nil {
			return err
		}
	}

	printSummary(snap)
	return nil
}

// fastForward steps the clock on simulated time only, stopping early once
// the run is over
func fastForward(clock *sim.Clock, pilot *ai.Autopilot, d time.Duration, rate int) *sim.Snapshot {
	step := max(int64(1000/rate), 1)
	snap := clock.Snapshot()
	for now := int64(0); now < d.Milliseconds(); now += step {
		for _, cmd := range pilot.Decide(snap) {
			clock.Submit(cmd)
		}
		snap = clock.Step(now)
		if snap.State == core.StateGameOver {
			break
		}
	}
	return snap
}

// drive feeds the autopilot from published snapshots while the clock runs
// on its own goroutine
func drive(ctx context.Context, clock *sim.Clock, pilot *ai.Autopilot, rate int) error {
	t := time.NewTicker(time.Second / time.Duration(rate))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			for _, cmd := range pilot.Decide(clock.Snapshot()) {
				clock.Submit(cmd)
			}
		}
	}
}

func printSummary(snap *sim.Snapshot) {
	st := snap.Stats
	fmt.Printf("run %s\n", snap.RunID)
	fmt.Printf("  state:      %s\n", snap.State)
	fmt.Printf("  survived:   %.1fs\n", float64(snap.Elapsed)/1000)
	fmt.Printf("  wave:       %d\n", snap.Wave)
	fmt.Printf("  kills:      %d (bosses %d)\n", st.TotalKills(), st.BossesDefeated)
	fmt.Printf("  shots:      %d, hits %d\n", st.ShotsFired, st.Hits)
	fmt.Printf("  damage in:  %d\n", st.DamageTaken)
	fmt.Printf("  loot:       %d\n", st.LootCollected)
	fmt.Printf("  weapon:     %s\n", snap.Player.Weapon)
}
