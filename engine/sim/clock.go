package sim

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/1siamBot/horde-survivor/engine/core"
)

// TickObserver is told how long each tick took and the state it ended in
type TickObserver func(d time.Duration, snap *Snapshot)

// ClockConfig tunes the fixed-step driver
type ClockConfig struct {
	TickRate  int // ticks per second
	InboxSize int
	Observer  TickObserver
}

// Clock drives a Simulation at a fixed cadence from one goroutine. Other
// goroutines talk to it only through Submit and Snapshot.
type Clock struct {
	sim    *Simulation
	period time.Duration
	inbox  chan Command
	snap   atomic.Pointer[Snapshot]
	obs    TickObserver
	log    *slog.Logger
}

func NewClock(s *Simulation, cfg ClockConfig, log *slog.Logger) *Clock {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.TickRate
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = 256
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Clock{
		sim:    s,
		period: time.Second / time.Duration(cfg.TickRate),
		inbox:  make(chan Command, cfg.InboxSize),
		obs:    cfg.Observer,
		log:    log,
	}
	c.snap.Store(s.Snapshot())
	return c
}

// Submit queues a command for the start of the next tick. It never blocks;
// when the inbox is full the command is dropped and false is returned.
func (c *Clock) Submit(cmd Command) bool {
	select {
	case c.inbox <- cmd:
		return true
	default:
		c.log.Warn("input dropped", "command", cmd.Type.String())
		return false
	}
}

// Snapshot returns the state published after the most recent tick
func (c *Clock) Snapshot() *Snapshot {
	return c.snap.Load()
}

// Step runs one tick at time now: drain the inbox, tick, deliver events,
// publish a snapshot.
func (c *Clock) Step(now int64) *Snapshot {
	for drained := false; !drained; {
		select {
		case cmd := <-c.inbox:
			c.sim.HandleInput(cmd)
		default:
			drained = true
		}
	}
	c.sim.Tick(now)
	c.sim.Bus().Dispatch()
	snap := c.sim.Snapshot()
	c.snap.Store(snap)
	return snap
}

// Run ticks until ctx is cancelled. Each tick sleeps whatever is left of
// its period; a tick that overruns simply starts the next one late, and
// the lost time is not made up. Cancellation is only observed between ticks.
func (c *Clock) Run(ctx context.Context) error {
	start := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	c.log.Info("clock started", "period", c.period)
	for {
		if err := ctx.Err(); err != nil {
			c.log.Info("clock stopped")
			return nil
		}

		began := time.Now()
		snap := c.Step(began.Sub(start).Milliseconds())
		took := time.Since(began)
		if c.obs != nil {
			c.obs(took, snap)
		}

		wait := c.period - took
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			c.log.Info("clock stopped")
			return nil
		case <-timer.C:
		}
	}
}
