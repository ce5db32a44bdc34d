package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/sim"
)

const namespace = "survivor"

// Collector holds the game's prometheus metrics on a private registry, so
// several simulations (or tests) never collide on the global one.
type Collector struct {
	reg *prometheus.Registry

	spawned     *prometheus.CounterVec
	killed      *prometheus.CounterVec
	contacts    *prometheus.CounterVec
	fired       prometheus.Counter
	loot        prometheus.Counter
	upgrades    *prometheus.CounterVec
	gameOvers   prometheus.Counter
	resets      prometheus.Counter
	wave        prometheus.Gauge
	monsters    prometheus.Gauge
	projectiles prometheus.Gauge
	health      prometheus.Gauge
	tick        prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monsters_spawned_total",
			Help:      "Monsters spawned, by variant.",
		}, []string{"variant"}),
		killed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "monsters_killed_total",
			Help:      "Monsters killed by projectiles, by variant.",
		}, []string{"variant"}),
		contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_contacts_total",
			Help:      "Monsters that reached the player, by variant.",
		}, []string{"variant"}),
		fired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projectiles_fired_total",
			Help:      "Projectiles fired.",
		}),
		loot: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loot_collected_total",
			Help:      "Chests picked up.",
		}),
		upgrades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upgrades_total",
			Help:      "Upgrades chosen between waves.",
		}, []string{"upgrade"}),
		gameOvers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "game_overs_total",
			Help:      "Runs that ended with the player dead.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Runs started from the menu or a restart.",
		}),
		wave: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wave",
			Help:      "Current wave number.",
		}),
		monsters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_monsters",
			Help:      "Monsters on the field.",
		}),
		projectiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_projectiles",
			Help:      "Projectiles in flight.",
		}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "player_health",
			Help:      "Player health after the last tick.",
		}),
		tick: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent inside one simulation tick.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .0167, .025, .05},
		}),
	}
	c.reg.MustRegister(
		c.spawned, c.killed, c.contacts, c.fired, c.loot, c.upgrades,
		c.gameOvers, c.resets, c.wave, c.monsters, c.projectiles, c.health, c.tick,
	)
	return c
}

// Subscribe feeds the counters from simulation events
func (c *Collector) Subscribe(bus *core.EventBus) {
	bus.OnAny(c.handle)
}

func (c *Collector) handle(e core.Event) {
	switch e.Type {
	case core.EvtMonsterSpawned:
		c.spawned.WithLabelValues(kind(e)).Inc()
	case core.EvtMonsterKilled:
		c.killed.WithLabelValues(kind(e)).Inc()
	case core.EvtMonsterContact:
		c.contacts.WithLabelValues(kind(e)).Inc()
	case core.EvtProjectileFired:
		c.fired.Inc()
	case core.EvtLootCollected:
		c.loot.Inc()
	case core.EvtUpgradeApplied:
		if w, ok := e.Payload.(core.WaveInfo); ok {
			c.upgrades.WithLabelValues(w.Detail).Inc()
		}
	case core.EvtGameOver:
		c.gameOvers.Inc()
	case core.EvtGameReset:
		c.resets.Inc()
	}
}

func kind(e core.Event) string {
	if info, ok := e.Payload.(core.EntityInfo); ok {
		return info.Kind
	}
	return "unknown"
}

// ObserveTick records one tick. Its signature matches sim.TickObserver.
func (c *Collector) ObserveTick(d time.Duration, snap *sim.Snapshot) {
	c.tick.Observe(d.Seconds())
	if snap == nil {
		return
	}
	c.wave.Set(float64(snap.Wave))
	c.monsters.Set(float64(len(snap.Monsters)))
	c.projectiles.Set(float64(len(snap.Projectiles)))
	c.health.Set(float64(snap.Player.Health))
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Handler serves the registry in the prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{Registry: c.reg})
}

// Serve exposes /metrics on addr until ctx is done, then shuts the server
// down gracefully
func (c *Collector) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info("metrics listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
