package collision

import (
	"log/slog"

	"github.com/1siamBot/horde-survivor/engine/core"
	"github.com/1siamBot/horde-survivor/engine/entity"
)

const (
	// normalContact is the flat damage a normal monster deals on touch
	normalContact = 10
	// mysteriousContactPercent of the player's max health
	mysteriousContactPercent = 25
)

// Waves is the per-wave loot flag the resolver consults
type Waves interface {
	LootDropped() bool
	MarkLootDropped()
}

// Outcome summarizes one resolve pass
type Outcome struct {
	Hits          int
	Kills         [3]int // by entity.Variant
	Contacts      int
	DamageTaken   int
	BossKilled    bool
	PlayerDied    bool
	LootDropped   bool
	LootCollected bool
}

type Resolver struct {
	store *entity.Store
	waves Waves
	bus   *core.EventBus
	log   *slog.Logger
}

func NewResolver(store *entity.Store, waves Waves, bus *core.EventBus, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{store: store, waves: waves, bus: bus, log: log}
}

// ContactDamage is what touching m costs a player with the given max health
func ContactDamage(v entity.Variant, maxHealth int) int {
	switch v {
	case entity.Boss:
		return maxHealth * 2
	case entity.Mysterious:
		return maxHealth * mysteriousContactPercent / 100
	default:
		return normalContact
	}
}

// Resolve runs the collision passes for one tick. Projectile kills are
// booked before contact, so a monster shot dead this tick cannot also hit
// the player.
func (r *Resolver) Resolve(now int64) Outcome {
	var out Outcome
	r.projectiles(&out)
	r.deaths(now, &out)
	r.contacts(now, &out)
	r.loot(now, &out)
	return out
}

// projectiles lets each live projectile strike the first living monster it
// overlaps, in spawn order. Projectiles do not pierce.
func (r *Resolver) projectiles(out *Outcome) {
	r.store.ForEachProjectile(func(p *entity.Projectile) bool {
		pb := p.Bounds()
		r.store.ForEachMonster(func(m *entity.Monster) bool {
			if m.Health <= 0 || !pb.Overlaps(m.Bounds()) {
				return true
			}
			m.ApplyDamage(p.Damage)
			r.store.DestroyProjectile(p)
			out.Hits++
			return false
		})
		return true
	})
}

func (r *Resolver) deaths(now int64, out *Outcome) {
	r.store.ForEachMonster(func(m *entity.Monster) bool {
		if !m.Dead() {
			return true
		}
		r.store.DestroyMonster(m)
		out.Kills[m.Variant]++
		r.bus.Emit(core.Event{Type: core.EvtMonsterKilled, At: now, Payload: info(m)})
		r.log.Debug("monster killed", "id", m.ID, "variant", m.Variant)

		if m.Variant == entity.Boss {
			out.BossKilled = true
		}
		if !r.waves.LootDropped() {
			if l, ok := r.store.DropLoot(m.Pos); ok {
				r.waves.MarkLootDropped()
				out.LootDropped = true
				r.bus.Emit(core.Event{Type: core.EvtLootDropped, At: now, Payload: core.EntityInfo{ID: uint64(l.ID), Kind: "chest", Pos: l.Pos}})
			}
		}
		return true
	})
}

// contacts removes every monster touching the player's hitbox, whatever its
// remaining health, and charges the player for each
func (r *Resolver) contacts(now int64, out *Outcome) {
	p := r.store.Player()
	if p == nil {
		return
	}
	hb := p.Hitbox()
	r.store.ForEachMonster(func(m *entity.Monster) bool {
		if !hb.Overlaps(m.Bounds()) {
			return true
		}
		dmg := ContactDamage(m.Variant, p.MaxHealth)
		before := p.Health
		p.TakeDamage(dmg)
		r.store.DestroyMonster(m)

		out.Contacts++
		out.DamageTaken += before - p.Health
		r.bus.Emit(core.Event{Type: core.EvtMonsterContact, At: now, Payload: info(m)})
		r.bus.Emit(core.Event{Type: core.EvtPlayerDamaged, At: now, Payload: core.DamageInfo{Source: m.Variant.String(), Amount: dmg, Health: p.Health}})
		r.log.Debug("player hit", "variant", m.Variant, "damage", dmg, "health", p.Health)
		return true
	})
	out.PlayerDied = !p.Alive()
}

// loot picks up the chest, unless this tick already ended the wave or the run
func (r *Resolver) loot(now int64, out *Outcome) {
	p, l := r.store.Player(), r.store.Loot()
	if p == nil || l == nil || out.BossKilled || out.PlayerDied {
		return
	}
	if !l.Bounds().Overlaps(p.Hitbox()) {
		return
	}
	r.store.TakeLoot()
	p.ClearIntent()
	out.LootCollected = true
	r.bus.Emit(core.Event{Type: core.EvtLootCollected, At: now, Payload: core.EntityInfo{ID: uint64(l.ID), Kind: "chest", Pos: l.Pos}})
	r.log.Info("loot collected", "id", l.ID)
}

func info(m *entity.Monster) core.EntityInfo {
	return core.EntityInfo{ID: uint64(m.ID), Kind: m.Variant.String(), Pos: m.Pos}
}
