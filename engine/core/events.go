package core

// Event represents a game event
type Event struct {
	Type    EventType
	At      int64 // simulation time in milliseconds
	Payload any
}

type EventType uint16

const (
	EvtMonsterSpawned EventType = iota
	EvtMonsterKilled
	EvtMonsterContact
	EvtProjectileFired
	EvtPlayerDamaged
	EvtLootDropped
	EvtLootCollected
	EvtBossSpawned
	EvtWaveCompleted
	EvtWaveStarted
	EvtWeaponSwitched
	EvtUpgradeApplied
	EvtGameOver
	EvtGameReset
)

var eventNames = [...]string{
	EvtMonsterSpawned:  "monster_spawned",
	EvtMonsterKilled:   "monster_killed",
	EvtMonsterContact:  "monster_contact",
	EvtProjectileFired: "projectile_fired",
	EvtPlayerDamaged:   "player_damaged",
	EvtLootDropped:     "loot_dropped",
	EvtLootCollected:   "loot_collected",
	EvtBossSpawned:     "boss_spawned",
	EvtWaveCompleted:   "wave_completed",
	EvtWaveStarted:     "wave_started",
	EvtWeaponSwitched:  "weapon_switched",
	EvtUpgradeApplied:  "upgrade_applied",
	EvtGameOver:        "game_over",
	EvtGameReset:       "game_reset",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// EntityInfo is the payload for events about a single entity
type EntityInfo struct {
	ID   uint64
	Kind string
	Pos  Vec2
}

// DamageInfo is the payload for EvtPlayerDamaged
type DamageInfo struct {
	Source string
	Amount int
	Health int
}

// WaveInfo is the payload for wave and upgrade events
type WaveInfo struct {
	Wave   int
	Detail string
}

// EventBus dispatches events to listeners. It is not safe for concurrent
// use; the simulation loop emits and dispatches from one goroutine.
type EventBus struct {
	listeners map[EventType][]EventHandler
	all       []EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// OnAny registers a handler for every event type
func (eb *EventBus) OnAny(h EventHandler) {
	eb.all = append(eb.all, h)
}

// Emit queues an event for dispatch. A nil bus drops the event.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}

// Dispatch processes all queued events. Events emitted by handlers are
// delivered in the same call.
func (eb *EventBus) Dispatch() {
	if eb == nil {
		return
	}
	for len(eb.queue) > 0 {
		q := eb.queue
		eb.queue = nil
		for _, e := range q {
			for _, h := range eb.listeners[e.Type] {
				h(e)
			}
			for _, h := range eb.all {
				h(e)
			}
		}
	}
}
