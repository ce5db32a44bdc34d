package core

// GameState represents the overall game state
type GameState uint8

const (
	StateMenu GameState = iota
	StatePlaying
	StateWaveCompleted
	StateChestOpen
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateWaveCompleted:
		return "wave_completed"
	case StateChestOpen:
		return "chest_open"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Intermission reports whether the simulation is frozen waiting for a menu
// decision.
func (s GameState) Intermission() bool {
	return s != StatePlaying
}

// TickRate is the target simulation cadence in ticks per second
const TickRate = 60

// FrameMillis is the per-tick budget in whole milliseconds
const FrameMillis = 1000 / TickRate
