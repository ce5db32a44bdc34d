package sim

import "github.com/1siamBot/horde-survivor/engine/combat"

// CommandType identifies an input command
type CommandType uint8

const (
	CmdSetMovement CommandType = iota
	CmdSetAim
	CmdSetPointer
	CmdFire
	CmdReload
	CmdPointerClick
	CmdSelectUpgrade
	CmdConfirmUpgrade
	CmdChooseWeapon
	CmdStartGame
	CmdRestart
)

var commandNames = [...]string{
	CmdSetMovement:    "set_movement",
	CmdSetAim:         "set_aim",
	CmdSetPointer:     "set_pointer",
	CmdFire:           "fire",
	CmdReload:         "reload",
	CmdPointerClick:   "pointer_click",
	CmdSelectUpgrade:  "select_upgrade",
	CmdConfirmUpgrade: "confirm_upgrade",
	CmdChooseWeapon:   "choose_weapon",
	CmdStartGame:      "start_game",
	CmdRestart:        "restart",
}

func (t CommandType) String() string {
	if int(t) < len(commandNames) {
		return commandNames[t]
	}
	return "unknown"
}

// Direction is a movement key
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Command is one input event for the simulation. Only the fields relevant
// to Type are read.
type Command struct {
	Type    CommandType
	Dir     Direction
	Pressed bool
	Angle   float64
	X, Y    int
	Index   int // upgrade index or weapon kind
}

func SetMovement(d Direction, pressed bool) Command {
	return Command{Type: CmdSetMovement, Dir: d, Pressed: pressed}
}

func SetAim(angle float64) Command { return Command{Type: CmdSetAim, Angle: angle} }

// SetPointer reports the pointer position in playfield pixels; the aim
// follows it every tick
func SetPointer(x, y int) Command { return Command{Type: CmdSetPointer, X: x, Y: y} }

func FirePressed() Command { return Command{Type: CmdFire} }

func ReloadPressed() Command { return Command{Type: CmdReload} }

func PointerClick(x, y int) Command { return Command{Type: CmdPointerClick, X: x, Y: y} }

func SelectUpgrade(i int) Command { return Command{Type: CmdSelectUpgrade, Index: i} }

func ConfirmUpgrade() Command { return Command{Type: CmdConfirmUpgrade} }

func ChooseWeapon(k combat.Kind) Command { return Command{Type: CmdChooseWeapon, Index: int(k)} }

func StartGame() Command { return Command{Type: CmdStartGame} }

func Restart() Command { return Command{Type: CmdRestart} }
