package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionConfirm
	ActionChoose // pick a difficulty by number; see keyToAction
	ActionQuit
)

// keyToAction maps a tcell key event to a game action. For ActionChoose the
// second result is the zero-based menu index.
func keyToAction(ev *tcell.EventKey) (Action, int) {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp, 0
	case tcell.KeyDown:
		return ActionDown, 0
	case tcell.KeyEnter:
		return ActionConfirm, 0
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, 0
	}

	// Rune keys.
	switch r := ev.Rune(); {
	case r == 'k' || r == 'K' || r == 'w' || r == 'W':
		return ActionUp, 0
	case r == 'j' || r == 'J' || r == 's' || r == 'S':
		return ActionDown, 0
	case r == ' ':
		return ActionConfirm, 0
	case r == 'q' || r == 'Q':
		return ActionQuit, 0
	case r >= '1' && r <= '9':
		return ActionChoose, int(r - '1')
	}
	return ActionNone, 0
}
