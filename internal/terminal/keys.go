package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/corvax-lab/internal/sim"
)

type actionKind uint8

const (
	actionNone actionKind = iota
	actionMove
	actionInteract
	actionBuild
	actionUpgrade
	actionSync
	actionReload
	actionQuit
)

type action struct {
	kind    actionKind
	key     sim.Key
	machine sim.MachineType
}

func mapKey(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyUp:
		return action{kind: actionMove, key: sim.KeyUp}
	case tcell.KeyDown:
		return action{kind: actionMove, key: sim.KeyDown}
	case tcell.KeyLeft:
		return action{kind: actionMove, key: sim.KeyLeft}
	case tcell.KeyRight:
		return action{kind: actionMove, key: sim.KeyRight}
	case tcell.KeyEnter:
		return action{kind: actionInteract, key: sim.KeyInteract}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action{kind: actionQuit}
	case tcell.KeyRune:
		return mapRune(ev.Rune())
	}
	return action{}
}

func mapRune(r rune) action {
	switch r {
	case 'w', 'W':
		return action{kind: actionMove, key: sim.KeyUp}
	case 's', 'S':
		return action{kind: actionMove, key: sim.KeyDown}
	case 'a', 'A':
		return action{kind: actionMove, key: sim.KeyLeft}
	case 'd', 'D':
		return action{kind: actionMove, key: sim.KeyRight}
	case 'e', 'E', ' ':
		return action{kind: actionInteract, key: sim.KeyInteract}
	case 'u', 'U':
		return action{kind: actionUpgrade}
	case 'p', 'P':
		return action{kind: actionSync}
	case 'r', 'R':
		return action{kind: actionReload}
	case 'q', 'Q':
		return action{kind: actionQuit}
	}
	if r >= '1' && int(r-'1') < len(sim.MachineTypes) {
		return action{kind: actionBuild, machine: sim.MachineTypes[r-'1']}
	}
	return action{}
}
