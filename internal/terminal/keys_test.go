package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/corvax-lab/internal/sim"
	"github.com/pixil98/go-testutil"
)

func TestMapKey(t *testing.T) {
	tests := map[string]struct {
		ev  *tcell.EventKey
		exp action
	}{
		"arrow up":    {ev: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), exp: action{kind: actionMove, key: sim.KeyUp}},
		"arrow left":  {ev: tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), exp: action{kind: actionMove, key: sim.KeyLeft}},
		"enter":       {ev: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), exp: action{kind: actionInteract, key: sim.KeyInteract}},
		"escape":      {ev: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), exp: action{kind: actionQuit}},
		"wasd":        {ev: tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), exp: action{kind: actionMove, key: sim.KeyRight}},
		"space":       {ev: tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), exp: action{kind: actionInteract, key: sim.KeyInteract}},
		"build first": {ev: tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), exp: action{kind: actionBuild, machine: sim.MachineTypes[0]}},
		"build last":  {ev: tcell.NewEventKey(tcell.KeyRune, '4', tcell.ModNone), exp: action{kind: actionBuild, machine: sim.MachineTypes[3]}},
		"out of menu": {ev: tcell.NewEventKey(tcell.KeyRune, '9', tcell.ModNone), exp: action{}},
		"upgrade":     {ev: tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone), exp: action{kind: actionUpgrade}},
		"sync":        {ev: tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), exp: action{kind: actionSync}},
		"unbound":     {ev: tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), exp: action{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "action", mapKey(tt.ev), tt.exp, cmp.AllowUnexported(action{}))
		})
	}
}
