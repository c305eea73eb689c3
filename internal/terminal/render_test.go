package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/corvax-lab/internal/sim"
	"github.com/pixil98/go-testutil"
)

type fakeCanvas struct {
	w     int
	h     int
	cells map[[2]int]rune
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: map[[2]int]rune{}}
}

func (c *fakeCanvas) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[[2]int{x, y}] = r
}

func (c *fakeCanvas) Size() (int, int) {
	return c.w, c.h
}

func (c *fakeCanvas) row(y int) string {
	var b strings.Builder
	for x := range c.w {
		r, ok := c.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func testSnapshot() *sim.Snapshot {
	return &sim.Snapshot{
		User:     "alice",
		LoggedIn: true,
		Player:   sim.NewPlayer(),
		Ledger:   sim.Ledger{TCorvax: 300, CatNips: 300, Energy: 300},
		Machines: []sim.MachineView{{
			Machine:  sim.Machine{ID: 1, Type: sim.MachineCatLair, Level: 1},
			Name:     "Cat's Lair",
			Color:    "#4CAF50",
			State:    sim.MachineOnCooldown,
			Progress: 0.5,
		}},
		NearestID: 1,
		Notifications: []sim.Notification{{
			Text: "Built catLair!", X: 400, Y: 100, Life: 1, Color: sim.ColorSuccess,
		}},
		BuildOptions: []sim.BuildOption{{
			Type: sim.MachineCatLair, Name: "Cat's Lair", Count: 1, Limit: 2,
			Cost: sim.Amounts{sim.ResourceTCorvax: 10}, CanBuild: true,
		}},
	}
}

func TestRender(t *testing.T) {
	c := newFakeCanvas(80, 30)
	log := NewFeedbackLog(0)
	log.Add(sim.Feedback{Text: "Welcome, alice!"})

	render(c, testSnapshot(), log, 5)

	hud := c.row(0)
	testutil.AssertEqual(t, "hud resources", strings.HasPrefix(hud, "TCorvax 300.0  Cat Nips 300.0  Energy 300.0"), true)
	testutil.AssertEqual(t, "hud user", strings.Contains(hud, "Alice"), true)
	testutil.AssertEqual(t, "hud low resources", strings.Contains(hud, lowResources), false)

	testutil.AssertEqual(t, "build menu", strings.HasPrefix(c.row(1), "[1] Cat's Lair 1/2: 10.0 TCorvax"), true)

	testutil.AssertEqual(t, "machine label", strings.HasPrefix(c.row(2), ">C1"), true)
	testutil.AssertEqual(t, "cooldown bar", c.row(5)[:len("██████░░░░░░")], "██████░░░░░░")

	testutil.AssertEqual(t, "player", c.row(13)[40:42], "@>")
	testutil.AssertEqual(t, "notification", strings.Contains(c.row(5), "Built catLair!"), true)
	testutil.AssertEqual(t, "log", strings.HasPrefix(c.row(25), "Welcome, alice!"), true)
}

func TestRender_LowResources(t *testing.T) {
	c := newFakeCanvas(120, 30)
	snap := testSnapshot()
	snap.LowResources = true

	render(c, snap, nil, 5)

	testutil.AssertEqual(t, "warning", strings.Contains(c.row(0), lowResources), true)
}

func TestRender_TooSmall(t *testing.T) {
	c := newFakeCanvas(40, 3)

	render(c, testSnapshot(), nil, 5)

	testutil.AssertEqual(t, "fallback", strings.HasPrefix(c.row(2), "terminal too small"), true)
}
