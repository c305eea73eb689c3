package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/corvax-lab/internal/messaging"
	"github.com/pixil98/corvax-lab/internal/sim"
)

// ErrQuit is returned from Start when the player asks to leave and no quit
// hook is set.
var ErrQuit = errors.New("player quit")

const (
	defaultFrameInterval = 33 * time.Millisecond
	defaultHoldWindow    = 250 * time.Millisecond
	defaultLogRows       = 5
)

// Game is the simulation surface driven by the terminal.
type Game interface {
	Press(k sim.Key)
	Release(k sim.Key)
	Tap(pt sim.Point)
	Build(t sim.MachineType, x, y float64)
	Upgrade(id int64)
	SyncLayout()
	Reload()
	Snapshot() *sim.Snapshot
}

// Terminal renders snapshots to a tcell screen and turns key and mouse
// events into game input.
type Terminal struct {
	game          Game
	screen        tcell.Screen
	frameInterval time.Duration
	hold          *holdTracker
	log           *FeedbackLog
	logRows       int
	bus           messaging.Subscriber
	busReady      <-chan struct{}
	now           func() time.Time
	onQuit        func()

	mouseDown bool
}

func NewTerminal(game Game, opts ...TerminalOpt) *Terminal {
	t := &Terminal{
		game:          game,
		frameInterval: defaultFrameInterval,
		hold:          newHoldTracker(defaultHoldWindow),
		logRows:       defaultLogRows,
		now:           time.Now,
	}

	for _, o := range opts {
		o(t)
	}

	if t.log == nil {
		t.log = NewFeedbackLog(DefaultLogSize)
	}

	return t
}

// Log is the feedback log drawn below the map.
func (t *Terminal) Log() *FeedbackLog {
	return t.log
}

func (t *Terminal) Start(ctx context.Context) error {
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		t.screen = s
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer t.screen.Fini()

	t.screen.EnableMouse(tcell.MouseButtonEvents)
	t.screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if t.bus != nil {
		go t.follow(ctx)
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(t.frameInterval)
	defer ticker.Stop()

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := t.handle(ev); err != nil {
				return err
			}
		case <-ticker.C:
			for _, k := range t.hold.Expired(t.now()) {
				t.game.Release(k)
			}
			t.draw()
		}
	}
}

// follow mirrors bus feedback into the log once the bus is up.
func (t *Terminal) follow(ctx context.Context) {
	if t.busReady != nil {
		select {
		case <-t.busReady:
		case <-ctx.Done():
			return
		}
	}

	unsub, err := messaging.SubscribeFeedback(t.bus, t.log.Add)
	if err != nil {
		slog.WarnContext(ctx, "subscribing to feedback", "error", err)
		return
	}
	<-ctx.Done()
	unsub()
}

func (t *Terminal) draw() {
	render(t.screen, t.game.Snapshot(), t.log, t.logRows)
	t.screen.Show()
}

func (t *Terminal) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
		t.draw()
	}
	return nil
}

func (t *Terminal) handleKey(ev *tcell.EventKey) error {
	a := mapKey(ev)
	switch a.kind {
	case actionQuit:
		for _, k := range t.hold.ReleaseAll() {
			t.game.Release(k)
		}
		if t.onQuit != nil {
			t.onQuit()
			return nil
		}
		return ErrQuit
	case actionMove:
		if t.hold.Press(a.key, t.now()) {
			t.game.Press(a.key)
		}
	case actionInteract:
		t.game.Press(a.key)
	case actionBuild:
		x, y := buildSpot(t.game.Snapshot().Player)
		t.game.Build(a.machine, x, y)
	case actionUpgrade:
		if id := t.game.Snapshot().NearestID; id != 0 {
			t.game.Upgrade(id)
		}
	case actionSync:
		t.game.SyncLayout()
	case actionReload:
		t.game.Reload()
	}
	return nil
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !t.mouseDown
	t.mouseDown = down
	if !pressed {
		return
	}

	w, h := t.screen.Size()
	l := newLayout(w, h, t.logRows)
	cx, cy := ev.Position()
	pt, ok := l.world.ToWorld(cx, cy)
	if !ok {
		return
	}
	t.game.Tap(pt)
}

// buildSpot is the tile-aligned spot the player is facing.
func buildSpot(p sim.Player) (float64, float64) {
	x := p.X - sim.MachineSize
	if p.FacingRight {
		x = p.X + p.Width
	}
	x = math.Floor(x/sim.TileSize) * sim.TileSize
	y := math.Floor(p.Y/sim.TileSize) * sim.TileSize

	x = math.Max(0, math.Min(x, sim.WorldWidth-sim.MachineSize))
	y = math.Max(0, math.Min(y, sim.WorldHeight-sim.MachineSize))
	return x, y
}
