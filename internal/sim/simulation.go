package sim

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixil98/corvax-lab/internal/display"
	"github.com/pixil98/corvax-lab/internal/gameserver"
)

// Simulation is the client-side game core. A single goroutine calls Tick
// and the effects Tick; every other method may be called from anywhere and
// only stages work for the next frame. Server calls run on their own
// goroutines and hand their results back through the same queue, so no two
// state changes ever interleave.
type Simulation struct {
	catalog  *Catalog
	registry *MachineRegistry
	economy  EconomyReconciler
	motion   MotionController
	effects  *EffectsSystem
	sink     FeedbackSink
	now      func() time.Time
	rng      *rand.Rand

	player       Player
	input        InputState
	ledger       Ledger
	user         string
	loggedIn     bool
	lowResources bool
	nearest      int64
	frame        uint64

	queue    mutationQueue
	inflight sync.WaitGroup
	snapshot atomic.Pointer[Snapshot]
}

func NewSimulation(server GameServer, wallet Wallet, opts ...Option) *Simulation {
	s := &Simulation{
		catalog: DefaultCatalog(),
		motion:  NewMotionController(),
		now:     time.Now,
		player:  NewPlayer(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registry = NewMachineRegistry(s.catalog, server, wallet)
	s.economy = NewEconomyReconciler(s.catalog)
	s.effects = NewEffectsSystem(s.rng)
	s.refreshLowResources()
	s.publish()
	return s
}

// Effects returns the effects system so it can be ticked on its own
// schedule from the frame goroutine.
func (s *Simulation) Effects() *EffectsSystem {
	return s.effects
}

// Snapshot returns the state as of the last completed frame.
func (s *Simulation) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Wait blocks until every in-flight server call has staged its result.
func (s *Simulation) Wait() {
	s.inflight.Wait()
}

// Submit stages an arbitrary mutation for the next frame.
func (s *Simulation) Submit(m Mutation) {
	s.queue.Push(m)
}

// Tick applies staged mutations, advances the player, fires any completed
// approach and publishes a new snapshot.
func (s *Simulation) Tick(ctx context.Context) error {
	for _, m := range s.queue.Drain() {
		s.apply(ctx, m)
	}

	machines := s.registry.List()

	var arrived *Machine
	s.player, arrived = s.motion.Advance(s.player, &s.input, machines)
	if arrived != nil {
		s.activate(ctx, *arrived)
	}

	s.nearest = 0
	if m, ok := s.motion.Proximity.NearestInRange(s.player, machines); ok {
		s.nearest = m.ID
	}

	s.frame++
	s.publish()
	return nil
}

func (s *Simulation) apply(ctx context.Context, m Mutation) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "mutation panicked", "panic", r)
		}
	}()
	m(ctx, s)
}

// dispatch runs call off the tick goroutine and stages the mutation it
// returns.
func (s *Simulation) dispatch(ctx context.Context, call func(ctx context.Context) Mutation) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(ctx, "server call panicked", "panic", r)
			}
		}()
		if m := call(ctx); m != nil {
			s.queue.Push(m)
		}
	}()
}

func (s *Simulation) notify(ctx context.Context, f Feedback) {
	s.effects.SpawnNotification(f.Text, f.X, f.Y, f.Color)
	if s.sink != nil {
		s.sink.Publish(ctx, f)
	}
}

func (s *Simulation) refreshLowResources() {
	s.lowResources = LowResources(s.ledger, s.registry.Counts())
}

func (s *Simulation) particleColor(t MachineType) string {
	if spec, ok := s.catalog.Spec(t); ok && spec.ParticleColor != "" {
		return spec.ParticleColor
	}
	return ColorNeutral
}

// Press records a held key. Interact activates the nearest machine in range.
func (s *Simulation) Press(k Key) {
	s.Submit(func(ctx context.Context, s *Simulation) {
		if !s.input.Press(k) {
			return
		}
		m, ok := s.motion.Proximity.NearestInRange(s.player, s.registry.List())
		if !ok {
			return
		}
		s.activate(ctx, m)
	})
}

func (s *Simulation) Release(k Key) {
	s.Submit(func(_ context.Context, s *Simulation) {
		s.input.Release(k)
	})
}

// Tap handles a pointer tap in world coordinates. Tapping a machine in
// range activates it, tapping one out of range walks to it first and
// tapping empty ground walks there.
func (s *Simulation) Tap(pt Point) {
	s.Submit(func(ctx context.Context, s *Simulation) {
		if m, ok := HitTest(pt, s.registry.List()); ok {
			if s.motion.Proximity.InRange(s.player, m) {
				s.activate(ctx, m)
				return
			}
			c := m.Center()
			s.input.ApproachMachine(m.ID, s.motion.Bounds.Clamp(
				Point{X: c.X - s.player.Width/2, Y: c.Y - s.player.Height/2},
				s.player.Width, s.player.Height))
			return
		}
		s.input.MoveTo(s.motion.Bounds.Clamp(
			Point{X: pt.X - s.player.Width/2, Y: pt.Y - s.player.Height/2},
			s.player.Width, s.player.Height))
	})
}

// Activate activates a machine by id regardless of distance.
func (s *Simulation) Activate(id int64) {
	s.Submit(func(ctx context.Context, s *Simulation) {
		m, ok := s.registry.Get(id)
		if !ok {
			slog.WarnContext(ctx, "activating machine", "machine_id", id, "error", ErrMachineNotFound)
			return
		}
		s.activate(ctx, m)
	})
}

func (s *Simulation) activate(ctx context.Context, m Machine) {
	if err := s.registry.CheckActivation(m); err != nil {
		slog.InfoContext(ctx, "activation blocked", "machine_id", m.ID, "error", err)
		s.notify(ctx, Feedback{
			Kind:      FeedbackAdvisory,
			Text:      msgWalletRequired,
			Color:     ColorWallet,
			MachineID: m.ID,
		}.at(m.label()))
		return
	}

	s.dispatch(ctx, func(ctx context.Context) Mutation {
		resp, err := s.registry.Activate(ctx, m)
		return func(ctx context.Context, s *Simulation) {
			s.applyActivation(ctx, m, resp, err)
		}
	})
}

func (s *Simulation) applyActivation(ctx context.Context, m Machine, resp *gameserver.ActivateResponse, err error) {
	if current, ok := s.registry.Get(m.ID); ok {
		m = current
	}

	if err != nil {
		f := rejection(ctx, err, msgActivateFailed)
		f.MachineID = m.ID
		s.notify(ctx, f.at(m.label()))
		return
	}

	if resp.Message != "" {
		color := ColorSuccess
		if resp.Message == messageOffline {
			color = ColorError
		}
		s.notify(ctx, Feedback{
			Kind:      FeedbackStatus,
			Text:      resp.Message,
			Color:     color,
			MachineID: m.ID,
		}.at(m.label()))
	}

	if resp.UpdatedResources != nil {
		prev := s.ledger
		s.ledger = LedgerFrom(*resp.UpdatedResources)
		for _, f := range s.economy.ReconcileActivationDeltas(prev, s.ledger, m, resp) {
			s.notify(ctx, f)
		}
	}

	s.registry.ApplyActivation(m.ID, resp)
	c := m.Center()
	s.effects.SpawnParticles(c.X, c.Y, s.particleColor(m.Type), DefaultParticleCount)
	s.refreshLowResources()
}

// Build requests a new machine with its top-left at (x, y).
func (s *Simulation) Build(t MachineType, x, y float64) {
	s.Submit(func(ctx context.Context, s *Simulation) {
		s.dispatch(ctx, func(ctx context.Context) Mutation {
			resp, err := s.registry.Build(ctx, t, x, y)
			return func(ctx context.Context, s *Simulation) {
				s.applyBuild(ctx, t, x, y, resp, err)
			}
		})
	})
}

func (s *Simulation) applyBuild(ctx context.Context, t MachineType, x, y float64, resp *gameserver.BuildResponse, err error) {
	label := Point{X: x + TileSize/2, Y: y - NotificationLift}

	if err != nil {
		s.notify(ctx, rejection(ctx, err, msgBuildFailed).at(label))
		return
	}

	s.ledger = LedgerFrom(resp.NewResources)
	s.notify(ctx, Feedback{
		Kind:  FeedbackBuilt,
		Text:  display.MustExpand(msgBuilt, map[string]any{"Type": t}),
		Color: ColorSuccess,
	}.at(label))
	s.effects.SpawnParticles(x+TileSize, y+TileSize, s.particleColor(t), DefaultParticleCount)
	s.refreshLowResources()
	s.reload(ctx)
}

func (s *Simulation) Upgrade(id int64) {
	s.Submit(func(ctx context.Context, s *Simulation) {
		s.dispatch(ctx, func(ctx context.Context) Mutation {
			resp, err := s.registry.Upgrade(ctx, id)
			return func(ctx context.Context, s *Simulation) {
				s.applyUpgrade(ctx, id, resp, err)
			}
		})
	})
}

func (s *Simulation) applyUpgrade(ctx context.Context, id int64, resp *gameserver.UpgradeResponse, err error) {
	m, known := s.registry.Get(id)

	if err != nil {
		var label Point
		if known {
			label = m.label()
		}
		f := rejection(ctx, err, msgUpgradeFailed)
		f.MachineID = id
		s.notify(ctx, f.at(label))
		return
	}

	s.ledger = LedgerFrom(resp.NewResources)
	s.registry.SetLevel(id, resp.NewLevel)
	if known {
		c := m.Center()
		s.effects.SpawnParticles(c.X, c.Y, ColorGold, UpgradeParticleCount)
		s.notify(ctx, Feedback{
			Kind:      FeedbackLevelUp,
			Text:      display.MustExpand(msgLevelUp, map[string]any{"Level": resp.NewLevel}),
			Color:     ColorGold,
			MachineID: id,
		}.at(m.label()))
	}
	s.refreshLowResources()
	s.reload(ctx)
}

// SyncLayout pushes the current machine positions to the server.
func (s *Simulation) SyncLayout() {
	s.Submit(func(ctx context.Context, s *Simulation) {
		positions := s.registry.Positions()
		s.dispatch(ctx, func(ctx context.Context) Mutation {
			if err := s.registry.SyncLayout(ctx, positions); err != nil {
				slog.WarnContext(ctx, "syncing layout", "error", err)
			}
			return nil
		})
	})
}

// Reload replaces the ledger and machines with a fresh server snapshot.
func (s *Simulation) Reload() {
	s.Submit(func(ctx context.Context, s *Simulation) {
		s.reload(ctx)
	})
}

func (s *Simulation) reload(ctx context.Context) {
	s.dispatch(ctx, func(ctx context.Context) Mutation {
		state, err := s.registry.Load(ctx)
		return func(ctx context.Context, s *Simulation) {
			s.applyState(ctx, state, err)
		}
	})
}

func (s *Simulation) applyState(ctx context.Context, state *gameserver.GameState, err error) {
	if err != nil {
		slog.WarnContext(ctx, "loading game state", "error", err)
		return
	}
	s.ledger = LedgerFrom(state.Resources)
	s.registry.Replace(state.Machines)
	s.refreshLowResources()
}

// Login checks the session and loads the game state when logged in.
func (s *Simulation) Login() {
	s.Submit(func(ctx context.Context, s *Simulation) {
		s.dispatch(ctx, func(ctx context.Context) Mutation {
			who, err := s.registry.WhoAmI(ctx)
			return func(ctx context.Context, s *Simulation) {
				s.applyLogin(ctx, who, err)
			}
		})
	})
}

func (s *Simulation) applyLogin(ctx context.Context, who *gameserver.WhoAmI, err error) {
	center := Point{X: WorldWidth / 2, Y: NotificationLift * 2}

	if err != nil {
		s.notify(ctx, rejection(ctx, err, msgNotLoggedIn).at(center))
		return
	}
	if !who.LoggedIn {
		s.loggedIn = false
		s.notify(ctx, Feedback{Kind: FeedbackAdvisory, Text: msgNotLoggedIn, Color: ColorWallet}.at(center))
		return
	}

	s.loggedIn = true
	s.user = who.FirstName
	s.notify(ctx, Feedback{
		Kind:  FeedbackStatus,
		Text:  display.MustExpand(msgWelcome, map[string]any{"Name": who.FirstName}),
		Color: ColorSuccess,
	}.at(center))
	s.reload(ctx)
}
