package sim

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestEffectsSystem_SpawnParticles(t *testing.T) {
	e := NewEffectsSystem(testRand())
	e.SpawnParticles(164, 164, "#a5d6a7", DefaultParticleCount)

	ps := e.Particles()
	testutil.AssertEqual(t, "count", len(ps), DefaultParticleCount)

	seen := map[string]bool{}
	for _, p := range ps {
		testutil.AssertEqual(t, "x", p.X, 164.0)
		testutil.AssertEqual(t, "y", p.Y, 164.0)
		testutil.AssertEqual(t, "life", p.Life, 1.0)
		testutil.AssertEqual(t, "color", p.Color, "#a5d6a7")
		if p.VX < -1.5 || p.VX >= 1.5 || p.VY < -1.5 || p.VY >= 1.5 {
			t.Errorf("velocity out of range: (%v,%v)", p.VX, p.VY)
		}
		if p.Radius < 2 || p.Radius >= 5 {
			t.Errorf("radius out of range: %v", p.Radius)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestEffectsSystem_Tick(t *testing.T) {
	e := NewEffectsSystem(testRand())
	e.SpawnParticles(0, 0, ColorGold, 5)
	e.SpawnNotification("Built catLair!", 132, 80, ColorSuccess)

	prevP := e.Particles()
	prevN := e.Notifications()
	ticks := 0
	for len(e.Particles()) > 0 || len(e.Notifications()) > 0 {
		if err := e.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ticks++
		if ticks > 110 {
			t.Fatal("effects were never pruned")
		}

		for i, p := range e.Particles() {
			if p.Life >= prevP[i].Life || p.Life <= 0 {
				t.Fatalf("particle life %v after %v", p.Life, prevP[i].Life)
			}
			if p.Radius >= prevP[i].Radius {
				t.Fatalf("particle did not shrink")
			}
			testutil.AssertEqual(t, "particle x", p.X, prevP[i].X+prevP[i].VX)
		}
		for i, n := range e.Notifications() {
			if n.Life >= prevN[i].Life || n.Life <= 0 {
				t.Fatalf("notification life %v after %v", n.Life, prevN[i].Life)
			}
			testutil.AssertEqual(t, "notification y", n.Y, prevN[i].Y-NotificationDrift)
			testutil.AssertEqual(t, "notification x", n.X, 132.0)
		}
		prevP, prevN = e.Particles(), e.Notifications()
	}

	if ticks < 99 {
		t.Errorf("effects pruned too early after %d ticks", ticks)
	}
	testutil.AssertEqual(t, "ticks", e.Ticks(), uint64(ticks))
}

func TestEffectsSystem_SnapshotsAreCopies(t *testing.T) {
	e := NewEffectsSystem(testRand())
	e.SpawnNotification("hi", 0, 0, ColorNeutral)

	ns := e.Notifications()
	ns[0].Text = "changed"
	testutil.AssertEqual(t, "text", e.Notifications()[0].Text, "hi")
}

func TestEffectsSystem_TickEmpty(t *testing.T) {
	tests := map[string]struct {
		spawn bool
		ticks int
	}{
		"once":   {ticks: 1},
		"many":   {ticks: 100},
		"pruned": {spawn: true, ticks: 150},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewEffectsSystem(testRand())
			if tt.spawn {
				e.SpawnParticles(0, 0, ColorGold, 3)
				e.SpawnNotification("gone", 0, 0, ColorNeutral)
			}

			for range tt.ticks {
				if err := e.Tick(context.Background()); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			testutil.AssertEqual(t, "particles", len(e.Particles()), 0)
			testutil.AssertEqual(t, "notifications", len(e.Notifications()), 0)
			testutil.AssertEqual(t, "ticks", e.Ticks(), uint64(tt.ticks))
		})
	}
}
