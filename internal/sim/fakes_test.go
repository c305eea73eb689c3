package sim

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/corvax-lab/internal/gameserver"
)

type fakeServer struct {
	mu sync.Mutex

	who         *gameserver.WhoAmI
	whoErr      error
	state       *gameserver.GameState
	stateErr    error
	build       *gameserver.BuildResponse
	buildErr    error
	upgrade     *gameserver.UpgradeResponse
	upgradeErr  error
	activate    *gameserver.ActivateResponse
	activateErr error
	syncErr     error

	calls     map[string]int
	activated []gameserver.ActivateRequest
	built     []gameserver.BuildRequest
	synced    []gameserver.MachinePosition
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		who:      &gameserver.WhoAmI{LoggedIn: true, FirstName: "Ann"},
		state:    &gameserver.GameState{},
		build:    &gameserver.BuildResponse{},
		upgrade:  &gameserver.UpgradeResponse{},
		activate: &gameserver.ActivateResponse{},
		calls:    map[string]int{},
	}
}

func (f *fakeServer) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeServer) WhoAmI(context.Context) (*gameserver.WhoAmI, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["whoami"]++
	return f.who, f.whoErr
}

func (f *fakeServer) GameState(context.Context) (*gameserver.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["state"]++
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	return f.state, nil
}

func (f *fakeServer) BuildMachine(_ context.Context, req gameserver.BuildRequest) (*gameserver.BuildResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["build"]++
	f.built = append(f.built, req)
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	return f.build, nil
}

func (f *fakeServer) UpgradeMachine(context.Context, int64) (*gameserver.UpgradeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["upgrade"]++
	if f.upgradeErr != nil {
		return nil, f.upgradeErr
	}
	return f.upgrade, nil
}

func (f *fakeServer) ActivateMachine(_ context.Context, req gameserver.ActivateRequest) (*gameserver.ActivateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["activate"]++
	f.activated = append(f.activated, req)
	if f.activateErr != nil {
		return nil, f.activateErr
	}
	return f.activate, nil
}

func (f *fakeServer) SyncLayout(_ context.Context, positions []gameserver.MachinePosition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["sync"]++
	f.synced = positions
	return f.syncErr
}

type fakeWallet struct {
	accounts []string
	staked   float64
	err      error
}

func (w *fakeWallet) Connected() bool    { return len(w.accounts) > 0 }
func (w *fakeWallet) Accounts() []string { return w.accounts }
func (w *fakeWallet) StakedBalance(context.Context) (float64, error) {
	return w.staked, w.err
}

type recordingSink struct {
	got []Feedback
}

func (r *recordingSink) Publish(_ context.Context, f Feedback) {
	r.got = append(r.got, f)
}

var testEpoch = time.UnixMilli(1_700_000_000_000)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestSimulation(srv *fakeServer, w Wallet, opts ...Option) *Simulation {
	opts = append([]Option{WithRand(testRand()), WithClock(func() time.Time { return testEpoch })}, opts...)
	return NewSimulation(srv, w, opts...)
}

// settle ticks until no server call is in flight and nothing is staged.
func settle(t *testing.T, s *Simulation) {
	t.Helper()
	ctx := context.Background()
	for range 20 {
		if err := s.Tick(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s.Wait()
		if s.queue.Len() == 0 {
			return
		}
	}
	t.Fatal("simulation did not settle")
}

func ptr[T any](v T) *T {
	return &v
}

func assertAmounts(t *testing.T, label string, got, exp Amounts) {
	t.Helper()
	if len(got) != len(exp) {
		t.Errorf("%s: got %v, expected %v", label, got, exp)
		return
	}
	for r, v := range exp {
		if got[r] != v {
			t.Errorf("%s: %s got %v, expected %v", label, r, got[r], v)
		}
	}
}
