package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/corvax-lab/internal/gameserver"
	"github.com/pixil98/go-testutil"
)

func TestMachineRegistry_CheckActivation(t *testing.T) {
	connected := &fakeWallet{accounts: []string{"account_rdx1"}}
	disconnected := &fakeWallet{}

	tests := map[string]struct {
		machine Machine
		wallet  Wallet
		expErr  error
	}{
		"cat lair no wallet":          {machine: Machine{Type: MachineCatLair}},
		"amplifier online no wallet":  {machine: Machine{Type: MachineAmplifier}},
		"amplifier offline no wallet": {machine: Machine{Type: MachineAmplifier, IsOffline: true}, wallet: disconnected, expErr: ErrWalletRequired},
		"amplifier offline nil":       {machine: Machine{Type: MachineAmplifier, IsOffline: true}, expErr: ErrWalletRequired},
		"amplifier offline wallet":    {machine: Machine{Type: MachineAmplifier, IsOffline: true}, wallet: connected},
		"incubator no wallet":         {machine: Machine{Type: MachineIncubator}, wallet: disconnected, expErr: ErrWalletRequired},
		"incubator wallet":            {machine: Machine{Type: MachineIncubator}, wallet: connected},
		"unknown type":                {machine: Machine{Type: "forge"}, wallet: connected, expErr: ErrUnknownMachineType},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewMachineRegistry(DefaultCatalog(), newFakeServer(), tt.wallet)
			err := r.CheckActivation(tt.machine)
			if tt.expErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
		})
	}
}

func TestMachineRegistry_WalletErrorIsPrecondition(t *testing.T) {
	testutil.AssertEqual(t, "precondition", errors.Is(ErrWalletRequired, ErrPreconditionUnmet), true)
}

func TestMachineRegistry_CooldownProgress(t *testing.T) {
	r := NewMachineRegistry(DefaultCatalog(), newFakeServer(), nil)

	tests := map[string]struct {
		machine  Machine
		exp      float64
		expState MachineState
	}{
		"never activated":  {machine: Machine{Type: MachineCatLair}, exp: 0, expState: MachineIdle},
		"just activated":   {machine: Machine{Type: MachineCatLair, LastActivated: testEpoch}, exp: 1, expState: MachineOnCooldown},
		"halfway":          {machine: Machine{Type: MachineReactor, LastActivated: testEpoch.Add(-5 * time.Second)}, exp: 0.5, expState: MachineOnCooldown},
		"finished":         {machine: Machine{Type: MachineReactor, LastActivated: testEpoch.Add(-time.Minute)}, exp: 0, expState: MachineIdle},
		"future timestamp": {machine: Machine{Type: MachineReactor, LastActivated: testEpoch.Add(time.Second)}, exp: 1, expState: MachineOnCooldown},
		"no cooldown":      {machine: Machine{Type: MachineAmplifier, LastActivated: testEpoch}, exp: 0, expState: MachineIdle},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "progress", r.CooldownProgress(tt.machine, testEpoch), tt.exp)
			testutil.AssertEqual(t, "state", r.State(tt.machine, testEpoch), tt.expState)
		})
	}
}

func TestMachineRegistry_Replace(t *testing.T) {
	r := NewMachineRegistry(DefaultCatalog(), newFakeServer(), nil)
	r.Replace([]gameserver.Machine{
		{ID: 1, Type: "catLair", Level: 2, X: 64, Y: 64, LastActivated: ptr(testEpoch.UnixMilli())},
		{ID: 2, Type: "forge", Level: 1},
		{ID: 3, Type: "catLair", Level: 0, IsOffline: true},
	})

	ms := r.List()
	testutil.AssertEqual(t, "count", len(ms), 2)
	testutil.AssertEqual(t, "level", ms[0].Level, 2)
	testutil.AssertEqual(t, "last activated", ms[0].LastActivated.Equal(testEpoch), true)
	testutil.AssertEqual(t, "level floor", ms[1].Level, 1)
	testutil.AssertEqual(t, "offline", ms[1].IsOffline, true)
	testutil.AssertEqual(t, "never activated", ms[1].LastActivated.IsZero(), true)
	testutil.AssertEqual(t, "counts", r.Counts()[MachineCatLair], 2)
	testutil.AssertEqual(t, "first", r.IsSecond(1), false)
	testutil.AssertEqual(t, "second", r.IsSecond(3), true)
	testutil.AssertEqual(t, "unknown", r.IsSecond(2), false)

	ms[0].Level = 99
	m, _ := r.Get(1)
	testutil.AssertEqual(t, "list is a copy", m.Level, 2)
}

func TestMachineRegistry_ApplyActivation(t *testing.T) {
	r := NewMachineRegistry(DefaultCatalog(), newFakeServer(), nil)
	r.Replace([]gameserver.Machine{
		{ID: 1, Type: "incubator", Level: 1, IsOffline: true},
		{ID: 2, Type: "amplifier", Level: 1, IsOffline: true},
	})

	r.ApplyActivation(1, &gameserver.ActivateResponse{Message: "Incubator Online", NewLastActivated: ptr(testEpoch.UnixMilli())})
	r.ApplyActivation(2, &gameserver.ActivateResponse{Message: "Incubator Online"})

	inc, _ := r.Get(1)
	testutil.AssertEqual(t, "incubator online", inc.IsOffline, false)
	testutil.AssertEqual(t, "incubator activated", inc.LastActivated.Equal(testEpoch), true)

	amp, _ := r.Get(2)
	testutil.AssertEqual(t, "amplifier untouched", amp.IsOffline, true)
	testutil.AssertEqual(t, "amplifier never activated", amp.LastActivated.IsZero(), true)
}

func TestMachineRegistry_ActivateSendsStakedHint(t *testing.T) {
	tests := map[string]struct {
		machine   Machine
		wallet    *fakeWallet
		expStaked float64
	}{
		"online incubator": {
			machine:   Machine{ID: 1, Type: MachineIncubator},
			wallet:    &fakeWallet{accounts: []string{"a"}, staked: 550},
			expStaked: 550,
		},
		"offline incubator": {
			machine: Machine{ID: 1, Type: MachineIncubator, IsOffline: true},
			wallet:  &fakeWallet{accounts: []string{"a"}, staked: 550},
		},
		"balance lookup fails": {
			machine: Machine{ID: 1, Type: MachineIncubator},
			wallet:  &fakeWallet{accounts: []string{"a"}, err: errors.New("gateway down")},
		},
		"reactor": {
			machine: Machine{ID: 1, Type: MachineReactor},
			wallet:  &fakeWallet{accounts: []string{"a"}, staked: 550},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := newFakeServer()
			r := NewMachineRegistry(DefaultCatalog(), srv, tt.wallet)

			if _, err := r.Activate(context.Background(), tt.machine); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "calls", len(srv.activated), 1)
			testutil.AssertEqual(t, "machine", srv.activated[0].MachineID, int64(1))
			testutil.AssertEqual(t, "staked", srv.activated[0].StakedCvx, tt.expStaked)
		})
	}
}

func TestMachineRegistry_BuildUnknownType(t *testing.T) {
	srv := newFakeServer()
	r := NewMachineRegistry(DefaultCatalog(), srv, nil)

	_, err := r.Build(context.Background(), "forge", 0, 0)
	testutil.AssertEqual(t, "unknown", errors.Is(err, ErrUnknownMachineType), true)
	testutil.AssertEqual(t, "no call", srv.count("build"), 0)
}

func TestMachineRegistry_IsSecondByID(t *testing.T) {
	r := NewMachineRegistry(DefaultCatalog(), newFakeServer(), nil)
	r.Replace([]gameserver.Machine{
		{ID: 8, Type: "reactor", Level: 1},
		{ID: 5, Type: "catLair", Level: 1},
		{ID: 2, Type: "catLair", Level: 1},
	})

	testutil.AssertEqual(t, "higher id listed first", r.IsSecond(5), true)
	testutil.AssertEqual(t, "lowest id", r.IsSecond(2), false)
	testutil.AssertEqual(t, "only of its type", r.IsSecond(8), false)
}
