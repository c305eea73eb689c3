package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/corvax-lab/internal/gameserver"
)

// GameServer is the authoritative backend. Every call may block.
type GameServer interface {
	WhoAmI(ctx context.Context) (*gameserver.WhoAmI, error)
	GameState(ctx context.Context) (*gameserver.GameState, error)
	BuildMachine(ctx context.Context, req gameserver.BuildRequest) (*gameserver.BuildResponse, error)
	UpgradeMachine(ctx context.Context, machineID int64) (*gameserver.UpgradeResponse, error)
	ActivateMachine(ctx context.Context, req gameserver.ActivateRequest) (*gameserver.ActivateResponse, error)
	SyncLayout(ctx context.Context, positions []gameserver.MachinePosition) error
}

// Wallet is the external wallet connection.
type Wallet interface {
	Connected() bool
	Accounts() []string
	StakedBalance(ctx context.Context) (float64, error)
}

type MachineState uint8

const (
	MachineIdle MachineState = iota
	MachineOnCooldown
)

func (s MachineState) String() string {
	if s == MachineOnCooldown {
		return "cooldown"
	}
	return "idle"
}

// MachineRegistry holds the placed machines and dispatches machine intents
// to the game server. The request methods only touch the server and wallet
// and may run on any goroutine. Everything else belongs to the tick
// goroutine.
type MachineRegistry struct {
	catalog  *Catalog
	server   GameServer
	wallet   Wallet
	machines []Machine
}

func NewMachineRegistry(c *Catalog, server GameServer, wallet Wallet) *MachineRegistry {
	return &MachineRegistry{
		catalog: c,
		server:  server,
		wallet:  wallet,
	}
}

// Replace swaps in the machine list from a server snapshot. Machines of
// unknown type are dropped.
func (r *MachineRegistry) Replace(ms []gameserver.Machine) {
	machines := make([]Machine, 0, len(ms))
	for _, m := range ms {
		if _, ok := r.catalog.Spec(MachineType(m.Type)); !ok {
			slog.Warn("dropping machine of unknown type", "machine_id", m.ID, "type", m.Type)
			continue
		}
		machines = append(machines, machineFrom(m))
	}
	r.machines = machines
}

func (r *MachineRegistry) List() []Machine {
	return append([]Machine(nil), r.machines...)
}

func (r *MachineRegistry) Get(id int64) (Machine, bool) {
	for _, m := range r.machines {
		if m.ID == id {
			return m, true
		}
	}
	return Machine{}, false
}

func (r *MachineRegistry) Counts() map[MachineType]int {
	counts := make(map[MachineType]int, len(MachineTypes))
	for _, m := range r.machines {
		counts[m.Type]++
	}
	return counts
}

// IsSecond reports whether another machine of the same type has a lower id.
// The server ranks machines of a type by id, not by list order.
func (r *MachineRegistry) IsSecond(id int64) bool {
	m, ok := r.Get(id)
	if !ok {
		return false
	}
	for _, o := range r.machines {
		if o.Type == m.Type && o.ID < id {
			return true
		}
	}
	return false
}

// CooldownProgress is the fraction of the cooldown still remaining, in
// [0, 1]. Machines without a cooldown or never activated report 0.
func (r *MachineRegistry) CooldownProgress(m Machine, now time.Time) float64 {
	spec, ok := r.catalog.Spec(m.Type)
	if !ok || spec.Cooldown() <= 0 || m.LastActivated.IsZero() {
		return 0
	}
	elapsed := now.Sub(m.LastActivated)
	return clamp(1-float64(elapsed)/float64(spec.Cooldown()), 0, 1)
}

func (r *MachineRegistry) State(m Machine, now time.Time) MachineState {
	if r.CooldownProgress(m, now) > 0 {
		return MachineOnCooldown
	}
	return MachineIdle
}

// ApplyActivation merges the fields an activation response returns.
func (r *MachineRegistry) ApplyActivation(id int64, resp *gameserver.ActivateResponse) {
	r.update(id, func(m *Machine) {
		if resp.NewLastActivated != nil {
			m.LastActivated = time.UnixMilli(*resp.NewLastActivated)
		}
		if m.Type == MachineIncubator && resp.Message == messageIncubatorOnline {
			m.IsOffline = false
		}
	})
}

func (r *MachineRegistry) SetLevel(id int64, level int) {
	r.update(id, func(m *Machine) {
		m.Level = level
	})
}

func (r *MachineRegistry) Positions() []gameserver.MachinePosition {
	out := make([]gameserver.MachinePosition, 0, len(r.machines))
	for _, m := range r.machines {
		out = append(out, gameserver.MachinePosition{ID: m.ID, X: m.X, Y: m.Y})
	}
	return out
}

func (r *MachineRegistry) update(id int64, fn func(*Machine)) {
	for i := range r.machines {
		if r.machines[i].ID == id {
			fn(&r.machines[i])
			return
		}
	}
}

func (r *MachineRegistry) walletReady() bool {
	return r.wallet != nil && r.wallet.Connected() && len(r.wallet.Accounts()) > 0
}

// CheckActivation reports whether m may be activated without a round trip.
func (r *MachineRegistry) CheckActivation(m Machine) error {
	spec, ok := r.catalog.Spec(m.Type)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMachineType, m.Type)
	}
	needsWallet := spec.WalletGated || (spec.CanGoOffline && m.IsOffline)
	if needsWallet && !r.walletReady() {
		return ErrWalletRequired
	}
	return nil
}

// Activate sends an activation request. Online incubators carry the staked
// balance as a hint; the server recomputes it.
func (r *MachineRegistry) Activate(ctx context.Context, m Machine) (*gameserver.ActivateResponse, error) {
	req := gameserver.ActivateRequest{MachineID: m.ID}

	if m.Type == MachineIncubator && !m.IsOffline && r.walletReady() {
		staked, err := r.wallet.StakedBalance(ctx)
		if err != nil {
			slog.WarnContext(ctx, "reading staked balance", "error", err)
		}
		req.StakedCvx = staked
	}

	return r.server.ActivateMachine(ctx, req)
}

func (r *MachineRegistry) Build(ctx context.Context, t MachineType, x, y float64) (*gameserver.BuildResponse, error) {
	if _, ok := r.catalog.Spec(t); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMachineType, t)
	}
	return r.server.BuildMachine(ctx, gameserver.BuildRequest{
		MachineType: string(t),
		X:           x,
		Y:           y,
	})
}

func (r *MachineRegistry) Upgrade(ctx context.Context, id int64) (*gameserver.UpgradeResponse, error) {
	return r.server.UpgradeMachine(ctx, id)
}

func (r *MachineRegistry) SyncLayout(ctx context.Context, positions []gameserver.MachinePosition) error {
	return r.server.SyncLayout(ctx, positions)
}

func (r *MachineRegistry) Load(ctx context.Context) (*gameserver.GameState, error) {
	return r.server.GameState(ctx)
}

func (r *MachineRegistry) WhoAmI(ctx context.Context) (*gameserver.WhoAmI, error) {
	return r.server.WhoAmI(ctx)
}
