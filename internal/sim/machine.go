package sim

import (
	"fmt"
	"time"

	"github.com/pixil98/corvax-lab/internal/gameserver"
	"github.com/pixil98/go-errors"
)

type MachineType string

const (
	MachineCatLair   MachineType = "catLair"
	MachineReactor   MachineType = "reactor"
	MachineAmplifier MachineType = "amplifier"
	MachineIncubator MachineType = "incubator"
)

// MachineTypes lists every known machine type in toolbar order.
var MachineTypes = []MachineType{MachineCatLair, MachineReactor, MachineAmplifier, MachineIncubator}

// MachineSpec is the static catalog entry for a machine type.
type MachineSpec struct {
	Name          string   `json:"name"`
	BaseCost      Amounts  `json:"base_cost"`
	Production    Amounts  `json:"production,omitempty"`
	Boost         Amounts  `json:"boost,omitempty"`
	CooldownMs    int64    `json:"cooldown_ms,omitempty"`
	BuildLimit    int      `json:"build_limit"`
	MaxLevel      int      `json:"max_level"`
	BaseColor     string   `json:"base_color"`
	LevelColors   []string `json:"level_colors,omitempty"`
	ParticleColor string   `json:"particle_color"`

	// Escalating types charge SecondUnitCostMultiplier for the second unit.
	Escalating bool `json:"escalating,omitempty"`
	// WalletGated types need a connected wallet for every activation.
	WalletGated bool `json:"wallet_gated,omitempty"`
	// CanGoOffline types need a connected wallet to come back online.
	CanGoOffline bool `json:"can_go_offline,omitempty"`
}

func (s *MachineSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if len(s.BaseCost) == 0 {
		el.Add(fmt.Errorf("base_cost is required"))
	}
	for r, v := range s.BaseCost {
		if v < 0 {
			el.Add(fmt.Errorf("base_cost %s must not be negative", r))
		}
	}
	if s.CooldownMs < 0 {
		el.Add(fmt.Errorf("cooldown_ms must not be negative"))
	}
	if s.BuildLimit < 1 {
		el.Add(fmt.Errorf("build_limit must be at least 1"))
	}
	if s.MaxLevel < 1 {
		el.Add(fmt.Errorf("max_level must be at least 1"))
	}
	if s.BaseColor == "" {
		el.Add(fmt.Errorf("base_color is required"))
	}

	return el.Err()
}

func (s *MachineSpec) Cooldown() time.Duration {
	return time.Duration(s.CooldownMs) * time.Millisecond
}

// LevelColor returns the color for a level, clamped to the defined ramp.
func (s *MachineSpec) LevelColor(level int) string {
	if len(s.LevelColors) == 0 {
		return s.BaseColor
	}
	idx := min(max(level-1, 0), len(s.LevelColors)-1)
	return s.LevelColors[idx]
}

// Catalog maps machine types to their specs.
type Catalog struct {
	specs map[MachineType]*MachineSpec
}

// DefaultCatalog returns a fresh copy of the built-in machine table.
func DefaultCatalog() *Catalog {
	return &Catalog{specs: map[MachineType]*MachineSpec{
		MachineCatLair: {
			Name:          "Cat's Lair",
			BaseCost:      Amounts{ResourceTCorvax: 10},
			Production:    Amounts{ResourceCatNips: 5},
			CooldownMs:    DefaultCooldown.Milliseconds(),
			BuildLimit:    2,
			MaxLevel:      3,
			BaseColor:     "#4CAF50",
			LevelColors:   []string{"#4CAF50", "#2196F3", "#00E676"},
			ParticleColor: "#a5d6a7",
			Escalating:    true,
		},
		MachineReactor: {
			Name:          "Reactor",
			BaseCost:      Amounts{ResourceTCorvax: 10, ResourceCatNips: 10},
			Production:    Amounts{ResourceTCorvax: 1, ResourceEnergy: 2},
			CooldownMs:    DefaultCooldown.Milliseconds(),
			BuildLimit:    2,
			MaxLevel:      3,
			BaseColor:     "#2196F3",
			LevelColors:   []string{"#2196F3", "#1976D2", "#00C853"},
			ParticleColor: "#90caf9",
			Escalating:    true,
		},
		MachineAmplifier: {
			Name:          "Amplifier",
			BaseCost:      Amounts{ResourceTCorvax: 10, ResourceCatNips: 10, ResourceEnergy: 10},
			Boost:         Amounts{ResourceTCorvax: 0.5},
			BuildLimit:    1,
			MaxLevel:      5,
			BaseColor:     "#9C27B0",
			LevelColors:   []string{"#9C27B0", "#7B1FA2", "#00BFA5", "#00FF00", "#FFD700"},
			ParticleColor: "#ce93d8",
			CanGoOffline:  true,
		},
		MachineIncubator: {
			Name:          "Incubator",
			BaseCost:      Amounts{ResourceTCorvax: 320, ResourceCatNips: 320, ResourceEnergy: 320},
			Production:    Amounts{ResourceTCorvax: 0},
			CooldownMs:    DefaultCooldown.Milliseconds(),
			BuildLimit:    1,
			MaxLevel:      1,
			BaseColor:     "#FF5722",
			LevelColors:   []string{"#FF5722"},
			ParticleColor: "#FFCCBC",
			WalletGated:   true,
			CanGoOffline:  true,
		},
	}}
}

func (c *Catalog) Spec(t MachineType) (*MachineSpec, bool) {
	s, ok := c.specs[t]
	return s, ok
}

// Set replaces the spec for a known machine type.
func (c *Catalog) Set(t MachineType, spec *MachineSpec) error {
	if _, ok := c.specs[t]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMachineType, t)
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", t, err)
	}
	c.specs[t] = spec
	return nil
}

// Machine is the client-side view of a placed machine.
type Machine struct {
	ID    int64
	Type  MachineType
	Level int
	X     float64
	Y     float64
	// LastActivated is zero when the machine has never been activated.
	LastActivated time.Time
	IsOffline     bool
}

func machineFrom(m gameserver.Machine) Machine {
	out := Machine{
		ID:        m.ID,
		Type:      MachineType(m.Type),
		Level:     max(m.Level, 1),
		X:         m.X,
		Y:         m.Y,
		IsOffline: bool(m.IsOffline),
	}
	if m.LastActivated != nil && *m.LastActivated > 0 {
		out.LastActivated = time.UnixMilli(*m.LastActivated)
	}
	return out
}

func (m Machine) Center() Point {
	return Point{X: m.X + MachineSize/2, Y: m.Y + MachineSize/2}
}

// Contains reports whether p falls inside the machine's half-open bounds.
func (m Machine) Contains(p Point) bool {
	return p.X >= m.X && p.X < m.X+MachineSize &&
		p.Y >= m.Y && p.Y < m.Y+MachineSize
}

// label positions feedback text above the machine.
func (m Machine) label() Point {
	return Point{X: m.X + TileSize, Y: m.Y - NotificationLift}
}
