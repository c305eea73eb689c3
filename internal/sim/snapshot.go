package sim

import "time"

// Snapshot is an immutable copy of everything a renderer needs for a frame.
type Snapshot struct {
	Frame         uint64
	At            time.Time
	User          string
	LoggedIn      bool
	Player        Player
	Ledger        Ledger
	LowResources  bool
	Machines      []MachineView
	NearestID     int64
	Particles     []Particle
	Notifications []Notification
	BuildOptions  []BuildOption
}

type MachineView struct {
	Machine
	Name     string
	Color    string
	State    MachineState
	// Progress is the remaining cooldown fraction; 0 when ready.
	Progress float64
	// UpgradeCost is nil at max level.
	UpgradeCost Amounts
}

type BuildOption struct {
	Type     MachineType
	Name     string
	Cost     Amounts
	Count    int
	Limit    int
	CanBuild bool
}

// Machine returns the view for id.
func (s *Snapshot) Machine(id int64) (MachineView, bool) {
	for _, m := range s.Machines {
		if m.ID == id {
			return m, true
		}
	}
	return MachineView{}, false
}

func (s *Simulation) publish() {
	now := s.now()
	counts := s.registry.Counts()

	machines := make([]MachineView, 0, len(s.registry.machines))
	for _, m := range s.registry.machines {
		spec, _ := s.catalog.Spec(m.Type)
		view := MachineView{
			Machine:  m,
			Name:     spec.Name,
			Color:    spec.LevelColor(m.Level),
			State:    s.registry.State(m, now),
			Progress: s.registry.CooldownProgress(m, now),
		}
		if cost, ok := s.economy.UpgradeCost(m.Type, m.Level, s.registry.IsSecond(m.ID)); ok {
			view.UpgradeCost = cost
		}
		machines = append(machines, view)
	}

	options := make([]BuildOption, 0, len(MachineTypes))
	for _, t := range MachineTypes {
		spec, ok := s.catalog.Spec(t)
		if !ok {
			continue
		}
		options = append(options, BuildOption{
			Type:     t,
			Name:     spec.Name,
			Cost:     s.economy.Cost(t, counts[t]),
			Count:    counts[t],
			Limit:    spec.BuildLimit,
			CanBuild: s.economy.CanBuild(t, counts, s.ledger),
		})
	}

	s.snapshot.Store(&Snapshot{
		Frame:         s.frame,
		At:            now,
		User:          s.user,
		LoggedIn:      s.loggedIn,
		Player:        s.player,
		Ledger:        s.ledger,
		LowResources:  s.lowResources,
		Machines:      machines,
		NearestID:     s.nearest,
		Particles:     s.effects.Particles(),
		Notifications: s.effects.Notifications(),
		BuildOptions:  options,
	})
}
