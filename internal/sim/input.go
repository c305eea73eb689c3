package sim

type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInteract
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyInteract:
		return "interact"
	default:
		return "none"
	}
}

// InputState holds the held directions and the pending auto-walk.
type InputState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	// Target is the top-left position auto-walk is heading to.
	Target *Point
	// Approach names the machine to activate when auto-walk arrives.
	Approach *int64
}

// Press records a held key. It reports true for the discrete interact key,
// which is not held.
func (in *InputState) Press(k Key) bool {
	switch k {
	case KeyUp:
		in.Up = true
	case KeyDown:
		in.Down = true
	case KeyLeft:
		in.Left = true
	case KeyRight:
		in.Right = true
	case KeyInteract:
		return true
	}
	return false
}

func (in *InputState) Release(k Key) {
	switch k {
	case KeyUp:
		in.Up = false
	case KeyDown:
		in.Down = false
	case KeyLeft:
		in.Left = false
	case KeyRight:
		in.Right = false
	}
}

func (in *InputState) HasDirection() bool {
	return in.Up || in.Down || in.Left || in.Right
}

// MoveTo starts a plain auto-walk with no activation on arrival.
func (in *InputState) MoveTo(target Point) {
	in.Target = &target
	in.Approach = nil
}

// ApproachMachine starts an auto-walk that activates machineID on arrival.
func (in *InputState) ApproachMachine(machineID int64, target Point) {
	in.Target = &target
	in.Approach = &machineID
}

func (in *InputState) ClearTargets() {
	in.Target = nil
	in.Approach = nil
}
