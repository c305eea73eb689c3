package sim

import "math"

type Bounds struct {
	Width  float64
	Height float64
}

// Clamp keeps a box of size w by h with top-left p inside the bounds.
func (b Bounds) Clamp(p Point, w, h float64) Point {
	return Point{
		X: clamp(p.X, 0, b.Width-w),
		Y: clamp(p.Y, 0, b.Height-h),
	}
}

// MotionController advances the player one frame from the held input or
// the pending auto-walk target.
type MotionController struct {
	Bounds    Bounds
	Proximity ProximityResolver
}

func NewMotionController() MotionController {
	return MotionController{
		Bounds:    Bounds{Width: WorldWidth, Height: WorldHeight},
		Proximity: NewProximityResolver(),
	}
}

// Advance returns the next player state. Keyboard input wins over auto-walk
// for the frame without clearing the target. When an approach completes
// with the player in range, the machine to activate is returned and both
// targets are cleared.
func (mc MotionController) Advance(p Player, in *InputState, machines []Machine) (Player, *Machine) {
	if in.HasDirection() {
		if in.Up {
			p.VY -= p.Acceleration
		}
		if in.Down {
			p.VY += p.Acceleration
		}
		if in.Left {
			p.VX -= p.Acceleration
			p.FacingRight = false
		}
		if in.Right {
			p.VX += p.Acceleration
			p.FacingRight = true
		}
		return mc.integrate(p), nil
	}

	if in.Target != nil {
		return mc.walk(p, in, machines)
	}

	return mc.integrate(p), nil
}

// integrate applies the speed cap, friction and bounds.
func (mc MotionController) integrate(p Player) Player {
	p.VX = clamp(p.VX, -p.MaxSpeed, p.MaxSpeed) * p.Friction
	p.VY = clamp(p.VY, -p.MaxSpeed, p.MaxSpeed) * p.Friction
	if math.Abs(p.VX) < RestEpsilon {
		p.VX = 0
	}
	if math.Abs(p.VY) < RestEpsilon {
		p.VY = 0
	}

	p.X += p.VX
	p.Y += p.VY
	return mc.clampPlayer(p)
}

// walk moves straight toward the target. Any keyboard velocity is dropped so
// nothing carries the player past the spot it walked to.
func (mc MotionController) walk(p Player, in *InputState, machines []Machine) (Player, *Machine) {
	p.VX, p.VY = 0, 0
	dx := in.Target.X - p.X
	dy := in.Target.Y - p.Y
	dist := math.Hypot(dx, dy)

	if dist > ArrivalEpsilon {
		if dist <= p.MaxSpeed {
			p.X, p.Y = in.Target.X, in.Target.Y
		} else {
			p.X += dx / dist * p.MaxSpeed
			p.Y += dy / dist * p.MaxSpeed
		}
		if dx != 0 {
			p.FacingRight = dx > 0
		}
		return mc.clampPlayer(p), nil
	}

	if in.Approach == nil {
		return p, nil
	}

	id := *in.Approach
	in.Approach = nil
	for _, m := range machines {
		if m.ID != id {
			continue
		}
		if mc.Proximity.InRange(p, m) {
			in.Target = nil
			return p, &m
		}
		break
	}
	return p, nil
}

func (mc MotionController) clampPlayer(p Player) Player {
	pos := mc.Bounds.Clamp(Point{X: p.X, Y: p.Y}, p.Width, p.Height)
	p.X, p.Y = pos.X, pos.Y
	return p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
