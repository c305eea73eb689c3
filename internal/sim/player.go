package sim

import "math"

type Player struct {
	X            float64
	Y            float64
	VX           float64
	VY           float64
	Width        float64
	Height       float64
	MaxSpeed     float64
	Acceleration float64
	Friction     float64
	FacingRight  bool
}

// NewPlayer returns a player centered in the world at rest.
func NewPlayer() Player {
	return Player{
		X:            WorldWidth/2 - PlayerSize/2,
		Y:            WorldHeight/2 - PlayerSize/2,
		Width:        PlayerSize,
		Height:       PlayerSize,
		MaxSpeed:     PlayerMaxSpeed,
		Acceleration: PlayerAcceleration,
		Friction:     PlayerFriction,
		FacingRight:  true,
	}
}

func (p Player) Center() Point {
	return Point{X: p.X + p.Width/2, Y: p.Y + p.Height/2}
}

func (p Player) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}
