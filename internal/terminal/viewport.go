package terminal

import "github.com/pixil98/corvax-lab/internal/sim"

// Viewport maps world coordinates onto a block of terminal cells.
type Viewport struct {
	X    int
	Y    int
	Cols int
	Rows int
}

func (v Viewport) Empty() bool {
	return v.Cols <= 0 || v.Rows <= 0
}

func (v Viewport) Contains(cx, cy int) bool {
	return cx >= v.X && cx < v.X+v.Cols && cy >= v.Y && cy < v.Y+v.Rows
}

// ToWorld returns the world point at the center of a cell.
func (v Viewport) ToWorld(cx, cy int) (sim.Point, bool) {
	if v.Empty() || !v.Contains(cx, cy) {
		return sim.Point{}, false
	}
	return sim.Point{
		X: (float64(cx-v.X) + 0.5) * sim.WorldWidth / float64(v.Cols),
		Y: (float64(cy-v.Y) + 0.5) * sim.WorldHeight / float64(v.Rows),
	}, true
}

func (v Viewport) ToCell(p sim.Point) (int, int) {
	return v.X + int(p.X*float64(v.Cols)/sim.WorldWidth),
		v.Y + int(p.Y*float64(v.Rows)/sim.WorldHeight)
}
