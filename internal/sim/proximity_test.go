package sim

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestProximityResolver_NearestInRange(t *testing.T) {
	// Default player center is (400, 300).
	tests := map[string]struct {
		machines []Machine
		expID    int64
		expFound bool
	}{
		"no machines": {},
		"all out of range": {
			machines: []Machine{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 672, Y: 472}},
		},
		"boundary is inclusive": {
			machines: []Machine{{ID: 3, X: 432, Y: 236}},
			expID:    3,
			expFound: true,
		},
		"just past boundary": {
			machines: []Machine{{ID: 4, X: 432.5, Y: 236}},
		},
		"closest wins": {
			machines: []Machine{{ID: 5, X: 400, Y: 236}, {ID: 6, X: 346, Y: 236}},
			expID:    6,
			expFound: true,
		},
		"tie keeps first": {
			machines: []Machine{{ID: 7, X: 366, Y: 236}, {ID: 8, X: 306, Y: 236}},
			expID:    7,
			expFound: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, ok := NewProximityResolver().NearestInRange(NewPlayer(), tt.machines)
			testutil.AssertEqual(t, "found", ok, tt.expFound)
			testutil.AssertEqual(t, "id", m.ID, tt.expID)
		})
	}
}

func TestHitTest(t *testing.T) {
	machines := []Machine{{ID: 1, X: 100, Y: 100}, {ID: 2, X: 164, Y: 100}}

	tests := map[string]struct {
		pt    Point
		expID int64
		expOK bool
	}{
		"top left corner":  {pt: Point{X: 100, Y: 100}, expID: 1, expOK: true},
		"inside":           {pt: Point{X: 150, Y: 200}, expID: 1, expOK: true},
		"overlap is first": {pt: Point{X: 200, Y: 150}, expID: 1, expOK: true},
		"second only":      {pt: Point{X: 250, Y: 150}, expID: 2, expOK: true},
		"bottom edge open": {pt: Point{X: 150, Y: 228}},
		"outside":          {pt: Point{X: 10, Y: 10}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, ok := HitTest(tt.pt, machines)
			testutil.AssertEqual(t, "hit", ok, tt.expOK)
			testutil.AssertEqual(t, "id", m.ID, tt.expID)
		})
	}
}
