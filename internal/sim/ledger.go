package sim

import "github.com/pixil98/corvax-lab/internal/gameserver"

type Resource string

const (
	ResourceTCorvax Resource = "tcorvax"
	ResourceCatNips Resource = "catNips"
	ResourceEnergy  Resource = "energy"
)

// Resources lists every resource in display order.
var Resources = []Resource{ResourceTCorvax, ResourceCatNips, ResourceEnergy}

// Label is the player-facing resource name.
func (r Resource) Label() string {
	switch r {
	case ResourceTCorvax:
		return "TCorvax"
	case ResourceCatNips:
		return "Cat Nips"
	case ResourceEnergy:
		return "Energy"
	default:
		return string(r)
	}
}

// Amounts maps resources to quantities. A missing key means zero.
type Amounts map[Resource]float64

// Scale returns a copy of a with every amount multiplied by f.
func (a Amounts) Scale(f float64) Amounts {
	out := make(Amounts, len(a))
	for r, v := range a {
		out[r] = v * f
	}
	return out
}

func (a Amounts) Clone() Amounts {
	return a.Scale(1)
}

// Ledger mirrors the resource balances from the most recent server response.
// It is never advanced locally.
type Ledger struct {
	TCorvax float64 `json:"tcorvax"`
	CatNips float64 `json:"catNips"`
	Energy  float64 `json:"energy"`
}

func LedgerFrom(r gameserver.Resources) Ledger {
	return Ledger{
		TCorvax: r.TCorvax,
		CatNips: r.CatNips,
		Energy:  r.Energy,
	}
}

func (l Ledger) Get(r Resource) float64 {
	switch r {
	case ResourceTCorvax:
		return l.TCorvax
	case ResourceCatNips:
		return l.CatNips
	case ResourceEnergy:
		return l.Energy
	default:
		return 0
	}
}

// CanAfford reports whether every resource named in cost is covered.
func (l Ledger) CanAfford(cost Amounts) bool {
	for r, v := range cost {
		if l.Get(r) < v {
			return false
		}
	}
	return true
}
