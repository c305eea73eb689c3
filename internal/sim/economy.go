package sim

import (
	"math"

	"github.com/pixil98/corvax-lab/internal/display"
	"github.com/pixil98/corvax-lab/internal/gameserver"
)

// EconomyReconciler answers cost and affordability questions from the
// catalog and the confirmed ledger. Its answers are advisory; the server
// decides.
type EconomyReconciler struct {
	catalog *Catalog
}

func NewEconomyReconciler(c *Catalog) EconomyReconciler {
	return EconomyReconciler{catalog: c}
}

// Cost is the price of building another machine of type t when count of
// that type already exist.
func (e EconomyReconciler) Cost(t MachineType, count int) Amounts {
	spec, ok := e.catalog.Spec(t)
	if !ok {
		return nil
	}
	if spec.Escalating && count == 1 {
		return spec.BaseCost.Scale(SecondUnitCostMultiplier)
	}
	return spec.BaseCost.Clone()
}

// CanBuild reports whether the build cap allows another unit and the
// ledger covers it.
func (e EconomyReconciler) CanBuild(t MachineType, counts map[MachineType]int, l Ledger) bool {
	spec, ok := e.catalog.Spec(t)
	if !ok {
		return false
	}
	if counts[t] >= spec.BuildLimit {
		return false
	}
	return l.CanAfford(e.Cost(t, counts[t]))
}

// UpgradeCost previews the price of raising a machine from level to level+1.
// It reports false when the machine is already at its maximum level.
func (e EconomyReconciler) UpgradeCost(t MachineType, level int, second bool) (Amounts, bool) {
	spec, ok := e.catalog.Spec(t)
	if !ok || level >= spec.MaxLevel {
		return nil, false
	}
	factor := math.Pow(2, float64(level))
	if spec.Escalating && second {
		factor *= SecondUnitCostMultiplier
	}
	return spec.BaseCost.Scale(factor), true
}

// IncubatorReward previews the reward for a staked balance.
func IncubatorReward(staked float64) int {
	if staked <= 0 {
		return 0
	}
	return min(IncubatorRewardCap, int(math.Floor(staked/IncubatorRewardStep)))
}

// LowResources reports whether the player is close to stuck: little
// tcorvax and no reactor to make more.
func LowResources(l Ledger, counts map[MachineType]int) bool {
	return l.TCorvax < LowResourcesThreshold && counts[MachineReactor] == 0
}

// ReconcileActivationDeltas derives the gain feedback for an activation
// from the confirmed ledger before and after it.
func (e EconomyReconciler) ReconcileActivationDeltas(prev, next Ledger, m Machine, resp *gameserver.ActivateResponse) []Feedback {
	var out []Feedback

	gain := func(r Resource, dy float64, color string) {
		delta := next.Get(r) - prev.Get(r)
		out = append(out, Feedback{
			Kind: FeedbackGain,
			Text: display.MustExpand(msgGain, map[string]any{
				"Amount": display.FormatGain(delta),
				"Label":  r.Label(),
			}),
			Color:     color,
			X:         m.X + TileSize,
			Y:         m.Y + dy,
			MachineID: m.ID,
			Resource:  r,
			Amount:    delta,
		})
	}

	switch m.Type {
	case MachineCatLair:
		gain(ResourceCatNips, 0, ColorCatNips)
	case MachineReactor:
		gain(ResourceTCorvax, -10, ColorSuccess)
		gain(ResourceEnergy, 10, ColorGold)
	case MachineIncubator:
		reward := int(resp.Reward)
		switch {
		case reward > 0:
			out = append(out, Feedback{
				Kind:      FeedbackGain,
				Text:      display.MustExpand(msgReward, map[string]any{"Reward": reward}),
				Color:     ColorWallet,
				X:         m.X + TileSize,
				Y:         m.Y - 10,
				MachineID: m.ID,
				Resource:  ResourceTCorvax,
				Amount:    float64(reward),
			})
		case resp.Message == messageIncubatorOnline:
			out = append(out, Feedback{
				Kind:      FeedbackStatus,
				Text:      messageIncubatorOnline,
				Color:     ColorSuccess,
				X:         m.X + TileSize,
				Y:         m.Y - 10,
				MachineID: m.ID,
			})
		}
	}

	return out
}
