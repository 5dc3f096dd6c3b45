package database

// Tier is a named loyalty level reached at Threshold points
type Tier struct {
	Name      string
	Threshold int
}

// DefaultTiers is the loyalty ladder, lowest first.
var DefaultTiers = []Tier{
	{Name: "Flirty Bronze", Threshold: 0},
	{Name: "Sweet Silver", Threshold: 500},
	{Name: "Seductive Gold", Threshold: 1000},
}

// TierFor returns the highest tier whose threshold is at most points.
// Points below every threshold map to the first tier.
func TierFor(points int, tiers []Tier) string {
	if len(tiers) == 0 {
		return ""
	}
	name := tiers[0].Name
	for _, t := range tiers {
		if points >= t.Threshold {
			name = t.Name
		}
	}
	return name
}

// NextTier returns the tier after the one held at points and how many
// points are still missing. ok is false at the top of the ladder.
func NextTier(points int, tiers []Tier) (next Tier, missing int, ok bool) {
	for _, t := range tiers {
		if t.Threshold > points {
			return t, t.Threshold - points, true
		}
	}
	return Tier{}, 0, false
}
