package analytics

// DeltaReport is the per-resource difference of two analyses (after minus
// before). Resources present in only one report are treated as zero on the
// missing side. A delta holds no reference to either input report.
type DeltaReport struct {
	Before string `json:"before"`
	After  string `json:"after"`

	// Tiers holds after-before per resource, tier-indexed like Report.Tiers.
	Tiers []map[string]float64 `json:"tiers"`

	// BlockCounts is the per-subtype count difference.
	BlockCounts map[string]int `json:"block_counts"`

	PCU  int     `json:"pcu"`
	Mass float64 `json:"mass"`
}

// Tier returns the delta at tier i, or nil past the deepest tier.
func (d *DeltaReport) Tier(i int) map[string]float64 {
	if i < 0 || i >= len(d.Tiers) {
		return nil
	}
	return d.Tiers[i]
}

// Zero reports whether the delta contains no nonzero entry.
func (d *DeltaReport) Zero() bool {
	if d.PCU != 0 || d.Mass != 0 {
		return false
	}
	for _, tier := range d.Tiers {
		for _, v := range tier {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// Delta computes after minus before for every resource at every tier.
// It is a pure function of the two reports and may be called with reports
// from different engines or cost models.
func Delta(before, after *Report) *DeltaReport {
	depth := len(before.Tiers)
	if len(after.Tiers) > depth {
		depth = len(after.Tiers)
	}

	tiers := make([]map[string]float64, depth)
	for i := range tiers {
		tiers[i] = diffFloat(before.Tier(i), after.Tier(i))
	}

	return &DeltaReport{
		Before:      before.Blueprint,
		After:       after.Blueprint,
		Tiers:       tiers,
		BlockCounts: diffInt(before.BlockCounts, after.BlockCounts),
		PCU:         after.PCU - before.PCU,
		Mass:        after.Mass - before.Mass,
	}
}

func diffFloat(before, after map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(after))
	for k, v := range after {
		out[k] = v - before[k]
	}
	for k, v := range before {
		if _, ok := after[k]; !ok {
			out[k] = -v
		}
	}
	return out
}

func diffInt(before, after map[string]int) map[string]int {
	out := make(map[string]int, len(after))
	for k, v := range after {
		out[k] = v - before[k]
	}
	for k, v := range before {
		if _, ok := after[k]; !ok {
			out[k] = -v
		}
	}
	return out
}
