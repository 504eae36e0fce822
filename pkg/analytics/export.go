package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// WriteComparisonCSV writes a before/after/delta table covering PCU, mass,
// and every resource tier to w in CSV form.
func WriteComparisonCSV(w io.Writer, before, after *Report, delta *DeltaReport) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"Metric", "Before", "After", "Delta"},
		{"PCU", strconv.Itoa(before.PCU), strconv.Itoa(after.PCU), strconv.Itoa(delta.PCU)},
		{"Mass", formatQty(before.Mass), formatQty(after.Mass), formatQty(delta.Mass)},
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	for tier := TierComponents; tier < len(delta.Tiers); tier++ {
		if err := cw.Write(nil); err != nil {
			return err
		}
		label := fmt.Sprintf("Tier %d", tier)
		if tier < len(TierNames) {
			label = TierNames[tier]
		}
		if err := cw.Write([]string{label, "Before", "After", "Delta"}); err != nil {
			return err
		}
		for _, id := range unionKeys(before.Tier(tier), after.Tier(tier)) {
			rec := []string{
				id,
				formatQty(before.Tier(tier)[id]),
				formatQty(after.Tier(tier)[id]),
				formatQty(delta.Tier(tier)[id]),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteComparisonText writes a human-readable before/after summary to w.
func WriteComparisonText(w io.Writer, before, after *Report, delta *DeltaReport) error {
	p := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format+"\n", args...)
		return err
	}

	if err := p("Blueprint: %s -> %s", before.Blueprint, after.Blueprint); err != nil {
		return err
	}
	if err := p("PCU: %d -> %d (delta %+d)", before.PCU, after.PCU, delta.PCU); err != nil {
		return err
	}
	if err := p("Mass: %.2f -> %.2f (delta %+.2f)", before.Mass, after.Mass, delta.Mass); err != nil {
		return err
	}

	if err := p("\nBlock changes:"); err != nil {
		return err
	}
	for _, id := range sortedIntKeys(delta.BlockCounts) {
		if delta.BlockCounts[id] == 0 {
			continue
		}
		if err := p("  %s: %+d", id, delta.BlockCounts[id]); err != nil {
			return err
		}
	}

	for tier := TierComponents; tier < len(delta.Tiers); tier++ {
		label := fmt.Sprintf("tier %d", tier)
		if tier < len(TierNames) {
			label = TierNames[tier]
		}
		if err := p("\n%s deltas:", label); err != nil {
			return err
		}
		for _, id := range unionKeys(before.Tier(tier), after.Tier(tier)) {
			v := delta.Tier(tier)[id]
			if v == 0 {
				continue
			}
			if err := p("  %s: %+.3f", id, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatQty renders quantities without trailing noise: integers plainly,
// fractions with three decimals.
func formatQty(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func unionKeys(a, b map[string]float64) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func sortedIntKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
