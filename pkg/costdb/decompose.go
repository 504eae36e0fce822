package costdb

import "sort"

// Decomposition is the tier-indexed result of a back-calculation.
// Tier 0 holds the part counts themselves, tier 1 their direct
// sub-resources, and so on down to base resources.
type Decomposition struct {
	// Tiers maps resource identifiers to accumulated quantities per tier.
	Tiers []map[string]float64

	// TotalPCU and TotalMass aggregate the per-block cost values over all
	// counted parts.
	TotalPCU  int
	TotalMass float64

	// Unpriced lists part identifiers with no cost entry, sorted. They
	// appear in tier 0 but contribute nothing below it.
	Unpriced []string
}

// Tier returns the aggregate at the given tier, or nil past the deepest one.
func (d *Decomposition) Tier(i int) map[string]float64 {
	if i < 0 || i >= len(d.Tiers) {
		return nil
	}
	return d.Tiers[i]
}

// Depth returns the number of tiers.
func (d *Decomposition) Depth() int { return len(d.Tiers) }

// Decompose expands the given part counts through the cost DAG and returns
// the tier-indexed totals. Unknown parts become unpriced leaves; cyclic cost
// data fails with *CyclicCostModelError naming the cycle.
func (db *DB) Decompose(partCounts map[string]int) (*Decomposition, error) {
	result := &Decomposition{Tiers: []map[string]float64{}}
	unpriced := make(map[string]bool)

	// Stable iteration keeps cycle reports deterministic.
	roots := make([]string, 0, len(partCounts))
	for id := range partCounts {
		roots = append(roots, id)
	}
	sort.Strings(roots)

	for _, id := range roots {
		qty := float64(partCounts[id])
		if qty == 0 {
			continue
		}
		if err := db.expand(id, qty, result); err != nil {
			return nil, err
		}
		entry, ok := db.Block(id)
		if !ok {
			unpriced[id] = true
			continue
		}
		result.TotalPCU += entry.PCU * partCounts[id]
		result.TotalMass += entry.Mass * qty
	}

	for id := range unpriced {
		result.Unpriced = append(result.Unpriced, id)
	}
	sort.Strings(result.Unpriced)
	return result, nil
}

// frame is one step of the explicit decomposition stack. exit frames pop the
// identifier from the current path when all its children are done.
type frame struct {
	id   string
	qty  float64
	tier int
	exit bool
}

// expand walks the decomposition of one root part iteratively, accumulating
// quantities per tier. The recursion path is tracked explicitly so cycles
// are detected before they can loop.
func (db *DB) expand(root string, qty float64, result *Decomposition) error {
	stack := []frame{{id: root, qty: qty}}
	onPath := make(map[string]bool)
	var path []string

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			delete(onPath, f.id)
			path = path[:len(path)-1]
			continue
		}

		if onPath[f.id] {
			return &CyclicCostModelError{Cycle: cycleFrom(path, f.id)}
		}

		for len(result.Tiers) <= f.tier {
			result.Tiers = append(result.Tiers, map[string]float64{})
		}
		result.Tiers[f.tier][f.id] += f.qty

		subs := db.subResources(f.id)
		if len(subs) == 0 {
			continue
		}

		onPath[f.id] = true
		path = append(path, f.id)
		stack = append(stack, frame{id: f.id, exit: true})

		// Sorted push keeps traversal order deterministic.
		ids := make([]string, 0, len(subs))
		for id := range subs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for i := len(ids) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				id:   ids[i],
				qty:  f.qty * subs[ids[i]],
				tier: f.tier + 1,
			})
		}
	}
	return nil
}

// cycleFrom extracts the loop portion of the path, closed with the repeated
// identifier.
func cycleFrom(path []string, repeat string) []string {
	for i, id := range path {
		if id == repeat {
			cycle := append([]string(nil), path[i:]...)
			return append(cycle, repeat)
		}
	}
	return []string{repeat, repeat}
}
