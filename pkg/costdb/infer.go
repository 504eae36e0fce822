package costdb

import "strings"

// inferEntry derives a heuristic cost entry for common block families that
// lack explicit table entries (DLC armor shapes, modded thruster variants).
// The values mirror the vanilla baseline for the family.
func inferEntry(subtype string) (Entry, bool) {
	lowered := strings.ToLower(subtype)
	large := strings.HasPrefix(subtype, "Large")

	switch {
	case strings.Contains(lowered, "armor"):
		if strings.Contains(lowered, "heavy") {
			if large {
				return Entry{Category: "armor", PCU: 1, Mass: 15100, Components: map[string]float64{"SteelPlate": 150}}, true
			}
			return Entry{Category: "armor", Mass: 30, Components: map[string]float64{"SteelPlate": 5}}, true
		}
		if large {
			return Entry{Category: "armor", PCU: 1, Mass: 2520, Components: map[string]float64{"SteelPlate": 25}}, true
		}
		return Entry{Category: "armor", Mass: 10, Components: map[string]float64{"SteelPlate": 1}}, true

	case strings.Contains(lowered, "thrust"):
		return Entry{
			Category: "thrusters",
			PCU:      10,
			Mass:     1500,
			Components: map[string]float64{
				"SteelPlate":   40,
				"Construction": 20,
				"Motor":        20,
				"Thrust":       10,
			},
		}, true

	case strings.Contains(lowered, "reactor") || strings.Contains(lowered, "generator"):
		return Entry{
			Category: "power",
			PCU:      25,
			Mass:     2000,
			Components: map[string]float64{
				"SteelPlate":   40,
				"Construction": 20,
				"Reactor":      10,
			},
		}, true
	}

	return Entry{}, false
}
