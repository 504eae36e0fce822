package builtin

import "github.com/blockswap/blockswap/pkg/mapping"

// Thrusters returns tier upgrades for ion, hydrogen, and atmospheric
// thrusters.
func Thrusters() mapping.Category {
	return mapping.Category{
		Name:        "thrusters",
		Description: "Tier upgrades for ion, hydrogen, and atmospheric thrusters.",
		Rules: pairs([][2]string{
			// Ion
			{"LargeBlockSmallThrust", "LargeBlockLargeThrust"},
			{"SmallBlockSmallThrust", "SmallBlockLargeThrust"},
			// Hydrogen
			{"LargeBlockSmallHydrogenThrust", "LargeBlockLargeHydrogenThrust"},
			{"SmallBlockSmallHydrogenThrust", "SmallBlockLargeHydrogenThrust"},
			// Atmospheric
			{"LargeBlockSmallAtmosphericThrust", "LargeBlockLargeAtmosphericThrust"},
			{"SmallBlockSmallAtmosphericThrust", "SmallBlockLargeAtmosphericThrust"},
		}),
		GridSizes: []string{"Large", "Small"},
		Origin:    "built-in",
		Tags:      []string{"propulsion", "upgrade"},
	}
}

// Weapons returns vanilla weapon tier upgrades.
func Weapons() mapping.Category {
	return mapping.Category{
		Name:        "weapons",
		Description: "Vanilla weapon tier upgrades (gatling/interior/rocket families).",
		Rules: pairs([][2]string{
			{"LargeGatlingTurret", "LargeAutocannonTurret"},
			{"LargeInteriorTurret", "LargeCalibreTurret"},
			{"LargeMissileTurret", "LargeArtilleryTurret"},
			{"SmallGatlingGun", "SmallAutocannon"},
			{"SmallMissileLauncher", "SmallArtillery"},
		}),
		GridSizes: []string{"Large", "Small"},
		Origin:    "built-in",
		Tags:      []string{"combat", "upgrade"},
	}
}

// Functional returns upgrades for production, storage, and power-generation
// blocks.
func Functional() mapping.Category {
	return mapping.Category{
		Name:        "functional",
		Description: "Upgrades for production, storage, and power-generation blocks.",
		Rules: pairs([][2]string{
			{"BasicAssembler", "LargeAssembler"},
			{"BasicRefinery", "LargeRefinery"},
			{"LargeBlockSmallGenerator", "LargeBlockLargeGenerator"},
			{"SmallBlockSmallGenerator", "SmallBlockLargeGenerator"},
			{"LargeBlockSmallContainer", "LargeBlockLargeContainer"},
			{"SmallBlockSmallContainer", "SmallBlockLargeContainer"},
		}),
		GridSizes: []string{"Large", "Small"},
		Origin:    "built-in",
		Tags:      []string{"utility", "upgrade"},
	}
}
