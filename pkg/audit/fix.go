package audit

import (
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/errors"
)

type fixSpec struct {
	typeAttr string
	large    string
	small    string
}

var fixes = map[string]fixSpec{
	FixAddControlBlock: {
		typeAttr: "MyObjectBuilder_Cockpit",
		large:    "LargeBlockCockpitSeat",
		small:    "SmallBlockCockpit",
	},
	FixAddPowerBlock: {
		typeAttr: "MyObjectBuilder_BatteryBlock",
		large:    "LargeBlockBatteryBlock",
		small:    "SmallBlockSmallBatteryBlock",
	},
}

// ApplyFix returns a copy of doc with the block named by fixID inserted,
// choosing the variant matching the document's grid size. Unknown fix
// identifiers are rejected.
func ApplyFix(doc *blueprint.Document, fixID string) (*blueprint.Document, error) {
	spec, ok := fixes[fixID]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown fix %q", fixID)
	}
	subtype := spec.large
	if doc.GridSize == "Small" {
		subtype = spec.small
	}
	return doc.InsertBlock(spec.typeAttr, subtype)
}
