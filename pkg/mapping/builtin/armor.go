package builtin

import "github.com/blockswap/blockswap/pkg/mapping"

// armorPairs maps every vanilla light armor subtype to its heavy variant.
var armorPairs = [][2]string{
	// Large grid, standard shapes
	{"LargeBlockArmorBlock", "LargeHeavyBlockArmorBlock"},
	{"LargeBlockArmorSlope", "LargeHeavyBlockArmorSlope"},
	{"LargeBlockArmorCorner", "LargeHeavyBlockArmorCorner"},
	{"LargeBlockArmorCornerInv", "LargeHeavyBlockArmorCornerInv"},
	// Round armor
	{"LargeRoundArmor_Slope", "LargeHeavyRoundArmor_Slope"},
	{"LargeRoundArmor_Corner", "LargeHeavyRoundArmor_Corner"},
	{"LargeRoundArmor_CornerInv", "LargeHeavyRoundArmor_CornerInv"},
	// 2x1 slopes and corners
	{"LargeBlockArmorSlope2Base", "LargeHeavyBlockArmorSlope2Base"},
	{"LargeBlockArmorSlope2Tip", "LargeHeavyBlockArmorSlope2Tip"},
	{"LargeBlockArmorCorner2Base", "LargeHeavyBlockArmorCorner2Base"},
	{"LargeBlockArmorCorner2Tip", "LargeHeavyBlockArmorCorner2Tip"},
	{"LargeBlockArmorInvCorner2Base", "LargeHeavyBlockArmorInvCorner2Base"},
	{"LargeBlockArmorInvCorner2Tip", "LargeHeavyBlockArmorInvCorner2Tip"},
	// Half blocks
	{"LargeHalfArmorBlock", "LargeHeavyHalfArmorBlock"},
	{"LargeHalfSlopeArmorBlock", "LargeHeavyHalfSlopeArmorBlock"},
	// Panels
	{"LargeArmorPanelLight", "LargeArmorPanelHeavy"},
	// Sloped corners
	{"LargeArmorSlopedCorner", "LargeHeavyArmorSlopedCorner"},
	{"LargeArmorSlopedCornerTip", "LargeHeavyArmorSlopedCornerTip"},
	{"LargeArmorSlopedCornerBase", "LargeHeavyArmorSlopedCornerBase"},
	// Large grid, extended shapes (Decorative / Warfare DLC)
	{"LargeBlockArmorHalfSlopeCorner", "LargeHeavyBlockArmorHalfSlopeCorner"},
	{"LargeBlockArmorHalfSlopeCornerInverted", "LargeHeavyBlockArmorHalfSlopeCornerInverted"},
	{"LargeBlockArmorHalfCorner", "LargeHeavyBlockArmorHalfCorner"},
	{"LargeBlockArmorHalfSlopedCorner", "LargeHeavyBlockArmorHalfSlopedCorner"},
	{"LargeBlockArmorHalfSlopedCornerBase", "LargeHeavyBlockArmorHalfSlopedCornerBase"},
	{"LargeBlockArmorSlopeTransition", "LargeHeavyBlockArmorSlopeTransition"},
	{"LargeBlockArmorSlopeTransitionBase", "LargeHeavyBlockArmorSlopeTransitionBase"},
	{"LargeBlockArmorSlopeTransitionTip", "LargeHeavyBlockArmorSlopeTransitionTip"},
	{"LargeBlockArmorSlopeTransitionMirrored", "LargeHeavyBlockArmorSlopeTransitionMirrored"},
	{"LargeBlockArmorSlopeTransitionBaseMirrored", "LargeHeavyBlockArmorSlopeTransitionBaseMirrored"},
	{"LargeBlockArmorSlopeTransitionTipMirrored", "LargeHeavyBlockArmorSlopeTransitionTipMirrored"},
	{"LargeArmorQuarterBlock", "LargeHeavyArmorQuarterBlock"},
	{"LargeBlockArmorRoundedSlope", "LargeHeavyBlockArmorRoundedSlope"},
	{"LargeBlockArmorRoundedCorner", "LargeHeavyBlockArmorRoundedCorner"},
	{"LargeArmorPanelLightSlope", "LargeArmorPanelHeavySlope"},
	{"LargeArmorPanelLightHalfSlope", "LargeArmorPanelHeavyHalfSlope"},
	// Small grid, standard shapes
	{"SmallBlockArmorBlock", "SmallHeavyBlockArmorBlock"},
	{"SmallBlockArmorSlope", "SmallHeavyBlockArmorSlope"},
	{"SmallBlockArmorCorner", "SmallHeavyBlockArmorCorner"},
	{"SmallBlockArmorCornerInv", "SmallHeavyBlockArmorCornerInv"},
	// Round armor
	{"SmallRoundArmor_Slope", "SmallHeavyRoundArmor_Slope"},
	{"SmallRoundArmor_Corner", "SmallHeavyRoundArmor_Corner"},
	{"SmallRoundArmor_CornerInv", "SmallHeavyRoundArmor_CornerInv"},
	// 2x1 slopes and corners
	{"SmallBlockArmorSlope2Base", "SmallHeavyBlockArmorSlope2Base"},
	{"SmallBlockArmorSlope2Tip", "SmallHeavyBlockArmorSlope2Tip"},
	{"SmallBlockArmorCorner2Base", "SmallHeavyBlockArmorCorner2Base"},
	{"SmallBlockArmorCorner2Tip", "SmallHeavyBlockArmorCorner2Tip"},
	{"SmallBlockArmorInvCorner2Base", "SmallHeavyBlockArmorInvCorner2Base"},
	{"SmallBlockArmorInvCorner2Tip", "SmallHeavyBlockArmorInvCorner2Tip"},
	// Half blocks
	{"SmallHalfArmorBlock", "SmallHeavyHalfArmorBlock"},
	{"SmallHalfSlopeArmorBlock", "SmallHeavyHalfSlopeArmorBlock"},
	// Panels
	{"SmallArmorPanelLight", "SmallArmorPanelHeavy"},
	// Sloped corners
	{"SmallArmorSlopedCorner", "SmallHeavyArmorSlopedCorner"},
	{"SmallArmorSlopedCornerTip", "SmallHeavyArmorSlopedCornerTip"},
	{"SmallArmorSlopedCornerBase", "SmallHeavyArmorSlopedCornerBase"},
	// Small grid, extended shapes (Decorative / Warfare DLC)
	{"SmallBlockArmorHalfSlopeCorner", "SmallHeavyBlockArmorHalfSlopeCorner"},
	{"SmallBlockArmorHalfSlopeCornerInverted", "SmallHeavyBlockArmorHalfSlopeCornerInverted"},
	{"SmallBlockArmorHalfCorner", "SmallHeavyBlockArmorHalfCorner"},
	{"SmallBlockArmorHalfSlopedCorner", "SmallHeavyBlockArmorHalfSlopedCorner"},
	{"SmallBlockArmorHalfSlopedCornerBase", "SmallHeavyBlockArmorHalfSlopedCornerBase"},
	{"SmallBlockArmorSlopeTransition", "SmallHeavyBlockArmorSlopeTransition"},
	{"SmallBlockArmorSlopeTransitionBase", "SmallHeavyBlockArmorSlopeTransitionBase"},
	{"SmallBlockArmorSlopeTransitionTip", "SmallHeavyBlockArmorSlopeTransitionTip"},
	{"SmallBlockArmorSlopeTransitionMirrored", "SmallHeavyBlockArmorSlopeTransitionMirrored"},
	{"SmallBlockArmorSlopeTransitionBaseMirrored", "SmallHeavyBlockArmorSlopeTransitionBaseMirrored"},
	{"SmallBlockArmorSlopeTransitionTipMirrored", "SmallHeavyBlockArmorSlopeTransitionTipMirrored"},
	{"SmallArmorQuarterBlock", "SmallHeavyArmorQuarterBlock"},
	{"SmallBlockArmorRoundedSlope", "SmallHeavyBlockArmorRoundedSlope"},
	{"SmallBlockArmorRoundedCorner", "SmallHeavyBlockArmorRoundedCorner"},
	{"SmallArmorPanelLightSlope", "SmallArmorPanelHeavySlope"},
	{"SmallArmorPanelLightHalfSlope", "SmallArmorPanelHeavyHalfSlope"},
}

// Armor returns the light→heavy armor conversion category.
// This is the only category enabled by default.
func Armor() mapping.Category {
	return mapping.Category{
		Name:             "armor",
		Description:      "Vanilla armor conversions between light and heavy variants.",
		Rules:            pairs(armorPairs),
		GridSizes:        []string{"Large", "Small"},
		Origin:           "built-in",
		EnabledByDefault: true,
		Tags:             []string{"armor"},
	}
}
