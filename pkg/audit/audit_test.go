package audit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/errors"
	"github.com/blockswap/blockswap/pkg/mapping"
)

// block is one cube block for buildDoc: subtype plus optional Forward
// orientation.
type block struct {
	subtype string
	forward string
}

func buildDoc(t *testing.T, gridSize string, blocks ...block) *blueprint.Document {
	t.Helper()
	var sb strings.Builder
	fmt.Fprintf(&sb, `<Definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`+
		`<CubeGrids><CubeGrid><GridSizeEnum>%s</GridSizeEnum><CubeBlocks>`, gridSize)
	for _, b := range blocks {
		sb.WriteString(`<MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">`)
		fmt.Fprintf(&sb, `<SubtypeName>%s</SubtypeName>`, b.subtype)
		if b.forward != "" {
			fmt.Fprintf(&sb, `<BlockOrientation Forward=%q Up="Up" />`, b.forward)
		}
		sb.WriteString(`</MyObjectBuilder_CubeBlock>`)
	}
	sb.WriteString(`</CubeBlocks></CubeGrid></CubeGrids></Definitions>`)

	doc, err := blueprint.Parse("audit-test", []byte(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func thrusters(n int, forward string) []block {
	out := make([]block, n)
	for i := range out {
		out[i] = block{subtype: "LargeBlockLargeThrust", forward: forward}
	}
	return out
}

// allKnown treats every subtype as priced so only the rule under test fires.
func allKnown(string) bool { return true }

func findingByRule(findings []Finding, ruleID string) *Finding {
	for i := range findings {
		if findings[i].RuleID == ruleID {
			return &findings[i]
		}
	}
	return nil
}

func TestAuditHealthyGrid(t *testing.T) {
	doc := buildDoc(t, "Large",
		block{subtype: "LargeBlockCockpitSeat"},
		block{subtype: "LargeBlockBatteryBlock"},
	)
	findings := New(allKnown, nil).Audit(doc)
	if len(findings) != 0 {
		t.Errorf("Audit() = %v, want no findings", findings)
	}
}

func TestAuditMissingControl(t *testing.T) {
	doc := buildDoc(t, "Large", block{subtype: "LargeBlockBatteryBlock"})
	findings := New(allKnown, nil).Audit(doc)

	f := findingByRule(findings, RuleMissingControl)
	if f == nil {
		t.Fatalf("Audit() = %v, want a %s finding", findings, RuleMissingControl)
	}
	if f.Severity != SeverityError {
		t.Errorf("severity = %q, want error", f.Severity)
	}
	if f.FixID != FixAddControlBlock {
		t.Errorf("FixID = %q, want %s", f.FixID, FixAddControlBlock)
	}
}

func TestAuditMissingPower(t *testing.T) {
	doc := buildDoc(t, "Large", block{subtype: "LargeBlockCockpitSeat"})
	findings := New(allKnown, nil).Audit(doc)

	f := findingByRule(findings, RuleMissingPower)
	if f == nil {
		t.Fatalf("Audit() = %v, want a %s finding", findings, RuleMissingPower)
	}
	if f.FixID != FixAddPowerBlock {
		t.Errorf("FixID = %q, want %s", f.FixID, FixAddPowerBlock)
	}
}

func TestAuditSeverityOrder(t *testing.T) {
	// Empty grid with an unpriced block: two errors and one info.
	doc := buildDoc(t, "Large", block{subtype: "ModdedGadget"})
	findings := New(nil, nil).Audit(doc)

	if len(findings) < 3 {
		t.Fatalf("Audit() returned %d findings, want at least 3", len(findings))
	}
	for i := 1; i < len(findings); i++ {
		if findings[i-1].Severity.Rank() > findings[i].Severity.Rank() {
			t.Errorf("findings out of severity order: %q after %q",
				findings[i].Severity, findings[i-1].Severity)
		}
	}
	if findings[len(findings)-1].RuleID != RuleUnknownSubtypes {
		t.Errorf("last finding = %s, want %s", findings[len(findings)-1].RuleID, RuleUnknownSubtypes)
	}
}

func TestAuditThrustersSkipsSmallCounts(t *testing.T) {
	blocks := append(thrusters(5, "Forward"),
		block{subtype: "LargeBlockCockpitSeat"},
		block{subtype: "LargeBlockBatteryBlock"})
	doc := buildDoc(t, "Large", blocks...)

	findings := New(allKnown, nil).Audit(doc)
	if f := findingByRule(findings, RuleThrusterImbalance); f != nil {
		t.Errorf("got imbalance finding for a 5-thruster grid: %v", f)
	}
}

func TestAuditThrusterMissingDirections(t *testing.T) {
	blocks := append(thrusters(6, "Backward"),
		block{subtype: "LargeBlockCockpitSeat"},
		block{subtype: "LargeBlockBatteryBlock"})
	doc := buildDoc(t, "Large", blocks...)

	findings := New(allKnown, nil).Audit(doc)
	f := findingByRule(findings, RuleThrusterImbalance)
	if f == nil {
		t.Fatal("want an imbalance finding for single-direction thrust")
	}
	if f.Severity != SeverityWarning {
		t.Errorf("severity = %q, want warning", f.Severity)
	}
	if len(f.Affected) != 5 {
		t.Errorf("Affected = %v, want the five uncovered directions", f.Affected)
	}
}

func TestAuditThrusterRatio(t *testing.T) {
	var blocks []block
	// One thruster per direction, then pile more onto Forward to push the
	// max/min ratio to 2.5.
	for _, dir := range []string{"Forward", "Backward", "Up", "Down", "Left", "Right"} {
		blocks = append(blocks, thrusters(1, dir)...)
	}
	blocks = append(blocks, thrusters(4, "Forward")...)
	blocks = append(blocks,
		block{subtype: "LargeBlockCockpitSeat"},
		block{subtype: "LargeBlockBatteryBlock"})

	doc := buildDoc(t, "Large", blocks...)
	findings := New(allKnown, nil).Audit(doc)
	f := findingByRule(findings, RuleThrusterImbalance)
	if f == nil {
		t.Fatal("want an imbalance finding for a 5:1 forward bias")
	}
	if !strings.Contains(f.Message, "unbalanced") {
		t.Errorf("Message = %q", f.Message)
	}
}

func TestAuditThrusterBalancedOK(t *testing.T) {
	var blocks []block
	for _, dir := range []string{"Forward", "Backward", "Up", "Down", "Left", "Right"} {
		blocks = append(blocks, thrusters(2, dir)...)
	}
	blocks = append(blocks,
		block{subtype: "LargeBlockCockpitSeat"},
		block{subtype: "LargeBlockBatteryBlock"})

	doc := buildDoc(t, "Large", blocks...)
	findings := New(allKnown, nil).Audit(doc)
	if f := findingByRule(findings, RuleThrusterImbalance); f != nil {
		t.Errorf("got imbalance finding for balanced thrust: %v", f)
	}
}

func TestAuditUnknownSkipsRuleMembers(t *testing.T) {
	doc := buildDoc(t, "Large",
		block{subtype: "LargeBlockCockpitSeat"},
		block{subtype: "LargeBlockBatteryBlock"},
		block{subtype: "LightBlock"},
		block{subtype: "HeavyBlock"},
		block{subtype: "TrulyUnknown"},
	)

	known := func(s string) bool {
		return s == "LargeBlockCockpitSeat" || s == "LargeBlockBatteryBlock"
	}
	rules := mapping.Lookup{"LightBlock": "HeavyBlock"}

	findings := New(known, rules).Audit(doc)
	f := findingByRule(findings, RuleUnknownSubtypes)
	if f == nil {
		t.Fatal("want an unknown-subtypes finding")
	}
	// Sources and targets of registered rules are not unknown.
	if len(f.Affected) != 1 || f.Affected[0] != "TrulyUnknown" {
		t.Errorf("Affected = %v, want [TrulyUnknown]", f.Affected)
	}
}

func TestApplyFixControl(t *testing.T) {
	doc := buildDoc(t, "Large", block{subtype: "LargeBlockBatteryBlock"})

	fixed, err := ApplyFix(doc, FixAddControlBlock)
	if err != nil {
		t.Fatalf("ApplyFix() error: %v", err)
	}
	if fixed.PartCounts()["LargeBlockCockpitSeat"] != 1 {
		t.Error("fix did not insert a large cockpit seat")
	}
	// The fixed document passes the control rule.
	findings := New(allKnown, nil).Audit(fixed)
	if f := findingByRule(findings, RuleMissingControl); f != nil {
		t.Errorf("control finding persists after fix: %v", f)
	}
}

func TestApplyFixRespectsGridSize(t *testing.T) {
	doc := buildDoc(t, "Small", block{subtype: "SmallBlockCockpit"})

	fixed, err := ApplyFix(doc, FixAddPowerBlock)
	if err != nil {
		t.Fatalf("ApplyFix() error: %v", err)
	}
	if fixed.PartCounts()["SmallBlockSmallBatteryBlock"] != 1 {
		t.Error("fix did not insert the small-grid battery variant")
	}
}

func TestApplyFixUnknown(t *testing.T) {
	doc := buildDoc(t, "Large", block{subtype: "LargeBlockCockpitSeat"})
	_, err := ApplyFix(doc, "paint_it_red")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ApplyFix() code = %v, want INVALID_INPUT", errors.CodeOf(err))
	}
}
