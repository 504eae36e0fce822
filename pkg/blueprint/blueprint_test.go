package blueprint

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blockswap/blockswap/pkg/errors"
)

const sampleSBC = `<?xml version="1.0"?>
<Definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <ShipBlueprints>
    <ShipBlueprint>
      <Id Type="MyObjectBuilder_ShipBlueprintDefinition" Subtype="TestShip" />
      <DisplayName>Test Ship</DisplayName>
      <CubeGrids>
        <CubeGrid>
          <GridSizeEnum>Large</GridSizeEnum>
          <CubeBlocks>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">
              <SubtypeName>LargeBlockArmorBlock</SubtypeName>
              <Min x="0" y="0" z="0" />
            </MyObjectBuilder_CubeBlock>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">
              <SubtypeName>LargeBlockArmorBlock</SubtypeName>
              <Min x="1" y="0" z="0" />
            </MyObjectBuilder_CubeBlock>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Thrust">
              <SubtypeName>LargeBlockLargeThrust</SubtypeName>
              <Min x="2" y="0" z="0" />
              <BlockOrientation Forward="Backward" Up="Up" />
            </MyObjectBuilder_CubeBlock>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Cockpit">
              <SubtypeId>LargeBlockCockpit</SubtypeId>
              <Min x="3" y="0" z="0" />
            </MyObjectBuilder_CubeBlock>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">
              <SubtypeName></SubtypeName>
              <Min x="4" y="0" z="0" />
            </MyObjectBuilder_CubeBlock>
          </CubeBlocks>
        </CubeGrid>
      </CubeGrids>
    </ShipBlueprint>
  </ShipBlueprints>
</Definitions>
`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := (&SBC{}).Parse("TestShip", []byte(sampleSBC))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func TestParseSBC(t *testing.T) {
	doc := parseSample(t)

	if doc.GridSize != "Large" {
		t.Errorf("GridSize = %q, want Large", doc.GridSize)
	}
	if doc.DisplayName != "Test Ship" {
		t.Errorf("DisplayName = %q, want Test Ship", doc.DisplayName)
	}
	// The block with an empty SubtypeName carries no identifier.
	if len(doc.Parts) != 4 {
		t.Fatalf("len(Parts) = %d, want 4", len(doc.Parts))
	}

	counts := doc.PartCounts()
	if counts["LargeBlockArmorBlock"] != 2 {
		t.Errorf("armor count = %d, want 2", counts["LargeBlockArmorBlock"])
	}
	if counts["LargeBlockCockpit"] != 1 {
		t.Errorf("cockpit count = %d, want 1", counts["LargeBlockCockpit"])
	}

	thrust := doc.Parts[2]
	if thrust.TypeAttr != "MyObjectBuilder_Thrust" {
		t.Errorf("TypeAttr = %q, want MyObjectBuilder_Thrust", thrust.TypeAttr)
	}
	if thrust.Forward != "Backward" {
		t.Errorf("Forward = %q, want Backward", thrust.Forward)
	}
}

func TestParseOffsetsAreExact(t *testing.T) {
	doc := parseSample(t)
	for i, p := range doc.Parts {
		got := string(doc.Raw[p.Start:p.End])
		if got != p.Subtype {
			t.Errorf("part %d: Raw[%d:%d] = %q, want %q", i, p.Start, p.End, got, p.Subtype)
		}
	}
}

func TestParseLegacySubtypeID(t *testing.T) {
	doc := parseSample(t)
	if doc.Parts[3].Subtype != "LargeBlockCockpit" {
		t.Errorf("legacy SubtypeId part = %q, want LargeBlockCockpit", doc.Parts[3].Subtype)
	}
}

func TestParseMalformedXML(t *testing.T) {
	if _, err := (&SBC{}).Parse("bad", []byte("<Definitions><CubeBlocks>")); err == nil {
		t.Fatal("Parse() of truncated XML succeeded, want error")
	}
}

func TestSubtypes(t *testing.T) {
	doc := parseSample(t)
	want := []string{"LargeBlockArmorBlock", "LargeBlockLargeThrust", "LargeBlockCockpit"}
	got := doc.Subtypes()
	if len(got) != len(want) {
		t.Fatalf("Subtypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Subtypes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRewrite(t *testing.T) {
	doc := parseSample(t)
	original := append([]byte(nil), doc.Raw...)

	// Replace both armor occurrences with a longer identifier.
	repl := map[int]string{}
	for i, p := range doc.Parts {
		if p.Subtype == "LargeBlockArmorBlock" {
			repl[i] = "LargeHeavyBlockArmorBlock"
		}
	}
	out := doc.Rewrite(repl)

	if !bytes.Equal(doc.Raw, original) {
		t.Fatal("Rewrite() mutated the receiver")
	}
	if got := out.PartCounts()["LargeHeavyBlockArmorBlock"]; got != 2 {
		t.Errorf("rewritten armor count = %d, want 2", got)
	}
	if bytes.Contains(out.Raw, []byte(">LargeBlockArmorBlock<")) {
		t.Error("rewritten document still contains the source identifier")
	}

	// Offsets in the new document must track the shifted content.
	for i, p := range out.Parts {
		if got := string(out.Raw[p.Start:p.End]); got != p.Subtype {
			t.Errorf("part %d: offsets stale after rewrite: %q != %q", i, got, p.Subtype)
		}
	}

	// Everything outside the identifiers is untouched.
	want := strings.ReplaceAll(string(original),
		">LargeBlockArmorBlock<", ">LargeHeavyBlockArmorBlock<")
	if string(out.Raw) != want {
		t.Error("Rewrite() changed bytes outside the replaced identifiers")
	}
}

func TestRewriteEmpty(t *testing.T) {
	doc := parseSample(t)
	out := doc.Rewrite(nil)
	if !bytes.Equal(out.Raw, doc.Raw) {
		t.Error("Rewrite(nil) changed document bytes")
	}
	if &out.Raw[0] == &doc.Raw[0] {
		t.Error("Rewrite(nil) shares the raw buffer with the receiver")
	}
}

func TestInsertBlock(t *testing.T) {
	doc := parseSample(t)
	before := len(doc.Parts)

	out, err := doc.InsertBlock("MyObjectBuilder_BatteryBlock", "LargeBlockBatteryBlock")
	if err != nil {
		t.Fatalf("InsertBlock() error: %v", err)
	}
	if len(out.Parts) != before+1 {
		t.Errorf("len(Parts) = %d, want %d", len(out.Parts), before+1)
	}
	if out.PartCounts()["LargeBlockBatteryBlock"] != 1 {
		t.Error("inserted block not found in part counts")
	}
	if out.GridSize != doc.GridSize {
		t.Errorf("GridSize = %q, want %q", out.GridSize, doc.GridSize)
	}
}

func TestInsertBlockWithoutCubeBlocks(t *testing.T) {
	doc, err := (&SBC{}).Parse("empty", []byte(`<Definitions></Definitions>`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err := doc.InsertBlock("MyObjectBuilder_Cockpit", "LargeBlockCockpitSeat"); err == nil {
		t.Fatal("InsertBlock() without CubeBlocks succeeded, want error")
	}
}

func TestDetect(t *testing.T) {
	if _, err := Detect("bp.sbc"); err != nil {
		t.Errorf("Detect(bp.sbc) error: %v", err)
	}
	if _, err := Detect("BP.SBC"); err != nil {
		t.Errorf("Detect(BP.SBC) error: %v", err)
	}
	_, err := Detect("notes.txt")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Detect(notes.txt) code = %v, want INVALID_FORMAT", errors.CodeOf(err))
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	bpDir := filepath.Join(dir, "MyShip")
	if err := os.MkdirAll(bpDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bpDir, "bp.sbc"), []byte(sampleSBC), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(bpDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Name != "MyShip" {
		t.Errorf("Name = %q, want MyShip", doc.Name)
	}
	if len(doc.Parts) == 0 {
		t.Error("Load() returned no parts")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, errors.ErrCodeBlueprintMissing) {
		t.Errorf("Load() code = %v, want BLUEPRINT_NOT_FOUND", errors.CodeOf(err))
	}
}

func TestParseExtensionlessFallsBack(t *testing.T) {
	doc, err := Parse("upload", []byte(sampleSBC))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(doc.Parts) != 4 {
		t.Errorf("len(Parts) = %d, want 4", len(doc.Parts))
	}
}

func TestParseRawIsCopy(t *testing.T) {
	data := []byte(sampleSBC)
	doc, err := (&SBC{}).Parse("TestShip", data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !bytes.Equal(doc.Raw, []byte(sampleSBC)) {
		t.Fatal("Raw should hold the parsed input")
	}

	// Mutating the caller's buffer must not reach the document.
	data[0] = '!'
	if doc.Raw[0] != '<' {
		t.Error("Raw should be independent of the input slice")
	}
}

const nestedSubtypeSBC = `<?xml version="1.0"?>
<Definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <ShipBlueprints>
    <ShipBlueprint>
      <CubeGrids>
        <CubeGrid>
          <GridSizeEnum>Large</GridSizeEnum>
          <CubeBlocks>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">
              <SubtypeName>LargeBlockArmorBlock</SubtypeName>
              <ConstructionStockpile>
                <Items>
                  <Item>
                    <Amount>10</Amount>
                    <PhysicalContent>
                      <SubtypeName>SteelPlate</SubtypeName>
                    </PhysicalContent>
                  </Item>
                </Items>
              </ConstructionStockpile>
            </MyObjectBuilder_CubeBlock>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_Cockpit">
              <SubtypeName>LargeBlockCockpitSeat</SubtypeName>
              <Toolbar>
                <Slots>
                  <Slot>
                    <Data>
                      <SubtypeName>HandDrill</SubtypeName>
                      <BlockOrientation Forward="Down" Up="Up" />
                    </Data>
                  </Slot>
                </Slots>
              </Toolbar>
              <BlockOrientation Forward="Backward" Up="Up" />
            </MyObjectBuilder_CubeBlock>
          </CubeBlocks>
        </CubeGrid>
      </CubeGrids>
    </ShipBlueprint>
  </ShipBlueprints>
</Definitions>
`

func TestParseNestedSubtypeNames(t *testing.T) {
	doc, err := (&SBC{}).Parse("Nested", []byte(nestedSubtypeSBC))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// Stockpile and toolbar identifiers belong to contained items, not to
	// the blocks themselves.
	if len(doc.Parts) != 2 {
		t.Fatalf("len(Parts) = %d, want 2 (got %v)", len(doc.Parts), doc.Subtypes())
	}
	if doc.Parts[0].Subtype != "LargeBlockArmorBlock" {
		t.Errorf("Parts[0].Subtype = %q, want LargeBlockArmorBlock", doc.Parts[0].Subtype)
	}
	if doc.Parts[1].Subtype != "LargeBlockCockpitSeat" {
		t.Errorf("Parts[1].Subtype = %q, want LargeBlockCockpitSeat", doc.Parts[1].Subtype)
	}
	if doc.Parts[1].Forward != "Backward" {
		t.Errorf("Parts[1].Forward = %q, want the block's own orientation", doc.Parts[1].Forward)
	}
}

const twoGridSBC = `<?xml version="1.0"?>
<Definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <ShipBlueprints>
    <ShipBlueprint>
      <CubeGrids>
        <CubeGrid>
          <GridSizeEnum>Large</GridSizeEnum>
          <CubeBlocks>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">
              <SubtypeName>LargeBlockArmorBlock</SubtypeName>
            </MyObjectBuilder_CubeBlock>
          </CubeBlocks>
        </CubeGrid>
        <CubeGrid>
          <GridSizeEnum>Large</GridSizeEnum>
          <CubeBlocks>
            <MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">
              <SubtypeName>LargeBlockArmorSlope</SubtypeName>
            </MyObjectBuilder_CubeBlock>
          </CubeBlocks>
        </CubeGrid>
      </CubeGrids>
    </ShipBlueprint>
  </ShipBlueprints>
</Definitions>
`

func TestRewriteThenInsertBlockMultiGrid(t *testing.T) {
	doc, err := (&SBC{}).Parse("TwoGrids", []byte(twoGridSBC))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(doc.Parts) != 2 {
		t.Fatalf("len(Parts) = %d, want 2", len(doc.Parts))
	}

	// Grow identifiers on both sides of the first CubeBlocks close tag.
	rewritten := doc.Rewrite(map[int]string{
		0: "LargeHeavyBlockArmorBlock",
		1: "LargeHeavyBlockArmorSlope",
	})

	inserted, err := rewritten.InsertBlock("MyObjectBuilder_Cockpit", "LargeBlockCockpitSeat")
	if err != nil {
		t.Fatalf("InsertBlock() error: %v", err)
	}

	// The inserted block lands in the first grid, between the two originals.
	want := []string{"LargeHeavyBlockArmorBlock", "LargeBlockCockpitSeat", "LargeHeavyBlockArmorSlope"}
	if len(inserted.Parts) != len(want) {
		t.Fatalf("len(Parts) = %d, want %d", len(inserted.Parts), len(want))
	}
	for i, w := range want {
		if inserted.Parts[i].Subtype != w {
			t.Errorf("Parts[%d].Subtype = %q, want %q", i, inserted.Parts[i].Subtype, w)
		}
	}
	for _, p := range inserted.Parts {
		if got := string(inserted.Raw[p.Start:p.End]); got != p.Subtype {
			t.Errorf("Raw[%d:%d] = %q, want %q", p.Start, p.End, got, p.Subtype)
		}
	}
}

func TestInsertBlockAfterRewriteSingleGrid(t *testing.T) {
	doc := parseSample(t)

	rewritten := doc.Rewrite(map[int]string{0: "LargeHeavyBlockArmorBlock"})
	inserted, err := rewritten.InsertBlock("MyObjectBuilder_BatteryBlock", "LargeBlockBatteryBlock")
	if err != nil {
		t.Fatalf("InsertBlock() error: %v", err)
	}
	if got := inserted.PartCounts()["LargeBlockBatteryBlock"]; got != 1 {
		t.Errorf("inserted block count = %d, want 1", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	doc := parseSample(t)
	path := filepath.Join(t.TempDir(), "out", "bp.sbc")
	if err := Save(doc, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, doc.Raw) {
		t.Error("saved bytes differ from document bytes")
	}
}
