package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/blockswap/blockswap/pkg/mapping"
)

const docTemplate = `<Definitions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
	`<CubeGrids><CubeGrid><GridSizeEnum>%s</GridSizeEnum><CubeBlocks>%s</CubeBlocks></CubeGrid></CubeGrids></Definitions>`

func cubeBlock(subtype string) string {
	return fmt.Sprintf(`<MyObjectBuilder_CubeBlock xsi:type="MyObjectBuilder_CubeBlock">`+
		`<SubtypeName>%s</SubtypeName></MyObjectBuilder_CubeBlock>`, subtype)
}

// writeBlueprint creates a blueprint folder with a bp.sbc inside dir.
func writeBlueprint(t *testing.T, dir, name, gridSize string, subtypes ...string) {
	t.Helper()
	folder := filepath.Join(dir, name)
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	var blocks string
	for _, s := range subtypes {
		blocks += cubeBlock(s)
	}
	content := fmt.Sprintf(docTemplate, gridSize, blocks)
	if err := os.WriteFile(filepath.Join(folder, "bp.sbc"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeBlueprint(t, dir, "Alpha", "Large", "LightBlock", "LightBlock", "Other")
	writeBlueprint(t, dir, "Beta", "Small", "Other")
	writeBlueprint(t, dir, "HEAVYARMOR_Alpha", "Large", "HeavyBlock")
	if err := os.MkdirAll(filepath.Join(dir, "Empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	lookup := mapping.Lookup{"LightBlock": "HeavyBlock"}
	infos, err := Scan(context.Background(), dir, lookup)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(infos) != 4 {
		t.Fatalf("Scan() = %d entries, want 4", len(infos))
	}

	// Sorted by name.
	if infos[0].Name != "Alpha" || infos[3].Name != "HEAVYARMOR_Alpha" {
		t.Errorf("order = %v", []string{infos[0].Name, infos[1].Name, infos[2].Name, infos[3].Name})
	}

	alpha := infos[0]
	if !alpha.HasDocument || alpha.BlockCount != 3 {
		t.Errorf("Alpha = %+v", alpha)
	}
	if alpha.ConvertibleCount != 2 {
		t.Errorf("Alpha.ConvertibleCount = %d, want 2", alpha.ConvertibleCount)
	}
	if alpha.GridSize != "Large" {
		t.Errorf("Alpha.GridSize = %q", alpha.GridSize)
	}

	heavy := infos[3]
	if !heavy.Converted() {
		t.Error("HEAVYARMOR_ folder not recognized as converted output")
	}
	if heavy.ConvertedCount != 1 {
		t.Errorf("ConvertedCount = %d, want 1", heavy.ConvertedCount)
	}

	empty := infos[2]
	if empty.Name != "Empty" || empty.HasDocument {
		t.Errorf("Empty = %+v", empty)
	}
	if empty.ParseError != "" {
		t.Errorf("missing bp.sbc should not report a parse error, got %q", empty.ParseError)
	}
}

func TestScanReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "Broken")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "bp.sbc"), []byte("<oops"), 0644); err != nil {
		t.Fatal(err)
	}

	infos, err := Scan(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("Scan() = %d entries, want 1", len(infos))
	}
	if infos[0].HasDocument || infos[0].ParseError == "" {
		t.Errorf("Broken = %+v, want a parse error", infos[0])
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Fatal("Scan() of a missing directory succeeded, want error")
	}
}

func TestScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeBlueprint(t, dir, "Alpha", "Large", "LightBlock")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, dir, nil); err != context.Canceled {
		t.Errorf("Scan() with cancelled context = %v, want context.Canceled", err)
	}
}

func TestFilterApply(t *testing.T) {
	infos := []Info{
		{Name: "Alpha", GridSize: "Large", ConvertibleCount: 2},
		{Name: "Beta", GridSize: "Small", ConvertibleCount: 0},
		{Name: "CONVERTED_Alpha", GridSize: "Large", ConvertibleCount: 1},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"none", Filter{}, []string{"Alpha", "Beta", "CONVERTED_Alpha"}},
		{"grid size", Filter{GridSize: "large"}, []string{"Alpha", "CONVERTED_Alpha"}},
		{"convertible", Filter{ConvertibleOnly: true}, []string{"Alpha", "CONVERTED_Alpha"}},
		{"skip converted", Filter{SkipConverted: true}, []string{"Alpha", "Beta"}},
		{"combined", Filter{GridSize: "Large", SkipConverted: true}, []string{"Alpha"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(infos)
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() = %d entries, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].Name != tt.want[i] {
					t.Errorf("Apply()[%d] = %q, want %q", i, got[i].Name, tt.want[i])
				}
			}
		})
	}
}

func TestConvertedPrefixes(t *testing.T) {
	for _, name := range []string{"HEAVYARMOR_X", "LIGHTARMOR_X", "CONVERTED_X", "REVERSED_X"} {
		if !(Info{Name: name}).Converted() {
			t.Errorf("Converted() = false for %q", name)
		}
	}
	if (Info{Name: "Plain"}).Converted() {
		t.Error("Converted() = true for an unprefixed name")
	}
}
