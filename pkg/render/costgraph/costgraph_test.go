package costgraph

import (
	"strings"
	"testing"

	"github.com/blockswap/blockswap/pkg/costdb"
)

const testTable = `{
  "metadata": {"source": "test", "game_version": "1.0"},
  "component_to_ingot": {
    "SteelPlate": {"Iron": 21},
    "Construction": {"Iron": 8}
  },
  "ore_yields": {
    "Iron": 0.7
  },
  "blocks": {
    "LightBlock": {"category": "armor", "pcu": 1, "mass": 2520, "components": {"SteelPlate": 25}},
    "Frame": {"category": "utility", "pcu": 2, "mass": 100, "components": {"SteelPlate": 5, "Construction": 10}}
  }
}`

func testDB(t *testing.T) *costdb.DB {
	t.Helper()
	db, err := costdb.Parse([]byte(testTable), costdb.WithInference(false))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return db
}

func TestToDOT(t *testing.T) {
	db := testDB(t)

	dot := ToDOT(db, map[string]int{"LightBlock": 3}, Options{})

	if !strings.HasPrefix(dot, "digraph resources {") {
		t.Errorf("ToDOT() should start with digraph header, got %q", dot[:40])
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("ToDOT() should end with closing brace")
	}

	// Every tier of the decomposition appears as a node.
	for _, node := range []string{"LightBlock", "SteelPlate", "Iron", "Iron Ore"} {
		if !strings.Contains(dot, `"`+node+`"`) {
			t.Errorf("ToDOT() missing node %q", node)
		}
	}

	// Root quantity greater than one shows up in the label.
	if !strings.Contains(dot, "LightBlock x3") {
		t.Error("ToDOT() should label root node with its count")
	}

	// Edges follow the decomposition.
	if !strings.Contains(dot, `"LightBlock" -> "SteelPlate"`) {
		t.Error("ToDOT() missing block to component edge")
	}
	if !strings.Contains(dot, `"SteelPlate" -> "Iron"`) {
		t.Error("ToDOT() missing component to ingot edge")
	}
}

func TestToDOTQuantities(t *testing.T) {
	db := testDB(t)

	plain := ToDOT(db, map[string]int{"LightBlock": 1}, Options{})
	if strings.Contains(plain, "[label=\"21\"") {
		t.Error("edge labels should be absent without Quantities")
	}

	labeled := ToDOT(db, map[string]int{"LightBlock": 1}, Options{Quantities: true})
	if !strings.Contains(labeled, `"SteelPlate" -> "Iron" [label="21"`) {
		t.Errorf("edge label for SteelPlate -> Iron missing:\n%s", labeled)
	}
}

func TestToDOTMaxNodes(t *testing.T) {
	db := testDB(t)

	dot := ToDOT(db, map[string]int{"LightBlock": 1, "Frame": 1}, Options{MaxNodes: 2})

	// Truncation stops expansion beyond the first discovered nodes.
	if strings.Contains(dot, `"Iron Ore"`) {
		t.Error("ToDOT() should not expand past MaxNodes")
	}
}

func TestToDOTEmpty(t *testing.T) {
	db := testDB(t)

	dot := ToDOT(db, nil, Options{})
	if !strings.Contains(dot, "digraph resources") {
		t.Error("ToDOT() with no parts should still emit a valid graph")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() with no parts should have no edges")
	}
}

func TestTrimQty(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{21, "21"},
		{0.5, "0.50"},
		{1.25, "1.25"},
		{1000, "1000"},
	}
	for _, tt := range tests {
		if got := trimQty(tt.in); got != tt.want {
			t.Errorf("trimQty(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg width="8.5in" height="11in" viewBox="0.00 0.00 612.00 792.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := normalizeViewBox(svg)
	if !strings.Contains(string(out), `viewBox="0 0 612.00 792.00"`) {
		t.Errorf("normalizeViewBox() should rebase the viewBox origin, got %s", out)
	}
	if !strings.Contains(string(out), `width="612" height="792"`) {
		t.Errorf("normalizeViewBox() should set pixel dimensions, got %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	svg := []byte("<svg></svg>")
	out := normalizeViewBox(svg)
	if string(out) != "<svg></svg>" {
		t.Error("normalizeViewBox() should leave unmatched input untouched")
	}
}
