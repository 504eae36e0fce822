// Package costgraph renders a blueprint's resource decomposition as a
// directed graph: blocks at the top, then components, ingots, and ores,
// with edge labels carrying quantities.
//
// # Usage
//
// Convert a decomposition to DOT format, then render to SVG:
//
//	dot := costgraph.ToDOT(db, doc.PartCounts(), costgraph.Options{})
//	svg, err := costgraph.RenderSVG(dot)
package costgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/blockswap/blockswap/pkg/costdb"
)

// Options configures decomposition graph rendering.
type Options struct {
	// Quantities includes per-edge quantities in edge labels.
	Quantities bool

	// MaxNodes truncates very large graphs. Zero means unbounded.
	MaxNodes int
}

// tierColors fills nodes by how refined the resource is.
var tierColors = []string{"lightsteelblue", "khaki", "lightsalmon", "lightgrey"}

// ToDOT converts a part inventory into Graphviz DOT source following every
// resource down to raw ores. The resulting DOT string can be rendered
// using [RenderSVG] or [RenderPNG].
func ToDOT(db *costdb.DB, partCounts map[string]int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph resources {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	roots := make([]string, 0, len(partCounts))
	for id := range partCounts {
		roots = append(roots, id)
	}
	sort.Strings(roots)

	tier := make(map[string]int, len(roots))
	queue := make([]string, 0, len(roots))
	for _, id := range roots {
		tier[id] = 0
		queue = append(queue, id)
	}

	type edge struct {
		from, to string
		qty      float64
	}
	var edges []edge

	// Breadth-first over the decomposition; tiers follow discovery depth.
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if opts.MaxNodes > 0 && len(tier) >= opts.MaxNodes {
			break
		}
		children := db.Resources(id)
		ids := make([]string, 0, len(children))
		for child := range children {
			ids = append(ids, child)
		}
		sort.Strings(ids)
		for _, child := range ids {
			edges = append(edges, edge{from: id, to: child, qty: children[child]})
			if _, seen := tier[child]; !seen {
				tier[child] = tier[id] + 1
				queue = append(queue, child)
			}
		}
	}

	nodes := make([]string, 0, len(tier))
	for id := range tier {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	for _, id := range nodes {
		color := tierColors[len(tierColors)-1]
		if tier[id] < len(tierColors) {
			color = tierColors[tier[id]]
		}
		label := id
		if qty, ok := partCounts[id]; ok && qty > 1 {
			label = fmt.Sprintf("%s x%d", id, qty)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%s];\n", id, label, color)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if opts.Quantities {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=10];\n", e.from, e.to, trimQty(e.qty))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func trimQty(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the outer svg element so the graph scales
// cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
