// Package render provides visualization rendering for cost reports.
//
// # Overview
//
// This package contains the rendering layer that turns component
// decomposition data into visual outputs.
//
// # Cost Graphs
//
// The [costgraph] subpackage renders a blueprint's component decomposition
// as a directed graph using Graphviz. Blocks appear at the top, intermediate
// components in the middle, and raw ingots and ores at the bottom.
//
//	dot := costgraph.ToDOT(db, counts, costgraph.Options{Quantities: true})
//	svg, err := costgraph.RenderSVG(dot)
package render
