// Package scan discovers blueprints under a workshop directory and
// summarizes each one so pickers and list views stay cheap: scanning never
// loads more than one document into memory at a time.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/errors"
	"github.com/blockswap/blockswap/pkg/mapping"
)

// Info is a light-weight summary of one discovered blueprint.
type Info struct {
	Name             string `json:"name"`
	Path             string `json:"path"`
	GridSize         string `json:"grid_size"`
	BlockCount       int    `json:"block_count"`
	ConvertibleCount int    `json:"convertible_count"`
	ConvertedCount   int    `json:"converted_count"`
	HasDocument      bool   `json:"has_document"`
	ParseError       string `json:"parse_error,omitempty"`
}

// Converted reports whether the blueprint is itself the output of a
// previous run, judged by its folder name prefix.
func (i Info) Converted() bool {
	for _, prefix := range outputPrefixes {
		if strings.HasPrefix(i.Name, prefix) {
			return true
		}
	}
	return false
}

var outputPrefixes = []string{"HEAVYARMOR_", "LIGHTARMOR_", "CONVERTED_", "REVERSED_"}

// Scan walks the immediate children of dir and summarizes every blueprint
// folder. lookup counts convertible blocks; pass nil to skip that count.
// Folders without a parseable document still appear, flagged accordingly.
func Scan(ctx context.Context, dir string, lookup mapping.Lookup) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading blueprint directory %q", dir)
	}

	var out []Info
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		out = append(out, summarize(filepath.Join(dir, entry.Name()), lookup))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func summarize(path string, lookup mapping.Lookup) Info {
	info := Info{
		Name: filepath.Base(path),
		Path: path,
	}

	doc, err := blueprint.Load(path)
	if err != nil {
		if errors.CodeOf(err) != errors.ErrCodeBlueprintMissing {
			info.ParseError = err.Error()
		}
		return info
	}

	info.HasDocument = true
	info.GridSize = doc.GridSize
	info.BlockCount = len(doc.Parts)
	for _, part := range doc.Parts {
		if _, ok := lookup[part.Subtype]; ok {
			info.ConvertibleCount++
		}
		if _, ok := invertedHit(lookup, part.Subtype); ok {
			info.ConvertedCount++
		}
	}
	return info
}

// invertedHit reports whether id appears as a rule target, meaning the
// block is already in its substituted form.
func invertedHit(lookup mapping.Lookup, id string) (string, bool) {
	for source, target := range lookup {
		if target == id {
			return source, true
		}
	}
	return "", false
}

// Filter options for narrowing scan results.
type Filter struct {
	GridSize        string
	ConvertibleOnly bool
	SkipConverted   bool
}

// Apply returns the infos passing every set filter field.
func (f Filter) Apply(infos []Info) []Info {
	var out []Info
	for _, info := range infos {
		if f.GridSize != "" && !strings.EqualFold(info.GridSize, f.GridSize) {
			continue
		}
		if f.ConvertibleOnly && info.ConvertibleCount == 0 {
			continue
		}
		if f.SkipConverted && info.Converted() {
			continue
		}
		out = append(out, info)
	}
	return out
}
