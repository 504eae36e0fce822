package blueprint

import (
	"bytes"
	"fmt"
	"sort"
)

// PartRef is a located occurrence of a part identifier inside a document.
// Start and End are byte offsets into the document's raw buffer; the bytes
// in [Start, End) are exactly the identifier text.
type PartRef struct {
	// Subtype is the part identifier, trimmed of surrounding whitespace.
	Subtype string

	// Start and End delimit the identifier bytes within Document.Raw.
	Start int64
	End   int64

	// TypeAttr is the xsi:type of the enclosing block element, if present
	// (e.g. "MyObjectBuilder_Thrust").
	TypeAttr string

	// Forward is the block's orientation from its BlockOrientation element,
	// empty when the block carries none.
	Forward string
}

// Document is a parsed blueprint. It owns the original bytes and the located
// part entries. Documents are never mutated after parsing; Rewrite and
// InsertBlock return new documents.
type Document struct {
	// Name identifies the blueprint, typically the folder name.
	Name string

	// Raw is the original file content.
	Raw []byte

	// Parts lists every located part identifier in document order.
	Parts []PartRef

	// GridSize is the grid size of the first cube grid ("Large", "Small",
	// or "Unknown").
	GridSize string

	// DisplayName is the blueprint's internal display name, if present.
	DisplayName string

	// insertAt is the offset of the first CubeBlocks closing tag, used by
	// InsertBlock. Zero means no CubeBlocks section was found.
	insertAt int64
}

// PartCounts returns the number of occurrences of each part identifier.
func (d *Document) PartCounts() map[string]int {
	counts := make(map[string]int, len(d.Parts))
	for _, p := range d.Parts {
		counts[p.Subtype]++
	}
	return counts
}

// Subtypes returns the distinct part identifiers in first-seen order.
func (d *Document) Subtypes() []string {
	seen := make(map[string]bool, len(d.Parts))
	var out []string
	for _, p := range d.Parts {
		if !seen[p.Subtype] {
			seen[p.Subtype] = true
			out = append(out, p.Subtype)
		}
	}
	return out
}

// Rewrite returns a new document with the parts at the given indexes replaced
// by the supplied identifiers. Every other byte is copied verbatim. The
// receiver is left untouched.
func (d *Document) Rewrite(replacements map[int]string) *Document {
	if len(replacements) == 0 {
		return d.clone()
	}

	var buf bytes.Buffer
	buf.Grow(len(d.Raw))

	newParts := make([]PartRef, len(d.Parts))
	var last int64
	var shift int64
	var insertShift int64

	for i, p := range d.Parts {
		buf.Write(d.Raw[last:p.Start])

		id := p.Subtype
		if repl, ok := replacements[i]; ok {
			id = repl
		}
		buf.WriteString(id)

		np := p
		np.Subtype = id
		np.Start = p.Start + shift
		np.End = np.Start + int64(len(id))
		newParts[i] = np

		shift += int64(len(id)) - (p.End - p.Start)
		// Only replacements before the insertion point move it.
		if p.End <= d.insertAt {
			insertShift = shift
		}
		last = p.End
	}
	buf.Write(d.Raw[last:])
	insertAt := d.insertAt
	if insertAt > 0 {
		insertAt += insertShift
	}

	return &Document{
		Name:        d.Name,
		Raw:         buf.Bytes(),
		Parts:       newParts,
		GridSize:    d.GridSize,
		DisplayName: d.DisplayName,
		insertAt:    insertAt,
	}
}

// InsertBlock returns a new document with a minimal cube block element of the
// given type and subtype appended to the first CubeBlocks section. Used to
// apply audit fixes such as adding a missing cockpit or battery.
func (d *Document) InsertBlock(typeAttr, subtype string) (*Document, error) {
	if d.insertAt <= 0 {
		return nil, fmt.Errorf("document %q has no CubeBlocks section", d.Name)
	}

	element := fmt.Sprintf(
		"<MyObjectBuilder_CubeBlock xsi:type=%q>"+
			"<SubtypeName>%s</SubtypeName>"+
			`<Min x="0" y="0" z="0" />`+
			`<BlockOrientation Forward="Forward" Up="Up" />`+
			"</MyObjectBuilder_CubeBlock>\n",
		typeAttr, subtype)

	var buf bytes.Buffer
	buf.Grow(len(d.Raw) + len(element))
	buf.Write(d.Raw[:d.insertAt])
	buf.WriteString(element)
	buf.Write(d.Raw[d.insertAt:])

	// Re-parse so the inserted part is tracked like any other.
	parsed, err := parseSBC(d.Name, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("reparse after insert: %w", err)
	}
	return parsed, nil
}

// clone returns a copy sharing no mutable state with the receiver.
func (d *Document) clone() *Document {
	raw := make([]byte, len(d.Raw))
	copy(raw, d.Raw)
	parts := make([]PartRef, len(d.Parts))
	copy(parts, d.Parts)
	return &Document{
		Name:        d.Name,
		Raw:         raw,
		Parts:       parts,
		GridSize:    d.GridSize,
		DisplayName: d.DisplayName,
		insertAt:    d.insertAt,
	}
}

// SortedCounts returns part counts as a deterministic slice of (id, count)
// pairs ordered by identifier.
func SortedCounts(counts map[string]int) []struct {
	Subtype string
	Count   int
} {
	out := make([]struct {
		Subtype string
		Count   int
	}, 0, len(counts))
	for id, n := range counts {
		out = append(out, struct {
			Subtype string
			Count   int
		}{id, n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subtype < out[j].Subtype })
	return out
}
