package blueprint

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// SBC parses Space Engineers blueprint XML (bp.sbc).
//
// Blueprints store one part per cube block as the text of a SubtypeName
// element (older files use SubtypeId). The parser walks the token stream
// once, recording the byte span of each identifier so rewrites can splice
// replacements without re-serializing the XML.
type SBC struct{}

func (p *SBC) Type() string              { return "sbc" }
func (p *SBC) Supports(name string) bool { return hasSuffixFold(name, ".sbc") }

func (p *SBC) Parse(name string, data []byte) (*Document, error) {
	return parseSBC(name, data)
}

// pendingBlock accumulates state for the cube block currently being read.
type pendingBlock struct {
	typeAttr    string
	forward     string
	subtypeName *PartRef // from SubtypeName
	subtypeID   *PartRef // from SubtypeId, used only when SubtypeName is absent
}

func parseSBC(name string, data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	doc := &Document{
		Name:     name,
		Raw:      append([]byte(nil), data...),
		GridSize: "Unknown",
	}

	var stack []string
	cubeBlocksDepth := -1 // stack depth of the CubeBlocks element we are inside
	var block *pendingBlock
	blockDepth := -1

	for {
		before := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			local := t.Name.Local
			stack = append(stack, local)

			switch {
			case local == "CubeBlocks" && cubeBlocksDepth < 0:
				cubeBlocksDepth = len(stack)

			case cubeBlocksDepth >= 0 && len(stack) == cubeBlocksDepth+1:
				// Direct child of CubeBlocks: a cube block element.
				block = &pendingBlock{typeAttr: attrValue(t, "type")}
				blockDepth = len(stack)

			case block != nil && len(stack) == blockDepth+1 && local == "BlockOrientation":
				block.forward = attrValue(t, "Forward")

			case block != nil && len(stack) == blockDepth+1 &&
				(local == "SubtypeName" || local == "SubtypeId"):
				// Only direct children name the block itself; nested
				// occurrences (stockpile items, toolbar entries) belong
				// to other objects.
				ref, err := readIdentifier(dec, data)
				if err != nil {
					return nil, err
				}
				// Element consumed through its end tag; pop it.
				stack = stack[:len(stack)-1]
				if ref == nil {
					continue
				}
				if local == "SubtypeName" {
					if block.subtypeName == nil {
						block.subtypeName = ref
					}
				} else if block.subtypeID == nil {
					block.subtypeID = ref
				}

			case local == "GridSizeEnum" || (local == "DisplayName" && doc.DisplayName == ""):
				text, err := readText(dec)
				if err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]
				if local == "GridSizeEnum" {
					if doc.GridSize == "Unknown" && text != "" {
						doc.GridSize = text
					}
				} else {
					doc.DisplayName = text
				}
			}

		case xml.EndElement:
			if block != nil && len(stack) == blockDepth {
				ref := block.subtypeName
				if ref == nil {
					ref = block.subtypeID
				}
				if ref != nil {
					ref.TypeAttr = block.typeAttr
					ref.Forward = block.forward
					doc.Parts = append(doc.Parts, *ref)
				}
				block = nil
				blockDepth = -1
			}
			if cubeBlocksDepth >= 0 && len(stack) == cubeBlocksDepth {
				if doc.insertAt == 0 {
					doc.insertAt = before
				}
				cubeBlocksDepth = -1
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("malformed XML: %d unclosed element(s)", len(stack))
	}
	return doc, nil
}

// readIdentifier consumes the content and end tag of an identifier element,
// returning a PartRef with the trimmed identifier and its exact byte span.
// Returns nil (and no error) for empty elements.
func readIdentifier(dec *xml.Decoder, data []byte) (*PartRef, error) {
	start := dec.InputOffset()
	end := start
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}
		switch tok.(type) {
		case xml.CharData:
			end = dec.InputOffset()
		case xml.EndElement:
			raw := data[start:end]
			trimmed := strings.TrimSpace(string(raw))
			if trimmed == "" {
				return nil, nil
			}
			lead := int64(len(raw) - len(strings.TrimLeft(string(raw), " \t\r\n")))
			return &PartRef{
				Subtype: trimmed,
				Start:   start + lead,
				End:     start + lead + int64(len(trimmed)),
			}, nil
		default:
			return nil, fmt.Errorf("unexpected token inside identifier element")
		}
	}
}

// readText consumes a simple text element through its end tag.
func readText(dec *xml.Decoder) (string, error) {
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("malformed XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			return strings.TrimSpace(text.String()), nil
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", fmt.Errorf("malformed XML: %w", err)
			}
		}
	}
}

// attrValue returns the value of the named attribute, matching on the local
// name so namespaced attributes (xsi:type) are found.
func attrValue(e xml.StartElement, local string) string {
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// Ensure SBC implements Parser.
var _ Parser = (*SBC)(nil)
