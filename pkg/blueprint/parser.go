package blueprint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blockswap/blockswap/pkg/errors"
)

// Parser reads a blueprint document from raw bytes.
// Implementations locate every part identifier with exact byte offsets so
// the document can be rewritten in place without disturbing other content.
type Parser interface {
	// Parse reads data and returns the located document.
	Parse(name string, data []byte) (*Document, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the format identifier (e.g., "sbc").
	Type() string
}

// DefaultParsers lists the built-in document parsers.
var DefaultParsers = []Parser{&SBC{}}

// Detect finds a parser that supports the given file path.
// Returns an error if no parser matches.
func Detect(path string, parsers ...Parser) (Parser, error) {
	if len(parsers) == 0 {
		parsers = DefaultParsers
	}
	name := filepath.Base(path)
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported blueprint format: %s", name)
}

// Load reads and parses the blueprint at path using the default parsers.
// When path is a directory, the conventional bp.sbc inside it is used.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBlueprintMissing, err, "blueprint not found: %s", path)
	}

	file := path
	name := filepath.Base(path)
	if info.IsDir() {
		file = filepath.Join(path, "bp.sbc")
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBlueprintMissing, err, "no bp.sbc in %s", path)
		}
	} else {
		name = filepath.Base(filepath.Dir(path))
	}

	parser, err := Detect(file)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	doc, err := parser.Parse(name, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "parse %s", file)
	}
	return doc, nil
}

// Parse reads a document from raw bytes, choosing a parser by name.
func Parse(name string, data []byte) (*Document, error) {
	parser, err := Detect(name)
	if err != nil {
		// Uploads often lack an extension; fall back to the default format.
		parser = DefaultParsers[0]
	}
	doc, err := parser.Parse(name, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBlueprint, err, "parse %s", name)
	}
	return doc, nil
}

// Save writes the document's bytes to path, creating parent directories.
func Save(doc *Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, doc.Raw, 0644)
}

// hasSuffixFold reports whether name ends with ext, ignoring case.
func hasSuffixFold(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
