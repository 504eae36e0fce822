// Package profile loads, validates, and persists shareable rule-set
// documents. A profile bundles one or more substitution categories with
// authorship metadata and registers them under a namespaced name so
// profile categories never shadow built-in ones.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/blockswap/blockswap/pkg/errors"
	"github.com/blockswap/blockswap/pkg/mapping"
)

// Ext is the canonical profile file extension. Plain .json and .toml
// files with the same shape are also accepted.
const Ext = ".sebx-profile"

// CategorySpec is a category as serialized inside a profile document.
type CategorySpec struct {
	Name        string         `json:"name" toml:"name"`
	Description string         `json:"description,omitempty" toml:"description,omitempty"`
	GridSizes   []string       `json:"grid_sizes,omitempty" toml:"grid_sizes,omitempty"`
	Pairs       []mapping.Rule `json:"pairs" toml:"pairs"`
}

// Profile is a complete rule-set document.
type Profile struct {
	Name        string         `json:"name" toml:"name"`
	Author      string         `json:"author,omitempty" toml:"author,omitempty"`
	Version     string         `json:"version,omitempty" toml:"version,omitempty"`
	Description string         `json:"description,omitempty" toml:"description,omitempty"`
	GameVersion string         `json:"game_version,omitempty" toml:"game_version,omitempty"`
	Categories  []CategorySpec `json:"categories" toml:"categories"`
}

// Namespace returns the registry name for one of the profile's categories,
// in the form "profile:<profile>:<category>".
func (p *Profile) Namespace(category string) string {
	return "profile:" + mapping.Key(p.Name) + ":" + mapping.Key(category)
}

// Validate checks the document shape and every contained category. Category
// rule validation reuses the registry's invariants, so a profile that loads
// cleanly always registers cleanly.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New(errors.ErrCodeInvalidProfile, "profile name cannot be empty")
	}
	if len(p.Categories) == 0 {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q has no categories", p.Name)
	}
	seen := make(map[string]bool, len(p.Categories))
	for _, spec := range p.Categories {
		key := mapping.Key(spec.Name)
		if seen[key] {
			return errors.New(errors.ErrCodeInvalidProfile,
				"profile %q defines category %q twice", p.Name, spec.Name)
		}
		seen[key] = true
		if err := spec.category(p).Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProfile, err,
				"profile %q: category %q", p.Name, spec.Name)
		}
	}
	return nil
}

// Categories converts the document into registrable mapping categories,
// already namespaced and tagged with the profile's origin.
func (p *Profile) MappingCategories() []mapping.Category {
	out := make([]mapping.Category, 0, len(p.Categories))
	for _, spec := range p.Categories {
		out = append(out, spec.category(p))
	}
	return out
}

func (spec CategorySpec) category(p *Profile) mapping.Category {
	return mapping.Category{
		Name:        p.Namespace(spec.Name),
		Description: spec.Description,
		Rules:       spec.Pairs,
		GridSizes:   spec.GridSizes,
		Origin:      "profile:" + mapping.Key(p.Name),
	}
}

// Parse decodes a profile from JSON or TOML, keyed off the filename
// extension. The canonical .sebx-profile extension carries JSON.
func Parse(filename string, data []byte) (*Profile, error) {
	var p Profile
	var err error
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".toml"):
		err = toml.Unmarshal(data, &p)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parsing profile %q", filename)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal encodes the profile for the given filename, JSON unless the
// extension says TOML.
func Marshal(p *Profile, filename string) ([]byte, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".toml") {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding profile %q", p.Name)
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding profile %q", p.Name)
	}
	return append(data, '\n'), nil
}

// Filename returns the canonical on-disk name for a profile.
func Filename(name string) string {
	slug := strings.ReplaceAll(mapping.Key(name), " ", "_")
	return fmt.Sprintf("%s%s", slug, Ext)
}
