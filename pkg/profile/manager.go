package profile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blockswap/blockswap/pkg/errors"
	"github.com/blockswap/blockswap/pkg/mapping"
)

// Manager discovers and persists profiles in a single directory.
type Manager struct {
	dir string
}

// NewManager returns a manager rooted at dir, creating it if needed.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "profile directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "creating profile directory %q", dir)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the managed directory.
func (m *Manager) Dir() string { return m.dir }

// List loads every parseable profile in the directory, sorted by name.
// Unreadable or invalid files are skipped, not fatal; a profile directory
// commonly accumulates hand-edited drafts.
func (m *Manager) List() []*Profile {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil
	}
	var out []*Profile
	for _, entry := range entries {
		if entry.IsDir() || !isProfileFile(entry.Name()) {
			continue
		}
		p, err := m.loadFile(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Load returns the profile with the given name, matching case-insensitively.
func (m *Manager) Load(name string) (*Profile, error) {
	key := mapping.Key(name)
	for _, p := range m.List() {
		if mapping.Key(p.Name) == key {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnknownProfile, "profile %q not found in %s", name, m.dir)
}

// Save validates and writes a profile under its canonical filename,
// overwriting any previous version.
func (m *Manager) Save(p *Profile) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	path := filepath.Join(m.dir, Filename(p.Name))
	data, err := Marshal(p, path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "writing profile %q", path)
	}
	return path, nil
}

// Delete removes a profile's file.
func (m *Manager) Delete(name string) error {
	p, err := m.Load(name)
	if err != nil {
		return err
	}
	path := filepath.Join(m.dir, Filename(p.Name))
	if err := os.Remove(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "deleting profile %q", path)
	}
	return nil
}

// Import validates an external profile file and copies it into the managed
// directory under its canonical name.
func (m *Manager) Import(path string) (*Profile, error) {
	p, err := m.loadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := m.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Export writes a managed profile to an arbitrary destination path,
// choosing the encoding from the destination's extension.
func (m *Manager) Export(name, dest string) error {
	p, err := m.Load(name)
	if err != nil {
		return err
	}
	data, err := Marshal(p, dest)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing profile export %q", dest)
	}
	return nil
}

// RegisterAll registers every discovered profile's categories into reg.
// Registration stops at the first failure so a conflicting profile does not
// half-register.
func (m *Manager) RegisterAll(reg *mapping.Registry) error {
	for _, p := range m.List() {
		for _, cat := range p.MappingCategories() {
			if err := reg.Register(cat); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidProfile, err,
					"registering profile %q", p.Name)
			}
		}
	}
	return nil
}

func (m *Manager) loadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading profile %q", path)
	}
	return Parse(path, data)
}

func isProfileFile(name string) bool {
	lowered := strings.ToLower(name)
	return strings.HasSuffix(lowered, Ext) ||
		strings.HasSuffix(lowered, ".json") ||
		strings.HasSuffix(lowered, ".toml")
}
