// Package settings persists user preferences between CLI runs: recently
// used directories and blueprints, default categories, and cache tuning.
package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/blockswap/blockswap/pkg/errors"
)

const (
	// FileName is the settings file name inside the config directory.
	FileName = "settings.toml"

	// maxRecent bounds the recent-item lists.
	maxRecent = 10
)

// Settings is the persisted preference set. Zero values fall back to
// defaults at load time, so ancient settings files keep working.
type Settings struct {
	// RecentDirs lists recently scanned blueprint directories, newest first.
	RecentDirs []string `toml:"recent_dirs"`

	// RecentBlueprints lists recently converted blueprints, newest first.
	RecentBlueprints []string `toml:"recent_blueprints"`

	// DefaultCategories are the categories applied when none are named.
	DefaultCategories []string `toml:"default_categories"`

	// ProfileDir overrides the default profile directory.
	ProfileDir string `toml:"profile_dir,omitempty"`

	// CacheTTL bounds how long analysis results stay cached.
	CacheTTL duration `toml:"cache_ttl"`

	// KeepOriginal controls whether conversions copy or overwrite.
	KeepOriginal bool `toml:"keep_original"`

	path string
}

// duration wraps time.Duration for TOML round-tripping as "24h" strings.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Defaults returns the settings used when no file exists yet.
func Defaults() *Settings {
	return &Settings{
		DefaultCategories: []string{"armor"},
		CacheTTL:          duration(24 * time.Hour),
		KeepOriginal:      true,
	}
}

// DefaultPath returns the standard settings file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "resolving home directory")
	}
	return filepath.Join(home, ".config", "blockswap", FileName), nil
}

// Load reads settings from path, or returns defaults when the file does
// not exist. An empty path uses DefaultPath.
func Load(path string) (*Settings, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	s := Defaults()
	s.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading settings %q", path)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing settings %q", path)
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = Defaults().CacheTTL
	}
	return s, nil
}

// Save writes the settings back to the path they were loaded from.
func (s *Settings) Save() error {
	if s.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		s.path = p
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating config directory")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding settings")
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing settings %q", s.path)
	}
	return nil
}

// TTL returns the cache TTL as a time.Duration.
func (s *Settings) TTL() time.Duration { return time.Duration(s.CacheTTL) }

// TouchDir records a directory as recently used.
func (s *Settings) TouchDir(dir string) {
	s.RecentDirs = pushRecent(s.RecentDirs, dir)
}

// TouchBlueprint records a blueprint as recently used.
func (s *Settings) TouchBlueprint(path string) {
	s.RecentBlueprints = pushRecent(s.RecentBlueprints, path)
}

// pushRecent moves item to the front, dropping duplicates and capping the
// list length.
func pushRecent(list []string, item string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, item)
	for _, existing := range list {
		if existing == item {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > maxRecent {
		out = out[:maxRecent]
	}
	return out
}
