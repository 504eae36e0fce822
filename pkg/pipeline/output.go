package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blockswap/blockswap/pkg/blueprint"
)

// Output name prefixes. Armor-only runs get the descriptive prefixes so a
// workshop folder full of variants stays scannable.
const (
	PrefixHeavy     = "HEAVYARMOR_"
	PrefixLight     = "LIGHTARMOR_"
	PrefixConverted = "CONVERTED_"
	PrefixReversed  = "REVERSED_"
)

// OutputPrefix returns the folder name prefix for a run's output.
func OutputPrefix(opts Options) string {
	armorOnly := len(opts.Categories) == 1 && strings.EqualFold(opts.Categories[0], "armor")
	switch {
	case armorOnly && opts.Direction == DirectionReverse:
		return PrefixLight
	case armorOnly:
		return PrefixHeavy
	case opts.Direction == DirectionReverse:
		return PrefixReversed
	default:
		return PrefixConverted
	}
}

// staleCompanions are per-blueprint sidecar files that describe the
// original document and would be wrong next to a converted one.
var staleCompanions = []string{"bp.sbcB5"}

// WriteConverted writes the converted document as a new blueprint next to
// the source (or under opts.Output), copying companion files like
// thumbnails and dropping stale binary siblings. Returns the output path.
func WriteConverted(doc *blueprint.Document, opts Options) (string, error) {
	src := opts.Blueprint
	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}

	destDir := opts.Output
	if destDir == "" {
		destDir = filepath.Dir(src)
	}
	name := OutputPrefix(opts) + filepath.Base(src)
	dest := filepath.Join(destDir, name)

	if !info.IsDir() {
		if err := blueprint.Save(doc, dest); err != nil {
			return "", err
		}
		return dest, nil
	}

	if err := copyTree(src, dest); err != nil {
		return "", fmt.Errorf("copy blueprint folder: %w", err)
	}
	for _, companion := range staleCompanions {
		_ = os.Remove(filepath.Join(dest, companion))
	}
	if err := blueprint.Save(doc, filepath.Join(dest, "bp.sbc")); err != nil {
		return "", err
	}
	return dest, nil
}

// RemoveOutput deletes a previously written conversion output. The path
// must carry one of the output prefixes; anything else is refused so an
// undo can never delete an original.
func RemoveOutput(path string) error {
	base := filepath.Base(path)
	for _, prefix := range []string{PrefixHeavy, PrefixLight, PrefixConverted, PrefixReversed} {
		if strings.HasPrefix(base, prefix) {
			return os.RemoveAll(path)
		}
	}
	return fmt.Errorf("refusing to remove %q: not a conversion output", path)
}

// copyTree copies a directory recursively. Symlinks are skipped, game
// blueprint folders never contain them.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
