package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/fsutil"
)

// Flatten removes wrapper folders: while root holds exactly one entry and it
// is a directory, that directory's contents replace it. A root with zero or
// several entries is left untouched.
func Flatten(root string) error {
	for {
		entries, err := os.ReadDir(root)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", root, err)
		}
		if len(entries) != 1 || !entries[0].IsDir() {
			return nil
		}

		wrapper := filepath.Join(root, entries[0].Name())
		// The wrapper may contain an entry with its own name, so it is moved
		// aside first.
		tmp, err := os.MkdirTemp(filepath.Dir(root), ".flatten-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		if err := os.Remove(tmp); err != nil {
			return err
		}
		if err := os.Rename(wrapper, tmp); err != nil {
			return fmt.Errorf("failed to move %s aside: %w", wrapper, err)
		}
		if err := fsutil.MoveContents(tmp, root); err != nil {
			return err
		}
		if err := os.Remove(tmp); err != nil {
			return fmt.Errorf("failed to remove wrapper directory: %w", err)
		}
	}
}

// FindExecutable searches root breadth first for the program of the package
// called name. A file named exactly <name>.exe wins at once; otherwise the
// first .exe whose name contains name is returned.
func FindExecutable(root, name string) (string, error) {
	lowerName := strings.ToLower(name)
	exact := lowerName + ".exe"

	var fallback string
	queue := []string{root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				queue = append(queue, path)
				continue
			}
			lower := strings.ToLower(entry.Name())
			if lower == exact {
				return path, nil
			}
			if fallback == "" && strings.HasSuffix(lower, ".exe") && strings.Contains(lower, lowerName) {
				fallback = path
			}
		}
	}
	if fallback == "" {
		return "", pkgerrors.ErrNoExecutableFound
	}
	return fallback, nil
}
