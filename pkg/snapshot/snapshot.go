package snapshot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/senget/pkg/platform"
)

// Registry captures the uninstall subkey names of hive.
func Registry(reg platform.Registry, hive platform.Hive) (Set[string], error) {
	names, err := reg.SubkeyNames(hive)
	if err != nil {
		return Set[string]{}, err
	}
	return NewSet(names...), nil
}

// Registries captures every hive in platform.Hives.
func Registries(reg platform.Registry) (map[platform.Hive]Set[string], error) {
	out := make(map[platform.Hive]Set[string], len(platform.Hives))
	for _, hive := range platform.Hives {
		s, err := Registry(reg, hive)
		if err != nil {
			return nil, err
		}
		out[hive] = s
	}
	return out, nil
}

// Shortcuts collects the absolute paths of the .lnk files found recursively
// under roots. Missing roots contribute nothing.
func Shortcuts(roots ...string) (Set[string], error) {
	var links []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				if errors.Is(err, fs.ErrPermission) && path != root {
					return fs.SkipDir
				}
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".lnk") {
				abs, err := filepath.Abs(path)
				if err != nil {
					return err
				}
				links = append(links, abs)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return Set[string]{}, err
		}
	}
	return NewSet(links...), nil
}
