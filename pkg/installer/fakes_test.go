package installer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/glorpus-work/senget/pkg/platform"
)

type fakeEntry struct {
	values map[string]string
}

// fakeRegistry is an in-memory uninstall registry. Keys keep insertion order.
type fakeRegistry struct {
	mu    sync.Mutex
	order map[platform.Hive][]string
	keys  map[platform.Hive]map[string]fakeEntry
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		order: map[platform.Hive][]string{},
		keys:  map[platform.Hive]map[string]fakeEntry{},
	}
}

func (r *fakeRegistry) add(hive platform.Hive, key string, values map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.keys[hive] == nil {
		r.keys[hive] = map[string]fakeEntry{}
	}
	r.order[hive] = append(r.order[hive], key)
	r.keys[hive][key] = fakeEntry{values: values}
}

func (r *fakeRegistry) SubkeyNames(hive platform.Hive) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order[hive]...), nil
}

func (r *fakeRegistry) ReadString(hive platform.Hive, subkey, name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.keys[hive][subkey]
	if !ok {
		return "", fs.ErrNotExist
	}
	v, ok := entry.values[name]
	if !ok {
		return "", fs.ErrNotExist
	}
	return v, nil
}

// fakeShortcuts stores the target path as the content of the .lnk file.
type fakeShortcuts struct{}

func (fakeShortcuts) Resolve(linkPath string) (string, error) {
	b, err := os.ReadFile(linkPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (fakeShortcuts) Create(targetPath, linkPath string) error {
	if err := os.MkdirAll(filepath.Dir(linkPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(linkPath, []byte(targetPath), 0o644)
}

type call struct {
	name string
	args []string
}

// fakeRunner records calls and plays the side effects of a real installer.
type fakeRunner struct {
	calls  []call
	effect func(name string, args []string)
	err    error
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	if r.effect != nil {
		r.effect(name, args)
	}
	return r.err
}

func (r *fakeRunner) Start(name string, args ...string) error {
	r.calls = append(r.calls, call{name: name, args: args})
	return r.err
}

func writeFile(path, content string) {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte(content), 0o644)
}
