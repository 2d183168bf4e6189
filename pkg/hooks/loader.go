package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/errors"
)

// FileExtension is the extension of hook scripts.
const FileExtension = ".tengo"

// Runner runs the hook scripts of a package.
type Runner struct {
	dir string
}

// NewRunner creates a runner over the hooks directory dir. An empty dir
// disables hooks.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// PackageDir returns the folder holding the scripts of packageName.
func (r *Runner) PackageDir(packageName string) string {
	return filepath.Join(r.dir, strings.ToLower(packageName))
}

// Run executes the hookType script of hc.PackageName if there is one.
func (r *Runner) Run(hookType HookType, hc HookContext) error {
	if r == nil || r.dir == "" {
		return nil
	}
	executor := NewTengoExecutor()
	if err := loadHooksFromDir(executor, r.PackageDir(hc.PackageName)); err != nil {
		return err
	}
	if !executor.HasScript(hookType) {
		return nil
	}
	logger.Debug("running hook", logger.Fields{"package": hc.PackageName, "hook": string(hookType)})
	return executor.Execute(hookType, hc)
}

// loadHooksFromDir loads all hooks files from a directory. A missing
// directory holds no hooks.
func loadHooksFromDir(executor *TengoExecutor, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(errors.ErrHookLoad, "failed to read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != FileExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), FileExtension))
		switch hookType {
		case PreInstall, PostInstall, PreRemove, PostRemove:
		default:
			continue
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errors.Wrapf(errors.ErrHookLoad, "error reading hooks file %s: %v", hookPath, err)
		}
		if err := executor.AddScript(hookType, string(content)); err != nil {
			return err
		}
	}

	return nil
}
