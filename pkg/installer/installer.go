// Package installer places downloaded distributables on disk and removes
// them again. Third-party installers are run as black boxes; where they put
// the program and how to remove it is inferred from what changed in the
// registry and the start menu.
package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/glorpus-work/senget/pkg/archive"
	"github.com/glorpus-work/senget/pkg/dist"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/glorpus-work/senget/pkg/platform"
)

// Options configures where packages go.
type Options struct {
	PackagesDir   string
	KeepDownloads bool // copy instead of move and keep zips and installers after use
	StartMenu     platform.StartMenuRoots
}

// Installer installs and uninstalls packages of every distributable kind.
type Installer struct {
	opts      Options
	archives  *archive.Manager
	registry  platform.Registry
	shortcuts platform.Shortcuts
	runner    platform.Runner
}

// New creates an installer on top of the given OS accessors.
func New(opts Options, registry platform.Registry, shortcuts platform.Shortcuts, runner platform.Runner) *Installer {
	return &Installer{
		opts:      opts,
		archives:  archive.NewManager(),
		registry:  registry,
		shortcuts: shortcuts,
		runner:    runner,
	}
}

// Install installs the file at path that was downloaded for d. Standalone
// executables that turn out to be installers are run as installers, and the
// result records the kind d was selected as in ResolvedKind.
func (i *Installer) Install(ctx context.Context, d dist.Distributable, path string) (model.InstallInfo, error) {
	selected := d.Kind()
	d, err := dist.Recheck(d, path)
	if err != nil {
		return model.InstallInfo{}, err
	}

	var info model.InstallInfo
	switch d := d.(type) {
	case dist.Standalone:
		info, err = i.installStandalone(d, path)
	case dist.Archive:
		info, err = i.installArchive(ctx, d, path)
	case dist.ThirdPartyInstaller:
		info, err = i.installThirdParty(ctx, d, path)
	default:
		return model.InstallInfo{}, fmt.Errorf("unsupported distributable %T", d)
	}
	if err != nil {
		return model.InstallInfo{}, err
	}
	if info.Kind != selected {
		info.ResolvedKind = selected
	}
	return info, nil
}

// PackageFolder returns the folder Standalone and Archive packages of name
// are installed into.
func (i *Installer) PackageFolder(name string) string {
	return filepath.Join(i.opts.PackagesDir, name)
}

// ShortcutPath is where CreateShortcut puts the shortcut of name.
func (i *Installer) ShortcutPath(name string) string {
	return filepath.Join(i.opts.StartMenu.User, name+".lnk")
}

// CreateShortcut adds a start-menu shortcut for the program at target.
func (i *Installer) CreateShortcut(name, target string) error {
	return i.shortcuts.Create(target, i.ShortcutPath(name))
}
