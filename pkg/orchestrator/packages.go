package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"

	pkgerrors "github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/fsutil"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/glorpus-work/senget/pkg/version"
)

// Search lists the repositories matching query.
func (o *Orchestrator) Search(ctx context.Context, query string) ([]model.Repository, error) {
	return o.Resolver.Search(ctx, query)
}

// Show describes name, preferring the installed record over a repository
// lookup.
func (o *Orchestrator) Show(ctx context.Context, name string) (Details, error) {
	pkg, err := o.Store.Find(name)
	if err != nil {
		return Details{}, err
	}
	if pkg != nil {
		return Details{Installed: pkg, Repository: pkg.Repository}, nil
	}
	repo, err := o.Resolver.Repository(ctx, name)
	if err != nil {
		return Details{}, err
	}
	return Details{Repository: repo}, nil
}

// List returns the installed packages. A non-empty filter keeps the packages
// whose name fuzzily matches it, best match first.
func (o *Orchestrator) List(filter string) ([]model.Package, error) {
	pkgs, err := o.Store.ListAll()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return pkgs, nil
	}

	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name()
	}
	matches := fuzzy.Find(filter, names)
	filtered := make([]model.Package, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, pkgs[m.Index])
	}
	return filtered, nil
}

// Run starts the recorded executable of name with args. Without wait it
// returns as soon as the program is started.
func (o *Orchestrator) Run(ctx context.Context, name string, wait bool, args ...string) error {
	pkg, err := o.Store.Find(name)
	if err != nil {
		return err
	}
	if pkg == nil {
		return pkgerrors.ErrNoInstalledPackage
	}
	exe := pkg.InstallInfo.ExecutablePath
	if exe == "" || !fsutil.IsFile(exe) {
		return pkgerrors.ErrNoExecutable
	}

	emit(o.Hooks, Event{Phase: PhaseDone, ID: pkg.Name(), Msg: fmt.Sprintf("Starting %s", pkg.Name())})
	if !wait {
		return o.Runner.Start(exe, args...)
	}
	return o.Runner.Run(ctx, exe, args...)
}

// Purge drops the records whose executable was recorded but no longer exists.
func (o *Orchestrator) Purge() ([]model.Package, error) {
	pkgs, err := o.Store.ListAll()
	if err != nil {
		return nil, err
	}
	var purged []model.Package
	for _, p := range pkgs {
		exe := p.InstallInfo.ExecutablePath
		if exe == "" || fsutil.IsFile(exe) {
			continue
		}
		if err := o.Store.Remove(p); err != nil {
			return purged, err
		}
		purged = append(purged, p)
	}
	return purged, nil
}

// Export writes every installed package to model.ExportFileName inside dir and
// returns the path of the written file.
func (o *Orchestrator) Export(dir string) (string, error) {
	pkgs, err := o.Store.ListAll()
	if err != nil {
		return "", err
	}
	exported := make([]model.ExportedPackage, 0, len(pkgs))
	for _, p := range pkgs {
		exported = append(exported, p.Export())
	}

	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to encode packages")
	}
	path := filepath.Join(dir, model.ExportFileName)
	if err := os.WriteFile(path, data, fsutil.FileModeDefault); err != nil {
		return "", pkgerrors.Wrapf(pkgerrors.Normalize(err), "failed to write %s", path)
	}
	return path, nil
}

// Import installs every package listed in the export file at path. Packages
// that are already installed are skipped; other failures are collected in a
// *pkgerrors.BatchErrors. With ignoreVersions the latest versions are
// installed instead of the exported ones.
func (o *Orchestrator) Import(ctx context.Context, path string, ignoreVersions bool) ([]model.Package, error) {
	if !fsutil.IsFile(path) {
		return nil, pkgerrors.ErrExportFileNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read %s", path)
	}
	var exported []model.ExportedPackage
	if err := json.Unmarshal(data, &exported); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse %s", path)
	}

	var (
		installed []model.Package
		batch     pkgerrors.BatchErrors
	)
	for _, e := range exported {
		if err := ctx.Err(); err != nil {
			return installed, err
		}
		opts := InstallOptions{Version: e.Version, Kind: e.Kind, CreateShortcut: e.CreateShortcut}
		if ignoreVersions {
			opts.Version = version.Latest
		}
		pkg, err := o.Install(ctx, e.FullName, opts)
		switch {
		case err == nil:
			installed = append(installed, pkg)
		case errors.Is(err, pkgerrors.ErrPackageAlreadyInstalled):
		default:
			batch.Add(e.FullName, err)
		}
	}
	return installed, batch.Err()
}

// RegisterSelf keeps the record of the running tool itself current so that it
// can be listed and updated like any other package.
func (o *Orchestrator) RegisterSelf(self model.Package) error {
	existing, err := o.Store.Find(self.Name())
	if err != nil {
		return err
	}
	switch {
	case existing == nil:
		return o.Store.Add(self)
	case existing.Version != self.Version:
		return o.Store.Replace(*existing, self)
	default:
		return nil
	}
}

// CheckSelfUpdate reports the latest installer release of repoFullName when it
// is newer than current.
func (o *Orchestrator) CheckSelfUpdate(ctx context.Context, repoFullName, current string) (string, bool, error) {
	repo, err := o.Resolver.Repository(ctx, repoFullName)
	if err != nil {
		return "", false, err
	}
	d, err := o.Resolver.Resolve(ctx, repo, version.Latest, model.KindInstaller)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNoValidDist) {
			return "", false, nil
		}
		return "", false, err
	}
	latest := d.Info().Version
	return latest, version.IsNewer(latest, current), nil
}
