package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/dist"
	pkgerrors "github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/hooks"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/glorpus-work/senget/pkg/version"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

func requestedVersion(v string) string {
	if v == "" {
		return version.Latest
	}
	return v
}

// Install resolves, downloads and installs name and records it in the store.
func (o *Orchestrator) Install(ctx context.Context, name string, opts InstallOptions) (model.Package, error) {
	existing, err := o.Store.Find(name)
	if err != nil {
		return model.Package{}, err
	}
	if existing != nil {
		return model.Package{}, pkgerrors.ErrPackageAlreadyInstalled
	}

	repo, d, err := o.resolve(ctx, name, requestedVersion(opts.Version), opts.Kind)
	if err != nil {
		return model.Package{}, err
	}
	path, err := o.download(ctx, repo.Name, d, o.DistsDir)
	if err != nil {
		return model.Package{}, err
	}

	emit(o.Hooks, Event{Phase: PhaseInstalling, ID: repo.Name, Msg: fmt.Sprintf("Installing %s", repo.Name)})
	info, err := o.Installer.Install(ctx, d, path)
	if err != nil {
		return model.Package{}, pkgerrors.Wrapf(err, "failed to install %s", repo.Name)
	}
	if opts.CreateShortcut && info.Kind != model.KindInstaller && info.ExecutablePath != "" {
		if err := o.Installer.CreateShortcut(repo.Name, info.ExecutablePath); err != nil {
			return model.Package{}, pkgerrors.Wrap(err, "failed to create shortcut")
		}
		info.CreateShortcut = true
	}

	pkg := model.NewPackage(d.Info().Version, repo, info)
	if err := o.Store.Add(pkg); err != nil {
		return model.Package{}, err
	}
	emit(o.Hooks, Event{Phase: PhaseDone, ID: repo.Name, Msg: fmt.Sprintf("Successfully installed %s", repo.Name)})

	if err := o.runScript(hooks.PostInstall, pkg); err != nil {
		return pkg, err
	}
	return pkg, nil
}

// Update installs another version of an installed package using the kind its
// release asset was selected as. Resolving to the installed version fails with
// ErrAlreadyUpToDate for latest and ErrVersionAlreadyInstalled otherwise.
func (o *Orchestrator) Update(ctx context.Context, name, requested string) (model.Package, error) {
	old, err := o.Store.Find(name)
	if err != nil {
		return model.Package{}, err
	}
	if old == nil {
		return model.Package{}, pkgerrors.ErrNoInstalledPackage
	}
	requested = requestedVersion(requested)

	emit(o.Hooks, Event{Phase: PhaseResolving, ID: old.Name(), Msg: fmt.Sprintf("Resolving %s", old.Name())})
	repo := o.refreshRepository(ctx, old.Repository)
	d, err := o.Resolver.Resolve(ctx, repo, requested, old.InstallInfo.PreferredKind())
	if err != nil {
		return model.Package{}, err
	}
	newVersion := d.Info().Version
	if newVersion == old.Version {
		if version.IsLatest(requested) {
			return model.Package{}, pkgerrors.ErrAlreadyUpToDate
		}
		return model.Package{}, pkgerrors.ErrVersionAlreadyInstalled
	}

	emit(o.Hooks, Event{Phase: PhaseUpdating, ID: old.Name(), Msg: fmt.Sprintf("Updating %s from %s --> %s", old.Name(), old.Version, newVersion)})
	path, err := o.download(ctx, old.Name(), d, o.DistsDir)
	if err != nil {
		return model.Package{}, err
	}
	info, err := o.Installer.Install(ctx, d, path)
	if err != nil {
		return model.Package{}, pkgerrors.Wrapf(err, "failed to update %s", old.Name())
	}
	info = info.MergeOver(old.InstallInfo)
	info.CreateShortcut = old.InstallInfo.CreateShortcut

	updated := model.NewPackage(newVersion, repo, info)
	if err := o.Store.Replace(*old, updated); err != nil {
		return model.Package{}, err
	}
	emit(o.Hooks, Event{Phase: PhaseDone, ID: old.Name(), Msg: fmt.Sprintf("Successfully updated %s", old.Name())})

	if err := o.runScript(hooks.PostInstall, updated); err != nil {
		return updated, err
	}
	return updated, nil
}

// refreshRepository fetches the current metadata of repo. The recorded
// metadata is kept when the lookup fails.
func (o *Orchestrator) refreshRepository(ctx context.Context, repo model.Repository) model.Repository {
	fresh, err := o.Resolver.Repository(ctx, repo.FullName)
	if err != nil {
		logger.Debug("could not refresh repository metadata", logger.Fields{"repo": repo.FullName, "error": err})
		return repo
	}
	return fresh
}

// UpdateAll updates every installed package to its latest version one at a
// time. Up to date packages are skipped; other failures are collected in a
// *pkgerrors.BatchErrors without stopping the batch.
func (o *Orchestrator) UpdateAll(ctx context.Context) ([]model.Package, error) {
	pkgs, err := o.Store.ListAll()
	if err != nil {
		return nil, err
	}

	var (
		updated []model.Package
		batch   pkgerrors.BatchErrors
	)
	for _, p := range pkgs {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		u, err := o.Update(ctx, p.Name(), version.Latest)
		switch {
		case err == nil:
			updated = append(updated, u)
		case errors.Is(err, pkgerrors.ErrAlreadyUpToDate), errors.Is(err, pkgerrors.ErrVersionAlreadyInstalled):
			logger.Debug("package is up to date", logger.Fields{"package": p.Name(), "version": p.Version})
		default:
			batch.Add(p.Name(), err)
		}
	}
	return updated, batch.Err()
}

// Uninstall removes an installed package. When the uninstall step fails the
// record is kept unless opts.Force is set.
func (o *Orchestrator) Uninstall(ctx context.Context, name string, opts UninstallOptions) (UninstallResult, error) {
	pkg, err := o.Store.Find(name)
	if err != nil {
		return UninstallResult{}, err
	}
	if pkg == nil {
		return UninstallResult{}, pkgerrors.ErrNoInstalledPackage
	}
	result := UninstallResult{Package: *pkg}

	if err := o.runScript(hooks.PreRemove, *pkg); err != nil {
		return result, err
	}

	emit(o.Hooks, Event{Phase: PhaseUninstalling, ID: pkg.Name(), Msg: fmt.Sprintf("Uninstalling %s", pkg.Name())})
	ok, err := o.Installer.Uninstall(ctx, *pkg)
	result.Uninstalled = err == nil && ok
	if !result.Uninstalled {
		logger.Debug("uninstall step failed", logger.Fields{"package": pkg.Name(), "error": err, "force": opts.Force})
		if !opts.Force {
			if err != nil {
				return result, fmt.Errorf("%w: %w", pkgerrors.ErrFailedToUninstall, err)
			}
			return result, pkgerrors.ErrFailedToUninstall
		}
	}

	if err := o.Store.Remove(*pkg); err != nil {
		return result, err
	}
	if result.Uninstalled {
		emit(o.Hooks, Event{Phase: PhaseDone, ID: pkg.Name(), Msg: fmt.Sprintf("Successfully uninstalled %s", pkg.Name())})
	} else {
		emit(o.Hooks, Event{Phase: PhaseDone, ID: pkg.Name(), Msg: fmt.Sprintf("Removed %s from package database", pkg.Name())})
	}

	if result.Uninstalled {
		if err := o.runScript(hooks.PostRemove, *pkg); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Download resolves name and downloads its distributable without installing
// it. It returns the path of the downloaded file.
func (o *Orchestrator) Download(ctx context.Context, name string, opts DownloadOptions) (string, error) {
	repo, d, err := o.resolve(ctx, name, requestedVersion(opts.Version), opts.Kind)
	if err != nil {
		return "", err
	}
	dir := opts.Dir
	if dir == "" {
		dir = o.DistsDir
	}
	path, err := o.download(ctx, repo.Name, d, dir)
	if err != nil {
		return "", err
	}
	emit(o.Hooks, Event{Phase: PhaseDone, ID: repo.Name, Msg: fmt.Sprintf("Downloaded at %s", path)})
	return path, nil
}

func (o *Orchestrator) resolve(ctx context.Context, name, requested string, preferred model.Kind) (model.Repository, dist.Distributable, error) {
	emit(o.Hooks, Event{Phase: PhaseResolving, ID: name, Msg: fmt.Sprintf("Resolving %s", name)})
	repo, err := o.Resolver.Repository(ctx, name)
	if err != nil {
		return model.Repository{}, nil, err
	}
	d, err := o.Resolver.Resolve(ctx, repo, requested, preferred)
	if err != nil {
		return model.Repository{}, nil, err
	}
	return repo, d, nil
}

func (o *Orchestrator) download(ctx context.Context, id string, d dist.Distributable, dir string) (string, error) {
	if o.DL == nil {
		return "", fmt.Errorf("download manager not configured")
	}
	emit(o.Hooks, Event{Phase: PhaseDownloading, ID: id, Msg: fmt.Sprintf("Downloading %s", d.Info().FileTitle)})
	var progress func(written, total int64)
	if o.Hooks.OnProgress != nil {
		progress = func(written, total int64) { o.Hooks.OnProgress(id, written, total) }
	}
	path, err := o.DL.FetchDistributable(ctx, d, dir, progress)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to download %s", d.Info().FileTitle)
	}
	return path, nil
}

func (o *Orchestrator) runScript(hookType hooks.HookType, pkg model.Package) error {
	if o.Scripts == nil {
		return nil
	}
	err := o.Scripts.Run(hookType, hooks.HookContext{
		PackageName:    pkg.Name(),
		PackageVersion: pkg.Version,
		InstallPath:    pkg.InstallationFolder(),
		ExecutablePath: pkg.InstallInfo.ExecutablePath,
	})
	return pkgerrors.Wrapf(err, "%s hook of %s failed", hookType, pkg.Name())
}
