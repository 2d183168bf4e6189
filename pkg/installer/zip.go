package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/archive"
	"github.com/glorpus-work/senget/pkg/dist"
	"github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/fsutil"
	"github.com/glorpus-work/senget/pkg/model"
)

// installArchive extracts into a temporary sibling of the package folder and
// swaps it in only once an executable was found. A failed install leaves the
// previous package folder untouched.
func (i *Installer) installArchive(ctx context.Context, d dist.Archive, path string) (model.InstallInfo, error) {
	folder := i.PackageFolder(d.Name)
	if err := os.MkdirAll(i.opts.PackagesDir, fsutil.DirModeDefault); err != nil {
		return model.InstallInfo{}, errors.Wrap(errors.Normalize(err), "failed to create packages folder")
	}
	staging, err := os.MkdirTemp(i.opts.PackagesDir, d.Name+".tmp-")
	if err != nil {
		return model.InstallInfo{}, errors.Wrap(errors.Normalize(err), "failed to create staging folder")
	}
	defer func() { _ = os.RemoveAll(staging) }()

	if err := i.archives.ExtractAll(ctx, path, staging); err != nil {
		return model.InstallInfo{}, errors.Wrapf(errors.Normalize(err), "failed to extract %s", d.FileTitle)
	}
	if err := archive.Flatten(staging); err != nil {
		return model.InstallInfo{}, errors.Wrap(err, "failed to flatten package folder")
	}
	exe, err := archive.FindExecutable(staging, d.Name)
	if err != nil {
		return model.InstallInfo{}, err
	}
	rel, err := filepath.Rel(staging, exe)
	if err != nil {
		return model.InstallInfo{}, errors.Wrap(err, "failed to locate executable")
	}
	if err := os.Chmod(staging, fsutil.DirModeDefault); err != nil {
		logger.Debug("could not set package folder mode", logger.Fields{"path": staging, "error": err})
	}
	if err := swapFolder(staging, folder); err != nil {
		return model.InstallInfo{}, errors.Wrap(errors.Normalize(err), "failed to replace package folder")
	}

	if !i.opts.KeepDownloads {
		if err := os.Remove(path); err != nil {
			logger.Debug("could not remove archive", logger.Fields{"path": path, "error": err})
		}
	}

	return model.InstallInfo{
		ExecutablePath:     filepath.Join(folder, rel),
		InstallationFolder: folder,
		Kind:               model.KindZip,
	}, nil
}

// swapFolder moves staging to folder. An existing folder is moved aside first
// and put back if the move fails.
func swapFolder(staging, folder string) error {
	backup := staging + ".old"
	hadPrevious := true
	if err := os.Rename(folder, backup); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		hadPrevious = false
	}
	if err := os.Rename(staging, folder); err != nil {
		if hadPrevious {
			if restoreErr := os.Rename(backup, folder); restoreErr != nil {
				logger.Warn("could not restore package folder", logger.Fields{"path": folder, "error": restoreErr})
			}
		}
		return err
	}
	if hadPrevious {
		if err := os.RemoveAll(backup); err != nil {
			logger.Debug("could not remove previous package folder", logger.Fields{"path": backup, "error": err})
		}
	}
	return nil
}
