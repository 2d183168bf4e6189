package installer

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/senget/pkg/dist"
	"github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/fsutil"
	"github.com/glorpus-work/senget/pkg/model"
)

func (i *Installer) installStandalone(d dist.Standalone, path string) (model.InstallInfo, error) {
	folder := i.PackageFolder(d.Name)
	if err := os.MkdirAll(folder, fsutil.DirModeDefault); err != nil {
		return model.InstallInfo{}, errors.Wrap(errors.Normalize(err), "failed to create package folder")
	}

	exe := filepath.Join(folder, d.Name+".exe")
	place := fsutil.Move
	if i.opts.KeepDownloads {
		place = fsutil.Copy
	}
	if filepath.Clean(path) != exe {
		if err := place(path, exe); err != nil {
			return model.InstallInfo{}, errors.Wrapf(errors.Normalize(err), "failed to place %s", d.FileTitle)
		}
	}

	return model.InstallInfo{
		ExecutablePath:     exe,
		InstallationFolder: folder,
		Kind:               model.KindExe,
	}, nil
}
