package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/dist"
	"github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/glorpus-work/senget/pkg/platform"
	"github.com/glorpus-work/senget/pkg/snapshot"
)

// installThirdParty runs an opaque installer and reconstructs where it put the
// program and how to uninstall it. Missing fields in the result are not an
// error.
func (i *Installer) installThirdParty(ctx context.Context, d dist.ThirdPartyInstaller, path string) (model.InstallInfo, error) {
	name := d.Name
	lowerName := strings.ToLower(name)
	roots := i.opts.StartMenu.All()

	registryBefore, err := snapshot.Registries(i.registry)
	if err != nil {
		return model.InstallInfo{}, errors.Wrap(err, "failed to read uninstall registry")
	}
	shortcutsBefore, err := snapshot.Shortcuts(roots...)
	if err != nil {
		return model.InstallInfo{}, errors.Wrap(err, "failed to list start menu shortcuts")
	}

	if err := i.runInstaller(ctx, path); err != nil {
		return model.InstallInfo{}, errors.Wrapf(err, "failed to run %s", d.FileTitle)
	}
	if !i.opts.KeepDownloads {
		if err := os.Remove(path); err != nil {
			logger.Debug("could not remove installer", logger.Fields{"path": path, "error": err})
		}
	}

	info := model.InstallInfo{Kind: model.KindInstaller}

	link := i.guessShortcut(name)
	if link == "" {
		link = i.newShortcut(shortcutsBefore, roots, lowerName)
	}
	if link != "" {
		target, err := i.shortcuts.Resolve(link)
		if err != nil {
			logger.Debug("could not resolve shortcut", logger.Fields{"shortcut": link, "error": err})
		} else {
			info.ExecutablePath = target
			info.InstallationFolder = filepath.Dir(target)
		}
	}

	info.UninstallCommand = i.newUninstallCommand(registryBefore, lowerName)
	if info.UninstallCommand == "" && info.InstallationFolder != "" {
		info.UninstallCommand = FindUninstaller(info.InstallationFolder)
	}

	logger.Debug("installer side effects", logger.Fields{
		"package":   name,
		"shortcut":  link,
		"exe":       info.ExecutablePath,
		"uninstall": info.UninstallCommand,
	})
	return info, nil
}

// runInstaller reports only failures to start the installer. A non-zero exit
// code is logged and ignored; the registry and start-menu diff decides what
// was installed.
func (i *Installer) runInstaller(ctx context.Context, path string) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".msi") {
		err = i.runner.Run(ctx, platform.MsiExec, "/i", path)
	} else {
		err = i.runner.Run(ctx, path, platform.SilentInstallFlags...)
	}
	if code, ok := exitCode(err); ok {
		logger.Debug("installer exited with a non-zero status", logger.Fields{"path": path, "code": code})
		return nil
	}
	return err
}

// guessShortcut checks <root>/<name>.lnk and <root>/<name>/<name>.lnk in the
// user root, then the machine root.
func (i *Installer) guessShortcut(name string) string {
	for _, root := range i.opts.StartMenu.All() {
		for _, candidate := range []string{
			filepath.Join(root, name+".lnk"),
			filepath.Join(root, name, name+".lnk"),
		} {
			if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
				logger.Debug("found shortcut at the conventional location", logger.Fields{"shortcut": candidate})
				return candidate
			}
		}
	}
	return ""
}

func (i *Installer) newShortcut(before snapshot.Set[string], roots []string, lowerName string) string {
	after, err := snapshot.Shortcuts(roots...)
	if err != nil {
		logger.Debug("could not list start menu shortcuts", logger.Fields{"error": err})
		return ""
	}
	for _, link := range snapshot.Difference(before, after).Items() {
		if strings.Contains(strings.ToLower(filepath.Base(link)), lowerName) {
			return link
		}
	}
	return ""
}

// newUninstallCommand looks through the uninstall entries that appeared since
// before, user hive first. The first entry whose DisplayName mentions the
// package decides the result for its hive.
func (i *Installer) newUninstallCommand(before map[platform.Hive]snapshot.Set[string], lowerName string) string {
	for _, hive := range platform.Hives {
		after, err := snapshot.Registry(i.registry, hive)
		if err != nil {
			logger.Debug("could not read uninstall registry", logger.Fields{"hive": hive.String(), "error": err})
			continue
		}
		for _, key := range snapshot.Difference(before[hive], after).Items() {
			displayName, err := i.registry.ReadString(hive, key, platform.ValueDisplayName)
			if err != nil || !strings.Contains(strings.ToLower(displayName), lowerName) {
				continue
			}
			if command := i.uninstallString(hive, key); command != "" {
				logger.Debug("found uninstall entry", logger.Fields{"hive": hive.String(), "key": key})
				return command
			}
			break
		}
	}
	return ""
}

func (i *Installer) uninstallString(hive platform.Hive, key string) string {
	for _, value := range []string{platform.ValueQuietUninstallString, platform.ValueUninstallString} {
		if command, err := i.registry.ReadString(hive, key, value); err == nil && command != "" {
			return command
		}
	}
	return ""
}

// FindUninstaller returns the first unins*.exe directly inside folder.
func FindUninstaller(folder string) string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		lower := strings.ToLower(entry.Name())
		if !entry.IsDir() && strings.Contains(lower, "unins") && strings.HasSuffix(lower, ".exe") {
			return filepath.Join(folder, entry.Name())
		}
	}
	return ""
}
