package installer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/glorpus-work/senget/internal/logger"
	pkgerrors "github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/model"
)

// ParseUninstallCommand splits a registry uninstall string into program and
// arguments. Commands that invoke msiexec are split right after that token.
// Otherwise a leading quoted segment is the program; unquoted commands are
// split after the first ".exe".
func ParseUninstallCommand(command string) (string, []string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", nil
	}
	lower := strings.ToLower(command)

	if idx := strings.Index(lower, "msiexec"); idx >= 0 {
		end := idx + len("msiexec")
		for end < len(command) && command[end] != ' ' {
			end++
		}
		return strings.Trim(command[:end], `"`), strings.Fields(command[end:])
	}

	if strings.HasPrefix(command, `"`) {
		if closing := strings.Index(command[1:], `"`); closing >= 0 {
			return command[1 : closing+1], strings.Fields(command[closing+2:])
		}
		return strings.Trim(command, `"`), nil
	}

	if idx := strings.Index(lower, ".exe"); idx >= 0 {
		end := idx + len(".exe")
		return command[:end], strings.Fields(command[end:])
	}
	fields := strings.Fields(command)
	return fields[0], fields[1:]
}

// Uninstall removes pkg from disk. It reports false without an error when
// there is nothing it can run, e.g. the uninstaller was already removed by
// hand.
func (i *Installer) Uninstall(ctx context.Context, pkg model.Package) (bool, error) {
	switch pkg.InstallInfo.Kind {
	case model.KindInstaller:
		return i.runUninstaller(ctx, pkg.InstallInfo.UninstallCommand)
	case model.KindExe, model.KindZip:
		return i.removeFolder(pkg)
	default:
		return false, nil
	}
}

func (i *Installer) runUninstaller(ctx context.Context, command string) (bool, error) {
	program, args := ParseUninstallCommand(command)
	if program == "" {
		return false, nil
	}
	if err := i.runner.Run(ctx, program, args...); err != nil {
		if isMissingProgram(err) {
			logger.Debug("uninstaller is gone", logger.Fields{"program": program, "error": err})
			return false, nil
		}
		if code, ok := exitCode(err); ok {
			logger.Debug("uninstaller exited with a non-zero status", logger.Fields{"program": program, "code": code})
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (i *Installer) removeFolder(pkg model.Package) (bool, error) {
	folder := pkg.InstallationFolder()
	if folder == "" {
		return false, nil
	}
	if err := os.RemoveAll(folder); err != nil {
		return false, pkgerrors.Wrapf(pkgerrors.Normalize(err), "failed to remove %s", folder)
	}
	if pkg.InstallInfo.CreateShortcut {
		if err := os.Remove(i.ShortcutPath(pkg.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, pkgerrors.Wrap(pkgerrors.Normalize(err), "failed to remove shortcut")
		}
	}
	return true, nil
}

// exitCode reports whether err is a process that ran and exited non-zero.
func exitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

func isMissingProgram(err error) bool {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
		return true
	}
	// ERROR_INVALID_NAME
	return strings.Contains(strings.ToLower(err.Error()), "syntax is incorrect")
}
