package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
)

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename config file")
	ErrConfigUnknownKey  = fmt.Errorf("unknown configuration key")

	// Resolution errors.
	ErrNoPackage         = fmt.Errorf("no package with the given name found")
	ErrNoValidDist       = fmt.Errorf("no valid distributable found for the package")
	ErrNoExecutableFound = fmt.Errorf("no executable found in the unpacked zip file")
	ErrNoExecutable      = fmt.Errorf("no executable found for the package")

	// State errors.
	ErrPackageAlreadyInstalled = fmt.Errorf("the package is already installed")
	ErrNoInstalledPackage      = fmt.Errorf("no installed package with the given name found")
	ErrAlreadyUpToDate         = fmt.Errorf("the package is already up to date")
	ErrVersionAlreadyInstalled = fmt.Errorf("the version of the package is already installed")
	ErrFailedToUninstall       = fmt.Errorf("auto-uninstallation failed. Manually uninstall the package and use --force flag to delete it from the package database")
	ErrExportFileNotFound      = fmt.Errorf("export file not found")

	// Execution errors.
	ErrNetwork             = fmt.Errorf("check your internet connection and try again")
	ErrPrivilege           = fmt.Errorf("rerun the command in an admin shell, e.g. if you're using Command Prompt, run it as an Administrator")
	ErrDownloadFailed      = fmt.Errorf("download failed")
	ErrContentLength       = fmt.Errorf("response has no valid content length")
	ErrInvalidPath         = fmt.Errorf("invalid path")
	ErrUnsupportedPlatform = fmt.Errorf("operation is only supported on windows")
	ErrGitHubAPI           = fmt.Errorf("github api request failed")

	// Hook errors.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

var networkMarkers = []string{
	"no such host",
	"incompletebody",
	"unexpected eof",
}

// Normalize maps low level failures onto the reportable kinds ErrNetwork and
// ErrPrivilege. The original error stays in the chain. Errors that already
// carry one of those kinds, or match neither, are returned as is.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, ErrNetwork) || stderrors.Is(err, ErrPrivilege) {
		return err
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range networkMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %w", ErrNetwork, err)
		}
	}
	if stderrors.Is(err, fs.ErrPermission) || strings.Contains(msg, "requires elevation") {
		return fmt.Errorf("%w: %w", ErrPrivilege, err)
	}
	return err
}

// Message returns the text shown to the user for err. Known kinds are reduced
// to their sentinel text; anything else keeps its full chain.
func Message(err error) string {
	err = Normalize(err)
	for _, known := range []error{ErrNetwork, ErrPrivilege} {
		if stderrors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
