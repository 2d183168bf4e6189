// Package platform wraps the operating system services the installers rely
// on: the uninstall registry, start-menu shortcuts and process execution.
// Registry and shortcut access is only implemented on Windows; elsewhere the
// accessors return ErrUnsupportedPlatform.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Hive selects the registry root an uninstall entry lives under.
type Hive int

// Registry hives that hold uninstall entries.
const (
	CurrentUser Hive = iota
	LocalMachine
)

// Hives lists the hives in lookup order.
var Hives = []Hive{CurrentUser, LocalMachine}

func (h Hive) String() string {
	switch h {
	case CurrentUser:
		return "HKCU"
	case LocalMachine:
		return "HKLM"
	default:
		return "unknown"
	}
}

// Registry reads the uninstall entries of a hive.
type Registry interface {
	// SubkeyNames lists the subkeys under UninstallKey.
	SubkeyNames(hive Hive) ([]string, error)
	// ReadString reads a string value of the subkey under UninstallKey.
	// A missing value yields an error matching fs.ErrNotExist.
	ReadString(hive Hive, subkey, name string) (string, error)
}

// Shortcuts resolves and creates .lnk files.
type Shortcuts interface {
	Resolve(linkPath string) (string, error)
	Create(targetPath, linkPath string) error
}

// StartMenuRoots are the per-user and machine-wide start-menu Programs folders.
type StartMenuRoots struct {
	User    string
	Machine string
}

// All returns the non-empty roots, user first.
func (r StartMenuRoots) All() []string {
	var roots []string
	for _, root := range []string{r.User, r.Machine} {
		if root != "" {
			roots = append(roots, root)
		}
	}
	return roots
}

// DefaultStartMenuRoots derives the Programs folders from APPDATA and
// PROGRAMDATA. A missing variable leaves its root empty.
func DefaultStartMenuRoots() StartMenuRoots {
	var roots StartMenuRoots
	if appData := os.Getenv("APPDATA"); appData != "" {
		roots.User = filepath.Join(appData, startMenuPrograms)
	}
	if programData := os.Getenv("PROGRAMDATA"); programData != "" {
		roots.Machine = filepath.Join(programData, startMenuPrograms)
	}
	return roots
}

// IsWindows reports whether the process runs on Windows.
func IsWindows() bool {
	return runtime.GOOS == OSWindows
}
