package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the distributable kind of a package.
type Kind string

// Supported kinds.
const (
	KindInstaller Kind = "installer" // third-party installer: exe or msi
	KindZip       Kind = "zip"       // archive
	KindExe       Kind = "exe"       // standalone executable
)

// Kinds lists every kind in selection priority order.
var Kinds = []Kind{KindInstaller, KindZip, KindExe}

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown distributable kind %q, expected one of installer, zip, exe", s)
}

// Priority ranks kinds for selection. Higher wins.
func (k Kind) Priority() int {
	switch k {
	case KindInstaller:
		return 3
	case KindZip:
		return 2
	case KindExe:
		return 1
	default:
		return 0
	}
}

// InstallInfo is the best-effort record of where a package ended up and how
// to remove it. Empty strings mean "unknown".
type InstallInfo struct {
	ExecutablePath     string `json:"executable_path,omitempty"`
	InstallationFolder string `json:"installation_folder,omitempty"`
	UninstallCommand   string `json:"uninstall_command,omitempty"`
	Kind               Kind   `json:"dist_type"`
	// ResolvedKind is the kind the release asset was selected as when it
	// differs from Kind, e.g. a standalone exe that turned out to be an
	// installer.
	ResolvedKind   Kind `json:"resolved_dist_type,omitempty"`
	CreateShortcut bool `json:"create_shortcut_file"`
}

// PreferredKind is the kind to select release assets by when the package is
// updated or exported.
func (info InstallInfo) PreferredKind() Kind {
	if info.ResolvedKind != "" {
		return info.ResolvedKind
	}
	return info.Kind
}

// MergeOver returns info with every empty field taken from previous.
func (info InstallInfo) MergeOver(previous InstallInfo) InstallInfo {
	merged := info
	if merged.ExecutablePath == "" {
		merged.ExecutablePath = previous.ExecutablePath
	}
	if merged.InstallationFolder == "" {
		merged.InstallationFolder = previous.InstallationFolder
	}
	if merged.UninstallCommand == "" {
		merged.UninstallCommand = previous.UninstallCommand
	}
	return merged
}

// Package is the persisted record of an installed package.
type Package struct {
	Version       string      `json:"version"`
	LowerName     string      `json:"lowercase_name"`
	LowerFullName string      `json:"lowercase_full_name"`
	Repository    Repository  `json:"repo"`
	InstallInfo   InstallInfo `json:"install_info"`
}

// NewPackage builds a record and fills the lookup keys.
func NewPackage(version string, repo Repository, info InstallInfo) Package {
	return Package{
		Version:       version,
		LowerName:     strings.ToLower(repo.Name),
		LowerFullName: strings.ToLower(repo.FullName),
		Repository:    repo,
		InstallInfo:   info,
	}
}

// Name returns the repository short name.
func (p Package) Name() string {
	return p.Repository.Name
}

// InstallationFolder returns the recorded installation folder, falling back
// to the executable's parent folder.
func (p Package) InstallationFolder() string {
	if p.InstallInfo.InstallationFolder != "" {
		return p.InstallInfo.InstallationFolder
	}
	if p.InstallInfo.ExecutablePath != "" {
		return filepath.Dir(p.InstallInfo.ExecutablePath)
	}
	return ""
}

// Export converts the record into its portable form.
func (p Package) Export() ExportedPackage {
	return ExportedPackage{
		FullName:       p.Repository.FullName,
		Version:        p.Version,
		Kind:           p.InstallInfo.PreferredKind(),
		CreateShortcut: p.InstallInfo.CreateShortcut,
	}
}

func (p Package) String() string {
	folder := p.InstallationFolder()
	if folder == "" {
		folder = "Unknown"
	}
	return fmt.Sprintf("%s\nVersion: %s\nInstallation Folder: %s", p.Repository, p.Version, folder)
}

// ExportedPackage is one entry of an export file.
type ExportedPackage struct {
	FullName       string `json:"full_name"`
	Version        string `json:"version"`
	Kind           Kind   `json:"preferred_dist_type"`
	CreateShortcut bool   `json:"create_shortcut_file"`
}

// ExportFileName is the default name of an export file.
const ExportFileName = "senget-packages.json"
