// Package dist turns the assets of a GitHub release into a single installable
// distributable: it classifies assets, ranks them and resolves the release
// that matches a requested version.
package dist

import (
	"fmt"

	"github.com/glorpus-work/senget/pkg/model"
)

// PackageInfo is the payload shared by every distributable kind.
type PackageInfo struct {
	Name        string
	FileTitle   string
	DownloadURL string
	Version     string
}

// Distributable is one of Standalone, Archive or ThirdPartyInstaller.
// Callers dispatch on the concrete type with a type switch.
type Distributable interface {
	Info() PackageInfo
	Kind() model.Kind
	sealed()
}

// Standalone is a bare runnable executable.
type Standalone struct{ PackageInfo }

// Archive is a zip bundle.
type Archive struct{ PackageInfo }

// ThirdPartyInstaller is an exe or msi that performs its own installation.
type ThirdPartyInstaller struct{ PackageInfo }

func (d Standalone) Info() PackageInfo          { return d.PackageInfo }
func (d Archive) Info() PackageInfo             { return d.PackageInfo }
func (d ThirdPartyInstaller) Info() PackageInfo { return d.PackageInfo }

func (Standalone) Kind() model.Kind          { return model.KindExe }
func (Archive) Kind() model.Kind             { return model.KindZip }
func (ThirdPartyInstaller) Kind() model.Kind { return model.KindInstaller }

func (Standalone) sealed()          {}
func (Archive) sealed()             {}
func (ThirdPartyInstaller) sealed() {}

// New builds the variant for kind around info.
func New(kind model.Kind, info PackageInfo) (Distributable, error) {
	switch kind {
	case model.KindExe:
		return Standalone{info}, nil
	case model.KindZip:
		return Archive{info}, nil
	case model.KindInstaller:
		return ThirdPartyInstaller{info}, nil
	default:
		return nil, fmt.Errorf("unknown distributable kind %q", kind)
	}
}

func (p PackageInfo) String() string {
	return fmt.Sprintf("%s %s (%s)", p.Name, p.Version, p.FileTitle)
}
