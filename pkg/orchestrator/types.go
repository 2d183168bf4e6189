//go:generate mockgen -destination=./mocks/orchestrator.go . Resolver,Downloader,PackageInstaller,PackageStore,ScriptRunner,ProcessRunner

// Package orchestrator ties resolution, download, installation and the package
// database together into the package lifecycle operations behind each command.
package orchestrator

import (
	"context"

	"github.com/glorpus-work/senget/pkg/dist"
	"github.com/glorpus-work/senget/pkg/download"
	"github.com/glorpus-work/senget/pkg/hooks"
	"github.com/glorpus-work/senget/pkg/model"
)

// Resolver finds repositories and picks the distributable to install.
type Resolver interface {
	Search(ctx context.Context, query string) ([]model.Repository, error)
	Repository(ctx context.Context, query string) (model.Repository, error)
	Resolve(ctx context.Context, repo model.Repository, requested string, preferred model.Kind) (dist.Distributable, error)
}

// Downloader handles distributable downloading.
type Downloader interface {
	FetchDistributable(ctx context.Context, d dist.Distributable, dir string, progress download.ProgressFunc) (string, error)
}

// PackageInstaller is the subset of the installer used by the orchestrator.
type PackageInstaller interface {
	Install(ctx context.Context, d dist.Distributable, path string) (model.InstallInfo, error)
	Uninstall(ctx context.Context, pkg model.Package) (bool, error)
	CreateShortcut(name, target string) error
}

// PackageStore is the package database.
type PackageStore interface {
	Find(name string) (*model.Package, error)
	Add(pkg model.Package) error
	Remove(pkg model.Package) error
	Replace(old, updated model.Package) error
	ListAll() ([]model.Package, error)
}

// ScriptRunner runs user hook scripts.
type ScriptRunner interface {
	Run(hookType hooks.HookType, hc hooks.HookContext) error
}

// ProcessRunner starts installed programs.
type ProcessRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	Start(name string, args ...string) error
}

// Orchestrator ties Resolver, Downloader, Installer and Store together.
type Orchestrator struct {
	Resolver  Resolver
	DL        Downloader
	Installer PackageInstaller
	Store     PackageStore
	Scripts   ScriptRunner  // optional
	Runner    ProcessRunner // used by Run
	DistsDir  string        // where distributables are downloaded before installation
	Hooks     Hooks         // Hooks for progress and event notifications
}

// Event phases.
const (
	PhaseResolving    = "resolving"
	PhaseDownloading  = "downloading"
	PhaseInstalling   = "installing"
	PhaseUpdating     = "updating"
	PhaseUninstalling = "uninstalling"
	PhaseDone         = "done"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string
	ID    string // package name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent    func(Event)
	OnProgress func(id string, written, total int64)
}

// InstallOptions control orchestrator install execution.
type InstallOptions struct {
	Version        string     // empty means latest
	Kind           model.Kind // preferred kind, empty for none
	CreateShortcut bool       // only honoured for exe and zip packages
}

// UninstallOptions control orchestrator uninstall execution.
type UninstallOptions struct {
	Force bool // drop the record even when the uninstall step fails
}

// UninstallResult reports what Uninstall did.
type UninstallResult struct {
	Package     model.Package
	Uninstalled bool // false when only the record was removed
}

// DownloadOptions control orchestrator download execution.
type DownloadOptions struct {
	Version string
	Kind    model.Kind
	Dir     string // defaults to DistsDir
}

// Details is what Show reports: the installed record when there is one,
// otherwise the repository.
type Details struct {
	Installed  *model.Package
	Repository model.Repository
}

func (d Details) String() string {
	if d.Installed != nil {
		return d.Installed.String()
	}
	return d.Repository.String()
}
