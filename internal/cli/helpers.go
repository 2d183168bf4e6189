package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/internal/ui"
	"github.com/glorpus-work/senget/pkg/auth"
	"github.com/glorpus-work/senget/pkg/cache"
	"github.com/glorpus-work/senget/pkg/config"
	"github.com/glorpus-work/senget/pkg/database"
	"github.com/glorpus-work/senget/pkg/dist"
	"github.com/glorpus-work/senget/pkg/download"
	pkgerrors "github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/github"
	"github.com/glorpus-work/senget/pkg/hooks"
	"github.com/glorpus-work/senget/pkg/installer"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/glorpus-work/senget/pkg/orchestrator"
	"github.com/glorpus-work/senget/pkg/platform"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

// configFilePath returns the --config value or the default location.
func configFilePath() (string, error) {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath, nil
	}
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get default config path: %w", err)
	}
	return path, nil
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	return cfg, nil
}

// InitOutput configures logging and colours from the config and the global
// flags. A config that fails to load falls back to the defaults here; the
// command itself reports the load error.
func InitOutput() {
	noColor := NoColor != nil && *NoColor
	level := config.DefaultConfig().Settings.LogLevel
	if cfg, err := loadConfig(); err == nil {
		level = cfg.Settings.LogLevel
	} else if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.InitLogger(level, logger.FormatText, noColor)
	ui.Init(!noColor)
}

func newResolver(cfg *config.Config) *dist.Resolver {
	client := github.NewClient(github.DefaultBaseURL, cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent).
		WithAuth(auth.FromToken(cfg.Settings.GitHubToken))
	return dist.NewResolver(client)
}

func newCacheOperation(cfg *config.Config) *cache.CacheOperation {
	return cache.NewCacheOperation(cache.NewManager(cfg.GetDistsDir()))
}

// session holds the collaborators of one command invocation.
type session struct {
	cfg   *config.Config
	store *database.Store
	orch  *orchestrator.Orchestrator
}

// openSession loads the config, opens the package database and wires the
// orchestrator. Callers must Close the session.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := database.Open(cfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	inst := installer.New(installer.Options{
		PackagesDir:   cfg.GetPackagesDir(),
		KeepDownloads: cfg.Settings.KeepDownloads,
		StartMenu:     platform.DefaultStartMenuRoots(),
	}, platform.NewRegistry(), platform.NewShortcuts(), platform.NewRunner())

	orch := &orchestrator.Orchestrator{
		Resolver:  newResolver(cfg),
		DL:        download.NewManager(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent),
		Installer: inst,
		Store:     store,
		Scripts:   hooks.NewRunner(cfg.GetHooksDir()),
		Runner:    platform.NewRunner(),
		DistsDir:  cfg.GetDistsDir(),
	}

	s := &session{cfg: cfg, store: store, orch: orch}
	if self, ok := selfPackage(); ok {
		if err := orch.RegisterSelf(self); err != nil {
			logger.Warn("Failed to register senget in the package database", logger.Fields{"error": err})
		}
	}
	return s, nil
}

// Close releases the package database.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		logger.Debug("Failed to close package database", logger.Fields{"error": err})
	}
}

// withProgress runs fn with a spinner driven by the orchestrator hooks.
// Done events are printed once the spinner has stopped.
func (s *session) withProgress(message string, fn func() error) error {
	var done []string
	err := ui.WithSpinner(message, func(sp *ui.Spinner) error {
		s.orch.Hooks = orchestrator.Hooks{
			OnEvent: func(e orchestrator.Event) {
				logger.Debug(e.Msg, logger.Fields{"phase": e.Phase, "package": e.ID})
				if e.Phase == orchestrator.PhaseDone {
					done = append(done, e.Msg)
					return
				}
				sp.UpdateMessage(e.Msg)
			},
			OnProgress: func(_ string, written, total int64) {
				sp.Progress(written, total)
			},
		}
		return fn()
	})
	s.orch.Hooks = orchestrator.Hooks{}
	for _, msg := range done {
		ui.SuccessMsg("%s", msg)
	}
	return err
}

// selfPackage describes the running senget binary as a package record.
func selfPackage() (model.Package, bool) {
	if !platform.IsWindows() {
		return model.Package{}, false
	}
	exe, err := os.Executable()
	if err != nil {
		return model.Package{}, false
	}
	folder := filepath.Dir(exe)
	info := model.InstallInfo{
		ExecutablePath:     exe,
		InstallationFolder: folder,
		UninstallCommand:   installer.FindUninstaller(folder),
		Kind:               model.KindInstaller,
	}
	return model.NewPackage(Version, SelfRepository, info), true
}

// PrintError reports err to the user. Batch failures are rendered as a table.
func PrintError(err error) {
	var batch *pkgerrors.BatchErrors
	if errors.As(err, &batch) {
		ui.ErrorMsg("%d package(s) failed", batch.Len())
		table := ui.NewTable("Name", "Error")
		batch.Each(func(name string, err error) {
			table.AddRow(name, ui.Truncate(pkgerrors.Message(err), MaxErrorLength))
		})
		table.Render()
		return
	}
	ui.ErrorMsg("%s", pkgerrors.Message(err))
}
