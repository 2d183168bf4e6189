package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/senget/internal/ui"
	"github.com/glorpus-work/senget/pkg/config"
	"github.com/glorpus-work/senget/pkg/database"
	pkgerrors "github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/model"
)

// setupEnv writes a config rooted in a temp folder and points the global
// flags at it. It returns the root folder.
func setupEnv(t *testing.T) (string, *config.Config) {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "config.yaml")

	cfg := config.DefaultConfig()
	cfg.Settings.RootDir = root
	require.NoError(t, cfg.SaveConfig(path))

	verbose, noColor := false, true
	ConfigPath, Verbose, NoColor = &path, &verbose, &noColor
	t.Cleanup(func() { ConfigPath, Verbose, NoColor = nil, nil, nil })
	return root, cfg
}

func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := ui.Out
	ui.Out = buf
	ui.Init(false)
	t.Cleanup(func() { ui.Out = prev })
	return buf
}

func seed(t *testing.T, cfg *config.Config, pkgs ...model.Package) {
	t.Helper()
	store, err := database.Open(cfg.GetDatabasePath())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	for _, pkg := range pkgs {
		require.NoError(t, store.Add(pkg))
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func hattPackage(exe string) model.Package {
	repo := model.Repository{Name: "Hatt", FullName: "FrenchGithubUser/Hatt"}
	return model.NewPackage("0.3.1", repo, model.InstallInfo{Kind: model.KindZip, ExecutablePath: exe})
}

func TestListCmd(t *testing.T) {
	root, cfg := setupEnv(t)
	exe := filepath.Join(root, "Packages", "Hatt", "hatt.exe")
	senpwai := model.NewPackage("2.0.9", model.Repository{Name: "Senpwai", FullName: "SenZmaKi/Senpwai"},
		model.InstallInfo{Kind: model.KindInstaller})
	seed(t, cfg, hattPackage(exe), senpwai)

	t.Run("all packages", func(t *testing.T) {
		out := captureOut(t)
		require.NoError(t, execute(t, NewListCmd()))
		assert.Contains(t, out.String(), "Hatt")
		assert.Contains(t, out.String(), "0.3.1")
		assert.Contains(t, out.String(), filepath.Dir(exe))
		assert.Contains(t, out.String(), "Senpwai")
		assert.Contains(t, out.String(), "Unknown")
	})

	t.Run("fuzzy filter", func(t *testing.T) {
		out := captureOut(t)
		require.NoError(t, execute(t, NewListCmd(), "spw"))
		assert.Contains(t, out.String(), "Senpwai")
		assert.NotContains(t, out.String(), "Hatt")
	})

	t.Run("no match", func(t *testing.T) {
		out := captureOut(t)
		require.NoError(t, execute(t, NewListCmd(), "zzz"))
		assert.Contains(t, out.String(), "No installed packages found")
	})
}

func TestExportCmd(t *testing.T) {
	root, cfg := setupEnv(t)
	seed(t, cfg, hattPackage(filepath.Join(root, "hatt.exe")))
	out := captureOut(t)
	dir := t.TempDir()

	require.NoError(t, execute(t, NewExportCmd(), dir))

	data, err := os.ReadFile(filepath.Join(dir, model.ExportFileName))
	require.NoError(t, err)
	var exported []model.ExportedPackage
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "FrenchGithubUser/Hatt", exported[0].FullName)
	assert.Contains(t, out.String(), "Exported packages to")
}

func TestImportCmd_MissingFile(t *testing.T) {
	setupEnv(t)
	captureOut(t)

	err := execute(t, NewImportCmd(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, pkgerrors.ErrExportFileNotFound)
}

func TestPurgeCmd(t *testing.T) {
	root, cfg := setupEnv(t)
	kept := filepath.Join(root, "kept.exe")
	require.NoError(t, os.WriteFile(kept, []byte("MZ"), 0o600))
	keptPkg := model.NewPackage("1.0.0", model.Repository{Name: "Kept", FullName: "x/Kept"},
		model.InstallInfo{Kind: model.KindExe, ExecutablePath: kept})
	seed(t, cfg, hattPackage(filepath.Join(root, "gone", "hatt.exe")), keptPkg)

	out := captureOut(t)
	require.NoError(t, execute(t, NewPurgeCmd()))
	assert.Contains(t, out.String(), "Purged Hatt")
	assert.NotContains(t, out.String(), "Kept")

	out.Reset()
	require.NoError(t, execute(t, NewPurgeCmd()))
	assert.Contains(t, out.String(), "Nothing to purge")
}

func TestRunCmd_NotInstalled(t *testing.T) {
	setupEnv(t)
	captureOut(t)

	err := execute(t, NewRunCmd(), "hatt")
	assert.ErrorIs(t, err, pkgerrors.ErrNoInstalledPackage)
}

func TestInstallCmd_InvalidKind(t *testing.T) {
	setupEnv(t)

	err := execute(t, NewInstallCmd(), "hatt", "--dist-type", "tarball")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --dist-type")
}

func TestConfigCmd(t *testing.T) {
	root, _ := setupEnv(t)

	t.Run("set and get", func(t *testing.T) {
		out := captureOut(t)
		require.NoError(t, execute(t, NewConfigCmd(), "set", "keep_downloads", "true"))
		assert.Contains(t, out.String(), "Set keep_downloads to true")

		out.Reset()
		require.NoError(t, execute(t, NewConfigCmd(), "get", "keep_downloads"))
		assert.Equal(t, "true\n", out.String())
	})

	t.Run("derived folder", func(t *testing.T) {
		out := captureOut(t)
		require.NoError(t, execute(t, NewConfigCmd(), "get", "dists_dir"))
		assert.Equal(t, filepath.Join(root, "Package-Installers")+"\n", out.String())
	})

	t.Run("unknown key", func(t *testing.T) {
		captureOut(t)
		err := execute(t, NewConfigCmd(), "set", "colour", "blue")
		assert.ErrorIs(t, err, pkgerrors.ErrConfigUnknownKey)
	})

	t.Run("invalid value keeps file intact", func(t *testing.T) {
		captureOut(t)
		require.Error(t, execute(t, NewConfigCmd(), "set", "log_level", "loud"))
		cfg, err := config.LoadConfig(*ConfigPath)
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Settings.LogLevel)
	})

	t.Run("path", func(t *testing.T) {
		out := captureOut(t)
		require.NoError(t, execute(t, NewConfigCmd(), "path"))
		assert.Equal(t, *ConfigPath+"\n", out.String())
	})

	t.Run("show", func(t *testing.T) {
		out := captureOut(t)
		require.NoError(t, execute(t, NewConfigCmd(), "show"))
		for _, key := range config.Keys() {
			assert.Contains(t, out.String(), key)
		}
	})
}

func TestClearCacheCmd(t *testing.T) {
	_, cfg := setupEnv(t)
	dists := cfg.GetDistsDir()
	require.NoError(t, os.MkdirAll(dists, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dists, "hatt.zip"), bytes.Repeat([]byte{1}, 2<<20), 0o600))

	out := captureOut(t)
	require.NoError(t, execute(t, NewClearCacheCmd()))
	assert.Contains(t, out.String(), "Cleared 2 MBs")
	assert.NoFileExists(t, filepath.Join(dists, "hatt.zip"))
}

func TestCacheWarning(t *testing.T) {
	_, cfg := setupEnv(t)
	cfg.Settings.CacheWarnMB = 1
	require.NoError(t, cfg.SaveConfig(*ConfigPath))
	assert.Empty(t, CacheWarning())

	dists := cfg.GetDistsDir()
	require.NoError(t, os.MkdirAll(dists, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dists, "big.exe"), bytes.Repeat([]byte{1}, 2<<20), 0o600))
	assert.Equal(t, `Distributables cache folder is 2 MBs, run "senget clear-cache" to clean it up`, CacheWarning())

	cfg.Settings.KeepDownloads = true
	require.NoError(t, cfg.SaveConfig(*ConfigPath))
	assert.Empty(t, CacheWarning())
}

func TestCheckSelfUpdate_Disabled(t *testing.T) {
	_, cfg := setupEnv(t)
	cfg.Settings.CheckSelfUpdate = false
	require.NoError(t, cfg.SaveConfig(*ConfigPath))

	assert.Empty(t, CheckSelfUpdate(t.Context()))
}

func TestPrintError(t *testing.T) {
	t.Run("batch", func(t *testing.T) {
		out := captureOut(t)
		var batch pkgerrors.BatchErrors
		batch.Add("Hatt", pkgerrors.ErrNoValidDist)
		batch.Add("Senpwai", fmt.Errorf("dial tcp: lookup api.github.com: no such host"))

		PrintError(batch.Err())

		assert.Contains(t, out.String(), "2 package(s) failed")
		assert.Contains(t, out.String(), pkgerrors.ErrNoValidDist.Error())
		assert.Contains(t, out.String(), pkgerrors.ErrNetwork.Error())
	})

	t.Run("single", func(t *testing.T) {
		out := captureOut(t)
		PrintError(pkgerrors.ErrAlreadyUpToDate)
		assert.Contains(t, out.String(), pkgerrors.ErrAlreadyUpToDate.Error())
	})
}

func TestResolveDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	dir, err := resolveDir("")
	require.NoError(t, err)
	assert.Equal(t, wd, dir)

	dir, err = resolveDir("out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "out"), dir)
}
