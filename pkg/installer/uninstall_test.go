package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/senget/pkg/model"
)

func TestParseUninstallCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		program string
		args    []string
	}{
		{"msiexec", "MsiExec.exe /X{GUID}", "MsiExec.exe", []string{"/X{GUID}"}},
		{"quoted msiexec", `"C:\Windows\System32\msiexec.exe" /x {GUID} /qn`, `C:\Windows\System32\msiexec.exe`, []string{"/x", "{GUID}", "/qn"}},
		{"quoted program", `"C:\Programs\App\Uninstall App.exe" /S`, `C:\Programs\App\Uninstall App.exe`, []string{"/S"}},
		{"quoted program without args", `"C:\App\unins000.exe"`, `C:\App\unins000.exe`, []string{}},
		{"unquoted path with spaces", `C:\Program Files\App\unins000.exe /SILENT`, `C:\Program Files\App\unins000.exe`, []string{"/SILENT"}},
		{"no exe", "uninstall --all", "uninstall", []string{"--all"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, args := ParseUninstallCommand(tt.command)
			assert.Equal(t, tt.program, program)
			assert.ElementsMatch(t, tt.args, args)
		})
	}

	program, args := ParseUninstallCommand("   ")
	assert.Empty(t, program)
	assert.Nil(t, args)
}

func TestUninstall_Installer(t *testing.T) {
	tests := []struct {
		name      string
		command   string
		runErr    error
		want      bool
		wantErr   bool
		wantCalls int
	}{
		{name: "runs uninstaller", command: `"C:\App\unins000.exe" /SILENT`, want: true, wantCalls: 1},
		{name: "empty command", command: "", want: false, wantCalls: 0},
		{name: "uninstaller already gone", command: `C:\App\unins000.exe`, runErr: fmt.Errorf("start: %w", os.ErrNotExist), want: false, wantCalls: 1},
		{name: "not on path", command: "MsiExec.exe /X{A}", runErr: &exec.Error{Name: "MsiExec.exe", Err: exec.ErrNotFound}, want: false, wantCalls: 1},
		{name: "invalid name", command: `C:\App\unins000.exe`, runErr: fmt.Errorf("The filename, directory name, or volume label syntax is incorrect."), want: false, wantCalls: 1},
		{name: "uninstaller exited non-zero", command: `C:\App\unins000.exe`, runErr: fmt.Errorf("unins000.exe: %w", &exec.ExitError{}), want: true, wantCalls: 1},
		{name: "uninstaller could not start", command: `C:\App\unins000.exe`, runErr: fmt.Errorf("unins000.exe: %w", os.ErrPermission), wantErr: true, wantCalls: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, false)
			e.runner.err = tt.runErr
			pkg := model.NewPackage("1.0", model.Repository{Name: "App", FullName: "x/App"}, model.InstallInfo{
				Kind:             model.KindInstaller,
				UninstallCommand: tt.command,
			})

			got, err := e.inst.Uninstall(context.Background(), pkg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Len(t, e.runner.calls, tt.wantCalls)
		})
	}
}

func TestUninstall_Folder(t *testing.T) {
	e := newEnv(t, false)
	folder := filepath.Join(e.packages, "Hatt")
	exe := filepath.Join(folder, "Hatt.exe")
	writeFile(exe, "MZ")
	require.NoError(t, e.inst.CreateShortcut("Hatt", exe))

	pkg := model.NewPackage("1.0", model.Repository{Name: "Hatt", FullName: "x/Hatt"}, model.InstallInfo{
		Kind:               model.KindZip,
		ExecutablePath:     exe,
		InstallationFolder: folder,
		CreateShortcut:     true,
	})

	ok, err := e.inst.Uninstall(context.Background(), pkg)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoDirExists(t, folder)
	assert.NoFileExists(t, e.inst.ShortcutPath("Hatt"))
	assert.Empty(t, e.runner.calls)

	ok, err = e.inst.Uninstall(context.Background(), model.Package{InstallInfo: model.InstallInfo{Kind: model.KindExe}})
	require.NoError(t, err)
	assert.False(t, ok)
}
