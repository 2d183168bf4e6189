package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryMatches(t *testing.T) {
	repo := Repository{Name: "Senpwai", FullName: "SenZmaKi/Senpwai"}

	assert.True(t, repo.Matches("senpwai"))
	assert.True(t, repo.Matches("senzmaki/SENPWAI"))
	assert.False(t, repo.Matches("senp"))
	assert.Equal(t, "SenZmaKi", repo.Author())
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"installer", "ZIP", " exe "} {
		_, err := ParseKind(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseKind("tarball")
	assert.Error(t, err)
}

func TestKindPriority(t *testing.T) {
	assert.Greater(t, KindInstaller.Priority(), KindZip.Priority())
	assert.Greater(t, KindZip.Priority(), KindExe.Priority())
	assert.Greater(t, KindExe.Priority(), Kind("").Priority())
}

func TestInstallInfoMergeOver(t *testing.T) {
	previous := InstallInfo{
		ExecutablePath:     `C:\Apps\Foo\foo.exe`,
		InstallationFolder: `C:\Apps\Foo`,
		UninstallCommand:   `"C:\Apps\Foo\unins000.exe"`,
		Kind:               KindInstaller,
	}
	fresh := InstallInfo{ExecutablePath: `C:\Apps\Foo2\foo.exe`, Kind: KindInstaller}

	merged := fresh.MergeOver(previous)

	assert.Equal(t, `C:\Apps\Foo2\foo.exe`, merged.ExecutablePath)
	assert.Equal(t, `C:\Apps\Foo`, merged.InstallationFolder)
	assert.Equal(t, `"C:\Apps\Foo\unins000.exe"`, merged.UninstallCommand)
}

func TestNewPackageAndExport(t *testing.T) {
	repo := Repository{Name: "Hatt", FullName: "FrenchGithubUser/Hatt"}
	pkg := NewPackage("0.3.1", repo, InstallInfo{Kind: KindZip, CreateShortcut: true, ExecutablePath: "/opt/hatt/hatt.exe"})

	assert.Equal(t, "hatt", pkg.LowerName)
	assert.Equal(t, "frenchgithubuser/hatt", pkg.LowerFullName)
	assert.Equal(t, "/opt/hatt", pkg.InstallationFolder())

	exported := pkg.Export()
	require.Equal(t, "FrenchGithubUser/Hatt", exported.FullName)
	assert.Equal(t, "0.3.1", exported.Version)
	assert.Equal(t, KindZip, exported.Kind)
	assert.True(t, exported.CreateShortcut)
	assert.Contains(t, pkg.String(), "Version: 0.3.1")
}

func TestInstallInfoPreferredKind(t *testing.T) {
	tests := []struct {
		name string
		info InstallInfo
		want Kind
	}{
		{name: "installed as selected", info: InstallInfo{Kind: KindZip}, want: KindZip},
		{name: "exe run as installer", info: InstallInfo{Kind: KindInstaller, ResolvedKind: KindExe}, want: KindExe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.PreferredKind())
			pkg := NewPackage("1.0", Repository{Name: "Hatt", FullName: "a/Hatt"}, tt.info)
			assert.Equal(t, tt.want, pkg.Export().Kind)
		})
	}
}
