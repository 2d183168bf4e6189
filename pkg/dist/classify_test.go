package dist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/senget/pkg/github"
	"github.com/glorpus-work/senget/pkg/model"
)

func assets(names ...string) []github.Asset {
	out := make([]github.Asset, 0, len(names))
	for _, n := range names {
		out = append(out, github.Asset{Name: n, BrowserDownloadURL: "https://dl/" + n})
	}
	return out
}

func TestFuzz(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MyApp-Setup-x64.exe", "myapp"},
		{"myapp.exe", "myapp"},
		{"MyApp", "myapp"},
		{"MyApp_portable_win32.zip", "myapp"},
		{"myapp-windows-amd64.msi", "myapp"},
		{"myapp-i386.exe", "myapp"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fuzz(tt.in))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		asset string
		kind  model.Kind
		keep  bool
		exact bool
	}{
		{"setup exe is an installer", "Bar-Setup.exe", model.KindInstaller, true, true},
		{"msi is an installer", "Bar-1.0.msi", model.KindInstaller, true, false},
		{"updater exe is an installer", "Bar-updater.exe", model.KindInstaller, true, false},
		{"plain exe is standalone", "bar.exe", model.KindExe, true, true},
		{"windows zip is an archive", "Bar-win64.zip", model.KindZip, true, true},
		{"arm exe rejected", "Bar-arm64.exe", "", false, false},
		{"arm zip rejected", "bar-ARM.zip", "", false, false},
		{"mac zip rejected", "Bar-mac.zip", "", false, false},
		{"darwin zip rejected", "bar_darwin.zip", "", false, false},
		{"linux zip rejected", "bar-linux.zip", "", false, false},
		{"foreign name rejected", "Other-Setup.exe", "", false, false},
		{"tarball dropped", "bar.tar.gz", "", false, false},
		{"dmg dropped", "bar.dmg", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(assets(tt.asset), "bar")
			if !tt.keep {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.kind, got[0].Kind)
			assert.Equal(t, tt.exact, got[0].ExactMatch)
			assert.Equal(t, tt.asset, got[0].FileTitle)
			assert.Equal(t, "https://dl/"+tt.asset, got[0].DownloadURL)
		})
	}
}

func TestClassify_NeverReturnsForeignAssets(t *testing.T) {
	got := Classify(assets("bar-arm64-setup.exe", "bar-linux-x64.zip", "bar-macos.zip", "bar-darwin-arm.zip"), "bar")
	assert.Empty(t, got)
}

func TestClassifyAndSelect_EndToEnd(t *testing.T) {
	classified := Classify(assets("Bar-Setup.exe", "Bar.zip", "Bar-arm64.exe"), "bar")
	require.Len(t, classified, 2)
	assert.Equal(t, model.KindInstaller, classified[0].Kind)
	assert.Equal(t, model.KindZip, classified[1].Kind)

	d := Select(classified, "", "Bar", "1.0.0")
	require.NotNil(t, d)
	installer, ok := d.(ThirdPartyInstaller)
	require.True(t, ok)
	assert.Equal(t, "Bar-Setup.exe", installer.FileTitle)
	assert.Equal(t, "Bar", installer.Name)
	assert.Equal(t, "1.0.0", installer.Version)
}
