package dist

import (
	"strings"

	"github.com/glorpus-work/senget/pkg/github"
	"github.com/glorpus-work/senget/pkg/model"
)

// ClassifiedAsset is a release asset that passed classification.
type ClassifiedAsset struct {
	FileTitle   string
	DownloadURL string
	Kind        model.Kind
	ExactMatch  bool
}

var (
	installerMarkers = []string{"install", "setup", "update"}
	foreignOSMarkers = []string{"mac", "darwin", "linux"}

	// Stripped in this order.
	fuzzTokens = []string{
		"installer", "update", "updater", "setup", "msi", "zip", "portable", "port",
		"exe", "windows", "win", "x", "bit", "amd64", "amd", "i386", "386", "86", "64", "32",
	}
	fuzzPunctuation = strings.NewReplacer("-", "", "_", "", ".", "")
)

// Fuzz normalises a file or repository name by stripping punctuation and
// packaging tokens, so "MyApp-Setup-x64.exe" and "myapp.exe" compare equal.
func Fuzz(name string) string {
	s := fuzzPunctuation.Replace(strings.ToLower(name))
	for _, token := range fuzzTokens {
		s = strings.ReplaceAll(s, token, "")
	}
	return s
}

// Classify keeps the assets that look like Windows distributables of the
// repository named repoNameLower and assigns each a kind. Unusable assets are
// dropped silently; an empty result means the release has nothing to install.
func Classify(assets []github.Asset, repoNameLower string) []ClassifiedAsset {
	fuzzedRepo := Fuzz(repoNameLower)
	var classified []ClassifiedAsset
	for _, asset := range assets {
		kind, ok := classifyName(strings.ToLower(asset.Name), repoNameLower)
		if !ok {
			continue
		}
		classified = append(classified, ClassifiedAsset{
			FileTitle:   asset.Name,
			DownloadURL: asset.BrowserDownloadURL,
			Kind:        kind,
			ExactMatch:  Fuzz(asset.Name) == fuzzedRepo,
		})
	}
	return classified
}

func classifyName(lower, repoNameLower string) (model.Kind, bool) {
	if strings.Contains(lower, "arm") || !strings.Contains(lower, repoNameLower) {
		return "", false
	}
	switch {
	case strings.HasSuffix(lower, ".msi"):
		return model.KindInstaller, true
	case strings.HasSuffix(lower, ".exe"):
		if containsAny(lower, installerMarkers) {
			return model.KindInstaller, true
		}
		return model.KindExe, true
	case strings.HasSuffix(lower, ".zip"):
		if containsAny(lower, foreignOSMarkers) {
			return "", false
		}
		return model.KindZip, true
	default:
		return "", false
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
