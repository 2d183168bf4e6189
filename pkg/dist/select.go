package dist

import (
	"slices"

	"github.com/glorpus-work/senget/pkg/model"
)

// Select picks one distributable out of classified. With a preferred kind the
// first asset of that kind wins and no other kind is considered. Without one,
// assets are ranked by kind priority, installer > zip > exe, and within a kind
// exact name matches come first. It returns nil when nothing qualifies.
func Select(classified []ClassifiedAsset, preferred model.Kind, repoName, version string) Distributable {
	if len(classified) == 0 {
		return nil
	}

	var chosen *ClassifiedAsset
	if preferred != "" {
		for i := range classified {
			if classified[i].Kind == preferred {
				chosen = &classified[i]
				break
			}
		}
	} else {
		ranked := slices.Clone(classified)
		slices.SortStableFunc(ranked, compareRank)
		chosen = &ranked[0]
	}
	if chosen == nil {
		return nil
	}

	d, err := New(chosen.Kind, PackageInfo{
		Name:        repoName,
		FileTitle:   chosen.FileTitle,
		DownloadURL: chosen.DownloadURL,
		Version:     version,
	})
	if err != nil {
		// Classify only emits known kinds.
		panic(err)
	}
	return d
}

func compareRank(a, b ClassifiedAsset) int {
	if pa, pb := a.Kind.Priority(), b.Kind.Priority(); pa != pb {
		return pb - pa
	}
	switch {
	case a.ExactMatch == b.ExactMatch:
		return 0
	case a.ExactMatch:
		return -1
	default:
		return 1
	}
}
