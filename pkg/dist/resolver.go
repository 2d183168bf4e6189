package dist

import (
	"context"
	"strings"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/github"
	"github.com/glorpus-work/senget/pkg/model"
	"github.com/glorpus-work/senget/pkg/version"
)

// Source is the subset of the GitHub API the resolver needs.
type Source interface {
	Search(ctx context.Context, query string) ([]github.Repository, error)
	LatestRelease(ctx context.Context, fullName string) (*github.Release, error)
	Releases(ctx context.Context, fullName string) ([]github.Release, error)
	Assets(ctx context.Context, assetsURL string) ([]github.Asset, error)
}

// Resolver finds repositories and the distributable for a requested version.
type Resolver struct {
	source Source
}

// NewResolver creates a resolver backed by source.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Search returns the repositories GitHub reports for query.
func (r *Resolver) Search(ctx context.Context, query string) ([]model.Repository, error) {
	results, err := r.source.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	repos := make([]model.Repository, 0, len(results))
	for _, res := range results {
		repos = append(repos, res.ToModel())
	}
	return repos, nil
}

// Repository returns the first search result whose name or full name equals
// query, ignoring case.
func (r *Resolver) Repository(ctx context.Context, query string) (model.Repository, error) {
	repos, err := r.Search(ctx, query)
	if err != nil {
		return model.Repository{}, err
	}
	for _, repo := range repos {
		if repo.Matches(query) {
			return repo, nil
		}
	}
	return model.Repository{}, errors.ErrNoPackage
}

// Resolve returns the distributable of repo for requested, which is either a
// version or "latest". An empty preferred kind lets Select rank the assets.
func (r *Resolver) Resolve(ctx context.Context, repo model.Repository, requested string, preferred model.Kind) (Distributable, error) {
	assets, tagVersion, err := r.releaseAssets(ctx, repo, requested)
	if err != nil {
		return nil, err
	}
	if tagVersion == "" {
		return nil, errors.Wrapf(errors.ErrNoValidDist, "no release of %s matches version %s", repo.FullName, requested)
	}

	classified := Classify(assets, strings.ToLower(repo.Name))
	logger.Debug("classified release assets", logger.Fields{
		"repository": repo.FullName,
		"version":    tagVersion,
		"assets":     len(assets),
		"candidates": len(classified),
	})

	d := Select(classified, preferred, repo.Name, tagVersion)
	if d == nil {
		return nil, errors.ErrNoValidDist
	}
	return d, nil
}

func (r *Resolver) releaseAssets(ctx context.Context, repo model.Repository, requested string) ([]github.Asset, string, error) {
	if version.IsLatest(requested) {
		release, err := r.source.LatestRelease(ctx, repo.FullName)
		if err != nil || release == nil {
			return nil, "", err
		}
		token, ok := version.Extract(release.TagName)
		if !ok {
			return nil, "", nil
		}
		return release.Assets, token, nil
	}

	releases, err := r.source.Releases(ctx, repo.FullName)
	if err != nil {
		return nil, "", err
	}
	for _, release := range releases {
		token, ok := version.Match(release.TagName, requested)
		if !ok {
			continue
		}
		assets, err := r.source.Assets(ctx, release.AssetsURL)
		if err != nil {
			return nil, "", err
		}
		return assets, token, nil
	}
	return nil, "", nil
}
