package github

import "github.com/glorpus-work/senget/pkg/model"

// Asset is a file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release is a GitHub release.
type Release struct {
	TagName   string  `json:"tag_name"`
	AssetsURL string  `json:"assets_url"`
	Assets    []Asset `json:"assets"`
}

// License is the license summary of a repository.
type License struct {
	Name string `json:"name"`
}

// Repository is a GitHub repository as returned by the search and repos endpoints.
type Repository struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	HTMLURL     string   `json:"html_url"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	License     *License `json:"license"`
}

type searchResponse struct {
	Items []Repository `json:"items"`
}

// ToModel converts the API shape into the persisted repository record.
func (r Repository) ToModel() model.Repository {
	repo := model.Repository{
		Name:     r.Name,
		FullName: r.FullName,
		URL:      r.HTMLURL,
	}
	if r.Description != nil {
		repo.Description = *r.Description
	}
	if r.Language != nil {
		repo.Language = *r.Language
	}
	if r.License != nil {
		repo.License = r.License.Name
	}
	return repo
}
