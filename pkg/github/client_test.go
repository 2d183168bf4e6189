package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/senget/pkg/auth"
	"github.com/glorpus-work/senget/pkg/errors"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Senget", r.Header.Get("User-Agent"))
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[{"name":"Senpwai","full_name":"SenZmaKi/Senpwai","html_url":"https://github.com/SenZmaKi/Senpwai","description":"anime downloader","language":"Python","license":{"name":"GPL-3.0"}},{"name":"other","full_name":"x/other","html_url":"u","description":null,"language":null,"license":null}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "")
	repos, err := client.Search(context.Background(), "senpwai")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Contains(t, gotQuery, "q=senpwai")
	assert.Contains(t, gotQuery, "per_page=10")

	first := repos[0].ToModel()
	assert.Equal(t, "SenZmaKi/Senpwai", first.FullName)
	assert.Equal(t, "GPL-3.0", first.License)
	assert.Equal(t, "Python", first.Language)

	second := repos[1].ToModel()
	assert.Empty(t, second.Description)
	assert.Empty(t, second.License)
}

func TestClient_LatestRelease(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/repos/Foo/Bar/releases/latest": `{"tag_name":"v1.2.3","assets_url":"x","assets":[{"name":"Bar-Setup.exe","size":10,"browser_download_url":"https://dl/Bar-Setup.exe"}]}`,
	})
	client := NewClient(server.URL, time.Second, "Senget")

	release, err := client.LatestRelease(context.Background(), "Foo/Bar")
	require.NoError(t, err)
	require.NotNil(t, release)
	assert.Equal(t, "v1.2.3", release.TagName)
	require.Len(t, release.Assets, 1)
	assert.Equal(t, "https://dl/Bar-Setup.exe", release.Assets[0].BrowserDownloadURL)

	missing, err := client.LatestRelease(context.Background(), "Foo/Empty")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClient_ReleasesAndAssets(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/Foo/Bar/releases":
			_, _ = w.Write([]byte(`[{"tag_name":"v2.0.9","assets_url":"` + server.URL + `/assets/9"},{"tag_name":"v2.0.7","assets_url":"` + server.URL + `/assets/7"}]`))
		case "/assets/7":
			_, _ = w.Write([]byte(`[{"name":"Bar.zip","size":5,"browser_download_url":"https://dl/Bar.zip"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "Senget")
	releases, err := client.Releases(context.Background(), "Foo/Bar")
	require.NoError(t, err)
	require.Len(t, releases, 2)

	assets, err := client.Assets(context.Background(), releases[1].AssetsURL)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Bar.zip", assets[0].Name)
}

func TestClient_Repository(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/repos/Foo/Bar": `{"name":"Bar","full_name":"Foo/Bar","html_url":"https://github.com/Foo/Bar"}`,
	})
	client := NewClient(server.URL, time.Second, "Senget")

	repo, err := client.Repository(context.Background(), "Foo/Bar")
	require.NoError(t, err)
	require.NotNil(t, repo)
	assert.Equal(t, "Bar", repo.Name)

	missing, err := client.Repository(context.Background(), "Foo/Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "Senget")
	_, err := client.Releases(context.Background(), "Foo/Bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGitHubAPI)
}

func TestClient_BadJSON(t *testing.T) {
	server := newTestServer(t, map[string]string{"/repos/Foo/Bar/releases": `not json`})
	client := NewClient(server.URL, time.Second, "Senget")

	_, err := client.Releases(context.Background(), "Foo/Bar")
	assert.Error(t, err)
}

func TestClient_WithAuth(t *testing.T) {
	var gotAuth []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"name":"Bar","full_name":"Foo/Bar"}`))
	}))
	defer server.Close()

	anonymous := NewClient(server.URL, time.Second, "")
	_, err := anonymous.Repository(context.Background(), "Foo/Bar")
	require.NoError(t, err)

	authed := NewClient(server.URL, time.Second, "").WithAuth(auth.BearerAuth{Token: "ghp_abc"})
	_, err = authed.Repository(context.Background(), "Foo/Bar")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer ghp_abc"}, gotAuth)
}
