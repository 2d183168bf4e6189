package download

import (
	"context"
	"net/url"

	"github.com/glorpus-work/senget/pkg/dist"
)

// Manager defines the interface for downloading release assets.
type Manager interface {
	// Fetch downloads a single item into opts.Dir and returns the absolute
	// local file path.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)

	// FetchDistributable downloads d into dir. Installer downloads reuse a
	// file of the same name that is already there.
	FetchDistributable(ctx context.Context, d dist.Distributable, dir string, progress ProgressFunc) (string, error)
}

// Item represents one remote resource to download.
type Item struct {
	URL      *url.URL // source URL to download
	Filename string   // optional preferred filename; if empty, a name will be derived
	Reuse    bool     // return an existing non-empty file at the target path instead of downloading
}

// ProgressFunc receives the number of bytes written so far and the expected total.
type ProgressFunc func(written, total int64)

// Options control the behavior of the download manager.
type Options struct {
	Dir      string       // destination directory. Must be absolute.
	Progress ProgressFunc // optional
}
