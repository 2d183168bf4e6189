// Package download streams release assets to local storage.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/senget/internal/logger"
	"github.com/glorpus-work/senget/pkg/dist"
	pkgerrors "github.com/glorpus-work/senget/pkg/errors"
	"github.com/glorpus-work/senget/pkg/fsutil"
	"github.com/glorpus-work/senget/pkg/model"
)

// ManagerImpl is an HTTP download manager that writes to a temp file and
// renames it into place once the body is complete.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
}

// NewManager creates a new download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = "Senget"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads a single item and returns the path to the downloaded file.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (string, error) {
	if opts.Dir == "" || !filepath.IsAbs(opts.Dir) {
		return "", fmt.Errorf("download dir must be absolute: %s: %w", opts.Dir, pkgerrors.ErrInvalidPath)
	}
	if err := os.MkdirAll(opts.Dir, fsutil.DirModeDefault); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.Normalize(err), "could not create download dir")
	}
	return m.fetchOne(ctx, item, opts)
}

// FetchDistributable downloads d into dir under its release file name.
func (m *ManagerImpl) FetchDistributable(ctx context.Context, d dist.Distributable, dir string, progress ProgressFunc) (string, error) {
	info := d.Info()
	u, err := url.Parse(info.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("invalid download url %q: %w", info.DownloadURL, pkgerrors.ErrDownloadFailed)
	}
	return m.Fetch(ctx, Item{
		URL:      u,
		Filename: info.FileTitle,
		Reuse:    d.Kind() == model.KindInstaller,
	}, Options{Dir: dir, Progress: progress})
}

func (m *ManagerImpl) fetchOne(ctx context.Context, item Item, opts Options) (string, error) {
	if item.URL == nil {
		return "", fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}
	absPath := filepath.Join(opts.Dir, selectFilename(item))
	if item.Reuse {
		if reuse, ok := tryReuseExisting(absPath); ok {
			logger.Debug("using cached download", logger.Fields{"path": reuse})
			return reuse, nil
		}
	}
	resp, err := m.doRequest(ctx, item)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.ContentLength < 0 {
		return "", fmt.Errorf("%s: %w", item.URL, pkgerrors.ErrContentLength)
	}
	tmpPath, err := writeBodyToTemp(resp, absPath, opts.Progress)
	if err != nil {
		return "", err
	}
	if err := finalizeFile(tmpPath, absPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return absPath, nil
}

func selectFilename(item Item) string {
	if item.Filename != "" {
		return filepath.Base(item.Filename)
	}
	if base := filepath.Base(item.URL.Path); base != "." && base != "/" && base != "" {
		return base
	}
	h := sha256.Sum256([]byte(item.URL.String()))
	return hex.EncodeToString(h[:])
}

func tryReuseExisting(absPath string) (string, bool) {
	if st, err := os.Stat(absPath); err == nil && st.Mode().IsRegular() && st.Size() > 0 {
		return absPath, true
	}
	return "", false
}

func (m *ManagerImpl) doRequest(ctx context.Context, item Item) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL.String(), http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.Normalize(err), "download failed")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

type progressWriter struct {
	written  int64
	total    int64
	progress ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.progress != nil {
		p.progress(p.written, p.total)
	}
	return len(b), nil
}

func writeBodyToTemp(resp *http.Response, absPath string, progress ProgressFunc) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.Normalize(err), "could not create temp file")
	}
	tmpPath := tmp.Name()
	fail := func(err error, msg string) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(pkgerrors.Normalize(err), msg)
	}

	counter := &progressWriter{total: resp.ContentLength, progress: progress}
	n, err := io.Copy(tmp, io.TeeReader(resp.Body, counter))
	if err != nil {
		return fail(err, "could not write file")
	}
	if n != resp.ContentLength {
		return fail(fmt.Errorf("got %d of %d bytes: %w", n, resp.ContentLength, io.ErrUnexpectedEOF), "incomplete download")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(pkgerrors.Normalize(err), "could not finalize file")
	}
	if err := os.Chmod(absPath, fsutil.FileModeExec); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}
