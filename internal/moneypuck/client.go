// Package moneypuck downloads season summary exports from MoneyPuck.
package moneypuck

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// DefaultBaseURL is the root of the public player data exports.
const DefaultBaseURL = "https://moneypuck.com/moneypuck/playerData"

// Client is a minimal MoneyPuck download client.
type Client struct {
	baseURL string
	http    *http.Client
	create  func(name string) (io.WriteCloser, error)
}

func createFile(name string) (io.WriteCloser, error) { return os.Create(name) }

// NewClient returns a client rooted at baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		create:  createFile,
	}
}

// SkatersPath is the season summary path for a season's start year,
// e.g. 2023 for 2023-24.
func SkatersPath(season int, playoffs bool) string {
	kind := "regular"
	if playoffs {
		kind = "playoffs"
	}
	return fmt.Sprintf("/seasonSummary/%d/%s/skaters.csv", season, kind)
}

// get performs a GET against the export host and returns the body, decoded
// when the path or response says it is compressed.
func (c *Client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}

	switch {
	case strings.HasSuffix(path, ".zst") || resp.Header.Get("Content-Encoding") == "zstd":
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return readCloser{Reader: dec, closeFn: func() error {
			dec.Close()
			return resp.Body.Close()
		}}, nil
	case strings.HasSuffix(path, ".gz") || resp.Header.Get("Content-Encoding") == "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return readCloser{Reader: gz, closeFn: func() error {
			gz.Close()
			return resp.Body.Close()
		}}, nil
	}
	return resp.Body, nil
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (r readCloser) Close() error { return r.closeFn() }

// Download fetches path into dir/name and returns the written file path.
// A partial file is removed on failure.
func (c *Client) Download(ctx context.Context, path, dir, name string) (string, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	outPath := filepath.Join(dir, name)
	f, err := c.create(outPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("close %s: %w", outPath, err)
	}
	return outPath, nil
}

// DownloadSkaters fetches a season's skater summary into dir as
// skaters_<season>.csv.
func (c *Client) DownloadSkaters(ctx context.Context, season int, playoffs bool, dir string) (string, error) {
	name := fmt.Sprintf("skaters_%d.csv", season)
	if playoffs {
		name = fmt.Sprintf("skaters_%d_playoffs.csv", season)
	}
	return c.Download(ctx, SkatersPath(season, playoffs), dir, name)
}
