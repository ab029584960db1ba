package moneypuck

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = "playerId,season,name,team\n1,2023,A,BOS\n"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/seasonSummary/2023/regular/skaters.csv", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	})
	mux.HandleFunc("/seasonSummary/2023/playoffs/skaters.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(payload))
		_ = gz.Close()
	})
	mux.HandleFunc("/extra/skaters.csv.zst", func(w http.ResponseWriter, r *http.Request) {
		enc, _ := zstd.NewWriter(nil)
		_, _ = w.Write(enc.EncodeAll([]byte(payload), nil))
		_ = enc.Close()
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSkatersPath(t *testing.T) {
	assert.Equal(t, "/seasonSummary/2023/regular/skaters.csv", SkatersPath(2023, false))
	assert.Equal(t, "/seasonSummary/2022/playoffs/skaters.csv", SkatersPath(2022, true))
}

func TestDownloadSkaters(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL + "/")
	dir := t.TempDir()

	path, err := c.DownloadSkaters(context.Background(), 2023, false, dir)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
	assert.Contains(t, path, "skaters_2023.csv")
}

func TestDownload_Compressed(t *testing.T) {
	srv := newServer(t)
	// Disable transparent gzip so the client sees the raw encoding.
	c := NewClient(srv.URL)
	c.http.Transport = &http.Transport{DisableCompression: true}
	dir := t.TempDir()

	path, err := c.DownloadSkaters(context.Background(), 2023, true, dir)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))

	path, err = c.Download(context.Background(), "/extra/skaters.csv.zst", dir, "zst.csv")
	require.NoError(t, err)
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
}

func TestDownload_HTTPError(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL)

	_, err := c.DownloadSkaters(context.Background(), 1999, false, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

// failingClose writes through to a real file but reports an error on Close.
type failingClose struct {
	*os.File
}

func (f failingClose) Close() error {
	_ = f.File.Close()
	return errors.New("no space left on device")
}

func TestDownload_CloseErrorRemovesFile(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL)
	c.create = func(name string) (io.WriteCloser, error) {
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		return failingClose{f}, nil
	}
	dir := t.TempDir()

	_, err := c.DownloadSkaters(context.Background(), 2023, false, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space left on device")

	_, statErr := os.Stat(filepath.Join(dir, "skaters_2023.csv"))
	assert.True(t, os.IsNotExist(statErr), "partial download must be removed")
}

func TestDownload_TruncatedBodyRemovesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	dir := t.TempDir()

	_, err := NewClient(srv.URL).Download(context.Background(), "/skaters.csv", dir, "out.csv")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "out.csv"))
	assert.True(t, os.IsNotExist(statErr))
}
