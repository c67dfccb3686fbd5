package hierarchy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ziadkadry99/fundmap/internal/progress"
)

// ErrStatus is returned by Fetch when the server answers with a non-2xx status.
var ErrStatus = errors.New("unexpected HTTP status")

// FetchOptions tunes a single Fetch call.
type FetchOptions struct {
	// Progress, when non-nil, is fed the body bytes as they download.
	Progress progress.Reporter
}

// Fetch performs one GET against url and decodes the body as a hierarchy.
// There is no retry: any transport, status, or decode failure is returned.
func Fetch(ctx context.Context, client *http.Client, url string, opts FetchOptions) (*Node, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: %w: %s", url, ErrStatus, resp.Status)
	}

	var body io.Reader = resp.Body
	if opts.Progress != nil {
		opts.Progress.Start(resp.ContentLength)
		defer opts.Progress.Finish()
		body = io.TeeReader(resp.Body, opts.Progress)
	}

	root, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return root, nil
}

// LoadFile reads a hierarchy from a local JSON file.
func LoadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	root, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return root, nil
}

// ErrTrailingData is returned by Decode when anything but whitespace follows
// the hierarchy document.
var ErrTrailingData = errors.New("unexpected data after hierarchy document")

// Decode parses a single JSON hierarchy document from r. The whole input
// must be that one document.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	var root Node
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return &root, nil
}
