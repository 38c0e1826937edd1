package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
)

// Opener opens the resource a parameter URI names.
type Opener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// DefaultOpener handles file: and http(s): URIs as well as plain paths.
// Relative paths are resolved against Base when it is set.
type DefaultOpener struct {
	Base   string
	Client *http.Client
}

// Open implements Opener.
func (o DefaultOpener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return o.openHTTP(ctx, uri)
	case strings.HasPrefix(uri, "file:"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", internalerr.ErrInvalidConfig, uri, err)
		}
		path := u.Path
		if path == "" {
			// file:relative/path
			path = u.Opaque
		}
		return o.openFile(path)
	default:
		return o.openFile(uri)
	}
}

func (o DefaultOpener) openFile(path string) (io.ReadCloser, error) {
	if o.Base != "" && !filepath.IsAbs(path) {
		path = filepath.Join(o.Base, path)
	}
	return os.Open(path)
}

func (o DefaultOpener) openHTTP(ctx context.Context, uri string) (io.ReadCloser, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: %s", internalerr.ErrStoreUnavailable, uri, resp.Status)
	}
	return resp.Body, nil
}
