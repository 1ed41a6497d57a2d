package assets

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

var httpClient = &http.Client{
	Transport: &headerTransport{Transport: http.DefaultTransport},
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "goshaderdemos")
	return t.Transport.RoundTrip(req)
}

// Loader reads demo assets from the local filesystem or over http(s).
// Remote assets are cached on disk when CacheDir is set.
type Loader struct {
	Client   *http.Client
	CacheDir string
}

// NewLoader returns a Loader using the shared client. With useCache set the
// OS cache directory is used for remote assets.
func NewLoader(useCache bool) (*Loader, error) {
	l := &Loader{Client: httpClient}
	if useCache {
		dir, err := CacheDir("assets")
		if err != nil {
			return nil, fmt.Errorf("could not get cache directory: %w", err)
		}
		l.CacheDir = dir
	}
	return l, nil
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Resolve joins a root directory or base URL with a relative asset name.
func Resolve(root, name string) string {
	if root == "" || IsRemote(name) || filepath.IsAbs(name) {
		return name
	}
	if IsRemote(root) {
		u, err := url.Parse(root)
		if err != nil {
			return strings.TrimSuffix(root, "/") + "/" + name
		}
		u.Path = path.Join(u.Path, name)
		return u.String()
	}
	return filepath.Join(root, name)
}

// Fetch returns the bytes of a local file or remote URL.
func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if !IsRemote(ref) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ref, err)
		}
		return data, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid asset url %s: %w", ref, err)
	}

	var cachePath string
	if l.CacheDir != "" {
		cachePath = filepath.Join(l.CacheDir, cacheName(u))
		if data, err := os.ReadFile(cachePath); err == nil {
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = httpClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: bad response status: %s", ref, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if cachePath != "" {
		if err := os.WriteFile(cachePath, data, 0644); err != nil {
			log.Printf("Warning: failed to save %s to cache at %s: %v", ref, cachePath, err)
		}
	}
	return data, nil
}

// ShaderSources holds the two stages of a demo's shader program.
type ShaderSources struct {
	Vertex   string
	Fragment string
}

// LoadShaders fetches the vertex and fragment sources concurrently and
// returns once both have arrived. Either failure cancels the other fetch.
func (l *Loader) LoadShaders(ctx context.Context, vertexRef, fragmentRef string) (ShaderSources, error) {
	var src ShaderSources
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.Fetch(gctx, vertexRef)
		if err != nil {
			return fmt.Errorf("vertex shader: %w", err)
		}
		src.Vertex = string(data)
		return nil
	})
	g.Go(func() error {
		data, err := l.Fetch(gctx, fragmentRef)
		if err != nil {
			return fmt.Errorf("fragment shader: %w", err)
		}
		src.Fragment = string(data)
		return nil
	})
	if err := g.Wait(); err != nil {
		return ShaderSources{}, err
	}
	return src, nil
}
