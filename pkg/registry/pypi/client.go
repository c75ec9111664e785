// Package pypi implements the PyPI registry lookup.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwittig/packsize/pkg/registry"
)

const DefaultBaseURL = "https://pypi.org/pypi"

// Client fetches package metadata from the PyPI JSON API.
// All methods are safe for concurrent use.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates a PyPI client with the given per-request timeout.
// baseURL overrides the production API endpoint; pass "" for the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  registry.NewClient(timeout),
		baseURL: baseURL,
	}
}

// Name returns the registry identifier.
func (c *Client) Name() string { return "pypi" }

// Fetch retrieves metadata for a Python package.
//
// The artifact size is taken from the latest release's distributed files:
// the first pre-built wheel is preferred, falling back to the first source
// archive; a release with neither reports size 0.
func (c *Client) Fetch(ctx context.Context, pkg string) (*registry.Package, error) {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/json", c.baseURL, pkg), &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, fmt.Errorf("%w: pypi package %s", err, pkg)
		}
		return nil, err
	}

	desc := data.Info.Summary
	if desc == "" {
		desc = data.Info.Description
	}

	return &registry.Package{
		Name:          pkg,
		Size:          releaseSize(data.Releases[data.Info.Version]),
		Description:   desc,
		LatestVersion: data.Info.Version,
	}, nil
}

// releaseSize picks the representative artifact size for a release.
func releaseSize(files []releaseFile) int64 {
	var sdist int64
	var haveSdist bool
	for _, f := range files {
		switch f.PackageType {
		case "bdist_wheel":
			return f.Size
		case "sdist":
			if !haveSdist {
				sdist = f.Size
				haveSdist = true
			}
		}
	}
	return sdist
}

type apiResponse struct {
	Info     apiInfo                  `json:"info"`
	Releases map[string][]releaseFile `json:"releases"`
}

type apiInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type releaseFile struct {
	PackageType string `json:"packagetype"`
	Size        int64  `json:"size"`
}

// Ensure Client implements registry.Lookup.
var _ registry.Lookup = (*Client)(nil)
