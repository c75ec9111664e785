// Package npm implements the npm registry lookup.
package npm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwittig/packsize/pkg/registry"
)

const DefaultBaseURL = "https://registry.npmjs.org"

// Client fetches package metadata from the npm registry API.
// All methods are safe for concurrent use.
type Client struct {
	*registry.Client
	baseURL string
}

// NewClient creates an npm client with the given per-request timeout.
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
func (c *Client) Name() string { return "npm" }

// Fetch retrieves metadata for an npm package.
//
// The artifact size is taken from the latest tagged version's dist field,
// preferring unpackedSize and falling back to the tarball size; a version
// declaring neither reports size 0.
func (c *Client) Fetch(ctx context.Context, pkg string) (*registry.Package, error) {
	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+pkg, &data); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return nil, err
	}

	latest := data.DistTags.Latest

	var size int64
	if v, ok := data.Versions[latest]; ok {
		size = v.Dist.UnpackedSize
		if size == 0 {
			size = v.Dist.Size
		}
	}

	return &registry.Package{
		Name:          pkg,
		Size:          size,
		Description:   data.Description,
		LatestVersion: latest,
	}, nil
}

type registryResponse struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	DistTags    distTags                  `json:"dist-tags"`
	Versions    map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Dist dist `json:"dist"`
}

type dist struct {
	UnpackedSize int64 `json:"unpackedSize"`
	Size         int64 `json:"size"`
}

// Ensure Client implements registry.Lookup.
var _ registry.Lookup = (*Client)(nil)
