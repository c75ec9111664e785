// Package registry provides access to package registries (PyPI, npm).
//
// Registries are consumed through the Lookup interface, which returns
// latest-version metadata for a single package. Transport failures are
// reported as sentinel errors (ErrNotFound, ErrNetwork) so that callers can
// decide how to degrade; the analyzer converts them to sentinel metadata and
// never propagates them.
package registry

import (
	"context"
	"errors"
	"time"
)

const defaultTimeout = 5 * time.Second

var (
	// ErrNotFound is returned when a package doesn't exist in the registry.
	ErrNotFound = errors.New("package not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Package holds latest-version metadata resolved from a registry.
type Package struct {
	Name          string `json:"name"`           // Canonical package name
	Size          int64  `json:"size"`           // Artifact size in bytes, 0 if unknown
	Description   string `json:"description"`    // Short description, empty if unknown
	LatestVersion string `json:"latest_version"` // Latest published version, empty if unknown
}

// Lookup retrieves latest-version metadata for a package by name.
// Implementations must be safe for concurrent use.
type Lookup interface {
	// Name returns the registry identifier (e.g., "pypi", "npm").
	Name() string
	// Fetch retrieves metadata for pkg. Returns ErrNotFound if the package
	// doesn't exist and ErrNetwork for transport failures.
	Fetch(ctx context.Context, pkg string) (*Package, error)
}
