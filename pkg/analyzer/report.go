package analyzer

import (
	"time"

	"github.com/mwittig/packsize/pkg/manifest"
)

// Sentinel values substituted when real data cannot be obtained.
// Absence of registry or audit data is never an error.
const (
	// NoDescription is reported when a package description is unavailable.
	NoDescription = "No description available"
	// AuditUnavailable is reported when the security audit command fails.
	AuditUnavailable = "unavailable"
	// NoAudit is reported for ecosystems without an audit tool.
	NoAudit = "No security audit available"
)

// PackageInfo holds the resolved metadata for one declared requirement.
// Size defaults to 0 and the string fields to their sentinels when the
// registry lookup fails.
type PackageInfo struct {
	Name            string `json:"name"`
	Size            int64  `json:"size"`
	IsPaid          bool   `json:"is_paid"`
	Version         string `json:"version"`
	Description     string `json:"description"`
	LatestVersion   string `json:"latest_version"`
	Vulnerabilities string `json:"vulnerabilities"`
	Outdated        bool   `json:"outdated"`
}

// DockerSizeEstimate holds the estimated image footprint for the three
// packaging variants, in bytes. Derived, never persisted as source of truth.
type DockerSizeEstimate struct {
	Full   int64 `json:"full"`
	Slim   int64 `json:"slim"`
	Alpine int64 `json:"alpine"`
}

// Conflict records a version disagreement for one package name.
// FirstVersion is whichever version appeared earliest in input order.
type Conflict struct {
	Name               string `json:"name"`
	FirstVersion       string `json:"first_version"`
	ConflictingVersion string `json:"conflicting_version"`
}

// Report is the result of one analysis run.
type Report struct {
	ID          string             `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Ecosystem   manifest.Ecosystem `json:"ecosystem"`
	Packages    []PackageInfo      `json:"packages"`
	Estimate    DockerSizeEstimate `json:"docker_size_estimate"`
	Conflicts   []Conflict         `json:"conflicts"`
}
