// Package manifest parses dependency manifests into normalized requirement
// records. Two ecosystems are supported: python (requirements.txt line
// format) and node (package.json with dependencies/devDependencies maps).
//
// Parsers preserve the declaration order of the manifest; downstream conflict
// detection depends on it.
package manifest

import (
	"strings"

	"github.com/mwittig/packsize/pkg/errors"
)

// Ecosystem identifies the packaging platform a manifest belongs to.
// It determines parser rules, registry shape, and base image sizes.
type Ecosystem string

const (
	Python Ecosystem = "python"
	Node   Ecosystem = "node"
)

// Ecosystems lists all supported ecosystems.
var Ecosystems = []Ecosystem{Python, Node}

// ParseEcosystem validates and canonicalizes an ecosystem tag.
// Returns an UNSUPPORTED_ECOSYSTEM error for anything but "python" or "node".
func ParseEcosystem(s string) (Ecosystem, error) {
	switch Ecosystem(strings.ToLower(strings.TrimSpace(s))) {
	case Python:
		return Python, nil
	case Node:
		return Node, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedEcosystem, "unsupported ecosystem %q (use 'python' or 'node')", s)
	}
}

// Requirement is a normalized (name, version constraint) pair extracted from
// a manifest. Name is the registry-identity key with ecosystem normalization
// already applied. Version is empty when the manifest declares no constraint.
type Requirement struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Parser reads requirement records from raw manifest content.
type Parser interface {
	// Parse extracts requirements in declaration order.
	Parse(content []byte) ([]Requirement, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "requirements.txt").
	Type() string
}

// ParserFor returns the parser for the given ecosystem.
func ParserFor(eco Ecosystem) (Parser, error) {
	switch eco {
	case Python:
		return &Requirements{}, nil
	case Node:
		return &PackageJSON{}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedEcosystem, "unsupported ecosystem %q (use 'python' or 'node')", string(eco))
	}
}

// Parse extracts requirements from content using the parser for eco.
func Parse(content []byte, eco Ecosystem) ([]Requirement, error) {
	p, err := ParserFor(eco)
	if err != nil {
		return nil, err
	}
	return p.Parse(content)
}

// NormalizeName converts a package name to its canonical registry form.
// Python names follow PEP 503 (lowercase, underscores become hyphens); npm
// names are already canonical and are only trimmed.
func NormalizeName(name string, eco Ecosystem) string {
	name = strings.TrimSpace(name)
	if eco == Python {
		return strings.ReplaceAll(strings.ToLower(name), "_", "-")
	}
	return name
}
