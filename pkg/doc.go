// Package pkg provides the core libraries for packsize dependency analysis.
//
// # Overview
//
// packsize inspects dependency manifests and estimates the container-image
// footprint of the declared packages. The pkg directory is organized into:
//
//  1. [manifest] - Manifest parsing (requirements.txt, package.json)
//  2. [registry] - Registry clients (PyPI, npm) with retry-aware transport
//  3. [cache] - Metadata cache backends (memory, Redis)
//  4. [analyzer] - Resolution, conflict detection, and size estimation
//  5. [store] - Report archive backends (memory, MongoDB)
//  6. [config] - TOML configuration loading
//
// # Architecture
//
// The typical data flow through packsize:
//
//	Manifest file(s)
//	         ↓
//	    [manifest] package (parse and merge requirements)
//	         ↓
//	    [analyzer] package (cached registry resolution, audits)
//	         ↓
//	    [analyzer] report (sizes, conflicts, image estimates)
//	         ↓
//	    CLI table / JSON / HTTP API / [store] archive
package pkg
