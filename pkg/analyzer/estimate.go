package analyzer

import "github.com/mwittig/packsize/pkg/manifest"

const mib = 1024 * 1024

// baseSizes are the fixed per-ecosystem base image sizes for the three
// packaging variants.
var baseSizes = map[manifest.Ecosystem]DockerSizeEstimate{
	manifest.Python: {Full: 100 * mib, Slim: 40 * mib, Alpine: 15 * mib},
	manifest.Node:   {Full: 85 * mib, Slim: 35 * mib, Alpine: 12 * mib},
}

// EstimateImageSizes computes the image footprint estimate for the resolved
// package set: each variant is base + total package bytes + 15% install
// overhead (floored). Pure function; unknown package sizes contribute 0.
func EstimateImageSizes(packages []PackageInfo, eco manifest.Ecosystem) DockerSizeEstimate {
	var total int64
	for _, p := range packages {
		total += p.Size
	}
	overhead := total * 15 / 100

	base := baseSizes[eco]
	return DockerSizeEstimate{
		Full:   base.Full + total + overhead,
		Slim:   base.Slim + total + overhead,
		Alpine: base.Alpine + total + overhead,
	}
}
