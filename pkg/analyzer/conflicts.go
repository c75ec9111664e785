package analyzer

// FindConflicts detects version conflicts across the merged, order-preserved
// package sequence. The first version seen for a name wins; every later
// occurrence with a different version string yields one conflict record, so
// three distinct versions of the same package produce two records.
//
// Comparison is exact string inequality: an empty version conflicts with a
// concrete one. A requirement with no constraint arguably conflicts with
// nothing, but this matches the established report format.
func FindConflicts(packages []PackageInfo) []Conflict {
	firstSeen := make(map[string]string)
	var conflicts []Conflict

	for _, p := range packages {
		first, seen := firstSeen[p.Name]
		if !seen {
			firstSeen[p.Name] = p.Version
			continue
		}
		if first != p.Version {
			conflicts = append(conflicts, Conflict{
				Name:               p.Name,
				FirstVersion:       first,
				ConflictingVersion: p.Version,
			})
		}
	}

	return conflicts
}
