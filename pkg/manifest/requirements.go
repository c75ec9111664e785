package manifest

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// requirementRE matches a single requirements.txt line: a package name
// optionally followed by a comparator and a version. Anything after the
// match (extras, markers) is ignored.
var requirementRE = regexp.MustCompile(`^([a-zA-Z0-9\-._]+)(?:[=<>!~]+([a-zA-Z0-9\-._*]+))?`)

// Requirements parses Python requirements.txt content. Each non-blank,
// non-comment line yields at most one requirement; lines that do not look
// like a package spec (URLs, editable installs, pip options) are skipped.
type Requirements struct{}

func (r *Requirements) Type() string { return "requirements.txt" }

func (r *Requirements) Supports(name string) bool {
	return name == "requirements.txt" ||
		(strings.HasPrefix(name, "requirements") && strings.HasSuffix(name, ".txt"))
}

func (r *Requirements) Parse(content []byte) ([]Requirement, error) {
	var result []Requirement

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '-' {
			continue
		}
		if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			continue
		}
		m := requirementRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		result = append(result, Requirement{
			Name:    NormalizeName(m[1], Python),
			Version: m[2],
		})
	}

	return result, scanner.Err()
}
