package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mwittig/packsize/pkg/errors"
)

// versionPrefixRE strips range operators (^, ~, >=, ...) from an npm version
// spec, leaving the bare version.
var versionPrefixRE = regexp.MustCompile(`^[^0-9]*`)

// PackageJSON parses package.json content. The dependencies and
// devDependencies maps are merged into one ordered sequence; a dev entry for
// an already-declared name overwrites the production version in place
// (last-write-wins), matching npm's effective install set.
type PackageJSON struct{}

func (p *PackageJSON) Type() string              { return "package.json" }
func (p *PackageJSON) Supports(name string) bool { return name == "package.json" }

func (p *PackageJSON) Parse(content []byte) ([]Requirement, error) {
	var file struct {
		Dependencies    json.RawMessage `json:"dependencies"`
		DevDependencies json.RawMessage `json:"devDependencies"`
	}
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseError, err, "invalid package.json")
	}

	deps, err := decodeOrdered(file.Dependencies)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseError, err, "invalid dependencies map")
	}
	devDeps, err := decodeOrdered(file.DevDependencies)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseError, err, "invalid devDependencies map")
	}

	var result []Requirement
	index := make(map[string]int)

	add := func(name, spec string) {
		req := Requirement{
			Name:    NormalizeName(name, Node),
			Version: versionPrefixRE.ReplaceAllString(spec, ""),
		}
		if i, ok := index[req.Name]; ok {
			result[i] = req
			return
		}
		index[req.Name] = len(result)
		result = append(result, req)
	}

	for _, e := range deps {
		add(e.key, e.value)
	}
	for _, e := range devDeps {
		add(e.key, e.value)
	}

	return result, nil
}

type entry struct {
	key   string
	value string
}

// decodeOrdered decodes a JSON object of string values preserving key order,
// which encoding/json maps discard. A missing field (nil raw) yields nil.
func decodeOrdered(raw json.RawMessage) ([]entry, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return entries, nil
}
