package manifest

import (
	"testing"

	"github.com/mwittig/packsize/pkg/errors"
)

func TestPackageJSON_Parse(t *testing.T) {
	content := `{
  "name": "demo-app",
  "version": "1.0.0",
  "dependencies": {
    "express": "^4.18.0",
    "lodash": "~4.17.21"
  },
  "devDependencies": {
    "jest": ">=29.0.0"
  }
}`
	got, err := (&PackageJSON{}).Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Requirement{
		{Name: "express", Version: "4.18.0"},
		{Name: "lodash", Version: "4.17.21"},
		{Name: "jest", Version: "29.0.0"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d requirements, want %d: %v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("requirement[%d] = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestPackageJSON_Parse_DevOverridesProd(t *testing.T) {
	content := `{
  "dependencies": {"a": "^1.0.0", "b": "2.0.0"},
  "devDependencies": {"a": "2.0.0"}
}`
	got, err := (&PackageJSON{}).Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Requirement{
		{Name: "a", Version: "2.0.0"},
		{Name: "b", Version: "2.0.0"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("requirement[%d] = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestPackageJSON_Parse_Malformed(t *testing.T) {
	_, err := (&PackageJSON{}).Parse([]byte(`{"dependencies": `))
	if !errors.Is(err, errors.ErrCodeParseError) {
		t.Errorf("got %v, want INVALID_MANIFEST error", err)
	}
}

func TestPackageJSON_Parse_NoDependencies(t *testing.T) {
	got, err := (&PackageJSON{}).Parse([]byte(`{"name": "empty"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d requirements, want 0", len(got))
	}
}

func TestParseEcosystem(t *testing.T) {
	tests := []struct {
		in      string
		want    Ecosystem
		wantErr bool
	}{
		{"python", Python, false},
		{"node", Node, false},
		{"NODE", Node, false},
		{"ruby", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEcosystem(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeUnsupportedEcosystem) {
					t.Errorf("got %v, want UNSUPPORTED_ECOSYSTEM error", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseEcosystem(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
			}
		})
	}
}
