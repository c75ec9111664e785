package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/mwittig/packsize/pkg/cache"
	"github.com/mwittig/packsize/pkg/manifest"
	"github.com/mwittig/packsize/pkg/registry"
)

func TestOutdated(t *testing.T) {
	tests := []struct {
		declared, latest string
		want             bool
	}{
		{"2.0.1", "2.3.2", true},
		{"2.3.2", "2.3.2", false},
		{"3.0.0", "2.3.2", false},
		{"", "2.3.2", false},
		{"2.0.1", "", false},
		{"not-a-version", "2.3.2", false},
		{"1.0", "1.1", true}, // two-segment versions parse as semver
	}

	for _, tt := range tests {
		t.Run(tt.declared+"_vs_"+tt.latest, func(t *testing.T) {
			if got := outdated(tt.declared, tt.latest); got != tt.want {
				t.Errorf("outdated(%q, %q) = %v, want %v", tt.declared, tt.latest, got, tt.want)
			}
		})
	}
}

type failingAuditor struct{}

func (failingAuditor) Audit(ctx context.Context, name string, eco manifest.Ecosystem) (string, error) {
	return "", fmt.Errorf("safety: command not found")
}

func TestResolver_AuditFailureDegradesToSentinel(t *testing.T) {
	lookup := newFakeLookup()
	lookup.packages["flask"] = &registry.Package{Name: "flask", Size: 10}

	r := &resolver{
		eco:     manifest.Python,
		lookup:  lookup,
		cache:   cache.NewMemoryCache(),
		auditor: failingAuditor{},
		warn:    func(string, ...any) {},
	}

	info := r.Resolve(context.Background(), manifest.Requirement{Name: "flask", Version: "1.0"})
	if info.Vulnerabilities != AuditUnavailable {
		t.Errorf("Vulnerabilities = %q, want sentinel %q", info.Vulnerabilities, AuditUnavailable)
	}
	if info.Size != 10 {
		t.Errorf("audit failure must not affect the registry lookup, Size = %d", info.Size)
	}
}

func TestResolver_InvalidNameSkipsLookup(t *testing.T) {
	lookup := newFakeLookup()

	r := &resolver{
		eco:     manifest.Python,
		lookup:  lookup,
		cache:   cache.NewMemoryCache(),
		auditor: NullAuditor{},
		warn:    func(string, ...any) {},
	}

	info := r.Resolve(context.Background(), manifest.Requirement{Name: "evil/../pkg"})
	if info.Size != 0 {
		t.Errorf("Size = %d, want 0", info.Size)
	}
	if len(lookup.calls) != 0 {
		t.Error("invalid names must not reach the registry")
	}
}

func TestExecAuditor_UnsupportedEcosystem(t *testing.T) {
	signal, err := (&ExecAuditor{}).Audit(context.Background(), "pkg", manifest.Ecosystem("ruby"))
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if signal != NoAudit {
		t.Errorf("signal = %q, want %q", signal, NoAudit)
	}
}
