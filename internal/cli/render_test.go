package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwittig/packsize/pkg/analyzer"
	"github.com/mwittig/packsize/pkg/manifest"
)

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kibibytes", 2048, "2.0 KiB"},
		{"mebibytes", 5 * 1024 * 1024, "5.0 MiB"},
		{"fractional mebibytes", 1572864, "1.5 MiB"},
		{"gibibytes", 3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := humanBytes(tt.bytes); got != tt.want {
				t.Errorf("humanBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func sampleReport() *analyzer.Report {
	return &analyzer.Report{
		ID:          "test-report",
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Ecosystem:   manifest.Python,
		Packages: []analyzer.PackageInfo{
			{Name: "flask", Size: 2 * 1024 * 1024, Version: "2.0.1", LatestVersion: "3.0.0", Outdated: true, Description: "web framework"},
			{Name: "enterprise-pkg", Size: 1024, Version: "1.0.0", IsPaid: true, Description: analyzer.NoDescription},
		},
		Estimate: analyzer.DockerSizeEstimate{
			Full:   120 * 1024 * 1024,
			Slim:   60 * 1024 * 1024,
			Alpine: 35 * 1024 * 1024,
		},
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	renderReport(&buf, sampleReport())
	out := buf.String()

	for _, want := range []string{"flask", "enterprise-pkg", "2.0.1", "3.0.0", "120.0 MiB", "No version conflicts", "Paid packages detected", "test-report"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderReport output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportConflicts(t *testing.T) {
	report := sampleReport()
	report.Conflicts = []analyzer.Conflict{
		{Name: "flask", FirstVersion: "2.0.1", ConflictingVersion: ""},
	}

	var buf bytes.Buffer
	renderReport(&buf, report)
	out := buf.String()

	if !strings.Contains(out, "1 version conflict(s)") {
		t.Errorf("renderReport should report conflicts:\n%s", out)
	}
	if !strings.Contains(out, "(unpinned)") {
		t.Errorf("renderReport should show empty versions as unpinned:\n%s", out)
	}
	if strings.Contains(out, "No version conflicts") {
		t.Error("renderReport should not print the all-clear line with conflicts present")
	}
}

func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := writeReportJSON(sampleReport(), path); err != nil {
		t.Fatalf("writeReportJSON() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report file: %v", err)
	}

	var got analyzer.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}
	if got.ID != "test-report" {
		t.Errorf("ID = %q, want %q", got.ID, "test-report")
	}
	if len(got.Packages) != 2 {
		t.Errorf("len(Packages) = %d, want 2", len(got.Packages))
	}
}
