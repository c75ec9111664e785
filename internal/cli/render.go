package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwittig/packsize/pkg/analyzer"
)

// renderReport prints a human-readable summary of an analysis report.
func renderReport(w io.Writer, report *analyzer.Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title(fmt.Sprintf("Packages (%s)", report.Ecosystem)))
	fmt.Fprintln(w, packageTable(report.Packages))

	fmt.Fprintln(w)
	fmt.Fprintln(w, title("Estimated Docker image sizes"))
	fmt.Fprintf(w, "  full:   %s\n", humanBytes(report.Estimate.Full))
	fmt.Fprintf(w, "  slim:   %s\n", humanBytes(report.Estimate.Slim))
	fmt.Fprintf(w, "  alpine: %s\n", humanBytes(report.Estimate.Alpine))

	fmt.Fprintln(w)
	renderConflicts(w, report.Conflicts)

	if paid := paidPackages(report.Packages); len(paid) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleWarning.Render("Paid packages detected:"))
		for _, p := range paid {
			fmt.Fprintf(w, "  %s (check licensing costs before deploying)\n", p.Name)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, detail("report %s generated %s", report.ID, report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
}

// packageTable renders the per-package table with name, size, version, and
// status annotations.
func packageTable(packages []analyzer.PackageInfo) string {
	rows := make([][]string, 0, len(packages))
	for _, p := range packages {
		version := p.Version
		if version == "" {
			version = "-"
		}
		rows = append(rows, []string{p.Name, humanBytes(p.Size), version, p.LatestVersion, packageStatus(p)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Size", "Version", "Latest", "Status").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return styleCell
		}).
		String()
}

// packageStatus summarizes the paid/outdated annotations for one package.
func packageStatus(p analyzer.PackageInfo) string {
	var status string
	if p.Outdated {
		status = styleWarning.Render("outdated")
	}
	if p.IsPaid {
		if status != "" {
			status += ", "
		}
		status += styleWarning.Render("paid")
	}
	if status == "" {
		status = styleDim.Render("ok")
	}
	return status
}

func renderConflicts(w io.Writer, conflicts []analyzer.Conflict) {
	if len(conflicts) == 0 {
		fmt.Fprintln(w, styleSuccess.Render("No version conflicts"))
		return
	}
	fmt.Fprintln(w, styleConflict.Render(fmt.Sprintf("%d version conflict(s):", len(conflicts))))
	for _, c := range conflicts {
		fmt.Fprintf(w, "  %s: %s conflicts with %s\n",
			c.Name, displayVersion(c.ConflictingVersion), displayVersion(c.FirstVersion))
	}
}

func displayVersion(v string) string {
	if v == "" {
		return "(unpinned)"
	}
	return v
}

// paidPackages returns the packages flagged as paid, in input order.
func paidPackages(packages []analyzer.PackageInfo) []analyzer.PackageInfo {
	var paid []analyzer.PackageInfo
	for _, p := range packages {
		if p.IsPaid {
			paid = append(paid, p)
		}
	}
	return paid
}

// humanBytes formats a byte count using binary units (KiB, MiB, GiB).
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// printReportJSON writes the full report as indented JSON to w.
func printReportJSON(w io.Writer, report *analyzer.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeReportJSON writes the full report as indented JSON to path.
func writeReportJSON(report *analyzer.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
