/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/

// Package report renders audit results as sectioned plain text: a fixed
// width separator, a section title, one line per entity with a presence
// marker, and trailing count summaries. Output goes to a single io.Writer
// and is never written to files.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/craftops/plugaudit/internal/fleetdb"
	"github.com/craftops/plugaudit/internal/inventory"
	"github.com/craftops/plugaudit/internal/reconcile"
	"github.com/craftops/plugaudit/internal/sourcescan"
	"github.com/craftops/plugaudit/pkg/ascii"
)

const (
	separatorWidth = 50
	markPresent    = "✓"
	markMissing    = "✗"
)

// Renderer writes sectioned plain-text audit reports.
type Renderer struct {
	w         io.Writer
	maxDetail int
	titler    cases.Caser
}

// NewRenderer builds a renderer. maxDetail caps per-plugin detail lines in
// the variance report.
func NewRenderer(w io.Writer, maxDetail int) *Renderer {
	if maxDetail <= 0 {
		maxDetail = 10
	}
	return &Renderer{
		w:         w,
		maxDetail: maxDetail,
		titler:    cases.Title(language.English),
	}
}

func (r *Renderer) section(title string) {
	sep := strings.Repeat("=", separatorWidth)
	fmt.Fprintln(r.w, sep)
	fmt.Fprintln(r.w, title)
	fmt.Fprintln(r.w, sep)
}

func (r *Renderer) blank() {
	fmt.Fprintln(r.w)
}

func (r *Renderer) skipsFooter(skips []inventory.Skip) {
	if len(skips) == 0 {
		return
	}
	r.blank()
	fmt.Fprintf(r.w, "%d malformed rows skipped\n", len(skips))
}

// nameColumn returns the pad width for a list of names, one column wider
// than the longest.
func nameColumn(names []string) int {
	width := 0
	for _, name := range names {
		if w := ascii.StringWidth(name); w > width {
			width = w
		}
	}
	return width + 1
}

// Licenses renders the paid/free classification of a deployment matrix.
func (r *Renderer) Licenses(sheet *inventory.Sheet) {
	r.section("PLUGIN LICENSE AUDIT")

	paid := sheet.Paid()
	free := sheet.Free()

	width := nameColumn(sheet.Names())

	r.blank()
	fmt.Fprintf(r.w, "Paid plugins (%d):\n", len(paid))
	for _, e := range paid {
		fmt.Fprintf(r.w, "  %s %s %s\n", markPresent, ascii.PadRight(e.Name, width), e.Source)
	}

	r.blank()
	fmt.Fprintf(r.w, "Free plugins (%d):\n", len(free))
	for _, e := range free {
		fmt.Fprintf(r.w, "  %s %s %s\n", markPresent, ascii.PadRight(e.Name, width), e.Source)
	}

	r.blank()
	fmt.Fprintf(r.w, "Total plugins: %d\n", len(sheet.Entries))
	r.skipsFooter(sheet.Skips)
}

// Baseline renders the deployment matrix vs. baseline config reconciliation.
func (r *Renderer) Baseline(matrix reconcile.Collection, result reconcile.Result, skips []inventory.Skip) {
	r.section("BASELINE CONFIG RECONCILIATION")

	r.blank()
	fmt.Fprintln(r.w, "Plugins with baseline config:")
	for _, name := range result.Both {
		fmt.Fprintf(r.w, "  %s %s\n", markPresent, name)
	}

	r.blank()
	fmt.Fprintln(r.w, "Missing baseline config:")
	for _, name := range result.OnlyInA {
		fmt.Fprintf(r.w, "  %s %s\n", markMissing, name)
	}

	if len(result.OnlyInB) > 0 {
		r.blank()
		fmt.Fprintln(r.w, "Baseline configs not in deployment matrix:")
		for _, name := range result.OnlyInB {
			fmt.Fprintf(r.w, "  %s %s\n", markMissing, name)
		}
	}

	r.blank()
	fmt.Fprintf(r.w, "Plugins in deployment matrix: %d\n", matrix.Len())
	fmt.Fprintf(r.w, "Plugins with baseline config: %d\n", len(result.Both))
	fmt.Fprintf(r.w, "Missing baseline config: %d\n", len(result.OnlyInA))
	r.skipsFooter(skips)
}

// PaidScan renders the definition-document paid indicator scan.
func (r *Renderer) PaidScan(defs []inventory.Definition, skips []inventory.Skip) {
	r.section("PAID INDICATOR SCAN")

	var names []string
	paid := 0
	for _, d := range defs {
		if d.Paid {
			paid++
			names = append(names, d.Name)
		}
	}
	width := nameColumn(names)

	r.blank()
	fmt.Fprintf(r.w, "Flagged paid (%d):\n", paid)
	for _, d := range defs {
		if !d.Paid {
			continue
		}
		note := ""
		if d.LegacyMatch {
			note = "legacy line scan"
		}
		fmt.Fprintf(r.w, "  %s %s %s\n", markPresent, ascii.PadRight(d.Name, width), note)
	}

	r.blank()
	fmt.Fprintf(r.w, "Definition docs scanned: %d\n", len(defs))
	r.skipsFooter(skips)
}

// Variance renders per-plugin config variance records. Detail lines per
// plugin are capped; the overflow collapses into a single "and N more" line.
func (r *Renderer) Variance(records []inventory.VarianceRecord, skips []inventory.Skip) {
	r.section("CONFIG VARIANCE REPORT")

	for _, rec := range records {
		r.blank()
		fmt.Fprintln(r.w, rec.Plugin)
		fmt.Fprintf(r.w, "  Config keys with variance: %d\n", len(rec.Keys))
		fmt.Fprintf(r.w, "  Deployed on: %d servers\n", rec.ServerSpan)

		detail := rec.Keys
		if len(detail) > r.maxDetail {
			detail = detail[:r.maxDetail]
		}
		for _, kv := range detail {
			fmt.Fprintf(r.w, "  %s: %d different values across %d servers\n", kv.Key, kv.DistinctValues, kv.ServerCount)
		}
		if rest := len(rec.Keys) - r.maxDetail; rest > 0 {
			fmt.Fprintf(r.w, "  ... and %d more\n", rest)
		}
	}

	r.blank()
	fmt.Fprintf(r.w, "Plugins with variance: %d\n", len(records))
	r.skipsFooter(skips)
}

// Platforms renders the platform categorization validation outcome.
func (r *Renderer) Platforms(rep *inventory.PlatformReport) {
	r.section("PLATFORM CATEGORIZATION CHECK")

	names := rep.PlatformNames()
	width := nameColumn(names)

	r.blank()
	fmt.Fprintln(r.w, "Platforms:")
	for _, name := range names {
		fmt.Fprintf(r.w, "  %s %s %d plugins\n", markPresent, ascii.PadRight(r.titler.String(name), width), len(rep.Platforms[name]))
	}

	problems := 0
	for _, key := range rep.MissingKeys {
		problems++
		fmt.Fprintf(r.w, "  %s missing required platform: %s\n", markMissing, key)
	}
	for _, key := range rep.BadShape {
		problems++
		fmt.Fprintf(r.w, "  %s %s: not a list of plugin names\n", markMissing, key)
	}
	for _, platform := range sortedKeys(rep.Duplicates) {
		problems++
		fmt.Fprintf(r.w, "  %s %s: duplicate entries: %s\n", markMissing, platform, strings.Join(rep.Duplicates[platform], ", "))
	}

	if len(rep.MultiHomed) > 0 {
		r.blank()
		fmt.Fprintln(r.w, "Plugins on multiple platforms:")
		for _, name := range sortedKeys(rep.MultiHomed) {
			fmt.Fprintf(r.w, "  %s: %s\n", name, strings.Join(rep.MultiHomed[name], ", "))
		}
	}

	r.blank()
	fmt.Fprintf(r.w, "Platforms: %d\n", len(rep.Platforms))
	fmt.Fprintf(r.w, "Categorized plugins: %d\n", rep.PluginCount())
	if rep.Valid() {
		fmt.Fprintln(r.w, "Validation: PASSED")
	} else {
		fmt.Fprintf(r.w, "Validation: FAILED (%d problems)\n", problems)
	}
}

// Servers renders the fleet database instance inventory.
func (r *Renderer) Servers(summary *fleetdb.Summary) {
	r.section("SERVER INSTANCE INVENTORY")

	var servers []string
	for _, c := range summary.PerServer {
		servers = append(servers, c.Server)
	}
	width := nameColumn(servers)

	r.blank()
	fmt.Fprintln(r.w, "Instances by server:")
	for _, c := range summary.PerServer {
		fmt.Fprintf(r.w, "  %s %d\n", ascii.PadRight(c.Server, width), c.Instances)
	}

	var instanceNames []string
	for _, inst := range summary.Instances {
		instanceNames = append(instanceNames, inst.Name)
	}
	instWidth := nameColumn(instanceNames)

	r.blank()
	fmt.Fprintln(r.w, "Instances:")
	for _, inst := range summary.Instances {
		fmt.Fprintf(r.w, "  %s %s port %d\n", ascii.PadRight(inst.Name, instWidth), ascii.PadRight(inst.Server, width), inst.Port)
	}

	r.blank()
	fmt.Fprintf(r.w, "Total instances: %d\n", summary.Total)
}

// SourceScan renders hardcoded database reference findings.
func (r *Renderer) SourceScan(result *sourcescan.Result) {
	r.section("HARDCODED DATABASE REFERENCES")

	if result.Project != nil {
		r.blank()
		fmt.Fprintf(r.w, "Project: %s %s\n", result.Project.Name, result.Project.Version)
	}

	r.blank()
	if len(result.Findings) == 0 {
		fmt.Fprintln(r.w, "No hardcoded database references found.")
	} else {
		for _, f := range result.Findings {
			fmt.Fprintf(r.w, "  %s %s:%d [%s] %s\n", markMissing, f.Path, f.Line, f.Match, ascii.Truncate(f.Text, 80))
		}
	}

	r.blank()
	fmt.Fprintf(r.w, "Files scanned: %d\n", result.Scanned)
	fmt.Fprintf(r.w, "Findings: %d\n", len(result.Findings))
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
