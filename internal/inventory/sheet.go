/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/craftops/plugaudit/pkg/logger"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SheetConfig describes the tabular layout of a deployment matrix export.
type SheetConfig struct {
	HeaderRows   int // leading rows that carry no data
	NameColumn   int // zero-based plugin-name column
	SourceColumn int // zero-based classification-text column
}

// SheetEntry is one classified deployment matrix record.
type SheetEntry struct {
	Name   string
	Source string
	Paid   bool
}

// Sheet is a loaded deployment matrix.
type Sheet struct {
	Path    string
	Entries []SheetEntry
	Skips   []Skip
}

// Names returns the plugin names in sheet order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		names = append(names, e.Name)
	}
	return names
}

// Paid returns the entries classified as paid, in sheet order.
func (s *Sheet) Paid() []SheetEntry {
	var out []SheetEntry
	for _, e := range s.Entries {
		if e.Paid {
			out = append(out, e)
		}
	}
	return out
}

// Free returns the entries classified as free, in sheet order.
func (s *Sheet) Free() []SheetEntry {
	var out []SheetEntry
	for _, e := range s.Entries {
		if !e.Paid {
			out = append(out, e)
		}
	}
	return out
}

// LoadSheet reads a deployment matrix CSV and classifies every usable row.
// Spreadsheet exports arrive with UTF-8 or UTF-16 byte order marks, so the
// reader decodes through a BOM-aware transformer. Rows that cannot carry a
// plugin name are recorded as skips, never errors; a missing file is fatal.
func LoadSheet(path string, cfg SheetConfig, classifier Classifier) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deployment matrix: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(f, decoder))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read deployment matrix %s: %w", path, err)
	}

	sheet := &Sheet{Path: path}
	for i, record := range records {
		line := i + 1
		if i < cfg.HeaderRows {
			continue
		}
		row := Row{Path: path, Line: line, Fields: record}

		if len(row.Fields) <= cfg.NameColumn {
			sheet.skip(row, fmt.Sprintf("row has %d columns, name column is %d", len(row.Fields), cfg.NameColumn))
			continue
		}
		name := strings.TrimSpace(row.Fields[cfg.NameColumn])
		if name == "" {
			sheet.skip(row, "empty plugin name")
			continue
		}

		// The classification column is optional; rows that stop short of it
		// classify as free.
		source := ""
		if len(row.Fields) > cfg.SourceColumn {
			source = strings.TrimSpace(row.Fields[cfg.SourceColumn])
		}

		sheet.Entries = append(sheet.Entries, SheetEntry{
			Name:   name,
			Source: source,
			Paid:   classifier.IsPaidSource(source),
		})
	}

	return sheet, nil
}

func (s *Sheet) skip(row Row, reason string) {
	skip := Skip{Source: row.Path, Ref: fmt.Sprintf("row %d", row.Line), Reason: reason}
	s.Skips = append(s.Skips, skip)
	logger.Debug("skipped matrix row", logger.String("ref", skip.Ref), logger.String("reason", reason))
}
