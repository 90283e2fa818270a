/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// PlatformReport is the validation outcome for a platform categorization
// file. The file maps platform name to the list of plugins categorized under
// it. Platform and plugin name matching is byte-exact.
type PlatformReport struct {
	Path        string
	Platforms   map[string][]string // well-formed platform lists
	MissingKeys []string            // required platforms absent from the file
	BadShape    []string            // platforms whose value is not a list of strings
	Duplicates  map[string][]string // platform to names listed more than once
	MultiHomed  map[string][]string // plugin to platforms, when more than one
}

// Valid reports whether the file passed every structural check. Multi-homed
// plugins are informational and do not fail validation.
func (r *PlatformReport) Valid() bool {
	return len(r.MissingKeys) == 0 && len(r.BadShape) == 0 && len(r.Duplicates) == 0
}

// PlatformNames returns the well-formed platform names sorted.
func (r *PlatformReport) PlatformNames() []string {
	out := make([]string, 0, len(r.Platforms))
	for name := range r.Platforms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PluginCount returns the number of distinct plugin names across all
// well-formed platform lists.
func (r *PlatformReport) PluginCount() int {
	seen := make(map[string]bool)
	for _, names := range r.Platforms {
		for _, name := range names {
			seen[name] = true
		}
	}
	return len(seen)
}

// LoadPlatforms reads and validates a platform categorization file. required
// lists the platform keys that must be present; the order of required is
// preserved in MissingKeys.
func LoadPlatforms(path string, required []string) (*PlatformReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open platform file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse platform file %s: %w", path, err)
	}

	report := &PlatformReport{
		Path:       path,
		Platforms:  make(map[string][]string),
		Duplicates: make(map[string][]string),
		MultiHomed: make(map[string][]string),
	}

	for _, platform := range sortedRawKeys(raw) {
		var names []string
		if err := json.Unmarshal(raw[platform], &names); err != nil {
			report.BadShape = append(report.BadShape, platform)
			continue
		}
		report.Platforms[platform] = names

		counts := make(map[string]int)
		for _, name := range names {
			counts[name]++
		}
		var dups []string
		for name, n := range counts {
			if n > 1 {
				dups = append(dups, name)
			}
		}
		if len(dups) > 0 {
			sort.Strings(dups)
			report.Duplicates[platform] = dups
		}
	}

	for _, key := range required {
		if _, ok := raw[key]; !ok {
			report.MissingKeys = append(report.MissingKeys, key)
		}
	}

	homes := make(map[string][]string)
	for _, platform := range report.PlatformNames() {
		seen := make(map[string]bool)
		for _, name := range report.Platforms[platform] {
			if seen[name] {
				continue
			}
			seen[name] = true
			homes[name] = append(homes[name], platform)
		}
	}
	for name, platforms := range homes {
		if len(platforms) > 1 {
			report.MultiHomed[name] = platforms
		}
	}

	return report, nil
}
