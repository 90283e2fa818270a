/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/craftops/plugaudit/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Definition is one plugin definition document with its paid classification.
type Definition struct {
	Name        string
	Notes       string
	Paid        bool
	LegacyMatch bool // classified through the legacy line-window fallback
}

// Unconverted definition docs keep their notes in a fixed block, lines 8
// through 12. The window only applies when no metadata block is present.
const (
	legacyWindowStart = 8
	legacyWindowEnd   = 12
)

// legacyNotesPattern matches a quoted notes assignment carrying the word
// "paid", the shape unconverted docs used before the metadata block existed.
var legacyNotesPattern = regexp.MustCompile(`(?i)notes\s*[:=]\s*["'][^"']*paid[^"']*["']`)

// leadingKeyPattern recognizes bare key: value metadata lines at the top of a
// document that has no fenced block.
var leadingKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*\s*:`)

// LoadDefinitions reads every plugin definition document under dir and
// classifies it as paid or free. The metadata notes field decides when
// present; docs without one fall back to the legacy line window.
func LoadDefinitions(dir string, classifier Classifier) ([]Definition, []Skip, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("definitions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("definitions path %s is not a directory", dir)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, nil, fmt.Errorf("scan definitions: %w", err)
	}

	var defs []Definition
	var skips []Skip
	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), ".md")
		content, err := os.ReadFile(match)
		if err != nil {
			return nil, nil, fmt.Errorf("read definition %s: %w", match, err)
		}

		def, skip := classifyDefinition(name, string(content), match, classifier)
		if skip != nil {
			skips = append(skips, *skip)
			logger.Debug("definition lacks notes", logger.String("plugin", name), logger.String("reason", skip.Reason))
		}
		defs = append(defs, def)
	}

	return defs, skips, nil
}

// classifyDefinition decides paid/free for one document. When the doc carries
// a metadata block, that block is authoritative even if it lacks notes.
func classifyDefinition(name, content, path string, classifier Classifier) (Definition, *Skip) {
	def := Definition{Name: name}

	if meta, ok := parseMetadata(content); ok {
		notes, hasNotes := notesField(meta)
		if !hasNotes {
			return def, &Skip{Source: path, Ref: name, Reason: "metadata block missing notes field"}
		}
		def.Notes = notes
		def.Paid = classifier.ClassifyNotes(notes)
		return def, nil
	}

	lines := splitLines(content)
	if len(lines) < legacyWindowStart {
		return def, &Skip{Source: path, Ref: name, Reason: "no metadata block and no legacy notes window"}
	}

	end := legacyWindowEnd
	if end > len(lines) {
		end = len(lines)
	}
	window := strings.Join(lines[legacyWindowStart-1:end], "\n")

	def.LegacyMatch = true
	if classifier.HasFreePhrase(window) {
		return def, nil
	}
	def.Paid = legacyNotesPattern.MatchString(window)
	return def, nil
}

// parseMetadata extracts a metadata map from a fenced frontmatter block or,
// failing that, from bare key: value leading lines.
func parseMetadata(content string) (map[string]interface{}, bool) {
	if block, ok := splitFrontmatter(content); ok {
		var m map[string]interface{}
		if err := yaml.Unmarshal([]byte(block), &m); err == nil && m != nil {
			return m, true
		}
		return nil, false
	}
	return leadingMetadata(content)
}

// splitFrontmatter returns the YAML between --- fences when the document
// opens with one.
func splitFrontmatter(content string) (string, bool) {
	lines := splitLines(content)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), true
		}
	}
	return "", false
}

// leadingMetadata parses consecutive key: value lines at the top of the
// document, stopping at the first blank line. Anything that is not a plain
// mapping line means there is no metadata block.
func leadingMetadata(content string) (map[string]interface{}, bool) {
	var block []string
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" {
			break
		}
		if !leadingKeyPattern.MatchString(line) {
			return nil, false
		}
		block = append(block, line)
	}
	if len(block) == 0 {
		return nil, false
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.Join(block, "\n")), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// notesField pulls the notes value out of a metadata map, stringifying
// non-string scalars.
func notesField(meta map[string]interface{}) (string, bool) {
	v, ok := meta["notes"]
	if !ok || v == nil {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
