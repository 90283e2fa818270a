/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/

// Package inventory loads plugin inventories from the fleet's export files:
// the deployment matrix CSV, baseline config documents, plugin definition
// docs, the per-plugin config variance dump, and the platform categorization
// file. Loaders read their whole input up front, classify what they can, and
// return skip diagnostics for records they had to drop.
package inventory

import (
	"fmt"
	"strings"
)

// Row is one record read from a tabular source, with provenance.
type Row struct {
	Path   string
	Line   int // 1-based physical row number, header rows included
	Fields []string
}

// Skip records one discarded malformed record and why it was dropped.
// Loaders accumulate these instead of failing the run; reports surface the
// count so data-quality gaps stay visible.
type Skip struct {
	Source string // file the record came from
	Ref    string // row number or entity reference within the source
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %s: %s", s.Source, s.Ref, s.Reason)
}

// Classifier applies the paid/free vocabulary to classification text. Phrase
// matching is case-insensitive substring containment; the phrase lists come
// from configuration.
type Classifier struct {
	paidPhrases []string
	freePhrases []string
}

// NewClassifier builds a classifier from configured phrase lists. Phrases are
// lowercased once here; empty phrases are dropped.
func NewClassifier(paidPhrases, freePhrases []string) Classifier {
	return Classifier{
		paidPhrases: lowerAll(paidPhrases),
		freePhrases: lowerAll(freePhrases),
	}
}

func lowerAll(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IsPaidSource reports whether spreadsheet source text marks a plugin as
// paid: a leading "$" or any vocabulary phrase as a substring.
func (c Classifier) IsPaidSource(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	if strings.HasPrefix(s, "$") {
		return true
	}
	for _, p := range c.paidPhrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// HasFreePhrase reports whether text contains any free-indicator phrase.
func (c Classifier) HasFreePhrase(text string) bool {
	s := strings.ToLower(text)
	for _, p := range c.freePhrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// ClassifyNotes applies the definition-document rules to a notes field. Any
// free-indicator phrase anywhere in the notes wins and the plugin is not
// paid; otherwise the word "paid" marks it paid.
func (c Classifier) ClassifyNotes(notes string) bool {
	if c.HasFreePhrase(notes) {
		return false
	}
	return strings.Contains(strings.ToLower(notes), "paid")
}
