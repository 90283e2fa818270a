/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClassifier() Classifier {
	return NewClassifier(
		[]string{"spigot", "polymart", "builtbybit", "paid", "premium"},
		[]string{"not paid", "free plugin"},
	)
}

func TestIsPaidSource(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name   string
		source string
		paid   bool
	}{
		{"dollar prefix", "$12.50", true},
		{"dollar prefix with spaces", "  $5 on polymart", true},
		{"spigot url", "spigot.org", true},
		{"premium mixed case", "Premium Plugin", true},
		{"premium lower case", "premium plugin", true},
		{"builtbybit", "purchased via BuiltByBit", true},
		{"free text", "Free", false},
		{"empty", "", false},
		{"unrelated", "bundled with server", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.paid, c.IsPaidSource(tt.source))
		})
	}
}

func TestIsPaidSourceDeterministic(t *testing.T) {
	c := testClassifier()
	for i := 0; i < 3; i++ {
		assert.True(t, c.IsPaidSource("Premium Plugin"))
		assert.False(t, c.IsPaidSource("Free"))
	}
}

func TestClassifyNotes(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name  string
		notes string
		paid  bool
	}{
		{"plain paid", "paid resource from SpigotMC", true},
		{"capitalized paid", "Paid, license on file", true},
		{"free phrase wins", "not paid, bundled with server", false},
		{"free plugin phrase wins", "This free plugin was paid for by donations", false},
		{"no indicator", "maintained in-house", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.paid, c.ClassifyNotes(tt.notes))
		})
	}
}

func TestHasFreePhrase(t *testing.T) {
	c := testClassifier()

	assert.True(t, c.HasFreePhrase("definitely NOT PAID"))
	assert.True(t, c.HasFreePhrase("a Free Plugin we mirror"))
	assert.False(t, c.HasFreePhrase("paid"))
	assert.False(t, c.HasFreePhrase(""))
}

func TestNewClassifierDropsEmptyPhrases(t *testing.T) {
	c := NewClassifier([]string{" ", "", "Spigot "}, []string{""})

	assert.True(t, c.IsPaidSource("spigot.org"))
	// A blank phrase must never turn containment checks into match-everything.
	assert.False(t, c.IsPaidSource("some free source"))
	assert.False(t, c.HasFreePhrase("anything"))
}

func TestSkipString(t *testing.T) {
	s := Skip{Source: "matrix.csv", Ref: "row 4", Reason: "empty plugin name"}
	assert.Equal(t, "matrix.csv: row 4: empty plugin name", s.String())
}
