/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefsDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// legacyDoc builds a document whose notes line sits at the given 1-based
// line number, with filler around it.
func legacyDoc(noteLine int, note string, totalLines int) string {
	lines := make([]string, totalLines)
	for i := range lines {
		lines[i] = "filler line"
	}
	lines[0] = "# Plugin"
	if noteLine >= 1 && noteLine <= totalLines {
		lines[noteLine-1] = note
	}
	return strings.Join(lines, "\n") + "\n"
}

func loadSingleDef(t *testing.T, content string) (Definition, []Skip) {
	t.Helper()
	dir := writeDefsDir(t, map[string]string{"PluginX.md": content})
	defs, skips, err := LoadDefinitions(dir, testClassifier())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	return defs[0], skips
}

func TestLoadDefinitionsFrontmatterPaid(t *testing.T) {
	doc := "---\nnotes: Paid resource from SpigotMC\nowner: ops\n---\n\n# PluginX\n"
	def, skips := loadSingleDef(t, doc)

	assert.Equal(t, "PluginX", def.Name)
	assert.True(t, def.Paid)
	assert.False(t, def.LegacyMatch)
	assert.Equal(t, "Paid resource from SpigotMC", def.Notes)
	assert.Empty(t, skips)
}

func TestLoadDefinitionsFrontmatterFreePhraseWins(t *testing.T) {
	doc := "---\nnotes: not paid, mirrored from upstream\n---\n# PluginX\n"
	def, skips := loadSingleDef(t, doc)

	assert.False(t, def.Paid)
	assert.Empty(t, skips)
}

func TestLoadDefinitionsFrontmatterMissingNotes(t *testing.T) {
	doc := "---\nowner: ops\n---\n# PluginX\n"
	def, skips := loadSingleDef(t, doc)

	assert.False(t, def.Paid)
	assert.False(t, def.LegacyMatch)
	require.Len(t, skips, 1)
	assert.Equal(t, "PluginX", skips[0].Ref)
	assert.Contains(t, skips[0].Reason, "missing notes")
}

func TestLoadDefinitionsFrontmatterScalarNotes(t *testing.T) {
	doc := "---\nnotes: 42\n---\n# PluginX\n"
	def, skips := loadSingleDef(t, doc)

	assert.Equal(t, "42", def.Notes)
	assert.False(t, def.Paid)
	assert.Empty(t, skips)
}

func TestLoadDefinitionsLeadingMetadata(t *testing.T) {
	doc := "notes: paid license renewed yearly\nowner: ops\n\n# PluginX\n"
	def, skips := loadSingleDef(t, doc)

	assert.True(t, def.Paid)
	assert.False(t, def.LegacyMatch)
	assert.Empty(t, skips)
}

func TestLoadDefinitionsLegacyWindowPaid(t *testing.T) {
	doc := legacyDoc(10, `notes: "paid resource"`, 14)
	def, skips := loadSingleDef(t, doc)

	assert.True(t, def.Paid)
	assert.True(t, def.LegacyMatch)
	assert.Empty(t, skips)
}

func TestLoadDefinitionsLegacyWindowUnquotedIgnored(t *testing.T) {
	doc := legacyDoc(10, "notes: paid", 14)
	def, _ := loadSingleDef(t, doc)

	assert.False(t, def.Paid)
	assert.True(t, def.LegacyMatch)
}

func TestLoadDefinitionsLegacyWindowFreePhraseWins(t *testing.T) {
	doc := legacyDoc(9, `this free plugin replaced notes: "paid"`, 14)
	def, _ := loadSingleDef(t, doc)

	assert.False(t, def.Paid)
	assert.True(t, def.LegacyMatch)
}

func TestLoadDefinitionsLegacyOutsideWindow(t *testing.T) {
	doc := legacyDoc(14, `notes: "paid resource"`, 16)
	def, _ := loadSingleDef(t, doc)

	assert.False(t, def.Paid)
	assert.True(t, def.LegacyMatch)
}

func TestLoadDefinitionsShortDoc(t *testing.T) {
	def, skips := loadSingleDef(t, "# PluginX\nshort doc\n")

	assert.False(t, def.Paid)
	assert.False(t, def.LegacyMatch)
	require.Len(t, skips, 1)
	assert.Contains(t, skips[0].Reason, "no legacy notes window")
}

func TestLoadDefinitionsIgnoresNonMarkdown(t *testing.T) {
	dir := writeDefsDir(t, map[string]string{
		"PluginX.md": "---\nnotes: paid\n---\n",
		"notes.txt":  "notes: \"paid\"\n",
	})

	defs, _, err := LoadDefinitions(dir, testClassifier())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "PluginX", defs[0].Name)
}

func TestLoadDefinitionsMissingDir(t *testing.T) {
	_, _, err := LoadDefinitions(filepath.Join(t.TempDir(), "absent"), testClassifier())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitions directory")
}
