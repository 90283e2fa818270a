/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVariance(t *testing.T) {
	path := writeTempFile(t, "variance.json",
		`{"PluginX": {"key1": {"srv1": "a", "srv2": "b"}}}`)

	records, skips, err := LoadVariance(path)
	require.NoError(t, err)
	assert.Empty(t, skips)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "PluginX", rec.Plugin)
	assert.Equal(t, 2, rec.ServerSpan)
	require.Len(t, rec.Keys, 1)
	assert.Equal(t, KeyVariance{Key: "key1", DistinctValues: 2, ServerCount: 2}, rec.Keys[0])
}

func TestLoadVarianceAgreementCountsOnce(t *testing.T) {
	path := writeTempFile(t, "variance.json",
		`{"PluginX": {"key1": {"srv1": "same", "srv2": "same", "srv3": "same"}}}`)

	records, _, err := LoadVariance(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	require.Len(t, records[0].Keys, 1)
	assert.Equal(t, 1, records[0].Keys[0].DistinctValues)
	assert.Equal(t, 3, records[0].Keys[0].ServerCount)
	assert.Equal(t, 3, records[0].ServerSpan)
}

func TestLoadVarianceStringifiesNonStringValues(t *testing.T) {
	// Object values with different key order stringify identically.
	path := writeTempFile(t, "variance.json",
		`{"PluginX": {"opts": {"srv1": {"a": 1, "b": 2}, "srv2": {"b": 2, "a": 1}, "srv3": [1, 2]}}}`)

	records, _, err := LoadVariance(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	require.Len(t, records[0].Keys, 1)
	assert.Equal(t, 2, records[0].Keys[0].DistinctValues)
	assert.Equal(t, 3, records[0].Keys[0].ServerCount)
}

func TestLoadVarianceServerSpanAcrossKeys(t *testing.T) {
	path := writeTempFile(t, "variance.json",
		`{"PluginX": {"key1": {"srv1": "a", "srv2": "b"}, "key2": {"srv2": "c", "srv3": "d"}}}`)

	records, _, err := LoadVariance(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, 3, rec.ServerSpan)
	require.Len(t, rec.Keys, 2)
	assert.Equal(t, "key1", rec.Keys[0].Key)
	assert.Equal(t, "key2", rec.Keys[1].Key)
}

func TestLoadVarianceRecordsSorted(t *testing.T) {
	path := writeTempFile(t, "variance.json",
		`{"Zeta": {"k": {"s": "v"}}, "Alpha": {"k": {"s": "v"}}}`)

	records, _, err := LoadVariance(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Alpha", records[0].Plugin)
	assert.Equal(t, "Zeta", records[1].Plugin)
}

func TestLoadVarianceSkipsMalformedEntries(t *testing.T) {
	path := writeTempFile(t, "variance.json",
		`{"Broken": ["not", "an", "object"], "PluginX": {"bad": "scalar", "empty": {}, "key1": {"srv1": "a"}}}`)

	records, skips, err := LoadVariance(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "PluginX", records[0].Plugin)
	require.Len(t, records[0].Keys, 1)
	assert.Equal(t, "key1", records[0].Keys[0].Key)

	require.Len(t, skips, 3)
	assert.Equal(t, "Broken", skips[0].Ref)
	assert.Equal(t, "PluginX.bad", skips[1].Ref)
	assert.Equal(t, "PluginX.empty", skips[2].Ref)
}

func TestLoadVarianceMissingFile(t *testing.T) {
	_, _, err := LoadVariance(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open variance file")
}

func TestLoadVarianceMalformedTopLevel(t *testing.T) {
	path := writeTempFile(t, "variance.json", `["not", "a", "map"]`)

	_, _, err := LoadVariance(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse variance file")
}
