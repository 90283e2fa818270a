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

var requiredPlatforms = []string{"paper", "spigot", "velocity"}

func TestLoadPlatformsValid(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{
		"paper": ["EssentialsX", "Vault"],
		"spigot": ["WorldEdit"],
		"velocity": []
	}`)

	report, err := LoadPlatforms(path, requiredPlatforms)
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.Empty(t, report.MissingKeys)
	assert.Empty(t, report.BadShape)
	assert.Empty(t, report.Duplicates)
	assert.Equal(t, []string{"paper", "spigot", "velocity"}, report.PlatformNames())
	assert.Equal(t, 3, report.PluginCount())
}

func TestLoadPlatformsMissingRequiredKey(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{"paper": ["Vault"]}`)

	report, err := LoadPlatforms(path, requiredPlatforms)
	require.NoError(t, err)

	assert.False(t, report.Valid())
	assert.Equal(t, []string{"spigot", "velocity"}, report.MissingKeys)
}

func TestLoadPlatformsKeyMatchingIsCaseSensitive(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{
		"Paper": ["Vault"],
		"spigot": [],
		"velocity": []
	}`)

	report, err := LoadPlatforms(path, requiredPlatforms)
	require.NoError(t, err)

	assert.False(t, report.Valid())
	assert.Equal(t, []string{"paper"}, report.MissingKeys)
}

func TestLoadPlatformsBadShape(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{
		"paper": {"EssentialsX": true},
		"spigot": ["WorldEdit"],
		"velocity": []
	}`)

	report, err := LoadPlatforms(path, requiredPlatforms)
	require.NoError(t, err)

	assert.False(t, report.Valid())
	assert.Equal(t, []string{"paper"}, report.BadShape)
	assert.NotContains(t, report.Platforms, "paper")
}

func TestLoadPlatformsDuplicatesWithinPlatform(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{
		"paper": ["Vault", "EssentialsX", "Vault"],
		"spigot": [],
		"velocity": []
	}`)

	report, err := LoadPlatforms(path, requiredPlatforms)
	require.NoError(t, err)

	assert.False(t, report.Valid())
	assert.Equal(t, map[string][]string{"paper": {"Vault"}}, report.Duplicates)
}

func TestLoadPlatformsMultiHomedIsInformational(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{
		"paper": ["Vault"],
		"spigot": ["Vault"],
		"velocity": []
	}`)

	report, err := LoadPlatforms(path, requiredPlatforms)
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.Equal(t, map[string][]string{"Vault": {"paper", "spigot"}}, report.MultiHomed)
	assert.Equal(t, 1, report.PluginCount())
}

func TestLoadPlatformsExtraPlatformsAllowed(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{
		"paper": [],
		"spigot": [],
		"velocity": [],
		"folia": ["NewThing"]
	}`)

	report, err := LoadPlatforms(path, requiredPlatforms)
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.Contains(t, report.Platforms, "folia")
}

func TestLoadPlatformsMissingFile(t *testing.T) {
	_, err := LoadPlatforms(filepath.Join(t.TempDir(), "absent.json"), requiredPlatforms)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open platform file")
}

func TestLoadPlatformsMalformedJSON(t *testing.T) {
	path := writeTempFile(t, "platforms.json", `{"paper": [`)

	_, err := LoadPlatforms(path, requiredPlatforms)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse platform file")
}
