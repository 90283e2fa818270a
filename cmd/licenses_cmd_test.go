/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"strings"
	"testing"
)

func TestLicensesCommand(t *testing.T) {
	csv := ",,,,,,,,,\n" +
		",,,,,,,,,\n" +
		",EssentialsX,...,...,...,...,...,...,,spigot.org\n" +
		",Vault,...,...,...,...,...,...,,Free\n"
	path := writeFixture(t, "matrix.csv", csv)

	out, err := execRoot(t, []string{"licenses", "--matrix", path})
	if err != nil {
		t.Fatalf("licenses failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"PLUGIN LICENSE AUDIT",
		"Paid plugins (1):",
		"EssentialsX",
		"spigot.org",
		"Free plugins (1):",
		"Vault",
		"Total plugins: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("licenses output missing %q:\n%s", want, out)
		}
	}
}
