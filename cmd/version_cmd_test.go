/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVersionPlain(t *testing.T) {
	out, err := execRoot(t, []string{"version"})
	if err != nil {
		t.Fatalf("version failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "plugaudit ") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestVersionExtended(t *testing.T) {
	out, err := execRoot(t, []string{"version", "--extended"})
	if err != nil {
		t.Fatalf("version --extended failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "go version:") {
		t.Errorf("extended output missing go version: %q", out)
	}
	if !strings.Contains(out, "platform:") {
		t.Errorf("extended output missing platform: %q", out)
	}
}

func TestVersionBanner(t *testing.T) {
	out, err := execRoot(t, []string{"version", "--banner"})
	if err != nil {
		t.Fatalf("version --banner failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "└") {
		t.Errorf("banner output missing box frame: %q", out)
	}
	if !strings.Contains(out, "plugaudit") {
		t.Errorf("banner output missing version line: %q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execRoot(t, []string{"version", "--json"})
	if err != nil {
		t.Fatalf("version --json failed: %v\n%s", err, out)
	}
	var v map[string]any
	if json.Unmarshal([]byte(out), &v) != nil {
		t.Fatalf("version output is not valid JSON: %s", out)
	}
	if _, ok := v["version"].(string); !ok {
		t.Errorf("expected version field in JSON")
	}
	if _, ok := v["goVersion"].(string); !ok {
		t.Errorf("expected goVersion field in JSON")
	}
	if _, ok := v["platform"].(string); !ok {
		t.Errorf("expected platform field in JSON")
	}
}
