package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed plugaudit-config-v1.0.0.yaml
var configSchemaV1 []byte

// CurrentSchemaVersion is the schema applied to config files on load
const CurrentSchemaVersion = "1.0.0"

// SchemaVersion represents a configuration schema version
type SchemaVersion struct {
	Major int
	Minor int
	Patch int
}

// String returns the string representation of the version
func (v SchemaVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseSchemaVersion parses a version string into SchemaVersion
func ParseSchemaVersion(version string) (SchemaVersion, error) {
	parts := strings.Split(strings.TrimPrefix(version, "v"), ".")
	if len(parts) != 3 {
		return SchemaVersion{}, fmt.Errorf("invalid version format: %s", version)
	}

	var v SchemaVersion
	if _, err := fmt.Sscanf(strings.TrimPrefix(version, "v"), "%d.%d.%d", &v.Major, &v.Minor, &v.Patch); err != nil {
		return SchemaVersion{}, fmt.Errorf("failed to parse version: %v", err)
	}

	return v, nil
}

// ValidateConfig validates a raw config document (YAML or JSON) against the
// embedded schema for the given version.
func ValidateConfig(configData []byte, schemaVersion string) error {
	sch, err := compiledSchema(schemaVersion)
	if err != nil {
		return fmt.Errorf("failed to load schema for version %s: %v", schemaVersion, err)
	}

	docJSON, err := canonicalJSON(configData)
	if err != nil {
		return err
	}

	result, err := sch.Validate(gojsonschema.NewBytesLoader(docJSON))
	if err != nil {
		return fmt.Errorf("schema validation error: %v", err)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

func compiledSchema(version string) (*gojsonschema.Schema, error) {
	switch version {
	case "1.0.0", "v1.0.0":
		return compileSchemaBytes(configSchemaV1)
	default:
		return nil, fmt.Errorf("unsupported schema version: %s", version)
	}
}

// compileSchemaBytes compiles YAML or JSON schema bytes. YAML parses first and
// is re-encoded as canonical JSON for the loader. The $schema field is dropped
// so validation never reaches for a remote draft document.
func compileSchemaBytes(schemaBytes []byte) (*gojsonschema.Schema, error) {
	var tmp any
	if err := yaml.Unmarshal(schemaBytes, &tmp); err == nil {
		if m, ok := tmp.(map[string]interface{}); ok {
			delete(m, "$schema")
		}
		jb, jerr := json.Marshal(tmp)
		if jerr != nil {
			return nil, fmt.Errorf("failed to encode schema to JSON: %w", jerr)
		}
		sch, serr := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jb))
		if serr != nil {
			return nil, fmt.Errorf("failed to load schema: %w", serr)
		}
		return sch, nil
	}

	sch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return sch, nil
}

// canonicalJSON converts a YAML or JSON document to JSON bytes for validation
func canonicalJSON(data []byte) ([]byte, error) {
	var tmp any
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("failed to parse config document: %w", err)
	}
	jb, err := json.Marshal(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config document: %w", err)
	}
	return jb, nil
}
