/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/craftops/plugaudit/pkg/logger"
)

// KeyVariance summarizes one configuration key's spread for a plugin.
type KeyVariance struct {
	Key            string
	DistinctValues int
	ServerCount    int
}

// VarianceRecord aggregates the config variance of one plugin across the
// servers it is deployed on.
type VarianceRecord struct {
	Plugin     string
	Keys       []KeyVariance // sorted by key
	ServerSpan int           // distinct servers across all keys
}

// LoadVariance reads the per-plugin config variance dump. The file maps
// plugin to config key to server to observed value. Malformed plugin or key
// entries become skip diagnostics instead of failing the load.
func LoadVariance(path string) ([]VarianceRecord, []Skip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open variance file: %w", err)
	}

	var plugins map[string]json.RawMessage
	if err := json.Unmarshal(data, &plugins); err != nil {
		return nil, nil, fmt.Errorf("parse variance file %s: %w", path, err)
	}

	var records []VarianceRecord
	var skips []Skip
	for _, plugin := range sortedRawKeys(plugins) {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(plugins[plugin], &keys); err != nil {
			skips = append(skips, varianceSkip(path, plugin, "plugin entry is not an object"))
			continue
		}

		rec := VarianceRecord{Plugin: plugin}
		span := make(map[string]bool)
		for _, key := range sortedRawKeys(keys) {
			ref := plugin + "." + key
			var values map[string]json.RawMessage
			if err := json.Unmarshal(keys[key], &values); err != nil {
				skips = append(skips, varianceSkip(path, ref, "key entry is not an object"))
				continue
			}
			if len(values) == 0 {
				skips = append(skips, varianceSkip(path, ref, "key has no server values"))
				continue
			}

			distinct := make(map[string]bool)
			for server, rawValue := range values {
				span[server] = true
				distinct[stringifyValue(rawValue)] = true
			}
			rec.Keys = append(rec.Keys, KeyVariance{
				Key:            key,
				DistinctValues: len(distinct),
				ServerCount:    len(values),
			})
		}

		rec.ServerSpan = len(span)
		records = append(records, rec)
	}

	return records, skips, nil
}

func varianceSkip(path, ref, reason string) Skip {
	logger.Debug("variance entry skipped", logger.String("ref", ref), logger.String("reason", reason))
	return Skip{Source: path, Ref: ref, Reason: reason}
}

// stringifyValue canonicalizes an observed config value for distinct-value
// counting. JSON strings compare by their text; everything else compares by
// its compact JSON encoding, re-marshaled so object key order cannot split
// equal values.
func stringifyValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func sortedRawKeys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
