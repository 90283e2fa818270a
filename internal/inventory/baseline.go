/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/craftops/plugaudit/pkg/logger"
)

// BaselineSuffix is the naming convention for baseline config documents.
// Membership comes from the filename alone; content is never parsed here.
const BaselineSuffix = "_universal_config.md"

// LoadBaselines enumerates baseline config documents under dir and returns
// the plugin names derived by stripping the naming suffix.
func LoadBaselines(dir string) ([]string, []Skip, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("baseline config directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("baseline config path %s is not a directory", dir)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "*"+BaselineSuffix))
	if err != nil {
		return nil, nil, fmt.Errorf("scan baseline configs: %w", err)
	}

	var names []string
	var skips []Skip
	for _, match := range matches {
		base := filepath.Base(match)
		name := strings.TrimSpace(strings.TrimSuffix(base, BaselineSuffix))
		if name == "" {
			skip := Skip{Source: dir, Ref: base, Reason: "empty plugin name after suffix strip"}
			skips = append(skips, skip)
			logger.Debug("skipped baseline file", logger.String("file", base), logger.String("reason", skip.Reason))
			continue
		}
		names = append(names, name)
	}

	return names, skips, nil
}
