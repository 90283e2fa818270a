/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/

// Package sourcescan audits a tooling source tree for hardcoded database
// names and connection literals that belong in configuration.
package sourcescan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"

	"github.com/craftops/plugaudit/pkg/logger"
)

// Finding is one flagged source line.
type Finding struct {
	Path  string // relative to the scan root
	Line  int    // 1-based
	Text  string // trimmed offending line
	Match string // database name literal or "assignment"
}

// Project is the scanned tree's pyproject identity, when present.
type Project struct {
	Name    string
	Version string
}

// Result is the outcome of one source tree scan.
type Result struct {
	Root     string
	Project  *Project // nil when the tree has no pyproject.toml
	Findings []Finding
	Scanned  int // files inspected
}

// Scanner flags hardcoded database references in source files.
type Scanner struct {
	names   []string // database name literals to flag when quoted
	ignores []string // glob patterns relative to the scan root
}

// skipDirs are directory names never worth descending into.
var skipDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
}

// scanExts are the file extensions the scanner inspects.
var scanExts = map[string]bool{
	".py":   true,
	".go":   true,
	".sh":   true,
	".sql":  true,
	".yaml": true,
	".yml":  true,
	".toml": true,
	".ini":  true,
	".cfg":  true,
	".conf": true,
	".json": true,
	".env":  true,
}

// assignPattern matches a database-name assignment carrying a quoted value,
// the shape a hardcoded connection literal takes in scripts and configs.
var assignPattern = regexp.MustCompile(`(?i)\b(?:database|db_name|dbname)\s*[:=]\s*["'][^"']+["']`)

// New builds a scanner for the configured database names and ignore globs.
func New(dbNames, ignoreGlobs []string) *Scanner {
	var names []string
	for _, n := range dbNames {
		n = strings.TrimSpace(n)
		if n != "" {
			names = append(names, n)
		}
	}
	return &Scanner{names: names, ignores: ignoreGlobs}
}

// Scan walks the source tree under root and flags every line carrying a
// configured database name as a quoted literal or a quoted database-name
// assignment. A missing root is fatal; unreadable files are not.
func (s *Scanner) Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source tree: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source tree path %s is not a directory", root)
	}

	result := &Result{Root: root, Project: loadProject(root)}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return rerr
		}

		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || s.ignored(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !scanExts[filepath.Ext(d.Name())] || s.ignored(rel) {
			return nil
		}

		content, rerr := os.ReadFile(path)
		if rerr != nil {
			logger.Debug("unreadable source file", logger.String("path", rel), logger.Err(rerr))
			return nil
		}
		result.Scanned++
		s.scanContent(rel, string(content), result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk source tree: %w", err)
	}

	return result, nil
}

func (s *Scanner) ignored(rel string) bool {
	for _, pattern := range s.ignores {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

func (s *Scanner) scanContent(rel, content string, result *Result) {
	for i, line := range strings.Split(content, "\n") {
		match, ok := s.matchLine(line)
		if !ok {
			continue
		}
		result.Findings = append(result.Findings, Finding{
			Path:  rel,
			Line:  i + 1,
			Text:  strings.TrimSpace(line),
			Match: match,
		})
	}
}

// matchLine reports what a line was flagged for. A configured name literal
// takes precedence over the generic assignment pattern.
func (s *Scanner) matchLine(line string) (string, bool) {
	for _, name := range s.names {
		if strings.Contains(line, `"`+name+`"`) || strings.Contains(line, `'`+name+`'`) {
			return name, true
		}
	}
	if assignPattern.MatchString(line) {
		return "assignment", true
	}
	return "", false
}

// pyprojectFile is the subset of pyproject.toml the report title needs.
type pyprojectFile struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

func loadProject(root string) *Project {
	data, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		return nil
	}
	var py pyprojectFile
	if err := toml.Unmarshal(data, &py); err != nil {
		logger.Debug("unparseable pyproject.toml", logger.Err(err))
		return nil
	}
	if py.Project.Name == "" {
		return nil
	}
	return &Project{Name: py.Project.Name, Version: py.Project.Version}
}
