package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs    []string // Directory names to skip entirely
	IncludeHidden bool     // Descend into dot-directories and report dot-files
}

// Walk traverses a directory tree. The visitor receives every file and
// directory that survives the ignore rules; return filepath.SkipDir from the
// visitor to prune a directory.
func Walk(rootPath string, opts WalkOptions, visitor func(path string, info os.FileInfo) error) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != rootPath && !opts.IncludeHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() && path != rootPath {
			for _, ignore := range opts.IgnoreDirs {
				if info.Name() == ignore {
					return filepath.SkipDir
				}
			}
		}

		return visitor(path, info)
	})
}

// MatchFiles returns the root-relative, slash-separated paths of all regular
// files whose relative path matches the doublestar pattern (e.g. "**/pom.xml").
// The result is sorted lexicographically.
func MatchFiles(rootPath, pattern string, opts WalkOptions) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	var matches []string
	err := Walk(rootPath, opts, func(path string, info os.FileInfo) error {
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s for %s: %w", rootPath, pattern, err)
	}

	sort.Strings(matches)
	return matches, nil
}

// ExcludeContaining drops every path that contains any of the substrings.
// Matching is plain, case-sensitive substring matching on the whole path, so
// "test" also rejects "contest/pom.xml".
func ExcludeContaining(paths, substrings []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !containsAny(p, substrings) {
			kept = append(kept, p)
		}
	}
	return kept
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
