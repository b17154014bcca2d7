package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names skipped during traversal.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	".cache",
	".venv",
	".idea",
	".vscode",
	".DS_Store",
}

// shouldExcludeDir checks whether a directory name matches any default
// exclusion pattern. This is used during traversal to skip entire subtrees.
func shouldExcludeDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks if relPath matches any of the given glob patterns.
// Patterns without a slash are also tried against the base name.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}

		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, filepath.Base(normalized)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// ValidPatterns reports the first malformed pattern, if any.
func ValidPatterns(patterns []string) (string, bool) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return p, false
		}
	}
	return "", true
}
