// Package walker discovers documentation pages on disk: markdown sources
// for the site generator and built HTML pages for the headless audit.
package walker

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFileSize is the maximum page size to process (4 MB).
const DefaultMaxFileSize int64 = 4 << 20

// Kind is the type of a page file.
type Kind string

const (
	Markdown Kind = "markdown"
	HTML     Kind = "html"
)

// DetectKind returns the page kind for a filename, or "" for other files.
func DetectKind(filename string) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return Markdown
	case ".html", ".htm":
		return HTML
	}
	return ""
}

// Page holds metadata about a single page discovered during traversal.
type Page struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the root directory.
	Size    int64
	Kind    Kind
}

// Config controls the behaviour of the Walk function.
type Config struct {
	RootDir     string
	Kinds       []Kind   // Page kinds to return; empty means all.
	Include     []string // Glob patterns; only matching pages are included.
	Exclude     []string // Glob patterns; matching pages are excluded.
	MaxFileSize int64    // Pages larger than this are skipped (0 = use default).
}

// Walk traverses the directory tree rooted at cfg.RootDir and returns every
// page that passes filtering, sorted by relative path. It skips binary
// files and honours a root .gitignore.
func Walk(cfg Config) ([]Page, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	if st, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	} else if !st.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}
	if p, ok := ValidPatterns(append(append([]string(nil), cfg.Include...), cfg.Exclude...)); !ok {
		return nil, fmt.Errorf("walker: invalid pattern %q", p)
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	gitignorePatterns := loadGitignore(filepath.Join(root, ".gitignore"))

	var pages []Page

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if path != root && shouldExcludeDir(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		kind := DetectKind(name)
		if kind == "" || !wantKind(kind, cfg.Kinds) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if matchesGitignore(relPath, gitignorePatterns) {
			return nil
		}

		if !MatchesInclude(relPath, cfg.Include) {
			return nil
		}
		if MatchesExclude(relPath, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if info.Size() > maxSize {
			return nil
		}

		if isBinary(path) {
			return nil
		}

		pages = append(pages, Page{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Size:    info.Size(),
			Kind:    kind,
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].RelPath < pages[j].RelPath })
	return pages, nil
}

func wantKind(k Kind, kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// isBinary reads the first 512 bytes of a file and checks for NUL bytes,
// which is a simple but effective heuristic for binary content.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true // treat unreadable files as binary
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}

	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}

// loadGitignore reads a .gitignore file and returns its non-empty,
// non-comment lines as patterns.
func loadGitignore(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// matchesGitignore checks if a relative path matches any gitignore pattern.
func matchesGitignore(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalized := filepath.ToSlash(relPath)
	parts := strings.Split(normalized, "/")

	for _, pattern := range patterns {
		dirOnly := strings.HasSuffix(pattern, "/")
		pattern = strings.Trim(pattern, "/")

		if !strings.Contains(pattern, "/") {
			// A bare name matches any path component; a directory-only
			// pattern matches any component but the file itself.
			components := parts
			if dirOnly {
				components = parts[:len(parts)-1]
			}
			for _, part := range components {
				if matched, _ := filepath.Match(pattern, part); matched {
					return true
				}
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, normalized); matched {
			return true
		}
	}
	return false
}
