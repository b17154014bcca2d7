//go:build !js

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
)

// docsDirCandidates are directories checked, in order, for existing
// markdown docs.
var docsDirCandidates = []string{"docs", "doc", "documentation", "."}

// detectDocsDir returns the first candidate directory holding markdown.
func detectDocsDir() string {
	for _, dir := range docsDirCandidates {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
		if len(matches) > 0 {
			return dir
		}
	}
	return "docs"
}

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to diagram-zoom! Let's configure your docs.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Interaction mode.
	modePrompt := promptui.Select{
		Label: "How should diagrams behave",
		Items: []string{
			"passive     - fitted to their box, no controls",
			"interactive - zoom/pan controls and a fullscreen button",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Interactive = modeIdx == 1

	// 2. Docs directory.
	docsPrompt := promptui.Prompt{
		Label:   "Markdown docs directory",
		Default: detectDocsDir(),
		Validate: func(s string) error {
			if s == "" {
				return fmt.Errorf("a directory is required")
			}
			return nil
		},
	}
	cfg.Site.DocsDir, err = docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the built site",
		Default: cfg.Site.OutputDir,
	}
	cfg.Site.OutputDir, err = outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Project name.
	namePrompt := promptui.Prompt{
		Label:   "Project name",
		Default: projectName(),
	}
	cfg.Site.ProjectName, err = namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project name: %w", err)
	}

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if extra := splitAndTrim(excludeStr); len(extra) > 0 {
		cfg.Site.Exclude = append(append([]string(nil), DefaultExcludes...), extra...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// projectName guesses a name from the working directory.
func projectName() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultConfig().Site.ProjectName
	}
	return filepath.Base(wd)
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			token := trimSpace(s[start:i])
			if token != "" {
				result = append(result, token)
			}
			start = i + 1
		}
	}
	return result
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}
