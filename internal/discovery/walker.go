// Package discovery walks a project directory tree and classifies the
// Python source files it finds, before anything is parsed.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ingo/depviz/pkg/types"
)

// defaultExcludes lists directory names excluded from analysis unless the
// caller overrides them. Matches the original tool's --exclude default.
var defaultExcludes = []string{
	"__pycache__", ".git", ".venv", "venv", "env", ".env", "node_modules",
	".pytest_cache",
}

// Walker discovers and classifies Python source files in a directory tree.
type Walker struct {
	// Excludes holds directory-name or glob exclude patterns (doublestar
	// syntax): defaultExcludes from NewWalker, or exactly the caller's list
	// from NewWalkerWithExcludes (the two are never merged).
	Excludes []string
}

// NewWalker creates a Walker with the default exclude set.
func NewWalker() *Walker {
	return &Walker{Excludes: append([]string(nil), defaultExcludes...)}
}

// NewWalkerWithExcludes creates a Walker using exactly the given excludes,
// as the original CLI's --exclude flag does (it replaces, not merges).
func NewWalkerWithExcludes(excludes []string) *Walker {
	if len(excludes) == 0 {
		return NewWalker()
	}
	return &Walker{Excludes: excludes}
}

// Discover walks rootDir recursively, finds all .py files, classifies them,
// and returns a ScanResult with file lists and counts.
func (w *Walker) Discover(rootDir string) (*types.ScanResult, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("cannot access root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootDir)
	}

	var gitIgnore *ignore.GitIgnore
	gitignorePath := filepath.Join(rootDir, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		gitIgnore, err = ignore.CompileIgnoreFile(gitignorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse .gitignore: %w", err)
		}
	}

	excludeSet := make(map[string]bool, len(w.Excludes))
	var excludeGlobs []string
	for _, e := range w.Excludes {
		if strings.ContainsAny(e, "*?[") {
			excludeGlobs = append(excludeGlobs, e)
		} else {
			excludeSet[e] = true
		}
	}

	result := &types.ScanResult{RootDir: rootDir}

	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			result.SkippedCount++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			fmt.Fprintf(os.Stderr, "warning: skipping symlink %s\n", path)
			result.SymlinkCount++
			return nil
		}

		name := d.Name()
		relPath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			relPath = name
		}

		if d.IsDir() {
			if path != rootDir && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if excludeSet[name] || matchesAnyGlob(excludeGlobs, relPath) {
				return fs.SkipDir
			}
			return nil
		}

		if filepath.Ext(name) != ".py" {
			return nil
		}

		file := types.DiscoveredFile{Path: path, RelPath: relPath}

		if matchesAnyGlob(excludeGlobs, relPath) {
			file.Class = types.ClassExcluded
			file.ExcludeReason = "exclude-pattern"
			result.Files = append(result.Files, file)
			result.ExcludedCount++
			result.TotalFiles++
			return nil
		}

		if gitIgnore != nil && gitIgnore.MatchesPath(relPath) {
			file.Class = types.ClassExcluded
			file.ExcludeReason = "gitignore"
			result.Files = append(result.Files, file)
			result.GitignoreCount++
			result.TotalFiles++
			return nil
		}

		file.Class = classifyPythonFile(name)
		result.Files = append(result.Files, file)
		result.TotalFiles++

		switch file.Class {
		case types.ClassSource:
			result.SourceCount++
		case types.ClassTest:
			result.TestCount++
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk error: %w", err)
	}

	return result, nil
}

func matchesAnyGlob(globs []string, relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, slashed); ok {
			return true
		}
	}
	return false
}
