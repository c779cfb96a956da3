// Package resolver resolves Python import symbols extracted by the parser
// to the project file that defines them, or to "external" when the import
// names a standard-library or third-party module outside the project.
package resolver

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/ingo/depviz/internal/modulemap"
)

//go:embed stdlib_modules.txt
var stdlibModulesData string

var stdlibModules = func() map[string]bool {
	set := make(map[string]bool)
	for _, line := range strings.Split(stdlibModulesData, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			set[line] = true
		}
	}
	return set
}()

// Resolver resolves import symbols to project files using a ModuleMap built
// once over the discovered file set.
type Resolver struct {
	modules *modulemap.ModuleMap
	root    string
}

// New creates a Resolver anchored at the project root directory.
func New(root string, modules *modulemap.ModuleMap) *Resolver {
	return &Resolver{modules: modules, root: root}
}

// Resolve maps an import symbol (as extracted by the parser, dots and all
// for relative imports) to the project file it refers to. fromFile is the
// absolute path of the file containing the import. Returns ok=false when
// the import cannot be matched to any project file.
func (r *Resolver) Resolve(importName, fromFile string) (string, bool) {
	if importName == "" {
		return "", false
	}

	fromDir := filepath.Dir(fromFile)

	if strings.HasPrefix(importName, ".") {
		return r.resolveRelative(importName, fromFile)
	}

	if path, ok := r.modules.FileFor(importName); ok {
		return path, true
	}

	// Try progressively shorter dotted prefixes, so `pkg.mod.Func` resolves
	// to pkg/mod.py even though "Func" is not itself a module.
	parts := strings.Split(importName, ".")
	for i := len(parts); i > 0; i-- {
		if path, ok := r.modules.FileFor(strings.Join(parts[:i], ".")); ok {
			return path, true
		}
	}

	// Filesystem ancestor probing: walk up from the importing file's
	// directory looking for `<importName>.py` or `<importName>/__init__.py`.
	tail := strings.ReplaceAll(importName, ".", string(filepath.Separator))
	for dir := fromDir; ; {
		candidates := []string{
			filepath.Join(dir, tail+".py"),
			filepath.Join(dir, tail, "__init__.py"),
		}
		for _, c := range candidates {
			if info, err := os.Stat(c); err == nil && !info.IsDir() {
				if abs, err := filepath.Abs(c); err == nil {
					return abs, true
				}
				return c, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir || !strings.HasPrefix(dir, r.root) {
			break
		}
		dir = parent
	}

	return "", false
}

func (r *Resolver) resolveRelative(importName, fromFile string) (string, bool) {
	baseModule, ok := r.modules.ModuleFor(fromFile)
	if !ok {
		return "", false
	}

	dots := 0
	for _, c := range importName {
		if c != '.' {
			break
		}
		dots++
	}
	remaining := strings.TrimPrefix(importName, strings.Repeat(".", dots))

	parts := strings.Split(baseModule, ".")
	var base []string
	if dots > 0 && dots <= len(parts) {
		base = parts[:len(parts)-dots]
	} else if dots == 0 {
		base = parts
	} else {
		return "", false
	}

	resolved := strings.Join(base, ".")
	if remaining != "" {
		if resolved == "" {
			resolved = remaining
		} else {
			resolved = resolved + "." + remaining
		}
	}

	path, ok := r.modules.FileFor(resolved)
	return path, ok
}

// IsExternal reports whether importName names a standard-library module
// (checked by its leading dotted component), independent of whether it
// also happens to resolve inside the project.
func IsExternal(importName string) bool {
	base := strings.SplitN(strings.TrimPrefix(importName, "."), ".", 2)[0]
	return stdlibModules[base]
}
