// Package modulemap derives Python dotted module names from discovered
// file paths and builds the bidirectional lookup the import resolver needs.
package modulemap

import (
	"path/filepath"
	"strings"

	"github.com/ingo/depviz/pkg/types"
)

// ModuleMap is an immutable bidirectional mapping between Python module
// names and the absolute file path that defines them.
type ModuleMap struct {
	moduleToFile map[string]string
	fileToModule map[string]string
}

// Build constructs a ModuleMap from every non-excluded file in files.
func Build(files []types.DiscoveredFile) *ModuleMap {
	m := &ModuleMap{
		moduleToFile: make(map[string]string),
		fileToModule: make(map[string]string),
	}
	for _, f := range files {
		if f.Class == types.ClassExcluded {
			continue
		}
		modName := ToModuleName(f.RelPath)
		m.moduleToFile[modName] = f.Path
		m.fileToModule[f.Path] = modName
	}
	return m
}

// ToModuleName derives a dotted module name from a path relative to the
// project root. A file named __init__.py takes its containing directory's
// name (the package boundary); the project-root __init__.py maps to "".
func ToModuleName(relPath string) string {
	name := strings.TrimSuffix(relPath, ".py")
	parts := strings.Split(filepath.ToSlash(name), "/")

	base := parts[len(parts)-1]
	dir := parts[:len(parts)-1]

	if base == "__init__" {
		return strings.Join(dir, ".")
	}
	return strings.Join(append(append([]string{}, dir...), base), ".")
}

// FileFor resolves a module name to its defining file path, if any.
func (m *ModuleMap) FileFor(module string) (string, bool) {
	p, ok := m.moduleToFile[module]
	return p, ok
}

// ModuleFor resolves a file path to the module name it defines, if known.
func (m *ModuleMap) ModuleFor(path string) (string, bool) {
	mod, ok := m.fileToModule[path]
	return mod, ok
}

// Modules returns every known module name.
func (m *ModuleMap) Modules() []string {
	out := make([]string, 0, len(m.moduleToFile))
	for mod := range m.moduleToFile {
		out = append(out, mod)
	}
	return out
}
