package resolver

import (
	"path/filepath"
	"testing"

	"github.com/ingo/depviz/internal/modulemap"
	"github.com/ingo/depviz/pkg/types"
)

func buildFixture(root string) (*modulemap.ModuleMap, map[string]string) {
	files := []types.DiscoveredFile{
		{Path: filepath.Join(root, "app.py"), RelPath: "app.py", Class: types.ClassSource},
		{Path: filepath.Join(root, "pkg", "__init__.py"), RelPath: "pkg/__init__.py", Class: types.ClassSource},
		{Path: filepath.Join(root, "pkg", "util.py"), RelPath: "pkg/util.py", Class: types.ClassSource},
		{Path: filepath.Join(root, "pkg", "sub", "__init__.py"), RelPath: "pkg/sub/__init__.py", Class: types.ClassSource},
		{Path: filepath.Join(root, "pkg", "sub", "mod.py"), RelPath: "pkg/sub/mod.py", Class: types.ClassSource},
	}
	paths := map[string]string{
		"app":         files[0].Path,
		"pkg":         files[1].Path,
		"pkg.util":    files[2].Path,
		"pkg.sub":     files[3].Path,
		"pkg.sub.mod": files[4].Path,
	}
	return modulemap.Build(files), paths
}

func TestResolveAbsoluteExact(t *testing.T) {
	root := "/proj"
	m, paths := buildFixture(root)
	r := New(root, m)

	got, ok := r.Resolve("pkg.util", paths["app"])
	if !ok || got != paths["pkg.util"] {
		t.Fatalf("Resolve(pkg.util) = (%q, %v), want (%q, true)", got, ok, paths["pkg.util"])
	}
}

func TestResolveAbsolutePrefixShortening(t *testing.T) {
	root := "/proj"
	m, paths := buildFixture(root)
	r := New(root, m)

	got, ok := r.Resolve("pkg.util.helper", paths["app"])
	if !ok || got != paths["pkg.util"] {
		t.Fatalf("Resolve(pkg.util.helper) = (%q, %v), want (%q, true)", got, ok, paths["pkg.util"])
	}
}

func TestResolveRelativeSingleDot(t *testing.T) {
	root := "/proj"
	m, paths := buildFixture(root)
	r := New(root, m)

	// from pkg/sub/mod.py (module pkg.sub.mod), a single leading dot refers
	// to the containing package pkg.sub.
	got, ok := r.Resolve(".util", paths["pkg.sub.mod"])
	if ok {
		t.Fatalf("Resolve(.util) from pkg.sub.mod unexpectedly resolved to %q", got)
	}

	got, ok = r.Resolve(".", paths["pkg.sub.mod"])
	if !ok || got != paths["pkg.sub"] {
		t.Fatalf("Resolve(.) from pkg.sub.mod = (%q, %v), want (%q, true)", got, ok, paths["pkg.sub"])
	}
}

func TestResolveRelativeDoubleDot(t *testing.T) {
	root := "/proj"
	m, paths := buildFixture(root)
	r := New(root, m)

	got, ok := r.Resolve("..util", paths["pkg.sub.mod"])
	if !ok || got != paths["pkg.util"] {
		t.Fatalf("Resolve(..util) from pkg.sub.mod = (%q, %v), want (%q, true)", got, ok, paths["pkg.util"])
	}
}

func TestResolveUnknownReturnsFalse(t *testing.T) {
	root := "/proj"
	m, paths := buildFixture(root)
	r := New(root, m)

	if _, ok := r.Resolve("numpy", paths["app"]); ok {
		t.Fatal("Resolve(numpy) unexpectedly succeeded")
	}
}

func TestIsExternal(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"os", true},
		{"os.path", true},
		{"asyncio", true},
		{"pkg.util", false},
		{"numpy", false},
	}
	for _, c := range cases {
		if got := IsExternal(c.name); got != c.want {
			t.Errorf("IsExternal(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
