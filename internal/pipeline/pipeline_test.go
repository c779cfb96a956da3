package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "from pkg.util import helper\n\ndef main():\n    return helper()\n")
	writeFile(t, filepath.Join(dir, "pkg", "__init__.py"), "")
	writeFile(t, filepath.Join(dir, "pkg", "util.py"), "def helper():\n    return 1\n")
	writeFile(t, filepath.Join(dir, "pkg", "orphan.py"), "def Unused():\n    return None\n")

	var stages []string
	result, err := Run(context.Background(), dir, Options{DetectDynamic: true, SuggestSplits: true}, func(stage, detail string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Graph.NodeCount() != 4 {
		t.Fatalf("Graph.NodeCount() = %d, want 4", result.Graph.NodeCount())
	}
	if len(stages) == 0 {
		t.Fatal("expected progress callbacks")
	}
	if len(result.DeadCode.UnusedModules) != 2 {
		t.Fatalf("DeadCode.UnusedModules = %v, want 2 entries (pkg/__init__.py and pkg/orphan.py, unreachable from main.py)", result.DeadCode.UnusedModules)
	}
}

func TestRunNoDynamicNoSplits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "def main():\n    pass\n")

	result, err := Run(context.Background(), dir, Options{}, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Dynamic != nil {
		t.Fatalf("Dynamic = %v, want nil when DetectDynamic is false", result.Dynamic)
	}
	if result.Splits != nil {
		t.Fatalf("Splits = %v, want nil when SuggestSplits is false", result.Splits)
	}
}
