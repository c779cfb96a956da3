package splitsuggest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ingo/depviz/internal/parser"
	"github.com/ingo/depviz/pkg/types"
)

func parseSource(t *testing.T, content string) *parser.FileResult {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "big.py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sp, err := parser.NewSourceParser()
	if err != nil {
		t.Fatalf("NewSourceParser() error: %v", err)
	}
	defer sp.Close()

	scan := &types.ScanResult{
		RootDir: dir,
		Files: []types.DiscoveredFile{
			{Path: path, RelPath: "big.py", Class: types.ClassSource},
		},
	}
	results, err := sp.ParseDirectory(t.Context(), scan)
	if err != nil {
		t.Fatalf("ParseDirectory() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	return results[0]
}

func TestSuggestBelowMinLinesReturnsNothing(t *testing.T) {
	f := parseSource(t, "def foo():\n    pass\n")
	got := Suggest(f, 300, 10)
	if got != nil {
		t.Fatalf("Suggest() = %v, want nil for a short file", got)
	}
}

func TestSuggestFunctionGrouping(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("# padding\n")
	}
	prefixes := []string{"user_create", "user_delete", "order_create", "order_delete"}
	for _, p := range prefixes {
		b.WriteString("def " + p + "():\n    pass\n")
	}
	for i := 0; i < 8; i++ {
		b.WriteString("def helper_extra_thing_that_pads():\n    pass\n")
	}

	f := parseSource(t, b.String())
	got := Suggest(f, 10, 10)

	found := false
	for _, s := range got {
		if s.Type == "function_grouping" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Suggest() = %+v, want a function_grouping suggestion", got)
	}
}

func TestSuggestImportGrouping(t *testing.T) {
	src := strings.Repeat("# pad\n", 310) + `
import json
import csv

def load_json(path):
    return json.loads(path)

def save_json(path):
    return json.dumps(path)

def load_csv(path):
    return csv.reader(path)
`
	f := parseSource(t, src)
	got := Suggest(f, 10, 100)

	found := false
	for _, s := range got {
		if s.Type == "import_grouping" {
			found = true
			if s.Groups != 2 {
				t.Errorf("import_grouping Groups = %d, want 2", s.Groups)
			}
		}
	}
	if !found {
		t.Fatalf("Suggest() = %+v, want an import_grouping suggestion", got)
	}
}

func TestGroupClassesMergesSharedPrefix(t *testing.T) {
	names := []string{"DataLoader", "DataSaver", "DataValidator"}
	if got := groupClasses(names); got != 1 {
		t.Errorf("groupClasses(%v) = %d, want 1 (all share \"data\" prefix)", names, got)
	}
}

func TestGroupClassesUnrelatedNamesStayDistinct(t *testing.T) {
	names := []string{"Foo", "Bar", "Baz"}
	if got := groupClasses(names); got != 3 {
		t.Errorf("groupClasses(%v) = %d, want 3 (no shared 3-char prefix)", names, got)
	}
}

func TestGroupFunctionsNoUnderscoreYieldsSingletons(t *testing.T) {
	names := make([]string, 15)
	for i := range names {
		names[i] = "fn" + string(rune('a'+i))
	}
	if got := groupFunctions(names); got != len(names) {
		t.Errorf("groupFunctions(%v) = %d, want %d singleton groups", names, got, len(names))
	}
}

func TestGroupFunctionsMergesSharedPrefix(t *testing.T) {
	names := []string{"user_create", "user_delete", "order_create", "order_delete"}
	if got := groupFunctions(names); got != 2 {
		t.Errorf("groupFunctions(%v) = %d, want 2", names, got)
	}
}

func TestSuggestUtilitySplit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 310; i++ {
		b.WriteString("# pad\n")
	}
	for i := 0; i < 16; i++ {
		b.WriteString("def fn" + string(rune('a'+i)) + "():\n    pass\n")
	}
	f := parseSource(t, b.String())
	got := Suggest(f, 10, 1000)

	found := false
	for _, s := range got {
		if s.Type == "utility_split" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Suggest() = %+v, want a utility_split suggestion", got)
	}
}
