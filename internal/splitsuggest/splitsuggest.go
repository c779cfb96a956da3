// Package splitsuggest proposes ways to break up an oversized Python module
// by looking for natural groupings among its top-level definitions.
package splitsuggest

import (
	"fmt"
	"sort"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo/depviz/internal/parser"
	"github.com/ingo/depviz/pkg/types"
)

const (
	defaultMinLines     = 300
	defaultMinFunctions = 10
	minPrefixLen        = 3
)

// Suggest analyzes a parsed file and returns zero or more structural split
// suggestions. Files under minLines are left alone; pass 0 to use the
// default threshold (300 lines, 10 functions).
func Suggest(f *parser.FileResult, minLines, minFunctions int) []types.SplitSuggestion {
	if minLines <= 0 {
		minLines = defaultMinLines
	}
	if minFunctions <= 0 {
		minFunctions = defaultMinFunctions
	}
	if f.LineCount < minLines || f.Tree == nil {
		return nil
	}

	root := f.Tree.RootNode()
	classes, functions := topLevelDefs(root)

	var out []types.SplitSuggestion

	if len(classes) >= 3 {
		if groups := groupClasses(classNames(classes, f.Content)); groups > 1 {
			out = append(out, types.SplitSuggestion{
				Type:           "class_grouping",
				Reason:         fmt.Sprintf("%d classes fall into %d naturally-prefixed groups", len(classes), groups),
				Recommendation: "split classes into separate modules by shared name prefix",
				Groups:         groups,
			})
		}
	}

	if len(functions) >= minFunctions {
		if groups := groupFunctions(funcNames(functions, f.Content)); groups > 1 {
			out = append(out, types.SplitSuggestion{
				Type:           "function_grouping",
				Reason:         fmt.Sprintf("%d functions fall into %d naturally-prefixed groups", len(functions), groups),
				Recommendation: "split functions into separate modules by shared name prefix",
				Groups:         groups,
			})
		}
	}

	if groups := groupByImportUsage(root, f.Content); len(groups) > 1 {
		out = append(out, types.SplitSuggestion{
			Type:           "import_grouping",
			Reason:         fmt.Sprintf("top-level definitions split into %d groups by which imports they use", len(groups)),
			Recommendation: "split definitions into separate modules by the imports they depend on",
			Groups:         len(groups),
		})
	}

	if len(classes) == 0 && len(functions) >= 15 {
		out = append(out, types.SplitSuggestion{
			Type:           "utility_split",
			Reason:         fmt.Sprintf("%d free functions with no classes suggests a grab-bag utility module", len(functions)),
			Recommendation: "split into focused utility modules by responsibility",
		})
	}

	return out
}

func topLevelDefs(root *tree_sitter.Node) (classes, functions []*tree_sitter.Node) {
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "class_definition":
			classes = append(classes, child)
		case "function_definition":
			functions = append(functions, child)
		case "decorated_definition":
			if def := child.ChildByFieldName("definition"); def != nil {
				switch def.Kind() {
				case "class_definition":
					classes = append(classes, def)
				case "function_definition":
					functions = append(functions, def)
				}
			}
		}
	}
	return classes, functions
}

func classNames(nodes []*tree_sitter.Node, content []byte) []string {
	return names(nodes, content)
}

func funcNames(nodes []*tree_sitter.Node, content []byte) []string {
	return names(nodes, content)
}

func names(nodes []*tree_sitter.Node, content []byte) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if name := n.ChildByFieldName("name"); name != nil {
			out = append(out, nodeText(name, content))
		}
	}
	return out
}

// groupClasses greedily groups class names the way the original's
// _group_classes does: each unassigned name seeds a new group and absorbs
// every later unassigned name sharing at least minPrefixLen leading
// characters with the seed (case-insensitive), e.g. DataLoader/DataSaver
// both join the "data" group. Returns the number of groups produced.
func groupClasses(names []string) int {
	used := make([]bool, len(names))
	groups := 0
	for i := range names {
		if used[i] {
			continue
		}
		used[i] = true
		groups++
		base := strings.ToLower(names[i])
		for j := i + 1; j < len(names); j++ {
			if used[j] {
				continue
			}
			if sharedPrefixLen(base, strings.ToLower(names[j])) >= minPrefixLen {
				used[j] = true
			}
		}
	}
	return groups
}

// groupFunctions greedily groups function names the way the original's
// _group_functions does: each unassigned name seeds a new group (even one
// with no qualifying underscore prefix, which simply seeds a singleton) and
// absorbs every later unassigned name whose underscore prefix exactly
// matches the seed's, provided that prefix is at least minPrefixLen
// characters. Returns the number of groups produced.
func groupFunctions(names []string) int {
	used := make([]bool, len(names))
	groups := 0
	for i := range names {
		if used[i] {
			continue
		}
		used[i] = true
		groups++
		prefix := underscorePrefix(strings.ToLower(names[i]))
		for j := i + 1; j < len(names); j++ {
			if used[j] {
				continue
			}
			if prefix != "" && len(prefix) >= minPrefixLen && prefix == underscorePrefix(strings.ToLower(names[j])) {
				used[j] = true
			}
		}
	}
	return groups
}

func sharedPrefixLen(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

func underscorePrefix(name string) string {
	idx := strings.Index(name, "_")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// groupByImportUsage partitions top-level definitions by the set of
// module-level import bindings each one references in its body. Two
// definitions land in the same group only if they reference exactly the
// same set of imports; definitions that reference no imports are dropped
// (they don't anchor a split).
func groupByImportUsage(root *tree_sitter.Node, content []byte) map[string]bool {
	bindings := topLevelImportBindings(root, content)
	if len(bindings) == 0 {
		return nil
	}

	classes, functions := topLevelDefs(root)
	defs := append(append([]*tree_sitter.Node(nil), classes...), functions...)

	groups := make(map[string]bool)
	for _, def := range defs {
		used := referencedBindings(def, content, bindings)
		if len(used) == 0 {
			continue
		}
		sort.Strings(used)
		groups[strings.Join(used, ",")] = true
	}
	return groups
}

func topLevelImportBindings(root *tree_sitter.Node, content []byte) map[string]bool {
	bindings := make(map[string]bool)
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_statement":
			collectImportStatementBindings(child, content, bindings)
		case "import_from_statement":
			collectImportFromBindings(child, content, bindings)
		}
	}
	return bindings
}

func collectImportStatementBindings(node *tree_sitter.Node, content []byte, bindings map[string]bool) {
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			full := nodeText(child, content)
			bindings[strings.SplitN(full, ".", 2)[0]] = true
		case "aliased_import":
			if alias := child.ChildByFieldName("alias"); alias != nil {
				bindings[nodeText(alias, content)] = true
			}
		}
	}
}

func collectImportFromBindings(node *tree_sitter.Node, content []byte, bindings map[string]bool) {
	count := int(node.ChildCount())
	pastImport := false
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		if child.Kind() == "import" {
			pastImport = true
			continue
		}
		if !pastImport {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			bindings[nodeText(child, content)] = true
		case "aliased_import":
			if alias := child.ChildByFieldName("alias"); alias != nil {
				bindings[nodeText(alias, content)] = true
			}
		}
	}
}

func referencedBindings(node *tree_sitter.Node, content []byte, bindings map[string]bool) []string {
	seen := make(map[string]bool)
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}
		if n.Kind() == "identifier" {
			name := nodeText(n, content)
			if bindings[name] {
				seen[name] = true
			}
		}
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			walk(n.Child(uint(i)))
		}
	}
	walk(node)

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	return out
}

func nodeText(n *tree_sitter.Node, content []byte) string {
	return string(content[n.StartByte():n.EndByte()])
}
