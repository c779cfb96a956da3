// Package dynimport flags call sites that a static import graph cannot
// follow: runtime-dispatched imports and arbitrary code execution.
package dynimport

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo/depviz/pkg/types"
)

// Detect walks root looking for dynamic-import and code-execution call
// sites and returns one DynamicImportSite per match, in source order.
func Detect(root *tree_sitter.Node, content []byte) []types.DynamicImportSite {
	var sites []types.DynamicImportSite

	walk(root, func(n *tree_sitter.Node) {
		if n.Kind() != "call" {
			return
		}
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return
		}

		switch fn.Kind() {
		case "identifier":
			name := nodeText(fn, content)
			switch name {
			case "__import__":
				sites = append(sites, types.DynamicImportSite{
					Line:      line(n),
					Pattern:   "__import__()",
					Rationale: "Direct __import__() call - dynamic import",
				})
			case "eval", "exec", "compile":
				sites = append(sites, types.DynamicImportSite{
					Line:      line(n),
					Pattern:   name + "()",
					Rationale: "Potential dynamic import via " + name + "() - cannot statically analyze",
				})
			}

		case "attribute":
			obj := fn.ChildByFieldName("object")
			attr := fn.ChildByFieldName("attribute")
			if obj == nil || attr == nil {
				return
			}
			objName := nodeText(obj, content)
			attrName := nodeText(attr, content)

			switch {
			case attrName == "__import__":
				sites = append(sites, types.DynamicImportSite{
					Line:      line(n),
					Pattern:   "builtins.__import__()",
					Rationale: "Dynamic import via builtins.__import__()",
				})
			case objName == "importlib" && attrName == "import_module":
				sites = append(sites, types.DynamicImportSite{
					Line:      line(n),
					Pattern:   "importlib.import_module()",
					Rationale: "Dynamic import via importlib.import_module()",
				})
			}
		}
	})

	return sites
}

func walk(node *tree_sitter.Node, fn func(*tree_sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), fn)
	}
}

func nodeText(n *tree_sitter.Node, content []byte) string {
	return string(content[n.StartByte():n.EndByte()])
}

func line(n *tree_sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}
