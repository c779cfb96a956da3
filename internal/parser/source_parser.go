package parser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/ingo/depviz/pkg/types"
)

// FileResult is the per-file output of the source-parsing stage: the parsed
// tree (retained for downstream consumers such as the split suggester),
// the raw content, and the extracted import/export data.
type FileResult struct {
	Path      string
	RelPath   string
	Class     types.FileClass
	LineCount int
	Imports   []types.ImportRef
	Exports   []string
	Tree      *tree_sitter.Tree
	Content   []byte
}

// SourceParser drives directory-wide Python parsing.
type SourceParser struct {
	ts *TreeSitterParser
}

// NewSourceParser creates a SourceParser with its own Tree-sitter parser.
func NewSourceParser() (*SourceParser, error) {
	ts, err := NewTreeSitterParser()
	if err != nil {
		return nil, err
	}
	return &SourceParser{ts: ts}, nil
}

// Close releases the underlying Tree-sitter parser. Does not close any
// trees handed out in FileResults; use CloseResults for that.
func (p *SourceParser) Close() {
	p.ts.Close()
}

// ParseDirectory parses every non-excluded file in scan concurrently,
// bounded by GOMAXPROCS, and returns results merged back into input order.
// A per-file read or syntax error is logged and the file is dropped; it
// never fails the whole run.
func (p *SourceParser) ParseDirectory(ctx context.Context, scan *types.ScanResult) ([]*FileResult, error) {
	var targets []types.DiscoveredFile
	for _, f := range scan.Files {
		if f.Class != types.ClassExcluded {
			targets = append(targets, f)
		}
	}

	slots := make([]*FileResult, len(targets))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range targets {
		i, f := i, f
		g.Go(func() error {
			r, err := p.parseOne(f)
			if err != nil {
				slog.Warn("skipping file", "path", f.RelPath, "error", err)
				return nil
			}
			slots[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*FileResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, r)
		}
	}
	return results, nil
}

func (p *SourceParser) parseOne(f types.DiscoveredFile) (*FileResult, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.RelPath, err)
	}

	tree, err := p.ts.ParseBytes(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.RelPath, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("syntax error in %s", f.RelPath)
	}

	return &FileResult{
		Path:      f.Path,
		RelPath:   f.RelPath,
		Class:     f.Class,
		LineCount: countLines(content),
		Imports:   extractImports(root, content),
		Exports:   extractExports(root, content),
		Tree:      tree,
		Content:   content,
	}, nil
}

// CloseResults closes every tree held by results. Safe to call with nil.
func CloseResults(results []*FileResult) {
	for _, r := range results {
		if r != nil && r.Tree != nil {
			r.Tree.Close()
		}
	}
}

// extractImports walks the entire syntax tree (not just top-level
// statements) collecting import references, matching the original parser's
// ast.walk-based traversal. `import foo, import foo.bar` produce one
// ImportDirect ref per dotted name; `from X import a, b` produces one
// ImportFrom ref for X plus one for each of X.a, X.b.
func extractImports(root *tree_sitter.Node, content []byte) []types.ImportRef {
	var refs []types.ImportRef

	walkTree(root, func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "import_statement":
			for i := uint(0); i < n.ChildCount(); i++ {
				child := n.Child(i)
				if child == nil {
					continue
				}
				switch child.Kind() {
				case "dotted_name":
					refs = append(refs, types.ImportRef{
						Symbol: nodeText(child, content),
						Line:   line(child),
						Kind:   types.ImportDirect,
					})
				case "aliased_import":
					if nameNode := child.ChildByFieldName("name"); nameNode != nil {
						refs = append(refs, types.ImportRef{
							Symbol: nodeText(nameNode, content),
							Line:   line(child),
							Kind:   types.ImportDirect,
						})
					}
				}
			}

		case "import_from_statement":
			moduleNode := n.ChildByFieldName("module_name")
			if moduleNode == nil {
				for i := uint(0); i < n.ChildCount(); i++ {
					c := n.Child(i)
					if c != nil && (c.Kind() == "dotted_name" || c.Kind() == "relative_import") {
						moduleNode = c
						break
					}
				}
			}
			moduleName := ""
			if moduleNode != nil {
				moduleName = nodeText(moduleNode, content)
			}
			lineNo := line(n)
			refs = append(refs, types.ImportRef{Symbol: moduleName, Line: lineNo, Kind: types.ImportFrom})

			pastImportKeyword := false
			for i := uint(0); i < n.ChildCount(); i++ {
				c := n.Child(i)
				if c == nil {
					continue
				}
				if c.Kind() == "import" {
					pastImportKeyword = true
					continue
				}
				if !pastImportKeyword {
					continue
				}
				switch c.Kind() {
				case "dotted_name":
					refs = append(refs, types.ImportRef{
						Symbol: joinModuleMember(moduleName, nodeText(c, content)),
						Line:   lineNo,
						Kind:   types.ImportFrom,
					})
				case "aliased_import":
					if nameNode := c.ChildByFieldName("name"); nameNode != nil {
						refs = append(refs, types.ImportRef{
							Symbol: joinModuleMember(moduleName, nodeText(nameNode, content)),
							Line:   lineNo,
							Kind:   types.ImportFrom,
						})
					}
				case "wildcard_import":
					refs = append(refs, types.ImportRef{
						Symbol: joinModuleMember(moduleName, "*"),
						Line:   lineNo,
						Kind:   types.ImportFrom,
					})
				}
			}
		}
	})

	return refs
}

// extractExports walks the entire syntax tree collecting public (not
// underscore-prefixed) function, class, and simple-assignment names,
// matching the original parser's ast.walk-based extraction rather than
// restricting the scan to module top-level statements.
func extractExports(root *tree_sitter.Node, content []byte) []string {
	seen := make(map[string]bool)
	var exports []string

	add := func(name string) {
		if name == "" || strings.HasPrefix(name, "_") || seen[name] {
			return
		}
		seen[name] = true
		exports = append(exports, name)
	}

	walkTree(root, func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "function_definition", "class_definition":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				add(nodeText(nameNode, content))
			}
		case "assignment":
			if left := n.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
				add(nodeText(left, content))
			}
		}
	})

	return exports
}

func walkTree(node *tree_sitter.Node, fn func(*tree_sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), fn)
	}
}

func nodeText(node *tree_sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// joinModuleMember builds the dotted symbol for "from <module> import <member>".
// A relative module ("." or "..pkg") already ends in dots, so it doesn't take
// a separator; "from . import foo" must yield ".foo", not "..foo".
func joinModuleMember(moduleName, member string) string {
	if strings.HasSuffix(moduleName, ".") {
		return moduleName + member
	}
	return moduleName + "." + member
}

func line(node *tree_sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := 0
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
