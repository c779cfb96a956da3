// Package parser provides Python source parsing for the dependency-graph
// pipeline: a pooled Tree-sitter parser plus the import/export extraction
// and directory-wide concurrent parse driver that feeds the rest of the
// pipeline.
//
// Tree-sitter parsers require CGO_ENABLED=1. Every Tree must be explicitly
// closed to avoid memory leaks.
package parser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ParsedFile holds a parsed Tree-sitter syntax tree with its source content.
// Caller must call Tree.Close() when done, or use CloseAll.
type ParsedFile struct {
	Path    string
	RelPath string
	Tree    *tree_sitter.Tree
	Content []byte
}

// TreeSitterParser holds a single Python Tree-sitter parser. Tree-sitter
// parsers are not thread-safe, so parse operations are serialized via a
// mutex; the returned trees are safe to use concurrently after parsing.
type TreeSitterParser struct {
	mu     sync.Mutex
	parser *tree_sitter.Parser
}

// NewTreeSitterParser creates a parser configured for Python.
func NewTreeSitterParser() (*TreeSitterParser, error) {
	p := tree_sitter.NewParser()
	lang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("set python language: %w", err)
	}
	return &TreeSitterParser{parser: p}, nil
}

// Close releases the parser's resources. Must be called when done.
func (p *TreeSitterParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ParseBytes parses Python source content. Returns a Tree the caller must
// close. This method is thread-safe; parsing is serialized internally.
func (p *TreeSitterParser) ParseBytes(content []byte) (*tree_sitter.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tree := p.parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse returned nil")
	}
	return tree, nil
}

// CloseAll closes all trees in a slice of ParsedFile. Safe to call with nil
// or empty slice.
func CloseAll(files []*ParsedFile) {
	for _, f := range files {
		if f != nil && f.Tree != nil {
			f.Tree.Close()
		}
	}
}
