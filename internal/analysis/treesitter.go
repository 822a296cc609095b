package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// TreeSitterParser implements SourceParser using the tree-sitter TypeScript
// grammars. The typescript grammar also accepts plain JavaScript, so .js/.mjs
// files go through it; .tsx/.jsx use the tsx variant. A new tree-sitter
// parser is created per Parse call, so this type is safe for concurrent use.
type TreeSitterParser struct {
	tsLang  *tree_sitter.Language
	tsxLang *tree_sitter.Language
}

// NewTreeSitterParser creates a TreeSitterParser with the typescript and tsx
// grammars registered.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{
		tsLang:  tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		tsxLang: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
	}
}

// tsExtensions are the file extensions routed through the typescript grammar.
var tsExtensions = []string{".ts", ".mts", ".cts", ".js", ".mjs", ".cjs"}

// tsxExtensions are routed through the tsx grammar.
var tsxExtensions = []string{".tsx", ".jsx"}

// Extensions returns every file extension this parser handles.
func (p *TreeSitterParser) Extensions() []string {
	out := make([]string, 0, len(tsExtensions)+len(tsxExtensions))
	out = append(out, tsExtensions...)
	out = append(out, tsxExtensions...)
	return out
}

// Parse extracts the exported symbols and import declarations of one file.
func (p *TreeSitterParser) Parse(_ context.Context, path string, source []byte) (*ModuleRecord, error) {
	lang := p.tsLang
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range tsxExtensions {
		if ext == e {
			lang = p.tsxLang
			break
		}
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language for %s: %w", path, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Path: path, Cause: "tree-sitter returned nil tree"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		return nil, &ParseError{Path: path, Cause: "syntax error", Line: line}
	}

	extractor := &tsExtractor{}
	return extractor.Extract(root, source, path), nil
}

// Close is a no-op because parsers are created per Parse call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// firstErrorLine walks the tree and returns the 1-based line of the first
// ERROR or missing node, or 0 if none is found.
func firstErrorLine(root *tree_sitter.Node) int {
	cursor := root.Walk()
	defer cursor.Close()

	var walk func() int
	walk = func() int {
		node := cursor.Node()
		if node.IsError() || node.IsMissing() {
			return int(node.StartPosition().Row) + 1
		}
		if cursor.GotoFirstChild() {
			defer cursor.GotoParent()
			for {
				if line := walk(); line > 0 {
					return line
				}
				if !cursor.GotoNextSibling() {
					return 0
				}
			}
		}
		return 0
	}
	return walk()
}
