package analysis

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// tsExtractor builds a ModuleRecord from a parsed TypeScript/JavaScript tree.
// Only exported declarations are recorded; module-private declarations cannot
// participate in cross-module usage and would pollute dead-export results.
type tsExtractor struct{}

func (e *tsExtractor) Extract(root *tree_sitter.Node, source []byte, path string) *ModuleRecord {
	record := &ModuleRecord{Path: path}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if node == nil {
			continue
		}
		switch node.Kind() {
		case "import_statement":
			record.Imports = append(record.Imports, e.extractImport(node, source)...)
		case "export_statement":
			e.extractExport(node, source, record)
		}
	}

	return record
}

// --- Imports ---

// extractImport handles the four import shapes. A combined statement like
// `import X, { a, b } from 'm'` yields one declaration per shape present.
func (e *tsExtractor) extractImport(node *tree_sitter.Node, source []byte) []ImportDeclaration {
	specifier := importSource(node, source)
	if specifier == "" {
		return nil
	}

	var decls []ImportDeclaration

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "import_clause" {
			continue
		}
		decls = append(decls, e.extractClause(child, source, specifier)...)
	}

	if len(decls) == 0 {
		// No clause at all: `import 'm'`.
		decls = append(decls, ImportDeclaration{
			SourceSpecifier: specifier,
			Kind:            ImportKindSideEffect,
		})
	}
	return decls
}

func (e *tsExtractor) extractClause(clause *tree_sitter.Node, source []byte, specifier string) []ImportDeclaration {
	var decls []ImportDeclaration

	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			// Default import: `import X from 'm'`.
			decls = append(decls, ImportDeclaration{
				SourceSpecifier: specifier,
				Kind:            ImportKindDefault,
				ImportedNames:   []string{"default"},
			})
		case "namespace_import":
			// `import * as N from 'm'`.
			decls = append(decls, ImportDeclaration{
				SourceSpecifier: specifier,
				Kind:            ImportKindNamespace,
			})
		case "named_imports":
			names := namedSpecifiers(child, source)
			if len(names) > 0 {
				decls = append(decls, ImportDeclaration{
					SourceSpecifier: specifier,
					Kind:            ImportKindNamed,
					ImportedNames:   names,
				})
			}
		}
	}
	return decls
}

// namedSpecifiers collects the original (pre-alias) names of an import or
// export specifier list.
func namedSpecifiers(list *tree_sitter.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < list.NamedChildCount(); i++ {
		spec := list.NamedChild(i)
		if spec == nil {
			continue
		}
		kind := spec.Kind()
		if kind != "import_specifier" && kind != "export_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		names = append(names, nameNode.Utf8Text(source))
	}
	return names
}

// --- Exports ---

func (e *tsExtractor) extractExport(node *tree_sitter.Node, source []byte, record *ModuleRecord) {
	specifier := importSource(node, source)

	// Star re-export: `export * from 'm'`. The target's exports cannot be
	// enumerated, so it is recorded as an opaque namespace reference.
	if specifier != "" && hasAnonymousChild(node, "*") {
		record.Imports = append(record.Imports, ImportDeclaration{
			SourceSpecifier: specifier,
			Kind:            ImportKindNamespace,
			IsReExport:      true,
		})
		return
	}

	// Bound namespace re-export: `export * as ns from 'm'`.
	if nsExport := firstNamedChildOfKind(node, "namespace_export"); nsExport != nil && specifier != "" {
		name := ""
		for i := uint(0); i < nsExport.NamedChildCount(); i++ {
			if c := nsExport.NamedChild(i); c != nil {
				name = c.Utf8Text(source)
			}
		}
		if name != "" {
			record.Exports = append(record.Exports, ExportedSymbol{
				Name:           name,
				Kind:           ExportKindVariable,
				IsReExport:     true,
				ReExportSource: specifier,
			})
		}
		record.Imports = append(record.Imports, ImportDeclaration{
			SourceSpecifier: specifier,
			Kind:            ImportKindNamespace,
			IsReExport:      true,
		})
		return
	}

	// Clause re-export or local export list: `export { a, b as c } [from 'm']`.
	if clause := firstNamedChildOfKind(node, "export_clause"); clause != nil {
		e.extractExportClause(clause, source, specifier, record)
		return
	}

	isDefault := hasAnonymousChild(node, "default")

	// Declaration export: `export [default] function|class|const ...`.
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		e.extractDeclaration(decl, source, isDefault, record)
		return
	}

	// Expression default export: `export default <expr>`.
	if isDefault {
		record.Exports = append(record.Exports, ExportedSymbol{
			Name: "default",
			Kind: ExportKindDefault,
		})
	}
}

func (e *tsExtractor) extractExportClause(clause *tree_sitter.Node, source []byte, specifier string, record *ModuleRecord) {
	var originNames []string

	for i := uint(0); i < clause.NamedChildCount(); i++ {
		spec := clause.NamedChild(i)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		origin := nameNode.Utf8Text(source)
		exported := origin
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			exported = alias.Utf8Text(source)
		}

		sym := ExportedSymbol{
			Name: exported,
			Kind: ExportKindVariable,
		}
		if exported == "default" {
			sym.Kind = ExportKindDefault
		}
		if specifier != "" {
			sym.IsReExport = true
			sym.ReExportSource = specifier
			sym.LocalName = origin
			originNames = append(originNames, origin)
		} else if origin != exported {
			sym.LocalName = origin
		}
		record.Exports = append(record.Exports, sym)
	}

	// A re-export references the origin module's bindings: it keeps them
	// alive even when nothing imports them from the origin directly.
	if specifier != "" && len(originNames) > 0 {
		record.Imports = append(record.Imports, ImportDeclaration{
			SourceSpecifier: specifier,
			Kind:            ImportKindNamed,
			ImportedNames:   originNames,
			IsReExport:      true,
		})
	}
}

func (e *tsExtractor) extractDeclaration(decl *tree_sitter.Node, source []byte, isDefault bool, record *ModuleRecord) {
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration":
		record.Exports = append(record.Exports,
			namedExport(decl, source, ExportKindFunction, isDefault))

	case "class_declaration", "abstract_class_declaration":
		sym := namedExport(decl, source, ExportKindClass, isDefault)
		sym.Members = classMembers(decl, source)
		record.Exports = append(record.Exports, sym)

	case "interface_declaration":
		record.Exports = append(record.Exports,
			namedExport(decl, source, ExportKindInterface, isDefault))

	case "type_alias_declaration":
		record.Exports = append(record.Exports,
			namedExport(decl, source, ExportKindType, isDefault))

	case "enum_declaration":
		record.Exports = append(record.Exports,
			namedExport(decl, source, ExportKindEnum, isDefault))

	case "lexical_declaration", "variable_declaration":
		for i := uint(0); i < decl.NamedChildCount(); i++ {
			d := decl.NamedChild(i)
			if d == nil || d.Kind() != "variable_declarator" {
				continue
			}
			nameNode := d.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			record.Exports = append(record.Exports, ExportedSymbol{
				Name: nameNode.Utf8Text(source),
				Kind: ExportKindVariable,
			})
		}
	}
}

// namedExport builds an ExportedSymbol from a declaration with a "name"
// field. Default exports of anonymous declarations are named "default".
func namedExport(decl *tree_sitter.Node, source []byte, kind ExportKind, isDefault bool) ExportedSymbol {
	name := ""
	if nameNode := decl.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Utf8Text(source)
	}
	if isDefault {
		sym := ExportedSymbol{Name: "default", Kind: ExportKindDefault}
		if name != "" {
			sym.LocalName = name
		}
		return sym
	}
	return ExportedSymbol{Name: name, Kind: kind}
}

// classMembers records method and property visibility for an exported class.
func classMembers(class *tree_sitter.Node, source []byte) []ClassMember {
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var members []ClassMember
	for i := uint(0); i < body.NamedChildCount(); i++ {
		m := body.NamedChild(i)
		if m == nil {
			continue
		}
		kind := m.Kind()
		isMethod := kind == "method_definition" || kind == "abstract_method_signature"
		isField := kind == "public_field_definition" || kind == "field_definition" ||
			kind == "property_signature"
		if !isMethod && !isField {
			continue
		}
		nameNode := m.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)
		members = append(members, ClassMember{
			Name:       name,
			Visibility: memberVisibility(m, name, source),
			IsMethod:   isMethod,
		})
	}
	return members
}

func memberVisibility(member *tree_sitter.Node, name string, source []byte) Visibility {
	if strings.HasPrefix(name, "#") {
		return VisibilityPrivate
	}
	for i := uint(0); i < member.ChildCount(); i++ {
		c := member.Child(i)
		if c == nil || c.Kind() != "accessibility_modifier" {
			continue
		}
		switch c.Utf8Text(source) {
		case "private", "protected":
			return VisibilityPrivate
		}
	}
	return VisibilityPublic
}

// --- Shared node helpers ---

// importSource returns the unquoted source specifier of an import or export
// statement, or "" when the statement has no `from` clause.
func importSource(node *tree_sitter.Node, source []byte) string {
	srcNode := node.ChildByFieldName("source")
	if srcNode == nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "string" {
				srcNode = child
				break
			}
		}
	}
	if srcNode == nil {
		return ""
	}
	return strings.Trim(srcNode.Utf8Text(source), "\"'`")
}

func hasAnonymousChild(node *tree_sitter.Node, token string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == token {
			return true
		}
	}
	return false
}

func firstNamedChildOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
