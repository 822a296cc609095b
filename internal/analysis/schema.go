package analysis

// --- Enums ---

// ExportKind classifies an exported declaration.
type ExportKind string

const (
	ExportKindFunction  ExportKind = "function"
	ExportKindClass     ExportKind = "class"
	ExportKindVariable  ExportKind = "variable"
	ExportKindDefault   ExportKind = "default"
	ExportKindInterface ExportKind = "interface"
	ExportKindType      ExportKind = "type"
	ExportKindEnum      ExportKind = "enum"
)

// ImportKind classifies the shape of an import declaration.
type ImportKind string

const (
	ImportKindDefault    ImportKind = "default"
	ImportKindNamed      ImportKind = "named"
	ImportKindNamespace  ImportKind = "namespace"
	ImportKindSideEffect ImportKind = "side-effect"
)

// Visibility marks a class member as public or private. Private members
// cannot participate in cross-module usage; the distinction only matters to
// the rendering layer.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Confidence qualifies a dead-export finding. High means the export name
// never appears in any import specifier across the project; medium and low
// apply when star re-exports or namespace imports make exhaustive
// verification impossible.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// --- Models ---

// ClassMember records one method or property of an exported class.
type ClassMember struct {
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	IsMethod   bool       `json:"isMethod"`
}

// ExportedSymbol is one exported binding of a module. Insertion order within
// a ModuleRecord matches declaration order in the source.
type ExportedSymbol struct {
	Name       string     `json:"name"`
	Kind       ExportKind `json:"kind"`
	IsReExport bool       `json:"isReExport"`

	// ReExportSource is the raw specifier of an `export { x } from '...'`
	// statement. Empty for ordinary exports.
	ReExportSource string `json:"reExportSource,omitempty"`

	// LocalName is the name the binding has in the source module when it
	// differs from the exported name (`export { a as b }`).
	LocalName string `json:"localName,omitempty"`

	// Members is populated for class exports only.
	Members []ClassMember `json:"members,omitempty"`
}

// ImportDeclaration is one import statement shape. A single source statement
// like `import X, { a, b } from 'm'` yields two declarations, one per shape.
type ImportDeclaration struct {
	SourceSpecifier string     `json:"sourceSpecifier"`
	Kind            ImportKind `json:"kind"`

	// ImportedNames lists the original names referenced in the target
	// module. Empty for namespace and side-effect imports. For aliased
	// named imports the original name is recorded, not the alias.
	ImportedNames []string `json:"importedNames,omitempty"`

	// IsReExport is true when the declaration was synthesized from a
	// re-export statement (`export { x } from 'm'` or `export * from 'm'`).
	IsReExport bool `json:"isReExport,omitempty"`
}

// ModuleRecord is the parse product for one analyzed file. Immutable after
// construction; it does not outlive the batch that produced it.
type ModuleRecord struct {
	Path    string              `json:"path"`
	Exports []ExportedSymbol    `json:"exports"`
	Imports []ImportDeclaration `json:"imports"`
}

// Edge is one import relation in the dependency graph. To is a node path for
// internal edges and the raw package name for external ones; external targets
// never become graph nodes.
type Edge struct {
	From       string     `json:"from"`
	To         string     `json:"to"`
	ImportKind ImportKind `json:"importKind"`
	IsExternal bool       `json:"isExternal"`
}

// DependencyGraph aggregates all modules into a directed graph. Nodes keeps
// first-seen order (sorted canonical paths); parallel edges are retained, one
// per import occurrence.
type DependencyGraph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// HasNode reports whether path is a graph node.
func (g *DependencyGraph) HasNode(path string) bool {
	for _, n := range g.Nodes {
		if n == path {
			return true
		}
	}
	return false
}

// Metrics summarizes a finished dependency graph.
type Metrics struct {
	TotalModules        int     `json:"totalModules"`
	TotalEdges          int     `json:"totalEdges"`
	InternalEdges       int     `json:"internalEdges"`
	ExternalEdges       int     `json:"externalEdges"`
	AvgFanOut           float64 `json:"avgFanOut"`
	MostConnectedModule string  `json:"mostConnectedModule"`
}

// DeadExportEntry is one export with no statically discoverable importer.
type DeadExportEntry struct {
	Module     string     `json:"module"`
	ExportName string     `json:"exportName"`
	ExportKind ExportKind `json:"exportKind"`
	Confidence Confidence `json:"confidence"`
}

// ParseFailure records a file that could not be parsed. The file still
// contributes a stub node to the graph so dependent edges stay internal.
type ParseFailure struct {
	Path  string `json:"path"`
	Cause string `json:"cause"`
}

// Result is the complete output of one analysis pass.
type Result struct {
	Modules     []ModuleRecord    `json:"modules"`
	Graph       *DependencyGraph  `json:"graph"`
	Cycles      [][]string        `json:"cycles"`
	Metrics     Metrics           `json:"metrics"`
	DeadExports []DeadExportEntry `json:"deadExports"`
	Failures    []ParseFailure    `json:"failures"`
}
