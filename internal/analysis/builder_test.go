package analysis

import "testing"

func buildFixtureGraph(t *testing.T, modules []ModuleRecord) *DependencyGraph {
	t.Helper()
	paths := make([]string, 0, len(modules))
	for _, m := range modules {
		paths = append(paths, m.Path)
	}
	return BuildGraph(modules, NewResolver(paths, quietLogger()))
}

func TestBuildGraph_InternalAndExternalEdges(t *testing.T) {
	modules := []ModuleRecord{
		{
			Path: "src/app.ts",
			Imports: []ImportDeclaration{
				{SourceSpecifier: "./util", Kind: ImportKindNamed, ImportedNames: []string{"clamp"}},
				{SourceSpecifier: "react", Kind: ImportKindDefault, ImportedNames: []string{"default"}},
			},
		},
		{Path: "src/util.ts"},
	}

	g := buildFixtureGraph(t, modules)

	if len(g.Nodes) != 2 {
		t.Fatalf("want 2 nodes, got %v", g.Nodes)
	}
	if len(g.Edges) != 2 {
		t.Fatalf("want 2 edges, got %d", len(g.Edges))
	}

	internal := g.Edges[0]
	if internal.IsExternal || internal.To != "src/util.ts" {
		t.Errorf("internal edge wrong: %+v", internal)
	}
	external := g.Edges[1]
	if !external.IsExternal || external.To != "react" {
		t.Errorf("external edge wrong: %+v", external)
	}
	if g.HasNode("react") {
		t.Error("external targets must not become nodes")
	}
}

func TestBuildGraph_ParallelEdgesKept(t *testing.T) {
	modules := []ModuleRecord{
		{
			Path: "src/a.ts",
			Imports: []ImportDeclaration{
				{SourceSpecifier: "./b", Kind: ImportKindDefault, ImportedNames: []string{"default"}},
				{SourceSpecifier: "./b", Kind: ImportKindNamed, ImportedNames: []string{"x"}},
			},
		},
		{Path: "src/b.ts"},
	}

	g := buildFixtureGraph(t, modules)

	if len(g.Edges) != 2 {
		t.Fatalf("parallel edges must stay, got %d", len(g.Edges))
	}
	if g.Edges[0].ImportKind != ImportKindDefault || g.Edges[1].ImportKind != ImportKindNamed {
		t.Errorf("per-occurrence import kinds lost: %+v", g.Edges)
	}
}

func TestBuildGraph_StubNodeKeepsEdgeInternal(t *testing.T) {
	// src/broken.ts failed to parse; the aggregator still contributes its
	// path as a stub record so edges into it stay internal.
	modules := []ModuleRecord{
		{
			Path: "src/app.ts",
			Imports: []ImportDeclaration{
				{SourceSpecifier: "./broken", Kind: ImportKindNamed, ImportedNames: []string{"boom"}},
			},
		},
		{Path: "src/broken.ts"},
	}

	g := buildFixtureGraph(t, modules)

	if len(g.Edges) != 1 {
		t.Fatalf("want 1 edge, got %d", len(g.Edges))
	}
	if g.Edges[0].IsExternal {
		t.Error("edge into an unparsed-but-known module must stay internal")
	}
	if g.Edges[0].To != "src/broken.ts" {
		t.Errorf("edge target = %q", g.Edges[0].To)
	}
}

func TestBuildGraph_DuplicateRecordsDedupeNodes(t *testing.T) {
	modules := []ModuleRecord{
		{Path: "src/a.ts"},
		{Path: "src/a.ts"},
	}

	g := buildFixtureGraph(t, modules)
	if len(g.Nodes) != 1 {
		t.Errorf("duplicate paths must collapse to one node, got %v", g.Nodes)
	}
}
