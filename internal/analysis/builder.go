package analysis

// BuildGraph folds a sequence of ModuleRecords into one DependencyGraph.
// Records must already be in canonical (sorted-path) order; node order and
// edge order follow it, so repeated runs on identical input produce identical
// graphs.
//
// Every import becomes an edge. Internal targets point at graph nodes;
// external targets carry the raw package name on the edge and never become
// nodes. Parallel edges between the same module pair are kept, one per import
// occurrence; the metrics layer deduplicates when computing fan-out.
func BuildGraph(modules []ModuleRecord, resolver *Resolver) *DependencyGraph {
	g := &DependencyGraph{}

	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if seen[m.Path] {
			continue
		}
		seen[m.Path] = true
		g.Nodes = append(g.Nodes, m.Path)
	}

	for _, m := range modules {
		for _, imp := range m.Imports {
			target := resolver.Resolve(imp.SourceSpecifier, m.Path)
			if target.Internal() {
				g.Edges = append(g.Edges, Edge{
					From:       m.Path,
					To:         target.InternalPath,
					ImportKind: imp.Kind,
					IsExternal: false,
				})
			} else {
				g.Edges = append(g.Edges, Edge{
					From:       m.Path,
					To:         target.ExternalName,
					ImportKind: imp.Kind,
					IsExternal: true,
				})
			}
		}
	}

	return g
}
