package analysis

// DeadExportOptions controls how findings for namespace-imported modules are
// reported.
type DeadExportOptions struct {
	// SuppressNamespaceTargets hides findings for modules that are the
	// target of a namespace import instead of reporting them at low
	// confidence. Namespace member access cannot be statically enumerated,
	// so these findings are never better than low.
	SuppressNamespaceTargets bool
}

// refKey identifies one referenced binding: a resolved target module plus the
// imported name ("default" for default imports).
type refKey struct {
	module string
	name   string
}

// FindDeadExports cross-references every declared export against every import
// specifier project-wide. It consumes the full ModuleRecord set rather than
// the graph because edges do not carry imported names.
//
// Classification per export, in precedence order:
//   - referenced by name (or default slot) anywhere: not dead;
//   - module is namespace-imported or side-effect-imported: opaque, finding
//     suppressed or reported at low confidence per options;
//   - module is the target of a star re-export: its exports may be consumed
//     through the re-exporting module, so the finding downgrades to medium;
//   - a re-export whose origin binding is consumed directly elsewhere: not
//     flagged, the origin usage vouches for it;
//   - otherwise: dead at high confidence.
//
// Re-exports keep their origin alive: `export { x } from './y'` references
// y's x even when nothing imports x from y directly.
func FindDeadExports(modules []ModuleRecord, resolver *Resolver, opts DeadExportOptions) []DeadExportEntry {
	direct := make(map[refKey]int)     // references from real imports
	reExported := make(map[refKey]int) // references synthesized from re-exports
	opaque := make(map[string]bool)    // namespace- or side-effect-imported modules
	starTarget := make(map[string]bool)

	for _, m := range modules {
		for _, imp := range m.Imports {
			target := resolver.Resolve(imp.SourceSpecifier, m.Path)
			if !target.Internal() {
				continue
			}
			to := target.InternalPath

			switch imp.Kind {
			case ImportKindNamespace:
				if imp.IsReExport {
					starTarget[to] = true
				} else {
					opaque[to] = true
				}
			case ImportKindSideEffect:
				opaque[to] = true
			case ImportKindDefault:
				if imp.IsReExport {
					reExported[refKey{to, "default"}]++
				} else {
					direct[refKey{to, "default"}]++
				}
			case ImportKindNamed:
				for _, name := range imp.ImportedNames {
					if imp.IsReExport {
						reExported[refKey{to, name}]++
					} else {
						direct[refKey{to, name}]++
					}
				}
			}
		}
	}

	var entries []DeadExportEntry
	for _, m := range modules {
		for _, exp := range m.Exports {
			name := exp.Name
			if exp.Kind == ExportKindDefault {
				name = "default"
			}
			key := refKey{m.Path, name}
			if direct[key] > 0 || reExported[key] > 0 {
				continue
			}

			if opaque[m.Path] {
				if !opts.SuppressNamespaceTargets {
					entries = append(entries, DeadExportEntry{
						Module:     m.Path,
						ExportName: name,
						ExportKind: exp.Kind,
						Confidence: ConfidenceLow,
					})
				}
				continue
			}

			if starTarget[m.Path] {
				entries = append(entries, DeadExportEntry{
					Module:     m.Path,
					ExportName: name,
					ExportKind: exp.Kind,
					Confidence: ConfidenceMedium,
				})
				continue
			}

			if exp.IsReExport && originConsumed(exp, m.Path, resolver, direct) {
				continue
			}

			entries = append(entries, DeadExportEntry{
				Module:     m.Path,
				ExportName: name,
				ExportKind: exp.Kind,
				Confidence: ConfidenceHigh,
			})
		}
	}
	return entries
}

// originConsumed reports whether the origin binding of a re-export is
// directly imported somewhere else in the project.
func originConsumed(exp ExportedSymbol, fromPath string, resolver *Resolver, direct map[refKey]int) bool {
	origin := resolver.Resolve(exp.ReExportSource, fromPath)
	if !origin.Internal() {
		// Re-export of an external package binding; usage is unknowable
		// here, so do not vouch for it.
		return false
	}
	name := exp.LocalName
	if name == "" {
		name = exp.Name
	}
	return direct[refKey{origin.InternalPath, name}] > 0
}
