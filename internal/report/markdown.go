package report

import (
	"fmt"
	"strings"

	"github.com/kestrelworks/depmap/internal/analysis"
)

// GenerateMarkdown renders the condensed Markdown report: per-module export
// tables, dependency summary, circular imports, dead-export findings grouped
// by confidence, and a parse-failure appendix. Failed files are always
// enumerated separately from the successful analysis, never silently dropped
// from totals.
func GenerateMarkdown(result *analysis.Result) string {
	var sb strings.Builder

	sb.WriteString("# Module Dependency Report\n\n")

	writeMetrics(&sb, result.Metrics)
	writeModules(&sb, result)
	writeCycles(&sb, result.Cycles)
	writeDeadExports(&sb, result.DeadExports)
	writeFailures(&sb, result.Failures)

	return sb.String()
}

func writeMetrics(sb *strings.Builder, m analysis.Metrics) {
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(sb, "| Modules | %d |\n", m.TotalModules)
	fmt.Fprintf(sb, "| Import edges | %d |\n", m.TotalEdges)
	fmt.Fprintf(sb, "| Internal edges | %d |\n", m.InternalEdges)
	fmt.Fprintf(sb, "| External edges | %d |\n", m.ExternalEdges)
	fmt.Fprintf(sb, "| Average fan-out | %.2f |\n", m.AvgFanOut)
	if m.MostConnectedModule != "" {
		fmt.Fprintf(sb, "| Most connected | `%s` |\n", m.MostConnectedModule)
	}
	sb.WriteString("\n")
}

func writeModules(sb *strings.Builder, result *analysis.Result) {
	sb.WriteString("## Modules\n\n")

	for _, m := range result.Modules {
		fmt.Fprintf(sb, "### `%s`\n\n", m.Path)

		if len(m.Exports) == 0 {
			sb.WriteString("No exports.\n\n")
		} else {
			sb.WriteString("| Export | Kind | |\n|---|---|---|\n")
			for _, exp := range m.Exports {
				note := ""
				if exp.IsReExport {
					note = fmt.Sprintf("re-export from `%s`", exp.ReExportSource)
				}
				fmt.Fprintf(sb, "| `%s` | %s | %s |\n", exp.Name, exp.Kind, note)
			}
			sb.WriteString("\n")

			for _, exp := range m.Exports {
				if len(exp.Members) == 0 {
					continue
				}
				fmt.Fprintf(sb, "Members of `%s`:\n\n", exp.Name)
				for _, mem := range exp.Members {
					shape := "property"
					if mem.IsMethod {
						shape = "method"
					}
					fmt.Fprintf(sb, "- `%s` (%s, %s)\n", mem.Name, shape, mem.Visibility)
				}
				sb.WriteString("\n")
			}
		}

		if deps := moduleDependencies(result.Graph, m.Path); len(deps) > 0 {
			sb.WriteString("Depends on: ")
			for i, d := range deps {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(sb, "`%s`", d)
			}
			sb.WriteString("\n\n")
		}
	}
}

// moduleDependencies returns the distinct targets of a module's edges, in
// edge order, externals included.
func moduleDependencies(g *analysis.DependencyGraph, path string) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, e := range g.Edges {
		if e.From != path || seen[e.To] {
			continue
		}
		seen[e.To] = true
		deps = append(deps, e.To)
	}
	return deps
}

func writeCycles(sb *strings.Builder, cycles [][]string) {
	sb.WriteString("## Circular imports\n\n")
	if len(cycles) == 0 {
		sb.WriteString("None detected.\n\n")
		return
	}
	for _, cycle := range cycles {
		sb.WriteString("- ")
		for i, n := range cycle {
			if i > 0 {
				sb.WriteString(" → ")
			}
			fmt.Fprintf(sb, "`%s`", n)
		}
		fmt.Fprintf(sb, " → `%s`\n", cycle[0])
	}
	sb.WriteString("\n")
}

var confidenceOrder = []analysis.Confidence{
	analysis.ConfidenceHigh,
	analysis.ConfidenceMedium,
	analysis.ConfidenceLow,
}

func writeDeadExports(sb *strings.Builder, entries []analysis.DeadExportEntry) {
	sb.WriteString("## Dead exports\n\n")
	if len(entries) == 0 {
		sb.WriteString("None detected.\n\n")
		return
	}

	for _, conf := range confidenceOrder {
		var group []analysis.DeadExportEntry
		for _, e := range entries {
			if e.Confidence == conf {
				group = append(group, e)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(sb, "### %s confidence\n\n", titleCase(string(conf)))
		for _, e := range group {
			fmt.Fprintf(sb, "- `%s`: `%s` (%s)\n", e.Module, e.ExportName, e.ExportKind)
		}
		sb.WriteString("\n")
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeFailures(sb *strings.Builder, failures []analysis.ParseFailure) {
	if len(failures) == 0 {
		return
	}
	sb.WriteString("## Parse failures\n\n")
	sb.WriteString("These files could not be parsed and are included as empty modules:\n\n")
	for _, f := range failures {
		fmt.Fprintf(sb, "- `%s`: %s\n", f.Path, f.Cause)
	}
	sb.WriteString("\n")
}
