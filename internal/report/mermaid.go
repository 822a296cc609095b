package report

import (
	"fmt"
	"strings"

	"github.com/kestrelworks/depmap/internal/analysis"
)

// GenerateMermaid produces a Mermaid graph TD diagram of the dependency
// graph. Modules become boxes, import relations become arrows; external
// targets are drawn as distinctly styled leaf nodes but never gain internal
// structure. Parallel edges between the same pair collapse to one arrow.
func GenerateMermaid(result *analysis.Result) string {
	g := result.Graph

	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(path string) string {
		if id, ok := nodeIDs[path]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[path] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range g.Nodes {
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", getID(n), shortPath(n)))
	}

	var externals []string
	seenArrow := make(map[string]bool)
	for _, e := range g.Edges {
		srcID := getID(e.From)
		if e.IsExternal {
			if _, known := nodeIDs[e.To]; !known {
				externals = append(externals, e.To)
			}
		}
		tgtID := getID(e.To)
		arrow := srcID + "-->" + tgtID
		if seenArrow[arrow] {
			continue
		}
		seenArrow[arrow] = true
		if e.IsExternal {
			sb.WriteString(fmt.Sprintf("  %s -.-> %s\n", srcID, tgtID))
		} else {
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", srcID, tgtID))
		}
	}

	for _, ext := range externals {
		sb.WriteString(fmt.Sprintf("  %s([\"%s\"]):::external\n", nodeIDs[ext], ext))
	}
	if len(externals) > 0 {
		sb.WriteString("  classDef external stroke-dasharray: 5 5\n")
	}

	return sb.String()
}

// shortPath returns the last 2 path segments for readability.
func shortPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) <= 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
