package analysis

// ComputeMetrics derives aggregate statistics from a finished graph. Pure:
// no I/O, never fails. A nil or empty graph yields zeroed metrics.
//
// Edge counts include parallel edges; average fan-out and the degree used for
// the most-connected module deduplicate parallel edges between the same pair,
// counting each distinct internal dependency once. Ties for most connected
// break by first-seen order in the node set.
func ComputeMetrics(g *DependencyGraph) Metrics {
	if g == nil || len(g.Nodes) == 0 {
		return Metrics{}
	}

	m := Metrics{TotalModules: len(g.Nodes), TotalEdges: len(g.Edges)}

	nodes := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n] = true
	}

	degree := make(map[string]int, len(g.Nodes))
	seenPair := make(map[string]bool)
	distinctInternal := 0

	for _, e := range g.Edges {
		if e.IsExternal {
			m.ExternalEdges++
			continue
		}
		m.InternalEdges++
		if !nodes[e.From] || !nodes[e.To] {
			continue
		}
		key := e.From + "\x00" + e.To
		if seenPair[key] {
			continue
		}
		seenPair[key] = true
		distinctInternal++
		degree[e.From]++
		if e.To != e.From {
			degree[e.To]++
		}
	}

	m.AvgFanOut = float64(distinctInternal) / float64(len(g.Nodes))

	best, bestDegree := "", -1
	for _, n := range g.Nodes {
		if degree[n] > bestDegree {
			best, bestDegree = n, degree[n]
		}
	}
	m.MostConnectedModule = best

	return m
}
