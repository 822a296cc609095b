package analysis

import "sort"

// dfs colors for cycle detection.
type color uint8

const (
	colorWhite color = iota // unvisited
	colorGray               // in progress, on the current DFS path
	colorBlack              // done
)

// DetectCycles reports every directed cycle among internal edges. External
// edges cannot cycle back since no node represents their targets.
//
// Traversal is depth-first with three-color marking: a back-edge to a gray
// node closes one cycle, emitted as the path from that node to the current
// one. Self-imports are 1-cycles. Every component is visited, so disjoint
// cycles are all found; a diamond dependency produces no cycle.
//
// Each cycle is rotated so its lexicographically smallest member comes first
// and the result is sorted by that member, making the output independent of
// traversal start order.
func DetectCycles(g *DependencyGraph) [][]string {
	adj := internalAdjacency(g)

	colors := make(map[string]color, len(g.Nodes))
	onPath := make(map[string]int, len(g.Nodes)) // node -> index in path
	var path []string

	seen := make(map[string]bool)
	var cycles [][]string

	var visit func(node string)
	visit = func(node string) {
		colors[node] = colorGray
		onPath[node] = len(path)
		path = append(path, node)

		for _, next := range adj[node] {
			switch colors[next] {
			case colorGray:
				start := onPath[next]
				cycle := normalizeCycle(path[start:])
				key := cycleKey(cycle)
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			case colorWhite:
				visit(next)
			}
		}

		path = path[:len(path)-1]
		delete(onPath, node)
		colors[node] = colorBlack
	}

	for _, node := range g.Nodes {
		if colors[node] == colorWhite {
			visit(node)
		}
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycleKey(cycles[i]) < cycleKey(cycles[j])
	})
	return cycles
}

// internalAdjacency builds ordered, deduplicated neighbor lists from internal
// edges only. Parallel edges collapse to one adjacency entry so the same
// cycle is not emitted twice.
func internalAdjacency(g *DependencyGraph) map[string][]string {
	nodes := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n] = true
	}

	adj := make(map[string][]string, len(g.Nodes))
	dedupe := make(map[string]map[string]bool)

	for _, e := range g.Edges {
		if e.IsExternal || !nodes[e.From] || !nodes[e.To] {
			continue
		}
		if dedupe[e.From] == nil {
			dedupe[e.From] = make(map[string]bool)
		}
		if dedupe[e.From][e.To] {
			continue
		}
		dedupe[e.From][e.To] = true
		adj[e.From] = append(adj[e.From], e.To)
	}
	return adj
}

// normalizeCycle rotates a cycle so the smallest member is first. The first
// path is not repeated at the tail.
func normalizeCycle(cycle []string) []string {
	out := make([]string, len(cycle))
	copy(out, cycle)
	if len(out) < 2 {
		return out
	}
	min := 0
	for i := 1; i < len(out); i++ {
		if out[i] < out[min] {
			min = i
		}
	}
	rotated := make([]string, 0, len(out))
	rotated = append(rotated, out[min:]...)
	rotated = append(rotated, out[:min]...)
	return rotated
}

func cycleKey(cycle []string) string {
	key := ""
	for _, n := range cycle {
		key += n + "\x00"
	}
	return key
}
