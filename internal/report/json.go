package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/kestrelworks/depmap/internal/analysis"
)

// GraphExport is the wire shape of the dependency graph.
type GraphExport struct {
	Nodes []string        `json:"nodes"`
	Edges []analysis.Edge `json:"edges"`
}

// AnalysisExport is the top-level JSON report consumed by downstream
// renderers and tooling.
type AnalysisExport struct {
	ExportedAt  string                     `json:"exportedAt"`
	Graph       GraphExport                `json:"graph"`
	Metrics     analysis.Metrics           `json:"metrics"`
	Cycles      [][]string                 `json:"cycles"`
	DeadExports []analysis.DeadExportEntry `json:"deadExports"`
	Failures    []analysis.ParseFailure    `json:"failures"`
}

// NewExport builds an AnalysisExport from a finished result. Nil slices are
// normalized to empty ones so the JSON always carries arrays.
func NewExport(result *analysis.Result) *AnalysisExport {
	exp := &AnalysisExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Graph: GraphExport{
			Nodes: result.Graph.Nodes,
			Edges: result.Graph.Edges,
		},
		Metrics:     result.Metrics,
		Cycles:      result.Cycles,
		DeadExports: result.DeadExports,
		Failures:    result.Failures,
	}
	if exp.Graph.Nodes == nil {
		exp.Graph.Nodes = []string{}
	}
	if exp.Graph.Edges == nil {
		exp.Graph.Edges = []analysis.Edge{}
	}
	if exp.Cycles == nil {
		exp.Cycles = [][]string{}
	}
	if exp.DeadExports == nil {
		exp.DeadExports = []analysis.DeadExportEntry{}
	}
	if exp.Failures == nil {
		exp.Failures = []analysis.ParseFailure{}
	}
	return exp
}

// WriteJSON renders the result as indented JSON.
func WriteJSON(w io.Writer, result *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExport(result))
}
