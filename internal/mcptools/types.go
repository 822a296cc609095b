package mcptools

import "github.com/kestrelworks/depmap/internal/analysis"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// AnalyzeProjectInput is the input for the analyze_project MCP tool.
type AnalyzeProjectInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"the absolute path to the project to analyze"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from scanning (e.g. vendor, node_modules)"`
}

// AnalyzeProjectOutput is the result of the analyze_project MCP tool.
type AnalyzeProjectOutput struct {
	Metrics     analysis.Metrics `json:"metrics"`
	CycleCount  int              `json:"cycleCount"`
	DeadExports int              `json:"deadExports"`
	FailedFiles int              `json:"failedFiles"`
	ModuleCount int              `json:"moduleCount"`
}

// GetMetricsInput is the input for the get_metrics MCP tool.
type GetMetricsInput struct {
	RepoPath string `json:"repoPath" jsonschema:"project path of a previously analyzed repository"`
}

// GetMetricsOutput is the result of the get_metrics MCP tool.
type GetMetricsOutput struct {
	Metrics analysis.Metrics `json:"metrics"`
}

// GetCyclesInput is the input for the get_cycles MCP tool.
type GetCyclesInput struct {
	RepoPath string `json:"repoPath" jsonschema:"project path of a previously analyzed repository"`
}

// GetCyclesOutput is the result of the get_cycles MCP tool.
type GetCyclesOutput struct {
	Cycles [][]string `json:"cycles"`
}

// GetDeadExportsInput is the input for the get_dead_exports MCP tool.
type GetDeadExportsInput struct {
	RepoPath   string `json:"repoPath" jsonschema:"project path of a previously analyzed repository"`
	Confidence string `json:"confidence,omitempty" jsonschema:"filter by confidence: high, medium, low"`
}

// GetDeadExportsOutput is the result of the get_dead_exports MCP tool.
type GetDeadExportsOutput struct {
	DeadExports []analysis.DeadExportEntry `json:"deadExports"`
	Total       int                        `json:"total"`
}
