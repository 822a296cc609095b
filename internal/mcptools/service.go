package mcptools

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kestrelworks/depmap/internal/analysis"
	"github.com/kestrelworks/depmap/internal/scan"
)

// AnalysisService holds the parser and a cache of per-project analysis
// results used by the MCP tool handlers. The get_* tools read the cached
// result so repeated queries do not re-parse the project.
type AnalysisService struct {
	parser analysis.SourceParser
	opts   analysis.Options

	mu      sync.Mutex
	results map[string]*analysis.Result // keyed by repo path
}

// NewAnalysisService creates an AnalysisService with the given parser.
func NewAnalysisService(parser analysis.SourceParser, opts analysis.Options) *AnalysisService {
	return &AnalysisService{
		parser:  parser,
		opts:    opts,
		results: make(map[string]*analysis.Result),
	}
}

// AnalyzeProject scans and analyzes a repository, caching the result.
func (s *AnalysisService) AnalyzeProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeProjectInput,
) (*mcp.CallToolResult, AnalyzeProjectOutput, error) {
	if input.RepoPath == "" {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("repoPath is required")
	}
	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}

	inputs, err := scan.Collect(input.RepoPath, s.parser.Extensions(), input.ExcludeDirs)
	if err != nil {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("scan: %w", err)
	}

	analyzer := analysis.NewAnalyzer(s.parser, nil)
	result, err := analyzer.Analyze(ctx, inputs, s.opts)
	if err != nil {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("analyze: %w", err)
	}

	s.mu.Lock()
	s.results[input.RepoPath] = result
	s.mu.Unlock()

	return nil, AnalyzeProjectOutput{
		Metrics:     result.Metrics,
		CycleCount:  len(result.Cycles),
		DeadExports: len(result.DeadExports),
		FailedFiles: len(result.Failures),
		ModuleCount: len(result.Modules),
	}, nil
}

// GetMetrics returns the metrics of a previously analyzed project.
func (s *AnalysisService) GetMetrics(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetMetricsInput,
) (*mcp.CallToolResult, GetMetricsOutput, error) {
	result, err := s.cached(input.RepoPath)
	if err != nil {
		return nil, GetMetricsOutput{}, err
	}
	return nil, GetMetricsOutput{Metrics: result.Metrics}, nil
}

// GetCycles returns the circular import chains of a previously analyzed
// project.
func (s *AnalysisService) GetCycles(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetCyclesInput,
) (*mcp.CallToolResult, GetCyclesOutput, error) {
	result, err := s.cached(input.RepoPath)
	if err != nil {
		return nil, GetCyclesOutput{}, err
	}
	cycles := result.Cycles
	if cycles == nil {
		cycles = [][]string{}
	}
	return nil, GetCyclesOutput{Cycles: cycles}, nil
}

// GetDeadExports returns dead-export findings, optionally filtered by
// confidence.
func (s *AnalysisService) GetDeadExports(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetDeadExportsInput,
) (*mcp.CallToolResult, GetDeadExportsOutput, error) {
	result, err := s.cached(input.RepoPath)
	if err != nil {
		return nil, GetDeadExportsOutput{}, err
	}

	entries := result.DeadExports
	if input.Confidence != "" {
		want := analysis.Confidence(input.Confidence)
		filtered := make([]analysis.DeadExportEntry, 0, len(entries))
		for _, e := range entries {
			if e.Confidence == want {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if entries == nil {
		entries = []analysis.DeadExportEntry{}
	}

	return nil, GetDeadExportsOutput{
		DeadExports: entries,
		Total:       len(entries),
	}, nil
}

func (s *AnalysisService) cached(repoPath string) (*analysis.Result, error) {
	if repoPath == "" {
		return nil, fmt.Errorf("repoPath is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[repoPath]
	if !ok {
		return nil, fmt.Errorf("project %s has not been analyzed; call analyze_project first", repoPath)
	}
	return result, nil
}
