package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewAnalysisMCPServer creates an MCP server with the dependency-analysis
// tools registered. version is the binary's build version.
func NewAnalysisMCPServer(svc *AnalysisService, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "depmap-analysis",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_project",
		Description: "Scan a project and run the full dependency analysis: parse source files, build the module dependency graph, detect circular imports, compute connectivity metrics, and find dead exports.",
	}, svc.AnalyzeProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_metrics",
		Description: "Return connectivity metrics (module count, edge counts, average fan-out, most connected module) for a previously analyzed project.",
	}, svc.GetMetrics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cycles",
		Description: "Return all circular import chains found in a previously analyzed project.",
	}, svc.GetCycles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dead_exports",
		Description: "Return exports that are never imported anywhere in a previously analyzed project, optionally filtered by confidence level.",
	}, svc.GetDeadExports)

	return server
}

// RunMCPServer starts an HTTP server exposing the analysis MCP tools.
func RunMCPServer(ctx context.Context, svc *AnalysisService, addr, version string) error {
	server := NewAnalysisMCPServer(svc, version)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
