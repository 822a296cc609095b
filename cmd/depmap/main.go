package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kestrelworks/depmap/internal/analysis"
	"github.com/kestrelworks/depmap/internal/config"
	"github.com/kestrelworks/depmap/internal/mcptools"
	"github.com/kestrelworks/depmap/internal/report"
	"github.com/kestrelworks/depmap/internal/scan"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	Format      string
	Output      string
	Exclude     string
	ServeMCP    bool
	Addr        string
	Verbose     bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("depmap", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the target project")
	fs.StringVar(&flags.Format, "format", "", "report format: markdown, json, or mermaid")
	fs.StringVar(&flags.Output, "o", "", "output file (default stdout)")
	fs.StringVar(&flags.Exclude, "exclude", "", "comma-separated directory names to skip")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server instead of writing a report")
	fs.StringVar(&flags.Addr, "addr", "localhost:8417", "listen address for the MCP server")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose logging")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelWarn
	if flags.Verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := analysis.Options{
		DeadExports: analysis.DeadExportOptions{
			SuppressNamespaceTargets: cfg.DeadExports.SuppressNamespaceTargets,
		},
	}

	parser := analysis.NewTreeSitterParser()
	defer parser.Close()

	if flags.ServeMCP {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		svc := mcptools.NewAnalysisService(parser, opts)
		return mcptools.RunMCPServer(ctx, svc, flags.Addr, version)
	}

	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = parser.Extensions()
	}
	excludes := append([]string(nil), cfg.ExcludeDirs...)
	if flags.Exclude != "" {
		for _, d := range strings.Split(flags.Exclude, ",") {
			if d = strings.TrimSpace(d); d != "" {
				excludes = append(excludes, d)
			}
		}
	}

	inputs, err := scan.Collect(flags.ProjectRoot, extensions, excludes)
	if err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(parser, logger)
	result, err := analyzer.Analyze(context.Background(), inputs, opts)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	outPath := flags.Output
	if outPath == "" {
		outPath = cfg.Output.Path
	}
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	format := flags.Format
	if format == "" {
		format = cfg.Output.Format
	}
	switch format {
	case "", "markdown":
		_, err = io.WriteString(out, report.GenerateMarkdown(result))
	case "json":
		err = report.WriteJSON(out, result)
	case "mermaid":
		_, err = io.WriteString(out, report.GenerateMermaid(result))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return err
}
