package analysis

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Input is one file handed in by the scanning layer: a canonical
// slash-separated path plus its UTF-8 source text.
type Input struct {
	Path   string
	Source []byte
}

// Options configures a single analysis pass.
type Options struct {
	DeadExports DeadExportOptions

	// Parallelism bounds the parse fan-out. Zero means GOMAXPROCS.
	Parallelism int
}

// Analyzer runs the full pipeline: parse fan-out, resolution, graph build,
// cycle detection, metrics, and dead-export analysis. Parsing each file is
// independent and runs in parallel; aggregation is single-threaded over the
// sorted path order so output is deterministic regardless of completion
// order.
type Analyzer struct {
	parser SourceParser
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer. A nil logger falls back to slog.Default.
func NewAnalyzer(parser SourceParser, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{parser: parser, logger: logger}
}

// Analyze runs one pass over the given files. Zero inputs is fatal
// (ErrEmptyInput): the graph is only meaningful over a closed, fully parsed
// file set. A single file's parse failure never aborts the batch: the file
// is recorded as a failure and kept as a stub node with zero exports and
// imports, so dependent edges stay internal rather than turning external.
func (a *Analyzer) Analyze(ctx context.Context, inputs []Input, opts Options) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyInput
	}

	sorted := make([]Input, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	type parseOutcome struct {
		record *ModuleRecord
		err    error
	}
	outcomes := make([]parseOutcome, len(sorted))

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range sorted {
		g.Go(func() error {
			record, err := a.parser.Parse(gctx, in.Path, in.Source)
			outcomes[i] = parseOutcome{record: record, err: err}
			// Parse errors are per-file, not batch-fatal; only report
			// context cancellation upward.
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{}
	modules := make([]ModuleRecord, 0, len(sorted))
	for i, in := range sorted {
		out := outcomes[i]
		if out.err != nil {
			a.logger.Warn("parse failed", "path", in.Path, "err", out.err)
			result.Failures = append(result.Failures, ParseFailure{
				Path:  in.Path,
				Cause: out.err.Error(),
			})
			// Stub record: the path stays a known node so dependents'
			// edges remain internal-but-errored instead of external.
			modules = append(modules, ModuleRecord{Path: in.Path})
			continue
		}
		modules = append(modules, *out.record)
	}
	result.Modules = modules

	paths := make([]string, len(modules))
	for i, m := range modules {
		paths[i] = m.Path
	}
	resolver := NewResolver(paths, a.logger)

	result.Graph = BuildGraph(modules, resolver)
	result.Cycles = DetectCycles(result.Graph)
	result.Metrics = ComputeMetrics(result.Graph)
	result.DeadExports = FindDeadExports(modules, resolver, opts.DeadExports)

	return result, nil
}
