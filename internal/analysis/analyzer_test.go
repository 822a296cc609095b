package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubParser maps paths to canned records or errors without touching
// tree-sitter. Useful for exercising the pipeline in isolation.
type stubParser struct {
	records map[string]*ModuleRecord
	errs    map[string]error
}

func (p *stubParser) Parse(_ context.Context, path string, _ []byte) (*ModuleRecord, error) {
	if err, ok := p.errs[path]; ok {
		return nil, err
	}
	if r, ok := p.records[path]; ok {
		return r, nil
	}
	return &ModuleRecord{Path: path}, nil
}

func (p *stubParser) Extensions() []string { return []string{".ts"} }
func (p *stubParser) Close() error         { return nil }

func TestAnalyze_EmptyInput(t *testing.T) {
	a := NewAnalyzer(&stubParser{}, quietLogger())
	_, err := a.Analyze(context.Background(), nil, Options{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestAnalyze_FailureIsolation(t *testing.T) {
	parser := &stubParser{
		records: map[string]*ModuleRecord{
			"src/app.ts": {
				Path: "src/app.ts",
				Imports: []ImportDeclaration{
					{SourceSpecifier: "./broken", Kind: ImportKindNamed, ImportedNames: []string{"boom"}},
				},
			},
		},
		errs: map[string]error{
			"src/broken.ts": &ParseError{Path: "src/broken.ts", Cause: "syntax error", Line: 3},
		},
	}

	a := NewAnalyzer(parser, quietLogger())
	result, err := a.Analyze(context.Background(), []Input{
		{Path: "src/app.ts"},
		{Path: "src/broken.ts"},
	}, Options{})
	require.NoError(t, err, "one bad file must not abort the batch")

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "src/broken.ts", result.Failures[0].Path)

	// The failed file stays a stub node, keeping the dependent edge
	// internal.
	assert.True(t, result.Graph.HasNode("src/broken.ts"))
	require.Len(t, result.Graph.Edges, 1)
	assert.False(t, result.Graph.Edges[0].IsExternal)
}

func TestAnalyze_Deterministic(t *testing.T) {
	parser := &stubParser{
		records: map[string]*ModuleRecord{
			"src/a.ts": {Path: "src/a.ts", Exports: []ExportedSymbol{{Name: "x", Kind: ExportKindVariable}}},
			"src/b.ts": {Path: "src/b.ts", Imports: []ImportDeclaration{
				{SourceSpecifier: "./a", Kind: ImportKindNamed, ImportedNames: []string{"x"}},
			}},
		},
	}
	a := NewAnalyzer(parser, quietLogger())

	forward := []Input{{Path: "src/a.ts"}, {Path: "src/b.ts"}}
	reversed := []Input{{Path: "src/b.ts"}, {Path: "src/a.ts"}}

	r1, err := a.Analyze(context.Background(), forward, Options{})
	require.NoError(t, err)
	r2, err := a.Analyze(context.Background(), reversed, Options{})
	require.NoError(t, err)

	assert.Equal(t, r1.Graph.Nodes, r2.Graph.Nodes, "node order follows sorted paths, not input order")
	assert.Equal(t, r1.Graph.Edges, r2.Graph.Edges)
	assert.Equal(t, r1.Metrics, r2.Metrics)
}

func TestAnalyze_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAnalyzer(&stubParser{}, quietLogger())
	_, err := a.Analyze(ctx, []Input{{Path: "src/a.ts"}}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

// End to end over real TypeScript source: a exports foo, used by b and c;
// b exports bar, used nowhere.
func TestAnalyze_EndToEnd(t *testing.T) {
	parser := NewTreeSitterParser()
	defer parser.Close()

	inputs := []Input{
		{Path: "a.ts", Source: []byte(`export function foo() {}`)},
		{Path: "b.ts", Source: []byte(`
import { foo } from './a';
export function bar() { return foo(); }
`)},
		{Path: "c.ts", Source: []byte(`
import { foo } from './a';
foo();
`)},
	}

	a := NewAnalyzer(parser, quietLogger())
	result, err := a.Analyze(context.Background(), inputs, Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	assert.Empty(t, result.Cycles)

	require.Len(t, result.Graph.Edges, 2)
	for _, e := range result.Graph.Edges {
		assert.False(t, e.IsExternal)
		assert.Equal(t, "a.ts", e.To)
	}

	assert.Equal(t, 3, result.Metrics.TotalModules)
	assert.Equal(t, 2, result.Metrics.InternalEdges)
	assert.Equal(t, "a.ts", result.Metrics.MostConnectedModule)

	require.Len(t, result.DeadExports, 1)
	assert.Equal(t, "b.ts", result.DeadExports[0].Module)
	assert.Equal(t, "bar", result.DeadExports[0].ExportName)
	assert.Equal(t, ConfidenceHigh, result.DeadExports[0].Confidence)
}

func TestAnalyze_CycleEndToEnd(t *testing.T) {
	parser := NewTreeSitterParser()
	defer parser.Close()

	inputs := []Input{
		{Path: "a.ts", Source: []byte(`import { b } from './b'; export const a = 1;`)},
		{Path: "b.ts", Source: []byte(`import { a } from './a'; export const b = 2;`)},
	}

	a := NewAnalyzer(parser, quietLogger())
	result, err := a.Analyze(context.Background(), inputs, Options{})
	require.NoError(t, err)

	require.Len(t, result.Cycles, 1)
	assert.Equal(t, []string{"a.ts", "b.ts"}, result.Cycles[0])
}
