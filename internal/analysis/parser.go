package analysis

import "context"

// SourceParser turns one module's source text into a ModuleRecord.
// Implementations: TreeSitterParser (production). The rest of the engine
// depends only on the ModuleRecord shape, never on parser-internal node
// types, so alternative grammars can be swapped in.
type SourceParser interface {
	// Parse extracts the exported symbols and import declarations of a
	// single source file. A nil error guarantees a non-nil record. Syntax
	// errors are reported as *ParseError.
	Parse(ctx context.Context, path string, source []byte) (*ModuleRecord, error)

	// Extensions returns the file extensions this parser handles.
	Extensions() []string

	// Close releases parser resources.
	Close() error
}
