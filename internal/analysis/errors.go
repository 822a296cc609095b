package analysis

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a batch is started with zero files.
var ErrEmptyInput = errors.New("no files to analyze")

// ParseError reports malformed source in a single file. It never aborts the
// batch; the file is recorded as a failure and kept as a stub node.
type ParseError struct {
	Path  string
	Cause string
	Line  int // 1-based line of the first syntax error, 0 if unknown
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: %s (line %d)", e.Path, e.Cause, e.Line)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Cause)
}

// Ambiguity records a specifier that matched more than one candidate file.
// Non-fatal: the resolver picks a winner by fixed precedence and logs this.
type Ambiguity struct {
	From       string
	Specifier  string
	Chosen     string
	Candidates []string
}

func (a Ambiguity) String() string {
	return fmt.Sprintf("%s: specifier %q matched %d candidates, chose %s",
		a.From, a.Specifier, len(a.Candidates), a.Chosen)
}
