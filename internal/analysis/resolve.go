package analysis

import (
	"log/slog"
	"path"
	"sort"
	"strings"
)

// ResolvedTarget is the outcome of resolving one import specifier: either a
// canonical path inside the analyzed set, or a third-party package name.
type ResolvedTarget struct {
	InternalPath string
	ExternalName string
}

// Internal reports whether the specifier resolved to an analyzed module.
func (t ResolvedTarget) Internal() bool {
	return t.InternalPath != ""
}

// resolveExtensions are probed, in order, against extension-less specifiers.
var resolveExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

// Resolver maps raw import specifiers to canonical module paths. It is an
// explicit context object built per batch over the arena of analyzed paths,
// so independent analyses never share state. All paths are slash-separated
// and project-relative.
type Resolver struct {
	fileSet     map[string]bool
	logger      *slog.Logger
	ambiguities []Ambiguity
}

// NewResolver builds a Resolver over the set of analyzed module paths.
// A nil logger falls back to slog.Default.
func NewResolver(knownPaths []string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		fileSet: make(map[string]bool, len(knownPaths)),
		logger:  logger,
	}
	for _, p := range knownPaths {
		r.fileSet[p] = true
	}
	return r
}

// Resolve classifies one specifier. Relative specifiers (./x, ../y) are
// joined against the importing module's directory and probed against the
// arena; bare specifiers are always external, regardless of whether a
// same-named local file exists; this mirrors real module resolution and is
// deliberately not cleverer.
func (r *Resolver) Resolve(specifier, fromPath string) ResolvedTarget {
	var base string
	switch {
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		base = path.Clean(path.Join(path.Dir(fromPath), specifier))
	case strings.HasPrefix(specifier, "/"):
		base = path.Clean(strings.TrimPrefix(specifier, "/"))
	default:
		return ResolvedTarget{ExternalName: specifier}
	}

	if resolved, ok := r.probe(base, specifier, fromPath); ok {
		return ResolvedTarget{InternalPath: resolved}
	}

	// A relative specifier that matches nothing is still not a package:
	// record it as external under its raw name so the edge is never dropped.
	return ResolvedTarget{ExternalName: specifier}
}

// probe gathers every candidate the specifier could mean and picks the winner
// by fixed precedence: exact file, then index file, then first lexicographic
// candidate.
func (r *Resolver) probe(base, specifier, fromPath string) (string, bool) {
	var exact, index []string

	if r.fileSet[base] {
		exact = append(exact, base)
	}
	for _, ext := range resolveExtensions {
		if c := base + ext; r.fileSet[c] {
			exact = append(exact, c)
		}
	}
	for _, ext := range resolveExtensions {
		if c := base + "/index" + ext; r.fileSet[c] {
			index = append(index, c)
		}
	}

	all := make([]string, 0, len(exact)+len(index))
	all = append(all, exact...)
	all = append(all, index...)
	if len(all) == 0 {
		return "", false
	}

	var chosen string
	switch {
	case len(exact) > 0:
		chosen = exact[0]
	case len(index) > 0:
		chosen = index[0]
	default:
		sorted := append([]string(nil), all...)
		sort.Strings(sorted)
		chosen = sorted[0]
	}

	if len(all) > 1 {
		amb := Ambiguity{
			From:       fromPath,
			Specifier:  specifier,
			Chosen:     chosen,
			Candidates: all,
		}
		r.ambiguities = append(r.ambiguities, amb)
		r.logger.Warn("ambiguous import specifier",
			"from", fromPath,
			"specifier", specifier,
			"chosen", chosen,
			"candidates", all,
		)
	}
	return chosen, true
}

// Ambiguities returns every ambiguous resolution seen so far, in encounter
// order.
func (r *Resolver) Ambiguities() []Ambiguity {
	return r.ambiguities
}
