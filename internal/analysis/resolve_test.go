package analysis

import (
	"io"
	"log/slog"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_RelativeSpecifiers(t *testing.T) {
	files := []string{
		"src/app.ts",
		"src/util.ts",
		"src/components/button.tsx",
		"src/components/index.ts",
		"lib/helpers.js",
	}
	r := NewResolver(files, quietLogger())

	tests := []struct {
		name      string
		specifier string
		from      string
		want      string
	}{
		{"same directory", "./util", "src/app.ts", "src/util.ts"},
		{"with extension", "./util.ts", "src/app.ts", "src/util.ts"},
		{"into subdirectory", "./components/button", "src/app.ts", "src/components/button.tsx"},
		{"parent directory", "../lib/helpers", "src/app.ts", "lib/helpers.js"},
		{"directory index", "./components", "src/app.ts", "src/components/index.ts"},
		{"self import", "./app", "src/app.ts", "src/app.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.specifier, tt.from)
			if !got.Internal() {
				t.Fatalf("Resolve(%q, %q) classified external %q", tt.specifier, tt.from, got.ExternalName)
			}
			if got.InternalPath != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.specifier, tt.from, got.InternalPath, tt.want)
			}
		})
	}
}

func TestResolve_ExactBeatsIndex(t *testing.T) {
	files := []string{
		"src/config.ts",
		"src/config/index.ts",
		"src/main.ts",
	}
	r := NewResolver(files, quietLogger())

	got := r.Resolve("./config", "src/main.ts")
	if got.InternalPath != "src/config.ts" {
		t.Errorf("exact file should win over index, got %q", got.InternalPath)
	}
	if len(r.Ambiguities()) != 1 {
		t.Errorf("expected one recorded ambiguity, got %d", len(r.Ambiguities()))
	}
}

func TestResolve_ExtensionAmbiguity(t *testing.T) {
	files := []string{
		"src/dual.js",
		"src/dual.ts",
		"src/main.ts",
	}
	r := NewResolver(files, quietLogger())

	got := r.Resolve("./dual", "src/main.ts")
	// Both are exact matches; the extension probe order puts .ts first.
	if got.InternalPath != "src/dual.ts" {
		t.Errorf("got %q, want deterministic winner src/dual.ts", got.InternalPath)
	}

	ambs := r.Ambiguities()
	if len(ambs) != 1 {
		t.Fatalf("expected one ambiguity, got %d", len(ambs))
	}
	if len(ambs[0].Candidates) != 2 {
		t.Errorf("ambiguity should list both candidates, got %v", ambs[0].Candidates)
	}
}

func TestResolve_External(t *testing.T) {
	r := NewResolver([]string{"src/app.ts"}, quietLogger())

	tests := []struct {
		specifier string
		wantName  string
	}{
		{"react", "react"},
		{"@scope/pkg", "@scope/pkg"},
		{"lodash/merge", "lodash/merge"},
	}

	for _, tt := range tests {
		got := r.Resolve(tt.specifier, "src/app.ts")
		if got.Internal() {
			t.Errorf("Resolve(%q) should be external, resolved to %q", tt.specifier, got.InternalPath)
			continue
		}
		if got.ExternalName != tt.wantName {
			t.Errorf("Resolve(%q) external name = %q, want %q", tt.specifier, got.ExternalName, tt.wantName)
		}
	}
}

func TestResolve_UnresolvedRelativeIsExternal(t *testing.T) {
	r := NewResolver([]string{"src/app.ts"}, quietLogger())

	got := r.Resolve("./missing", "src/app.ts")
	if got.Internal() {
		t.Fatalf("missing relative target should stay external, got %q", got.InternalPath)
	}
	if got.ExternalName != "./missing" {
		t.Errorf("external name should keep the raw specifier, got %q", got.ExternalName)
	}
}

func TestResolve_RootAnchored(t *testing.T) {
	r := NewResolver([]string{"src/deep/core.ts"}, quietLogger())

	got := r.Resolve("/src/deep/core", "src/other.ts")
	if got.InternalPath != "src/deep/core.ts" {
		t.Errorf("root-anchored specifier failed, got %+v", got)
	}
}
