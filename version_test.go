package paysplit

import "testing"

func TestVersion(t *testing.T) {
	if got := Version(); got != "v0.1.0-dev" {
		t.Fatalf("unexpected version %q", got)
	}

	GitCommit = "abc123"
	defer func() { GitCommit = "" }()
	if got := Version(); got != "v0.1.0-dev abc123" {
		t.Fatalf("unexpected version %q", got)
	}
}
